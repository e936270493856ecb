package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// baseFrom es la relación base compartida por todas las consultas de lectura:
// productos con LEFT JOIN a categorías, proveedores e inventario, de modo que
// un producto sin categoría, proveedor o fila de inventario sigue apareciendo
// (los NULL se resuelven a "ausente"/0 al proyectar, nunca filtrando filas).
const baseFrom = `
	FROM productos p
	LEFT JOIN categorias  c  ON p.categoria_id = c.id
	LEFT JOIN proveedores pr ON p.proveedor_id = pr.id
	LEFT JOIN inventario  i  ON i.producto_id  = p.id`

// CatalogRepo consultas de solo lectura del catálogo de inventario sobre PostgreSQL.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository construye el adaptador del catálogo.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// FilterOptions devuelve los nombres distintos (recortados) de categorías y
// proveedores, cada lista ordenada ascendentemente por el nombre recortado.
// No aplica ningún filtro: alimenta los selectores del frontend.
func (r *CatalogRepo) FilterOptions(ctx context.Context) (*repository.FilterOptions, error) {
	categorias, err := r.distinctNames(ctx, "categorias")
	if err != nil {
		return nil, fmt.Errorf("catalog.FilterOptions categorias: %w", err)
	}
	proveedores, err := r.distinctNames(ctx, "proveedores")
	if err != nil {
		return nil, fmt.Errorf("catalog.FilterOptions proveedores: %w", err)
	}
	return &repository.FilterOptions{Categorias: categorias, Proveedores: proveedores}, nil
}

// distinctNames lista TRIM(nombre) distinto de una tabla de nombres.
// table solo admite los identificadores fijos de este paquete, nunca entrada del usuario.
func (r *CatalogRepo) distinctNames(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT TRIM(nombre) AS nombre FROM %s ORDER BY TRIM(nombre)`, table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan nombre: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// KPIs calcula los agregados del conjunto filtrado en una sola consulta:
// total de productos, unidades totales de stock efectivo, valor total al costo
// y productos con stock efectivo <= lowStockThreshold. Usa COALESCE para
// devolver cero cuando el conjunto filtrado está vacío.
func (r *CatalogRepo) KPIs(
	ctx context.Context,
	f repository.CatalogFilter,
	lowStockThreshold int,
) (*repository.KPIResult, error) {
	where, args := buildWhere(f)
	// El umbral se liga como último parámetro; en PostgreSQL la numeración $N
	// es posicional sobre args, no sobre el orden textual.
	query := fmt.Sprintf(`
	SELECT
	    COUNT(*)                                                                     AS total_products,
	    COALESCE(SUM(COALESCE(i.cantidad, 0)), 0)                                    AS total_stock_units,
	    COALESCE(SUM(COALESCE(i.cantidad, 0) * p.costo), 0)                          AS total_value_cost,
	    COALESCE(SUM(CASE WHEN COALESCE(i.cantidad, 0) <= $%d THEN 1 ELSE 0 END), 0) AS low_stock_count
	%s%s`, len(args)+1, baseFrom, where)
	args = append(args, lowStockThreshold)

	var result repository.KPIResult
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&result.TotalProducts,
		&result.TotalStockUnits,
		&result.TotalValueCost,
		&result.LowStockCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog.KPIs: %w", err)
	}
	return &result, nil
}

// CountInventory cuenta las filas del conjunto filtrado (primera pasada de la
// paginación).
func (r *CatalogRepo) CountInventory(ctx context.Context, f repository.CatalogFilter) (int64, error) {
	where, args := buildWhere(f)
	query := `SELECT COUNT(*)` + baseFrom + where

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("catalog.CountInventory: %w", err)
	}
	return total, nil
}

// ListInventory devuelve una página del listado filtrado y ordenado.
// LIMIT y OFFSET se ligan como parámetros adicionales después de los valores
// del filtro; el stock y el valor efectivos se proyectan con COALESCE para que
// un producto sin fila de inventario salga con 0, nunca NULL.
func (r *CatalogRepo) ListInventory(
	ctx context.Context,
	f repository.CatalogFilter,
	sort string,
	limit, offset int,
) ([]repository.InventoryRow, error) {
	where, args := buildWhere(f)
	query := fmt.Sprintf(`
	SELECT
	    p.id                                   AS producto_id,
	    p.sku,
	    p.descripcion,
	    TRIM(c.nombre)                         AS categoria,
	    TRIM(pr.nombre)                        AS proveedor,
	    COALESCE(i.cantidad, 0)                AS stock,
	    p.costo,
	    p.precio,
	    (COALESCE(i.cantidad, 0) * p.costo)    AS valor
	%s%s%s
	LIMIT $%d OFFSET $%d`, baseFrom, where, resolveSort(sort), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListInventory: %w", err)
	}
	defer rows.Close()

	var results []repository.InventoryRow
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(
			&row.ProductoID,
			&row.SKU,
			&row.Descripcion,
			&row.Categoria,
			&row.Proveedor,
			&row.Stock,
			&row.Costo,
			&row.Precio,
			&row.Valor,
		); err != nil {
			return nil, fmt.Errorf("catalog.ListInventory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
