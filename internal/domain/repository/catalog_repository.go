package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogFilter filtros opcionales compartidos por KPIs y el listado de inventario.
// Los campos string vacíos y los punteros nil significan "sin filtro".
type CatalogFilter struct {
	Categoria       string   // igualdad contra TRIM(categorias.nombre)
	Proveedor       string   // igualdad contra TRIM(proveedores.nombre)
	Busqueda        string   // subcadena (sensible a mayúsculas) sobre sku o descripción
	MissingCategory bool     // solo productos sin categoría asignada
	MissingSupplier bool     // solo productos sin proveedor asignado
	MinStock        *float64 // stock efectivo >= valor
	MaxStock        *float64 // stock efectivo <= valor
}

// FilterOptions valores distintos disponibles para los selectores del frontend.
type FilterOptions struct {
	Categorias  []string
	Proveedores []string
}

// KPIResult agregados del inventario filtrado.
// El stock efectivo de un producto sin fila de inventario es 0, nunca NULL.
type KPIResult struct {
	TotalProducts   int64
	TotalStockUnits int64
	TotalValueCost  decimal.Decimal // SUM(stock_efectivo * costo)
	LowStockCount   int64           // productos con stock_efectivo <= umbral
}

// InventoryRow fila proyectada del listado paginado.
// Categoria y Proveedor son nil cuando el producto no tiene la referencia.
type InventoryRow struct {
	ProductoID  int64
	SKU         string
	Descripcion string
	Categoria   *string
	Proveedor   *string
	Stock       int64
	Costo       decimal.Decimal
	Precio      decimal.Decimal
	Valor       decimal.Decimal // Stock * Costo
}

// CatalogRepository define las consultas de lectura del catálogo de inventario.
// Las implementaciones son read-only (no modifican datos).
type CatalogRepository interface {
	// FilterOptions devuelve los nombres distintos (recortados) de categorías y
	// proveedores, ordenados ascendentemente. Ignora cualquier filtro.
	FilterOptions(ctx context.Context) (*FilterOptions, error)

	// KPIs calcula los agregados sobre el conjunto filtrado. Devuelve nil sin
	// error si la consulta no produce fila alguna.
	KPIs(ctx context.Context, f CatalogFilter, lowStockThreshold int) (*KPIResult, error)

	// CountInventory cuenta las filas del conjunto filtrado.
	CountInventory(ctx context.Context, f CatalogFilter) (int64, error)

	// ListInventory devuelve una página del listado con el orden indicado por
	// sort ("stock_desc", "sku_asc" o "value_desc"; cualquier otro token cae en
	// "value_desc").
	ListInventory(ctx context.Context, f CatalogFilter, sort string, limit, offset int) ([]InventoryRow, error)
}
