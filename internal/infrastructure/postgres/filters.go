package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

// buildWhere traduce el filtro en un fragmento WHERE parametrizado más la lista
// ordenada de valores. Parte de un predicado siempre verdadero para poder
// anexar condiciones con AND sin casos especiales.
//
// El orden de aplicación fija la posición de los placeholders $N y por tanto la
// alineación placeholder-valor: categoria, proveedor, missingCategory,
// missingSupplier, búsqueda, minStock, maxStock. Todo valor influido por el
// usuario viaja como parámetro ligado, nunca interpolado en el SQL.
func buildWhere(f repository.CatalogFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")
	args := make([]any, 0, 7)

	// categoria/proveedor: igualdad exacta pero recortada en ambos lados
	if v := strings.TrimSpace(f.Categoria); v != "" {
		fmt.Fprintf(&sb, " AND TRIM(c.nombre) = $%d", len(args)+1)
		args = append(args, v)
	}
	if v := strings.TrimSpace(f.Proveedor); v != "" {
		fmt.Fprintf(&sb, " AND TRIM(pr.nombre) = $%d", len(args)+1)
		args = append(args, v)
	}

	// vistas rápidas de referencias ausentes (sin valores ligados)
	if f.MissingCategory {
		sb.WriteString(" AND p.categoria_id IS NULL")
	}
	if f.MissingSupplier {
		sb.WriteString(" AND p.proveedor_id IS NULL")
	}

	// búsqueda por subcadena sobre sku o descripción (sensible a mayúsculas)
	if f.Busqueda != "" {
		fmt.Fprintf(&sb, " AND (p.sku LIKE $%d OR p.descripcion LIKE $%d)", len(args)+1, len(args)+2)
		like := "%" + f.Busqueda + "%"
		args = append(args, like, like)
	}

	// rango de stock sobre el stock efectivo (inventario ausente cuenta como 0)
	if f.MinStock != nil {
		fmt.Fprintf(&sb, " AND COALESCE(i.cantidad, 0) >= $%d", len(args)+1)
		args = append(args, *f.MinStock)
	}
	if f.MaxStock != nil {
		fmt.Fprintf(&sb, " AND COALESCE(i.cantidad, 0) <= $%d", len(args)+1)
		args = append(args, *f.MaxStock)
	}

	return sb.String(), args
}

// resolveSort mapea el token de ordenamiento a una cláusula ORDER BY de un
// conjunto cerrado de literales; el token jamás se incrusta en el SQL, así que
// este eje no tiene superficie de inyección. Todo token desconocido (incluido
// el vacío) cae en el orden por valor descendente, con sku como desempate
// determinista.
func resolveSort(sort string) string {
	switch sort {
	case "stock_desc":
		return " ORDER BY COALESCE(i.cantidad, 0) DESC, p.sku ASC"
	case "sku_asc":
		return " ORDER BY p.sku ASC"
	default: // "value_desc" y cualquier otro
		return " ORDER BY (COALESCE(i.cantidad, 0) * p.costo) DESC, p.sku ASC"
	}
}
