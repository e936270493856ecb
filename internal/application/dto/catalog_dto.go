package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// CatalogQueryRequest parámetros de GET /api/kpis y GET /api/inventario.
// Todos los campos llegan como string crudo: la normalización (números finitos,
// flags "1", clamping de página) la hace el use case; un valor malformado se
// trata como ausente, nunca como error del cliente.
type CatalogQueryRequest struct {
	Categoria       string `query:"categoria"`       // igualdad (recortada) contra el nombre de la categoría
	Proveedor       string `query:"proveedor"`       // igualdad (recortada) contra el nombre del proveedor
	Busqueda        string `query:"q"`               // subcadena sobre sku o descripción
	MinStock        string `query:"minStock"`        // numérico; vacío o no finito = sin filtro
	MaxStock        string `query:"maxStock"`        // numérico; vacío o no finito = sin filtro
	MissingCategory string `query:"missingCategory"` // "1" = solo productos sin categoría
	MissingSupplier string `query:"missingSupplier"` // "1" = solo productos sin proveedor
	Sort            string `query:"sort"`            // stock_desc | sku_asc | value_desc (default)
	Page            string `query:"page"`            // 1..100000, default 1
	PageSize        string `query:"pageSize"`        // 5..50, default 10
}

// ── Respuestas ────────────────────────────────────────────────────────────────

// FiltersDTO respuesta de GET /api/filtros: valores para los selectores del frontend.
type FiltersDTO struct {
	Categorias  []string `json:"categorias"`
	Proveedores []string `json:"proveedores"`
}

// KPIsDTO respuesta de GET /api/kpis: agregados del inventario filtrado.
type KPIsDTO struct {
	TotalProducts   int64           `json:"total_products"`
	TotalStockUnits int64           `json:"total_stock_units"` // suma de stock efectivo
	TotalValueCost  decimal.Decimal `json:"total_value_cost"`  // suma de stock efectivo * costo
	LowStockCount   int64           `json:"low_stock_count"`   // stock efectivo <= umbral configurado
}

// InventoryRowDTO fila del listado paginado.
// categoria/proveedor son null cuando el producto no tiene la referencia.
type InventoryRowDTO struct {
	ProductoID  int64           `json:"producto_id"`
	SKU         string          `json:"sku"`
	Descripcion string          `json:"descripcion"`
	Categoria   *string         `json:"categoria"`
	Proveedor   *string         `json:"proveedor"`
	Stock       int64           `json:"stock"`
	Costo       decimal.Decimal `json:"costo"`
	Precio      decimal.Decimal `json:"precio"`
	Valor       decimal.Decimal `json:"valor"` // stock * costo
}

// InventoryPageDTO respuesta de GET /api/inventario.
type InventoryPageDTO struct {
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalRows  int64             `json:"totalRows"`
	TotalPages int               `json:"totalPages"` // siempre >= 1
	Rows       []InventoryRowDTO `json:"rows"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Error string `json:"error"`
}
