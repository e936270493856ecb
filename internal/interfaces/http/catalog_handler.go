package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/application/usecase"
)

// CatalogHandler maneja los endpoints de solo lectura del dashboard de inventario.
// No existe camino 4xx: un parámetro malformado se normaliza a su valor por
// defecto y cualquier fallo de ejecución se responde como 500 {error}.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// GetFilters godoc
// @Summary      Valores para los selectores de filtro
// @Description  Nombres distintos (recortados) de categorías y proveedores, ordenados ascendentemente.
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.FiltersDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/filtros [get]
func (h *CatalogHandler) GetFilters(c *fiber.Ctx) error {
	filters, err := h.uc.GetFilters(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(filters)
}

// GetKPIs godoc
// @Summary      Agregados del inventario filtrado
// @Description  Total de productos, unidades de stock efectivo, valor total al costo y conteo
//               de productos con stock bajo, sobre el conjunto que pasa los filtros.
// @Tags         catalogo
// @Produce      json
// @Param        categoria        query  string  false  "Nombre de categoría (igualdad recortada)"
// @Param        proveedor        query  string  false  "Nombre de proveedor (igualdad recortada)"
// @Param        q                query  string  false  "Subcadena sobre sku o descripción"
// @Param        minStock         query  number  false  "Stock efectivo mínimo"
// @Param        maxStock         query  number  false  "Stock efectivo máximo"
// @Param        missingCategory  query  string  false  "1 = solo productos sin categoría"
// @Param        missingSupplier  query  string  false  "1 = solo productos sin proveedor"
// @Success      200  {object}  dto.KPIsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/kpis [get]
func (h *CatalogHandler) GetKPIs(c *fiber.Ctx) error {
	var req dto.CatalogQueryRequest
	// Parámetros ilegibles se toleran: el DTO queda en cero y cada campo cae en su default.
	_ = c.QueryParser(&req)

	kpis, err := h.uc.GetKPIs(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if kpis == nil {
		// Los agregados siempre producen una fila; si no, objeto vacío.
		return c.JSON(struct{}{})
	}
	return c.JSON(kpis)
}

// ListInventory godoc
// @Summary      Listado paginado del inventario
// @Description  Página del inventario filtrado y ordenado, con metadatos de paginación.
//               totalRows proviene de una pasada COUNT previa no transaccional con la página.
// @Tags         catalogo
// @Produce      json
// @Param        categoria        query  string  false  "Nombre de categoría (igualdad recortada)"
// @Param        proveedor        query  string  false  "Nombre de proveedor (igualdad recortada)"
// @Param        q                query  string  false  "Subcadena sobre sku o descripción"
// @Param        minStock         query  number  false  "Stock efectivo mínimo"
// @Param        maxStock         query  number  false  "Stock efectivo máximo"
// @Param        missingCategory  query  string  false  "1 = solo productos sin categoría"
// @Param        missingSupplier  query  string  false  "1 = solo productos sin proveedor"
// @Param        sort             query  string  false  "stock_desc | sku_asc | value_desc (default)"
// @Param        page             query  int     false  "Página, 1..100000 (default 1)"
// @Param        pageSize         query  int     false  "Tamaño de página, 5..50 (default 10)"
// @Success      200  {object}  dto.InventoryPageDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventario [get]
func (h *CatalogHandler) ListInventory(c *fiber.Ctx) error {
	var req dto.CatalogQueryRequest
	_ = c.QueryParser(&req)

	page, err := h.uc.ListInventory(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(page)
}
