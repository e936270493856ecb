package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-dashboard/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *usecase.CatalogUseCase
}

// Router registra las rutas de la API (todas públicas y de solo lectura).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/filtros", catalogHandler.GetFilters)
	api.Get("/kpis", catalogHandler.GetKPIs)
	api.Get("/inventario", catalogHandler.ListInventory)
}
