package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

const (
	defaultPage     = 1
	maxPage         = 100000
	defaultPageSize = 10
	minPageSize     = 5
	maxPageSize     = 50
)

// CatalogUseCase orquesta las consultas de solo lectura del dashboard de inventario:
//   - Normaliza los parámetros crudos del request (números finitos, flags, clamping).
//   - Ejecuta las consultas vía el puerto CatalogRepository.
//   - Calcula los metadatos de paginación (totalPages siempre >= 1).
type CatalogUseCase struct {
	catalogRepo       repository.CatalogRepository
	lowStockThreshold int
}

// NewCatalogUseCase construye el caso de uso. lowStockThreshold define el corte
// (inclusive) del contador de stock bajo en los KPIs.
func NewCatalogUseCase(catalogRepo repository.CatalogRepository, lowStockThreshold int) *CatalogUseCase {
	return &CatalogUseCase{catalogRepo: catalogRepo, lowStockThreshold: lowStockThreshold}
}

// GetFilters devuelve los valores distintos de categorías y proveedores para
// los selectores del frontend. Las listas nunca son nil.
func (uc *CatalogUseCase) GetFilters(ctx context.Context) (*dto.FiltersDTO, error) {
	opts, err := uc.catalogRepo.FilterOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo: filtros: %w", err)
	}
	out := &dto.FiltersDTO{Categorias: opts.Categorias, Proveedores: opts.Proveedores}
	if out.Categorias == nil {
		out.Categorias = []string{}
	}
	if out.Proveedores == nil {
		out.Proveedores = []string{}
	}
	return out, nil
}

// GetKPIs calcula los agregados del inventario filtrado. Devuelve nil si la
// consulta no produjo fila (el handler lo serializa como objeto vacío).
func (uc *CatalogUseCase) GetKPIs(ctx context.Context, req dto.CatalogQueryRequest) (*dto.KPIsDTO, error) {
	result, err := uc.catalogRepo.KPIs(ctx, parseFilter(req), uc.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("catálogo: KPIs: %w", err)
	}
	if result == nil {
		return nil, nil
	}
	return &dto.KPIsDTO{
		TotalProducts:   result.TotalProducts,
		TotalStockUnits: result.TotalStockUnits,
		TotalValueCost:  result.TotalValueCost,
		LowStockCount:   result.LowStockCount,
	}, nil
}

// ListInventory devuelve una página del listado de inventario.
// Hace dos pasadas: COUNT del conjunto filtrado y luego la página de datos.
// Las pasadas no son transaccionales entre sí; un totalRows ligeramente
// desfasado respecto a rows es una aproximación aceptada.
func (uc *CatalogUseCase) ListInventory(ctx context.Context, req dto.CatalogQueryRequest) (*dto.InventoryPageDTO, error) {
	filter := parseFilter(req)

	pageSize := clampInt(req.PageSize, defaultPageSize, minPageSize, maxPageSize)
	page := clampInt(req.Page, defaultPage, defaultPage, maxPage)
	offset := (page - 1) * pageSize

	totalRows, err := uc.catalogRepo.CountInventory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("catálogo: conteo de inventario: %w", err)
	}

	rows, err := uc.catalogRepo.ListInventory(ctx, filter, req.Sort, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("catálogo: página de inventario: %w", err)
	}

	out := make([]dto.InventoryRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventoryRowDTO{
			ProductoID:  r.ProductoID,
			SKU:         r.SKU,
			Descripcion: r.Descripcion,
			Categoria:   r.Categoria,
			Proveedor:   r.Proveedor,
			Stock:       r.Stock,
			Costo:       r.Costo,
			Precio:      r.Precio,
			Valor:       r.Valor,
		})
	}

	return &dto.InventoryPageDTO{
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  totalRows,
		TotalPages: totalPages(totalRows, pageSize),
		Rows:       out,
	}, nil
}

// parseFilter convierte los parámetros crudos en el filtro tipado del puerto.
// Los flags son verdaderos solo con el literal "1"; min/max exigen un número
// finito (vacío, no numérico, NaN o ±Inf cuentan como ausentes, nunca como 0).
func parseFilter(req dto.CatalogQueryRequest) repository.CatalogFilter {
	return repository.CatalogFilter{
		Categoria:       req.Categoria,
		Proveedor:       req.Proveedor,
		Busqueda:        req.Busqueda,
		MissingCategory: req.MissingCategory == "1",
		MissingSupplier: req.MissingSupplier == "1",
		MinStock:        parseFiniteFloat(req.MinStock),
		MaxStock:        parseFiniteFloat(req.MaxStock),
	}
}

// parseFiniteFloat devuelve nil salvo que s sea un número finito.
func parseFiniteFloat(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// clampInt interpreta raw como entero (truncando decimales) y lo acota a
// [min, max]. Entrada vacía, no numérica o no finita produce exactamente def,
// nunca un extremo del rango.
func clampInt(raw string, def, min, max int) int {
	n := parseFiniteFloat(raw)
	if n == nil {
		return def
	}
	t := math.Trunc(*n)
	if t < float64(min) {
		return min
	}
	if t > float64(max) {
		return max
	}
	return int(t)
}

// totalPages calcula ceil(totalRows/pageSize) con piso en 1.
func totalPages(totalRows int64, pageSize int) int {
	pages := int(math.Ceil(float64(totalRows) / float64(pageSize)))
	if pages < 1 {
		pages = 1
	}
	return pages
}
