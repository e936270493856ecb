package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
	apphttp "github.com/jhoicas/inventario-dashboard/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeCatalogRepo repositorio en memoria que registra cómo fue invocado.
type fakeCatalogRepo struct {
	options *repository.FilterOptions
	kpis    *repository.KPIResult
	total   int64
	rows    []repository.InventoryRow
	err     error

	gotFilter repository.CatalogFilter
	gotSort   string
	gotLimit  int
	gotOffset int
}

func (f *fakeCatalogRepo) FilterOptions(ctx context.Context) (*repository.FilterOptions, error) {
	return f.options, f.err
}

func (f *fakeCatalogRepo) KPIs(ctx context.Context, filter repository.CatalogFilter, threshold int) (*repository.KPIResult, error) {
	f.gotFilter = filter
	return f.kpis, f.err
}

func (f *fakeCatalogRepo) CountInventory(ctx context.Context, filter repository.CatalogFilter) (int64, error) {
	f.gotFilter = filter
	return f.total, f.err
}

func (f *fakeCatalogRepo) ListInventory(ctx context.Context, filter repository.CatalogFilter, sort string, limit, offset int) ([]repository.InventoryRow, error) {
	f.gotFilter = filter
	f.gotSort = sort
	f.gotLimit = limit
	f.gotOffset = offset
	return f.rows, f.err
}

// buildTestApp monta una app Fiber con el router real sobre el repositorio fake.
func buildTestApp(repo repository.CatalogRepository) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC: usecase.NewCatalogUseCase(repo, 10),
	})
	return app
}

// doGet lanza una petición GET y devuelve la respuesta.
func doGet(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func inventoryRows(n int) []repository.InventoryRow {
	cat := "Tools"
	rows := make([]repository.InventoryRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, repository.InventoryRow{
			ProductoID:  int64(i + 1),
			SKU:         "SKU-" + string(rune('A'+i)),
			Descripcion: "producto de prueba",
			Categoria:   &cat,
			Proveedor:   nil,
			Stock:       int64(i * 3),
			Costo:       decimal.NewFromInt(10),
			Precio:      decimal.NewFromInt(15),
			Valor:       decimal.NewFromInt(int64(i * 30)),
		})
	}
	return rows
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestFiltros_DevuelveListas(t *testing.T) {
	app := buildTestApp(&fakeCatalogRepo{
		options: &repository.FilterOptions{
			Categorias:  []string{"Ferretería", "Tools"},
			Proveedores: []string{"Acme"},
		},
	})

	resp := doGet(t, app, "/api/filtros")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.FiltersDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"Ferretería", "Tools"}, body.Categorias)
	assert.Equal(t, []string{"Acme"}, body.Proveedores)
}

func TestFiltros_SinDatosDevuelveListasVacias(t *testing.T) {
	app := buildTestApp(&fakeCatalogRepo{options: &repository.FilterOptions{}})

	resp := doGet(t, app, "/api/filtros")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"categorias":[],"proveedores":[]}`, string(body),
		"listas vacías, nunca null")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/kpis
// ──────────────────────────────────────────────────────────────────────────────

// Conjunto filtrado vacío: los cuatro agregados llegan en cero.
func TestKPIs_ConjuntoVacioDevuelveCeros(t *testing.T) {
	repo := &fakeCatalogRepo{kpis: &repository.KPIResult{
		TotalValueCost: decimal.Zero,
	}}
	app := buildTestApp(repo)

	resp := doGet(t, app, "/api/kpis?minStock=0")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.KPIsDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(0), body.TotalProducts)
	assert.Equal(t, int64(0), body.TotalStockUnits)
	assert.True(t, body.TotalValueCost.IsZero())
	assert.Equal(t, int64(0), body.LowStockCount)

	// minStock=0 es un filtro real, no ausencia
	require.NotNil(t, repo.gotFilter.MinStock)
	assert.Equal(t, 0.0, *repo.gotFilter.MinStock)
}

func TestKPIs_SinFilaDevuelveObjetoVacio(t *testing.T) {
	app := buildTestApp(&fakeCatalogRepo{kpis: nil})

	resp := doGet(t, app, "/api/kpis")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{}`, string(body))
}

func TestKPIs_PropagaFiltros(t *testing.T) {
	repo := &fakeCatalogRepo{kpis: &repository.KPIResult{}}
	app := buildTestApp(repo)

	resp := doGet(t, app, "/api/kpis?categoria=Tools&missingSupplier=1&q=abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Tools", repo.gotFilter.Categoria)
	assert.True(t, repo.gotFilter.MissingSupplier)
	assert.Equal(t, "abc", repo.gotFilter.Busqueda)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/inventario
// ──────────────────────────────────────────────────────────────────────────────

// 12 filas con pageSize=5 y page=2: exactamente 5 filas, totalPages=3.
func TestInventario_Paginacion(t *testing.T) {
	repo := &fakeCatalogRepo{total: 12, rows: inventoryRows(5)}
	app := buildTestApp(repo)

	resp := doGet(t, app, "/api/inventario?pageSize=5&page=2")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.InventoryPageDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 5, body.PageSize)
	assert.Equal(t, int64(12), body.TotalRows)
	assert.Equal(t, 3, body.TotalPages)
	assert.Len(t, body.Rows, 5)

	assert.Equal(t, 5, repo.gotLimit)
	assert.Equal(t, 5, repo.gotOffset, "offset = (page-1) * pageSize")
}

// missingSupplier=1&sort=sku_asc llega al repositorio como filtro + token de orden.
func TestInventario_MissingSupplierOrdenadoPorSKU(t *testing.T) {
	repo := &fakeCatalogRepo{total: 2, rows: inventoryRows(2)}
	app := buildTestApp(repo)

	resp := doGet(t, app, "/api/inventario?missingSupplier=1&sort=sku_asc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, repo.gotFilter.MissingSupplier)
	assert.Equal(t, "sku_asc", repo.gotSort)
}

// Un producto sin proveedor sale con proveedor:null y su stock/valor en cero.
func TestInventario_FilaSinProveedorNiInventario(t *testing.T) {
	repo := &fakeCatalogRepo{total: 1, rows: []repository.InventoryRow{{
		ProductoID:  7,
		SKU:         "SKU-7",
		Descripcion: "sin inventario",
		Costo:       decimal.NewFromInt(4),
		Precio:      decimal.NewFromInt(9),
		Valor:       decimal.Zero,
	}}}
	app := buildTestApp(repo)

	resp := doGet(t, app, "/api/inventario")
	defer resp.Body.Close()

	var body struct {
		Rows []map[string]json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Rows, 1)

	assert.Equal(t, "null", string(body.Rows[0]["categoria"]))
	assert.Equal(t, "null", string(body.Rows[0]["proveedor"]))
	assert.Equal(t, "0", string(body.Rows[0]["stock"]))
}

// Parámetros de paginación ilegibles caen en los defaults, nunca en 4xx.
func TestInventario_ParametrosInvalidosNoSon4xx(t *testing.T) {
	repo := &fakeCatalogRepo{}
	app := buildTestApp(repo)

	resp := doGet(t, app, "/api/inventario?page=banana&pageSize=Inf&minStock=xyz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.InventoryPageDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 10, body.PageSize)
	assert.Nil(t, repo.gotFilter.MinStock, "minStock ilegible es ausencia, no cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de ejecución
// ──────────────────────────────────────────────────────────────────────────────

func TestInventario_ErrorDeConsultaDevuelve500(t *testing.T) {
	app := buildTestApp(&fakeCatalogRepo{err: errors.New("la base de datos no responde")})

	resp := doGet(t, app, "/api/inventario")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "la base de datos no responde")
}

func TestKPIs_ErrorDeConsultaDevuelve500(t *testing.T) {
	app := buildTestApp(&fakeCatalogRepo{err: errors.New("timeout")})

	resp := doGet(t, app, "/api/kpis")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "timeout")
}

func TestFiltros_ErrorDeConsultaDevuelve500(t *testing.T) {
	app := buildTestApp(&fakeCatalogRepo{err: errors.New("conexión rechazada")})

	resp := doGet(t, app, "/api/filtros")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
