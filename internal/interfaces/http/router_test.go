package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/romero-panificados/inventario-api/internal/application/analytics"
	"github.com/romero-panificados/inventario-api/internal/application/audit"
	"github.com/romero-panificados/inventario-api/internal/application/auth"
	"github.com/romero-panificados/inventario-api/internal/application/authz"
	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/history"
	"github.com/romero-panificados/inventario-api/internal/application/inventory"
	"github.com/romero-panificados/inventario-api/internal/application/maintenance"
	"github.com/romero-panificados/inventario-api/internal/application/report"
	"github.com/romero-panificados/inventario-api/internal/application/usecase"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/cache"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/pdf"
	apphttp "github.com/romero-panificados/inventario-api/internal/interfaces/http"
	"github.com/romero-panificados/inventario-api/pkg/logger"
)

const (
	adminEmail    = "admin@romero.test"
	adminPassword = "clave-segura-123"
)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	rec   *audit.Recorder
}

// apiOptions variantes del fixture.
type apiOptions struct {
	loginMax int
	// manualRecorder deja el escritor de auditoría sin arrancar; el test llama rec.Start.
	manualRecorder bool
	// productRepo reemplaza el repositorio de productos que usa ProductUC.
	productRepo func(*memory.ProductRepo) repository.ProductRepository
}

// newAPI arma la API completa sobre el almacenamiento en memoria.
func newAPI(t *testing.T, loginMax int) *apiFixture {
	return newAPIWith(t, apiOptions{loginMax: loginMax})
}

func newAPIWith(t *testing.T, opts apiOptions) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	products := store.Products()
	var productUCRepo repository.ProductRepository = products
	if opts.productRepo != nil {
		productUCRepo = opts.productRepo(products)
	}
	movements := store.Movements()
	maints := store.Maintenances()
	users := store.Users()
	hist := history.NewService(products, store.History())

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	_, err := authUC.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: adminEmail, Password: adminPassword, Nombre: "Admin", Rol: entity.RoleAdmin,
	})
	require.NoError(t, err)

	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)

	rec := audit.NewRecorder(store.Audit(), audit.Config{}, logger.Nop(), nil)
	if !opts.manualRecorder {
		rec.Start()
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = rec.Stop(ctx)
	})

	app := apphttp.NewApp("inventario-test", logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(users),
		ProductUC:        usecase.NewProductUseCase(productUCRepo, movements, maints, store, hist, cache.Nop{}),
		History:          hist,
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, products, movements, cache.Nop{}, nil, nil, nil),
		MaintenanceUC:    maintenance.NewUseCase(maints, store, cache.Nop{}),
		AuditQuery:       audit.NewQueryUseCase(store.Audit()),
		ReportUC:         report.NewUseCase(products, movements, pdf.NewMarotoPDFGenerator()),
		DashboardUC:      appanalytics.NewDashboardUseCase(products, maints, movements),
		Enforcer:         enforcer,
		Audit:            rec,
		JWTSecret:        testJWTSecret,
		LoginMax:         opts.loginMax,
		LoginWindow:      time.Minute,
	})
	return &apiFixture{app: app, store: store, rec: rec}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	return f.doWithHeaders(t, method, path, token, body, nil)
}

func (f *apiFixture) doWithHeaders(t *testing.T, method, path, token string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (f *apiFixture) login(t *testing.T) string {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	return "Bearer " + data["token"].(string)
}

func (f *apiFixture) createProduct(t *testing.T, token, ref string, existencia int) string {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/api/productos", token, fiber.Map{
		"referencia": ref, "nombre": "Rodamiento 6204", "equipo": "Horno 1", "existencia": existencia, "costoUnitario": 5000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["data"].(map[string]any)["id"].(string)
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	f := newAPI(t, 0)
	resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": adminEmail, "password": adminPassword})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin", data["usuario"].(map[string]any)["rol"])
}

func TestLogin_PasswordIncorrecto_MensajeGenerico(t *testing.T) {
	f := newAPI(t, 0)
	resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": adminEmail, "password": "otra-clave"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, apphttp.MsgInvalidCredentials, body["message"])

	resp, body = f.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "nadie@romero.test", "password": "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.MsgInvalidCredentials, body["message"], "email desconocido responde igual")
}

func TestLogin_FallidoQuedaAuditadoSinUsuario(t *testing.T) {
	f := newAPI(t, 0)
	f.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": adminEmail, "password": "otra-clave"})

	assert.Eventually(t, func() bool {
		list, _, err := f.store.Audit().List(context.Background(), entity.AuditFilter{Accion: entity.AuditLogin, Limit: 10})
		return err == nil && len(list) == 1 && list[0].UsuarioID == nil
	}, time.Second, 10*time.Millisecond)
}

func TestLogin_LimitePorIP(t *testing.T) {
	f := newAPI(t, 2)
	for i := 0; i < 2; i++ {
		resp, _ := f.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": adminEmail, "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, _ := f.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": adminEmail, "password": "x"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func TestCrearProducto_ReferenciaDuplicada(t *testing.T) {
	f := newAPI(t, 0)
	tok := f.login(t)
	f.createProduct(t, tok, "dup-001", 1)

	resp, body := f.do(t, http.MethodPost, "/api/productos", tok, fiber.Map{"referencia": "DUP-001", "nombre": "Otro"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.MsgDuplicateReference, body["message"])
}

func TestProducto_IDNoUUIDDevuelve404(t *testing.T) {
	f := newAPI(t, 0)
	tok := f.login(t)

	for _, path := range []string{"/api/productos/abc", "/api/historial/productos/abc", "/api/mantenimientos/abc"} {
		resp, body := f.do(t, http.MethodGet, path, tok, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, false, body["success"], path)
	}
}

func TestProducto_NoEncontrado404(t *testing.T) {
	f := newAPI(t, 0)
	resp, body := f.do(t, http.MethodGet, "/api/productos/no-existe", f.login(t), nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestHistorial_ActualizacionCreaVersion2(t *testing.T) {
	f := newAPI(t, 0)
	tok := f.login(t)
	id := f.createProduct(t, tok, "REF-H1", 3)

	resp, _ := f.do(t, http.MethodPut, "/api/productos/"+id, tok, fiber.Map{"nombre": "Rodamiento 6205", "motivo": "corrección"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := f.do(t, http.MethodGet, "/api/historial/productos/"+id, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	versiones := body["data"].(map[string]any)["versiones"].([]any)
	require.Len(t, versiones, 2)
	assert.EqualValues(t, 2, versiones[1].(map[string]any)["version"])
}

// ── Movimientos ───────────────────────────────────────────────────────────────

func TestRegistrarMovimiento_Egreso201(t *testing.T) {
	f := newAPI(t, 0)
	tok := f.login(t)
	f.createProduct(t, tok, "REF-001", 10)

	resp, body := f.do(t, http.MethodPost, "/api/inventario/movimientos", tokenForRole(t, entity.RoleBodeguero), fiber.Map{
		"referencia": "ref-001", "tipo": "egreso", "cantidad": 4,
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 6, data["producto"].(map[string]any)["existencia"])
	assert.EqualValues(t, 20000, data["movimiento"].(map[string]any)["costoTotal"])
}

func TestRegistrarMovimiento_StockInsuficiente400(t *testing.T) {
	f := newAPI(t, 0)
	tok := f.login(t)
	f.createProduct(t, tok, "REF-002", 1)

	resp, body := f.do(t, http.MethodPost, "/api/inventario/movimientos", tok, fiber.Map{
		"referencia": "REF-002", "tipo": "egreso", "cantidad": 2,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
}

func TestRegistrarMovimiento_TecnicoProhibido403(t *testing.T) {
	f := newAPI(t, 0)
	resp, _ := f.do(t, http.MethodPost, "/api/inventario/movimientos", tokenForRole(t, entity.RoleTecnico), fiber.Map{
		"referencia": "REF-001", "tipo": "ingreso", "cantidad": 1,
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ── Mantenimientos y dashboard ───────────────────────────────────────────────

func TestMantenimiento_DescuentaUnidadYDashboard(t *testing.T) {
	f := newAPI(t, 0)
	tok := f.login(t)
	id := f.createProduct(t, tok, "REF-M1", 2)

	resp, body := f.do(t, http.MethodPost, "/api/mantenimientos", tokenForRole(t, entity.RoleTecnico), fiber.Map{
		"productoId": id, "tipo": "preventivo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, body["data"].(map[string]any)["sinStock"])

	resp, body = f.do(t, http.MethodGet, "/api/dashboard/resumen", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["unidadesEnStock"])
	assert.EqualValues(t, 1, data["mantenimientosActivos"])
}

func TestAuditoria_SoloAdmin(t *testing.T) {
	f := newAPI(t, 0)
	resp, _ := f.do(t, http.MethodGet, "/api/auditoria", tokenForRole(t, entity.RoleBodeguero), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := f.do(t, http.MethodGet, "/api/auditoria", f.login(t), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestAuditoria_ConservaIDeIPTrasPeticionesPosteriores(t *testing.T) {
	f := newAPIWith(t, apiOptions{manualRecorder: true})
	tok := f.login(t)
	productID := f.createProduct(t, tok, "REF-AUD", 10)

	var ids []string
	for i := 0; i < 3; i++ {
		resp, body := f.do(t, http.MethodPost, "/api/mantenimientos", tok, fiber.Map{"productoId": productID, "tipo": "preventivo"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, body["data"].(map[string]any)["mantenimiento"].(map[string]any)["id"].(string))
	}

	for _, id := range ids {
		resp, _ := f.doWithHeaders(t, http.MethodDelete, "/api/mantenimientos/"+id, tok, nil,
			map[string]string{fiber.HeaderXForwardedFor: "10.0.0.1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		// misma longitud de ruta y de IP: reutiliza los buffers de la petición anterior
		f.doWithHeaders(t, http.MethodGet, "/api/mantenimientos/ffffffff-ffff-ffff-ffff-ffffffffffff", tok, nil,
			map[string]string{fiber.HeaderXForwardedFor: "66.66.66.66"})
	}

	f.rec.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.rec.Stop(ctx))

	list, _, err := f.store.Audit().List(context.Background(), entity.AuditFilter{Accion: entity.AuditDelete, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, len(ids))
	got := make([]string, 0, len(list))
	for _, e := range list {
		require.NotNil(t, e.EntidadID)
		got = append(got, *e.EntidadID)
		assert.Equal(t, "10.0.0.1", e.IP)
	}
	assert.ElementsMatch(t, ids, got)
}

// ── Timeouts ──────────────────────────────────────────────────────────────────

// blockingProducts bloquea List hasta que venza el contexto.
type blockingProducts struct {
	*memory.ProductRepo
}

func (blockingProducts) List(ctx context.Context, _ entity.ProductFilter) ([]*entity.Product, int, error) {
	<-ctx.Done()
	return nil, 0, ctx.Err()
}

func shortListTimeout(t *testing.T, d time.Duration) {
	t.Helper()
	prev := apphttp.ListTimeout
	apphttp.ListTimeout = d
	t.Cleanup(func() { apphttp.ListTimeout = prev })
}

func TestListarProductos_TimeoutDevuelve503(t *testing.T) {
	shortListTimeout(t, 50*time.Millisecond)
	f := newAPIWith(t, apiOptions{productRepo: func(r *memory.ProductRepo) repository.ProductRepository {
		return blockingProducts{r}
	}})

	resp, body := f.do(t, http.MethodGet, "/api/productos", f.login(t), nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "TIMEOUT", body["code"])
}
