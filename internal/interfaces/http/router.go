package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	appanalytics "github.com/romero-panificados/inventario-api/internal/application/analytics"
	"github.com/romero-panificados/inventario-api/internal/application/audit"
	"github.com/romero-panificados/inventario-api/internal/application/auth"
	"github.com/romero-panificados/inventario-api/internal/application/authz"
	"github.com/romero-panificados/inventario-api/internal/application/history"
	"github.com/romero-panificados/inventario-api/internal/application/inventory"
	"github.com/romero-panificados/inventario-api/internal/application/maintenance"
	"github.com/romero-panificados/inventario-api/internal/application/report"
	"github.com/romero-panificados/inventario-api/internal/application/usecase"
	"github.com/romero-panificados/inventario-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	History          *history.Service
	RegisterMovement *inventory.RegisterMovementUseCase
	MaintenanceUC    *maintenance.UseCase
	AuditQuery       *audit.QueryUseCase
	ReportUC         *report.UseCase
	DashboardUC      *appanalytics.DashboardUseCase
	Enforcer         *authz.Enforcer
	Audit            *audit.Recorder
	Metrics          *metrics.Metrics
	JWTSecret        string

	// Límite de intentos de login por IP; 0 usa 10 por minuto.
	LoginMax    int
	LoginWindow time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Recorder nil se trata como "sin auditoría" (tests).
	var rec auditRecorder
	if deps.Audit != nil {
		rec = deps.Audit
	}

	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, rec)
	api.Post("/auth/login", loginLimiter(deps.LoginMax, deps.LoginWindow), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	can := func(resource, action string) fiber.Handler {
		return RequirePermission(deps.Enforcer, resource, action)
	}

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/usuarios", can(authz.ResourceUsers, authz.ActionCreate), authHandler.CreateUser)

	// Productos
	productHandler := NewProductHandler(deps.ProductUC, deps.History, rec)
	products := protected.Group("/productos")
	products.Post("/", can(authz.ResourceProducts, authz.ActionCreate), productHandler.Create)
	products.Get("/", can(authz.ResourceProducts, authz.ActionRead), productHandler.List)
	products.Get("/referencia/:referencia", can(authz.ResourceProducts, authz.ActionRead), productHandler.GetByReferencia)
	products.Get("/:id", can(authz.ResourceProducts, authz.ActionRead), productHandler.GetByID)
	products.Put("/:id", can(authz.ResourceProducts, authz.ActionUpdate), productHandler.Update)
	products.Delete("/:id", can(authz.ResourceProducts, authz.ActionDelete), productHandler.Delete)

	// Historial de versiones
	protected.Get("/historial/productos/:id", can(authz.ResourceHistory, authz.ActionRead), productHandler.History)

	// Libro de movimientos
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, rec)
	inv := protected.Group("/inventario")
	inv.Post("/movimientos", can(authz.ResourceMovements, authz.ActionCreate), inventoryHandler.RegisterMovement)
	inv.Get("/movimientos", can(authz.ResourceMovements, authz.ActionRead), inventoryHandler.ListMovements)

	// Mantenimientos
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC, rec)
	mant := protected.Group("/mantenimientos")
	mant.Post("/", can(authz.ResourceMaintenance, authz.ActionCreate), maintenanceHandler.Create)
	mant.Get("/", can(authz.ResourceMaintenance, authz.ActionRead), maintenanceHandler.List)
	mant.Get("/:id", can(authz.ResourceMaintenance, authz.ActionRead), maintenanceHandler.GetByID)
	mant.Put("/:id", can(authz.ResourceMaintenance, authz.ActionUpdate), maintenanceHandler.Update)
	mant.Delete("/:id", can(authz.ResourceMaintenance, authz.ActionDelete), maintenanceHandler.Delete)

	// Auditoría
	auditHandler := NewAuditHandler(deps.AuditQuery)
	protected.Get("/auditoria", can(authz.ResourceAudit, authz.ActionRead), auditHandler.List)

	// Reportes PDF
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reportes/inventario.pdf", can(authz.ResourceReports, authz.ActionRead), reportHandler.Inventory)
	protected.Get("/reportes/movimientos.pdf", can(authz.ResourceReports, authz.ActionRead), reportHandler.Movements)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/resumen", can(authz.ResourceDashboard, authz.ActionRead), dashboardHandler.GetSummary)
}

// loginLimiter limita los intentos de login por IP del cliente.
func loginLimiter(maxAttempts int, window time.Duration) fiber.Handler {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:          maxAttempts,
		Expiration:   window,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return errorJSON(c, fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS",
				"demasiados intentos de inicio de sesión, intente más tarde")
		},
	})
}
