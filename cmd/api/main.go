// @title           Romero Panificados – Inventario y Mantenimiento API
// @version         1.0
// @description     Inventario de repuestos, libro de movimientos, mantenimientos de equipos, historial y auditoría.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/romero-panificados/inventario-api/docs"
	appanalytics "github.com/romero-panificados/inventario-api/internal/application/analytics"
	"github.com/romero-panificados/inventario-api/internal/application/audit"
	"github.com/romero-panificados/inventario-api/internal/application/auth"
	"github.com/romero-panificados/inventario-api/internal/application/authz"
	"github.com/romero-panificados/inventario-api/internal/application/history"
	"github.com/romero-panificados/inventario-api/internal/application/inventory"
	"github.com/romero-panificados/inventario-api/internal/application/maintenance"
	"github.com/romero-panificados/inventario-api/internal/application/notification"
	"github.com/romero-panificados/inventario-api/internal/application/report"
	"github.com/romero-panificados/inventario-api/internal/application/usecase"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/cache"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/mail"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
	infrapdf "github.com/romero-panificados/inventario-api/internal/infrastructure/pdf"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/romero-panificados/inventario-api/internal/interfaces/http"
	"github.com/romero-panificados/inventario-api/pkg/config"
	"github.com/romero-panificados/inventario-api/pkg/logger"
	"github.com/romero-panificados/inventario-api/pkg/metrics"
)

// repos agrupa los repositorios del driver elegido.
type repos struct {
	products     repository.ProductRepository
	movements    repository.MovementRepository
	maintenances repository.MaintenanceRepository
	history      repository.ProductHistoryRepository
	audit        repository.AuditRepository
	users        repository.UserRepository
	tx           repository.TxRunner
	close        func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repos{
			products:     s.Products(),
			movements:    s.Movements(),
			maintenances: s.Maintenances(),
			history:      s.History(),
			audit:        s.Audit(),
			users:        s.Users(),
			tx:           s,
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &repos{
		products:     postgres.NewProductRepository(pool),
		movements:    postgres.NewMovementRepository(pool),
		maintenances: postgres.NewMaintenanceRepository(pool),
		history:      postgres.NewProductHistoryRepository(pool),
		audit:        postgres.NewAuditRepository(pool),
		users:        postgres.NewUserRepository(pool),
		tx:           postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	productCache, err := cache.NewProductCache(ctx, cfg.Redis, 5*time.Minute)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, se continúa sin cache")
		productCache = cache.Nop{}
	}
	if c, ok := productCache.(io.Closer); ok {
		defer c.Close()
	}

	m := metrics.New(metrics.Config{ServiceName: cfg.App.Name, Environment: cfg.App.Env})
	mailer := mail.NewMailer(cfg.SMTP, log)

	recorder := audit.NewRecorder(store.audit, audit.Config{
		QueueSize:    cfg.Audit.QueueSize,
		WriteTimeout: cfg.Audit.WriteTimeout,
	}, log, m)
	recorder.Start()

	notifier := notification.NewAdminNotifier(store.users, mailer, log, m, 15*time.Second)

	hist := history.NewService(store.products, store.history)
	productUC := usecase.NewProductUseCase(store.products, store.movements, store.maintenances, store.tx, hist, productCache)
	registerMovementUC := inventory.NewRegisterMovementUseCase(store.tx, store.products, store.movements, productCache, notifier, m, log)
	maintenanceUC := maintenance.NewUseCase(store.maintenances, store.tx, productCache)
	reportUC := report.NewUseCase(store.products, store.movements, infrapdf.NewMarotoPDFGenerator())
	dashboardUC := appanalytics.NewDashboardUseCase(store.products, store.maintenances, store.movements)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar capacidades por rol")
	}

	alertJob := maintenance.NewDueAlertJob(maintenance.DueAlertConfig{
		Recipient: cfg.Alerts.Recipient,
		Hour:      cfg.Alerts.Hour,
		Location:  cfg.Alerts.Location(),
	}, store.maintenances, mailer, maintenance.SystemClock{}, log, m)
	alertJob.Start(ctx)

	app := httpRouter.NewApp(cfg.App.Name, log)
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Romero Panificados – Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(store.users),
		ProductUC:        productUC,
		History:          hist,
		RegisterMovement: registerMovementUC,
		MaintenanceUC:    maintenanceUC,
		AuditQuery:       audit.NewQueryUseCase(store.audit),
		ReportUC:         reportUC,
		DashboardUC:      dashboardUC,
		Enforcer:         enforcer,
		Audit:            recorder,
		Metrics:          m,
		JWTSecret:        cfg.JWT.Secret,
		LoginMax:         cfg.HTTP.LoginMax,
		LoginWindow:      cfg.HTTP.LoginWindow,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	alertJob.Stop()
	notifier.Wait()
	if err := recorder.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciar cola de auditoría")
	}

	log.Info().Msg("aplicación detenida")
}
