package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	shop "github.com/garageworks/shop-manager"
	"github.com/garageworks/shop-manager/config"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config *config.AppConfig
	bunDB  *bun.DB
	auth   shop.Authenticator
	repo   shop.RepositoryManager
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) Config() *config.AppConfig {
	return a.config
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("shop"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := config.New()
	if err != nil {
		lgr.GetLogger("config").Error("configuration error", "error", err)
		os.Exit(1)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		lgr.GetLogger("persistence").Error("persistence error", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		lgr.GetLogger("server").Error("server error", "error", err)
		os.Exit(1)
	}

	Routes(app)

	app.srv.Serve(app.config.GetServer().GetAddr())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.config.GetPersistence().GetDSN())
	if err != nil {
		return err
	}

	persistence.RegisterModel((*shop.Credential)(nil))
	persistence.RegisterModel((*shop.User)(nil))
	persistence.RegisterModel((*shop.Customer)(nil))
	persistence.RegisterModel((*shop.Vehicle)(nil))
	persistence.RegisterModel((*shop.InventoryItem)(nil))
	persistence.RegisterModel((*shop.WorkOrder)(nil))
	persistence.RegisterModel((*shop.WorkOrderItem)(nil))
	persistence.RegisterModel((*shop.Appointment)(nil))
	persistence.RegisterModel((*shop.Invoice)(nil))

	cfg := app.config.GetPersistence()
	client, err := persistence.New(cfg, db, sqlitedialect.New())
	if err != nil {
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(shop.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	// seeding truncates the fixture tables, opt in for dev databases
	if cfg.GetSeed() {
		client.RegisterFixtures(shop.GetFixturesFS()).
			AddOptions(persistence.WithTrucateTables())

		if err := client.Seed(ctx); err != nil {
			return err
		}
	}

	if report := client.Report(); report != nil && !report.IsZero() {
		fmt.Printf("report: %s\n", report.String())
	}

	app.bunDB = client.DB()
	app.repo = shop.NewRepositoryManager(client.DB())

	return app.repo.Validate()
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
			AppName:       "shop-manager",
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	provider := shop.NewUserProvider(app.repo).
		WithLogger(app.GetLogger("shop.user_provider"))

	app.auth = shop.NewAuthenticator(provider, app.config.GetAuth()).
		WithLogger(app.GetLogger("shop.auth")).
		WithActivitySink(shop.LoggerActivitySink(app.GetLogger("shop.activity")))

	app.srv = srv

	return nil
}

func Routes(app *App) {
	p := app.srv.Router()

	authCfg := app.config.GetAuth()
	logger := app.GetLogger("shop.http")

	protected := shop.ProtectedRoute(app.auth, authCfg, logger)
	adminOnly := shop.ProtectedRoute(app.auth, authCfg, logger, shop.RequireAdmin())

	api := p.Group("/api")

	shop.RegisterAuthRoutes(api, protected,
		shop.WithAuthRepo(app.repo),
		shop.WithAuther(app.auth),
		shop.WithAuthLogger(app.GetLogger("shop.auth_controller")),
	)

	shop.RegisterCustomerRoutes(api, protected, app.repo, logger)
	shop.RegisterVehicleRoutes(api, protected, app.repo, logger)
	shop.RegisterWorkOrderRoutes(api, protected, app.repo, logger)
	shop.RegisterInventoryRoutes(api, protected, app.repo, logger)
	shop.RegisterAppointmentRoutes(api, protected, app.repo, logger)
	shop.RegisterInvoiceRoutes(api, protected, app.repo, logger)
	shop.RegisterUserRoutes(api, adminOnly, app.repo, logger)
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
