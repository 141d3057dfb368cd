package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/stok-api/docs"
	"github.com/jhoicas/stok-api/internal/application/inventory"
	infrapdf "github.com/jhoicas/stok-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stok-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stok-api/internal/interfaces/http"
	"github.com/jhoicas/stok-api/pkg/config"
	"github.com/jhoicas/stok-api/pkg/logger"
)

// @title                       Stok API
// @version                     1.0
// @description                 Ledger de stock por variante y ubicación.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("app", cfg.App.Name).
		Bool("allow_negative", cfg.Stock.AllowNegative).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	zl := log.Zerolog()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, zl); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	txRunner := postgres.NewTxRunner(pool, cfg.Stock.TxTimeout())
	resolver := inventory.NewVariantResolver(txRunner, zl)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, resolver, inventory.LedgerConfig{
		AllowNegativeStock: cfg.Stock.AllowNegative,
		DefaultUnit:        cfg.Stock.DefaultUnit,
		DefaultCurrency:    cfg.Stock.DefaultCurrency,
	}, zl)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // planillas de import
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stok API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerUC,
		Balances:  inventory.NewBalanceUseCase(txRunner, zl),
		Cards:     inventory.NewStockCardUseCase(txRunner, cfg.Stock.CardMaxLimit, zl),
		Resolver:  resolver,
		Imports:   inventory.NewImportUseCase(txRunner, resolver, ledgerUC, zl),
		Opname:    inventory.NewOpnameUseCase(txRunner, ledgerUC, zl),
		Locations: inventory.NewLocationUseCase(txRunner),
		CardPDF:   infrapdf.NewStockCardPDF(),
		Currency:  cfg.Stock.DefaultCurrency,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
		Log:       zl,
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

	log.Info().Msg("aplicación detenida")
}
