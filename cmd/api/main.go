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

	"github.com/jhoicas/Inventario-ledger/internal/application/audit"
	"github.com/jhoicas/Inventario-ledger/internal/application/auth"
	"github.com/jhoicas/Inventario-ledger/internal/application/catalog"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	infrapdf "github.com/jhoicas/Inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/redisaudit"
	httpRouter "github.com/jhoicas/Inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	batchRepo := postgres.NewInventoryBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sink de auditoría: Redis Streams si hay REDIS_ADDR, si no descarta.
	var sink audit.Sink = audit.NopSink{}
	if cfg.Redis.Addr != "" {
		redisSink, err := redisaudit.New(cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis (auditoría)")
		}
		defer redisSink.Close()
		sink = redisSink
		log.Info().Str("addr", cfg.Redis.Addr).Msg("auditoría habilitada en Redis Streams")
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: auditoría deshabilitada")
	}

	movementUC := inventory.NewMovementUseCase(txRunner, productRepo, warehouseRepo, batchRepo, movementRepo, sink)
	reportUC := inventory.NewReportUseCase(productRepo, warehouseRepo, movementRepo, infrapdf.NewMarotoReportGenerator())
	catalogUC := catalog.NewUseCase(productRepo, warehouseRepo, sink)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		MovementUC: movementUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
