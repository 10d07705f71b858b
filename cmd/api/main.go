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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/application/auth"
	"github.com/jhoicas/Trastienda-api/internal/application/cashflow"
	"github.com/jhoicas/Trastienda-api/internal/application/classification"
	"github.com/jhoicas/Trastienda-api/internal/application/monitor"
	"github.com/jhoicas/Trastienda-api/internal/application/report"
	"github.com/jhoicas/Trastienda-api/internal/application/stock"
	infrapdf "github.com/jhoicas/Trastienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Trastienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Trastienda-api/internal/interfaces/http"
	"github.com/jhoicas/Trastienda-api/pkg/config"
	"github.com/jhoicas/Trastienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	drawerRepo := postgres.NewDrawerRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	classRepo := postgres.NewClassificationRepository(pool)
	cashRepo := postgres.NewCashMovementRepository(pool)
	stockRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	globalLowStock, err := decimal.NewFromString(cfg.Ledger.GlobalLowStockThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("LEDGER_LOW_STOCK_THRESHOLD inválido")
	}
	cashCeiling, err := decimal.NewFromString(cfg.Ledger.CashRiskCeiling)
	if err != nil {
		log.Fatal().Err(err).Msg("LEDGER_CASH_RISK_CEILING inválido")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	recordCashUC := cashflow.NewRecordMovementUseCase(cashRepo, drawerRepo, classRepo)
	cashBalanceUC := cashflow.NewBalanceUseCase(cashRepo, drawerRepo)
	drawerUC := cashflow.NewDrawerUseCase(drawerRepo)
	recordStockUC := stock.NewRecordMovementUseCase(stockRepo, itemRepo)
	stockLevelUC := stock.NewLevelUseCase(stockRepo, itemRepo, globalLowStock)
	itemUC := stock.NewItemUseCase(itemRepo)
	registryUC := classification.NewRegistryUseCase(txRunner, classRepo, cashRepo)
	monitorUC := monitor.NewUseCase(stockRepo, cashRepo, drawerRepo, monitor.Thresholds{
		GlobalLowStock:  globalLowStock,
		CashRiskCeiling: cashCeiling,
	})

	// PDF: cierre diario de caja
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	dailyCloseUC := report.NewDailyCloseUseCase(cashRepo, drawerRepo, pdfGenerator)

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
		Title:    "Trastienda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		RecordCash:     recordCashUC,
		CashBalance:    cashBalanceUC,
		DrawerUC:       drawerUC,
		RecordStock:    recordStockUC,
		StockLevel:     stockLevelUC,
		ItemUC:         itemUC,
		RegistryUC:     registryUC,
		MonitorUC:      monitorUC,
		DailyCloseUC:   dailyCloseUC,
		BatchTxRunner:  txRunner,
		ItemRepository: itemRepo,
		JWTSecret:      cfg.JWT.Secret,
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
