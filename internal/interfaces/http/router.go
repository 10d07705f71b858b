package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trastienda-api/internal/application/auth"
	"github.com/jhoicas/Trastienda-api/internal/application/batch"
	"github.com/jhoicas/Trastienda-api/internal/application/cashflow"
	"github.com/jhoicas/Trastienda-api/internal/application/classification"
	"github.com/jhoicas/Trastienda-api/internal/application/monitor"
	"github.com/jhoicas/Trastienda-api/internal/application/report"
	"github.com/jhoicas/Trastienda-api/internal/application/stock"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	RecordCash     *cashflow.RecordMovementUseCase
	CashBalance    *cashflow.BalanceUseCase
	DrawerUC       *cashflow.DrawerUseCase
	RecordStock    *stock.RecordMovementUseCase
	StockLevel     *stock.LevelUseCase
	ItemUC         *stock.ItemUseCase
	RegistryUC     *classification.RegistryUseCase
	MonitorUC      *monitor.UseCase
	DailyCloseUC   *report.DailyCloseUseCase
	BatchTxRunner  batch.TxRunner
	ItemRepository repository.ItemRepository
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Caja: cajones, movimientos y saldos (protegido)
	cashGroup := protected.Group("/cash")
	cashHandler := NewCashflowHandler(deps.RecordCash, deps.CashBalance, deps.DrawerUC)
	cashGroup.Post("/movements", cashHandler.RecordMovement)
	cashGroup.Post("/drawers", cashHandler.CreateDrawer)
	cashGroup.Get("/drawers", cashHandler.ListDrawers)
	cashGroup.Get("/drawers/:id/balance", cashHandler.GetBalance)

	// Stock: ítems, movimientos y niveles (protegido)
	stockHandler := NewStockHandler(deps.RecordStock, deps.StockLevel, deps.ItemUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/movements", stockHandler.RecordMovement)

	items := protected.Group("/items")
	items.Post("/", stockHandler.CreateItem)
	items.Get("/", stockHandler.ListItems)
	items.Get("/:id", stockHandler.GetItem)
	items.Get("/:id/level", stockHandler.GetItemLevel)
	items.Get("/:id/balance", stockHandler.GetItemBalance)

	// Lote de reposición (protegido; solo admin y bodeguero)
	batchHandler := NewBatchHandler(deps.BatchTxRunner, deps.ItemRepository)
	stockGroup.Post("/batch", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), batchHandler.Commit)

	// Clasificaciones (protegido; las mutaciones destructivas solo admin)
	classGroup := protected.Group("/classifications")
	classHandler := NewClassificationHandler(deps.RegistryUC)
	classGroup.Post("/", classHandler.Create)
	classGroup.Get("/", classHandler.List)
	classGroup.Put("/:id", classHandler.Rename)
	classGroup.Get("/:id/usage", classHandler.Usage)
	classGroup.Delete("/:id", RequireRole(entity.RoleAdmin), classHandler.Delete)
	classGroup.Post("/:id/transfer", RequireRole(entity.RoleAdmin), classHandler.Transfer)

	// Monitor (protegido)
	monitorGroup := protected.Group("/monitor")
	monitorHandler := NewMonitorHandler(deps.MonitorUC)
	monitorGroup.Get("/low-stock", monitorHandler.LowStock)
	monitorGroup.Get("/most-stocked", monitorHandler.MostStocked)
	monitorGroup.Get("/cash-risk/:id", monitorHandler.CashRisk)

	// Reportes (protegido)
	reportGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.DailyCloseUC)
	reportGroup.Get("/daily-close", reportHandler.DailyClose)
}
