package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-warehouse/internal/application/analytics"
	"github.com/jhoicas/hotel-warehouse/internal/application/auth"
	"github.com/jhoicas/hotel-warehouse/internal/application/export"
	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
	"github.com/jhoicas/hotel-warehouse/internal/application/mirror"
	"github.com/jhoicas/hotel-warehouse/internal/application/usecase"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// RouterDeps router dependencies.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	SettingsUC    *usecase.SettingsUseCase
	ItemUC        *usecase.ItemUseCase
	HistoryUC     *usecase.HistoryUseCase
	Movement      *inventory.MovementUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Receipts      *inventory.ReceiptUseCase
	DashboardUC   *analytics.DashboardUseCase
	ExportUC      *export.ExportUseCase
	Mirror        *mirror.Mirror
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Public: profile selector and session start
	authHandler := NewAuthHandler(deps.AuthUC, deps.SettingsUC)
	api.Get("/users", authHandler.ListProfiles)
	api.Post("/auth/session", authHandler.StartSession)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managerOnly := RequireRole(entity.RoleManager)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", managerOnly, itemHandler.Update)
	items.Delete("/:id", managerOnly, itemHandler.Delete)
	items.Post("/:id/prune", itemHandler.Prune)

	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Movement, deps.Replenishment)
	inv.Post("/receive", inventoryHandler.Receive)
	inv.Post("/issue", inventoryHandler.Issue)
	inv.Post("/transfer", inventoryHandler.Transfer)
	inv.Get("/replenishment", inventoryHandler.GetReplenishmentList)

	txHandler := NewTransactionHandler(deps.HistoryUC)
	protected.Get("/transactions", txHandler.List)

	receiptHandler := NewReceiptHandler(deps.Receipts)
	protected.Get("/receipts/:id", receiptHandler.Download)
	protected.Get("/receipts/:id/details", receiptHandler.Details)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	exports := protected.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/inventory.csv", exportHandler.InventoryCSV)
	exports.Get("/releases.csv", exportHandler.ReleasesCSV)
	exports.Get("/backup.json", exportHandler.Backup)

	// Settings: everyone reads, managers edit. Profile routes come before /:set.
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Get("/users", managerOnly, settingsHandler.ListUsers)
	settings.Post("/users", managerOnly, settingsHandler.CreateUser)
	settings.Delete("/users/:id", managerOnly, settingsHandler.DeleteUser)
	settings.Put("/passcode", managerOnly, settingsHandler.ChangePasscode)
	settings.Post("/:set", managerOnly, settingsHandler.AddEntry)
	settings.Delete("/:set/:name", managerOnly, settingsHandler.RemoveEntry)

	sync := protected.Group("/sync")
	syncHandler := NewSyncHandler(deps.Mirror)
	sync.Get("/status", syncHandler.Status)
	sync.Post("/push", managerOnly, syncHandler.Push)
	sync.Post("/pull", managerOnly, syncHandler.Pull)
}
