package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/estoquepro/estoque-api/internal/application/auth"
	"github.com/estoquepro/estoque-api/internal/application/ledger"
	"github.com/estoquepro/estoque-api/internal/application/reports"
	"github.com/estoquepro/estoque-api/internal/application/usecase"
	domauth "github.com/estoquepro/estoque-api/internal/domain/auth"
	"github.com/estoquepro/estoque-api/internal/infrastructure/notify"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	TransactionUC *usecase.TransactionUseCase
	LedgerUC      *ledger.UseCase
	ReportsUC     *reports.UseCase
	AlertHub      *notify.Hub
	JWTSecret     string
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

	// Alta de usuarios con rol explícito (solo MANAGE_USERS)
	protected.Post("/users", RequirePermission(domauth.PermissionManageUsers), authHandler.Register)

	// Products (protegido, escritura según permiso)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission(domauth.PermissionCreate), productHandler.Create)
	products.Get("/", RequirePermission(domauth.PermissionRead), productHandler.List)
	products.Get("/:id", RequirePermission(domauth.PermissionRead), productHandler.GetByID)
	products.Put("/:id", RequirePermission(domauth.PermissionUpdate), productHandler.Update)
	products.Delete("/:id", RequirePermission(domauth.PermissionDelete), productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", RequirePermission(domauth.PermissionCreate), categoryHandler.Create)
	categories.Get("/", RequirePermission(domauth.PermissionRead), categoryHandler.List)
	categories.Put("/:id", RequirePermission(domauth.PermissionUpdate), categoryHandler.Update)
	categories.Delete("/:id", RequirePermission(domauth.PermissionDelete), categoryHandler.Delete)

	// Transactions / ledger (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.LedgerUC, deps.TransactionUC)
	transactions.Post("/", RequirePermission(domauth.PermissionCreate), transactionHandler.Create)
	transactions.Get("/", RequirePermission(domauth.PermissionRead), transactionHandler.List)
	transactions.Get("/:id", RequirePermission(domauth.PermissionRead), transactionHandler.GetByID)

	// Reports (protegido, solo lectura)
	reportsGroup := protected.Group("/reports", RequirePermission(domauth.PermissionRead))
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/stock-alerts", reportHandler.StockAlerts)
	reportsGroup.Get("/turnover", reportHandler.Turnover)
	reportsGroup.Get("/turnover/:id", reportHandler.ProductTurnover)
	reportsGroup.Get("/stagnant", reportHandler.Stagnant)
	reportsGroup.Get("/movements", reportHandler.Movements)
	reportsGroup.Get("/top-products", reportHandler.TopProducts)

	// Financial (protegido, solo lectura)
	financial := protected.Group("/financial", RequirePermission(domauth.PermissionRead))
	financialHandler := NewFinancialHandler(deps.ReportsUC)
	financial.Get("/stats", financialHandler.Stats)
	financial.Get("/probability", financialHandler.Probability)

	// Dashboard (protegido, solo lectura)
	dashboardHandler := NewDashboardHandler(deps.ReportsUC)
	protected.Get("/dashboard", RequirePermission(domauth.PermissionRead), dashboardHandler.Stats)

	// Websocket de alertas de stock
	app.Use("/ws/alerts", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws/alerts", websocket.New(func(conn *websocket.Conn) {
		deps.AlertHub.Register <- conn
		defer func() { deps.AlertHub.Unregister <- conn }()
		for {
			// Mantiene viva la conexión; el cliente no envía datos útiles.
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
