package routes

import (
	"impulseguard/handlers"
	"impulseguard/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)
	auth.Get("/me", middleware.Authenticate, handlers.HandleGetMe)

	// --- Profile ---
	profile := api.Group("/profile", middleware.Authenticate)
	profile.Get("/", handlers.HandleGetProfile)
	profile.Put("/", handlers.HandleUpdateProfile)

	// --- Transactions ---
	transactions := api.Group("/transactions", middleware.Authenticate)
	transactions.Get("/", handlers.HandleListTransactions)
	transactions.Post("/", handlers.HandleCreateTransaction)
	transactions.Delete("/:transactionId", handlers.HandleDeleteTransaction)

	// --- Savings Goals ---
	savings := api.Group("/savings", middleware.Authenticate)
	savings.Get("/", handlers.HandleListSavingsGoals)
	savings.Post("/", handlers.HandleCreateSavingsGoal)
	savings.Put("/:goalId", handlers.HandleUpdateSavingsGoal)
	savings.Post("/:goalId/credit", handlers.HandleCreditSavingsGoal)

	// --- Purchase Analysis ---
	analysisGroup := api.Group("/analysis", middleware.Authenticate)
	analysisGroup.Post("/analyze", handlers.HandleAnalyze)
	analysisGroup.Post("/page", handlers.HandleAnalyzePage)
	analysisGroup.Post("/detect", handlers.HandleDetect)

	// --- Insights ---
	api.Post("/insights", middleware.Authenticate, handlers.HandleInsights)

	// --- Billing Webhooks (signature-verified, no JWT) ---
	api.Post("/webhooks/stripe", handlers.HandleStripeWebhook)
}
