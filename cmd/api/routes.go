package main

import (
	"net/http"

	httphandlers "centime/internal/interfaces/http"
	"centime/internal/shared/config"
	"centime/internal/shared/middleware"
	"centime/internal/shared/telemetry"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check and API banner
	mux.HandleFunc("/health", httphandlers.HandleHealth)
	mux.HandleFunc("GET /api/", httphandlers.HandleRoot)
	mux.Handle("/metrics", telemetry.MetricsHandler())

	// Public auth routes
	mux.HandleFunc("POST /api/auth/session", deps.AuthHandler.HandleSession)
	mux.HandleFunc("POST /api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", deps.AuthHandler.HandleLogout)
	mux.HandleFunc("GET /api/auth/debug", deps.AuthHandler.HandleDebug)

	// Public reference data
	mux.HandleFunc("GET /api/currency/rates", deps.AccountHandler.HandleCurrencyRates)

	// Protected routes
	authMiddleware := middleware.Auth(deps.SessionService)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authMiddleware(h))
	}

	protected("GET /api/auth/me", deps.AuthHandler.HandleMe)

	protected("/api/accounts", deps.AccountHandler.HandleAccounts)
	protected("POST /api/accounts/transfer", deps.AccountHandler.HandleTransfer)
	protected("/api/accounts/{id}", deps.AccountHandler.HandleAccountByID)

	protected("/api/transactions", deps.TransactionHandler.HandleTransactions)
	protected("/api/transactions/{id}", deps.TransactionHandler.HandleTransactionByID)

	protected("/api/investments", deps.InvestmentHandler.HandleInvestments)
	protected("/api/investments/{id}", deps.InvestmentHandler.HandleInvestmentByID)
	protected("POST /api/investments/{id}/operations", deps.InvestmentHandler.HandleOperations)
	protected("/api/investments/{id}/operations/{index}", deps.InvestmentHandler.HandleOperationByIndex)

	protected("/api/goals", deps.GoalHandler.HandleGoals)
	protected("/api/goals/{id}", deps.GoalHandler.HandleGoalByID)

	protected("/api/debts", deps.DebtHandler.HandleDebts)
	protected("/api/debts/{id}", deps.DebtHandler.HandleDebtByID)
	protected("POST /api/debts/{id}/payments", deps.DebtHandler.HandlePayments)
	protected("/api/debts/{id}/payments/{index}", deps.DebtHandler.HandlePaymentByIndex)

	protected("/api/receivables", deps.ReceivableHandler.HandleReceivables)
	protected("/api/receivables/{id}", deps.ReceivableHandler.HandleReceivableByID)
	protected("POST /api/receivables/{id}/payments", deps.ReceivableHandler.HandlePayments)
	protected("/api/receivables/{id}/payments/{index}", deps.ReceivableHandler.HandlePaymentByIndex)

	protected("/api/categories", deps.CategoryHandler.HandleCategories)
	protected("/api/categories/{id}", deps.CategoryHandler.HandleCategoryByID)

	protected("/api/payees", deps.PayeeHandler.HandlePayees)
	protected("/api/payees/{id}", deps.PayeeHandler.HandlePayeeByID)

	protected("/api/products", deps.ProductHandler.HandleProducts)
	protected("/api/products/{id}", deps.ProductHandler.HandleProductByID)
	protected("POST /api/products/{id}/purchase", deps.ProductHandler.HandlePurchase)

	protected("/api/shopping-lists", deps.ShoppingListHandler.HandleLists)
	protected("/api/shopping-lists/{id}", deps.ShoppingListHandler.HandleListByID)
	protected("POST /api/shopping-lists/{id}/items", deps.ShoppingListHandler.HandleAddItem)
	protected("DELETE /api/shopping-lists/{id}/items/{product_id}", deps.ShoppingListHandler.HandleRemoveItem)
	protected("GET /api/shopping-lists/{id}/download", deps.ShoppingListHandler.HandleDownload)

	protected("/api/tasks", deps.TaskHandler.HandleTasks)
	protected("/api/tasks/{id}", deps.TaskHandler.HandleTaskByID)
	protected("PATCH /api/tasks/{id}/complete", deps.TaskHandler.HandleComplete)
	protected("PATCH /api/tasks/{id}/move", deps.TaskHandler.HandleMove)

	protected("/api/preferences", deps.PreferencesHandler.HandlePreferences)

	protected("/api/bank-connections", deps.BankConnectionHandler.HandleConnections)
	protected("/api/bank-connections/{id}", deps.BankConnectionHandler.HandleConnectionByID)
	protected("POST /api/bank-connections/{id}/sync", deps.BankConnectionHandler.HandleSync)
	protected("POST /api/bank-connections/{id}/import-csv", deps.BankConnectionHandler.HandleImportCSV)

	protected("GET /api/dashboard/summary", deps.DashboardHandler.HandleSummary)
	protected("GET /api/search", deps.SearchHandler.HandleSearch)

	protected("GET /api/export/all", deps.PortabilityHandler.HandleExport)
	protected("POST /api/import/all", deps.PortabilityHandler.HandleImport)
	protected("DELETE /api/user/data/all", deps.PortabilityHandler.HandleWipe)

	// Global middleware, innermost first
	var handler http.Handler = mux
	handler = middleware.Tracing(handler)
	handler = middleware.Logging(handler)
	handler = middleware.CORS(cfg.Server.AllowedOrigins)(handler)
	handler = middleware.Recover(handler)

	return handler
}
