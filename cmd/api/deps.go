package main

import (
	"context"
	"log"

	"centime/internal/domain/account"
	"centime/internal/domain/dashboard"
	"centime/internal/domain/debt"
	"centime/internal/domain/investment"
	"centime/internal/domain/receivable"
	"centime/internal/domain/recurring"
	"centime/internal/domain/search"
	"centime/internal/domain/session"
	"centime/internal/infrastructure/authprovider"
	"centime/internal/infrastructure/postgres"
	httphandlers "centime/internal/interfaces/http"
	"centime/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler           *httphandlers.AuthHandler
	AccountHandler        *httphandlers.AccountHandler
	TransactionHandler    *httphandlers.TransactionHandler
	InvestmentHandler     *httphandlers.InvestmentHandler
	GoalHandler           *httphandlers.GoalHandler
	DebtHandler           *httphandlers.DebtHandler
	ReceivableHandler     *httphandlers.ReceivableHandler
	CategoryHandler       *httphandlers.CategoryHandler
	PayeeHandler          *httphandlers.PayeeHandler
	ProductHandler        *httphandlers.ProductHandler
	ShoppingListHandler   *httphandlers.ShoppingListHandler
	TaskHandler           *httphandlers.TaskHandler
	PreferencesHandler    *httphandlers.PreferencesHandler
	BankConnectionHandler *httphandlers.BankConnectionHandler
	DashboardHandler      *httphandlers.DashboardHandler
	SearchHandler         *httphandlers.SearchHandler
	PortabilityHandler    *httphandlers.PortabilityHandler

	// Auth
	SessionService *session.Service

	// Recurring materialization (for the scheduler)
	RecurringService *recurring.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := postgres.Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	investmentRepo := postgres.NewInvestmentRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	debtRepo := postgres.NewDebtRepository(db)
	receivableRepo := postgres.NewReceivableRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	payeeRepo := postgres.NewPayeeRepository(db)
	productRepo := postgres.NewProductRepository(db)
	shoppingListRepo := postgres.NewShoppingListRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	preferencesRepo := postgres.NewPreferencesRepository(db)
	bankConnectionRepo := postgres.NewBankConnectionRepository(db)
	portabilityRepo := postgres.NewPortabilityRepository(db)

	// Domain services
	sessionService := session.NewService(authprovider.NewClient(cfg.AuthProvider), sessionRepo, userRepo)
	accountService := account.NewService(accountRepo)
	investmentService := investment.NewService(investmentRepo)
	debtService := debt.NewService(debtRepo)
	receivableService := receivable.NewService(receivableRepo)
	recurringService := recurring.NewService(transactionRepo)
	dashboardService := dashboard.NewService(accountRepo, transactionRepo, investmentRepo, goalRepo, debtRepo)
	searchService := search.NewService(search.Sources{
		Transactions: transactionRepo,
		Investments:  investmentRepo,
		Accounts:     accountRepo,
		Goals:        goalRepo,
		Products:     productRepo,
		Categories:   categoryRepo,
	})

	return &Dependencies{
		DB:                    db,
		AuthHandler:           httphandlers.NewAuthHandler(sessionService, userRepo),
		AccountHandler:        httphandlers.NewAccountHandler(accountService),
		TransactionHandler:    httphandlers.NewTransactionHandler(transactionRepo),
		InvestmentHandler:     httphandlers.NewInvestmentHandler(investmentService),
		GoalHandler:           httphandlers.NewGoalHandler(goalRepo),
		DebtHandler:           httphandlers.NewDebtHandler(debtService),
		ReceivableHandler:     httphandlers.NewReceivableHandler(receivableService),
		CategoryHandler:       httphandlers.NewCategoryHandler(categoryRepo),
		PayeeHandler:          httphandlers.NewPayeeHandler(payeeRepo),
		ProductHandler:        httphandlers.NewProductHandler(productRepo),
		ShoppingListHandler:   httphandlers.NewShoppingListHandler(shoppingListRepo),
		TaskHandler:           httphandlers.NewTaskHandler(taskRepo),
		PreferencesHandler:    httphandlers.NewPreferencesHandler(preferencesRepo),
		BankConnectionHandler: httphandlers.NewBankConnectionHandler(bankConnectionRepo, transactionRepo),
		DashboardHandler:      httphandlers.NewDashboardHandler(dashboardService),
		SearchHandler:         httphandlers.NewSearchHandler(searchService),
		PortabilityHandler:    httphandlers.NewPortabilityHandler(portabilityRepo),
		SessionService:        sessionService,
		RecurringService:      recurringService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
