package dashboard

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// TrendPoint is one 30-day window of the income/expense trend.
type TrendPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// Summary is the dashboard headline view over a user's whole dataset.
type Summary struct {
	NetWorth               float64         `json:"net_worth"`
	TotalBalance           float64         `json:"total_balance"`
	TotalInvestments       float64         `json:"total_investments"`
	TotalInvested          float64         `json:"total_invested"`
	InvestmentGains        float64         `json:"investment_gains"`
	InvestmentGainsPercent float64         `json:"investment_gains_percent"`
	TotalDebts             float64         `json:"total_debts"`
	MonthlyIncome          float64         `json:"monthly_income"`
	MonthlyExpenses        float64         `json:"monthly_expenses"`
	SavingsRate            float64         `json:"savings_rate"`
	AccountsCount          int             `json:"accounts_count"`
	GoalsCount             int             `json:"goals_count"`
	ActiveInvestments      int             `json:"active_investments"`
	TopCategories          []CategoryTotal `json:"top_categories"`
	Trends                 []TrendPoint    `json:"trends"`
}
