package dashboard

import "time"

// Config holds the simulated latency of each data source.
type Config struct {
	CardsDelay          time.Duration `env:"DASHBOARD_CARDS_DELAY" envDefault:"800ms"`
	TransactionsDelay   time.Duration `env:"DASHBOARD_TRANSACTIONS_DELAY" envDefault:"1200ms"`
	WeeklyActivityDelay time.Duration `env:"DASHBOARD_WEEKLY_ACTIVITY_DELAY" envDefault:"900ms"`
	ExpenseStatsDelay   time.Duration `env:"DASHBOARD_EXPENSE_STATS_DELAY" envDefault:"1000ms"`
	QuickTransferDelay  time.Duration `env:"DASHBOARD_QUICK_TRANSFER_DELAY" envDefault:"700ms"`
	BalanceHistoryDelay time.Duration `env:"DASHBOARD_BALANCE_HISTORY_DELAY" envDefault:"1100ms"`
}

func DefaultConfig() Config {
	return Config{
		CardsDelay:          800 * time.Millisecond,
		TransactionsDelay:   1200 * time.Millisecond,
		WeeklyActivityDelay: 900 * time.Millisecond,
		ExpenseStatsDelay:   1000 * time.Millisecond,
		QuickTransferDelay:  700 * time.Millisecond,
		BalanceHistoryDelay: 1100 * time.Millisecond,
	}
}
