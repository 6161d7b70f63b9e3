package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/soar/pkg/async"
	"github.com/dmitrymomot/soar/pkg/logger"
)

// Service serves the dashboard widgets from static fixtures, each after its
// own simulated latency.
type Service struct {
	cfg Config
	log *slog.Logger
}

type Option func(*Service)

func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{cfg: DefaultConfig(), log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Cards(ctx context.Context) ([]Card, error) {
	return fetch(ctx, s.cfg.CardsDelay, cards)
}

func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	return fetch(ctx, s.cfg.TransactionsDelay, transactions)
}

func (s *Service) WeeklyActivity(ctx context.Context) ([]WeeklyActivity, error) {
	return fetch(ctx, s.cfg.WeeklyActivityDelay, weeklyActivity)
}

func (s *Service) ExpenseStatistics(ctx context.Context) ([]ExpenseStatistic, error) {
	return fetch(ctx, s.cfg.ExpenseStatsDelay, expenseStatistics)
}

func (s *Service) QuickTransferContacts(ctx context.Context) ([]Contact, error) {
	return fetch(ctx, s.cfg.QuickTransferDelay, contacts)
}

func (s *Service) BalanceHistory(ctx context.Context) ([]BalancePoint, error) {
	return fetch(ctx, s.cfg.BalanceHistoryDelay, balanceHistory)
}

// Overview is every widget of the dashboard page.
type Overview struct {
	Cards             []Card             `json:"cards"`
	Transactions      []Transaction      `json:"transactions"`
	WeeklyActivity    []WeeklyActivity   `json:"weeklyActivity"`
	ExpenseStatistics []ExpenseStatistic `json:"expenseStatistics"`
	QuickTransfer     []Contact          `json:"quickTransfer"`
	BalanceHistory    []BalancePoint     `json:"balanceHistory"`
}

// Overview loads all widgets concurrently; it takes as long as the slowest.
// The first failure, in widget order, cancels the remaining loads.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var o Overview
	if _, err := async.WaitAll(
		async.Async(ctx, struct{}{}, into(&o.Cards, "cards", s.Cards)),
		async.Async(ctx, struct{}{}, into(&o.Transactions, "transactions", s.Transactions)),
		async.Async(ctx, struct{}{}, into(&o.WeeklyActivity, "weekly activity", s.WeeklyActivity)),
		async.Async(ctx, struct{}{}, into(&o.ExpenseStatistics, "expense statistics", s.ExpenseStatistics)),
		async.Async(ctx, struct{}{}, into(&o.QuickTransfer, "quick transfer", s.QuickTransferContacts)),
		async.Async(ctx, struct{}{}, into(&o.BalanceHistory, "balance history", s.BalanceHistory)),
	); err != nil {
		return Overview{}, err
	}

	s.log.DebugContext(ctx, "dashboard overview loaded",
		logger.Component("dashboard"),
		logger.Duration(time.Since(start)),
	)
	return o, nil
}

// into adapts a widget loader to async.Async, storing the result in dst.
func into[T any](dst *[]T, name string, load func(context.Context) ([]T, error)) func(context.Context, struct{}) (struct{}, error) {
	return func(ctx context.Context, _ struct{}) (struct{}, error) {
		v, err := load(ctx)
		if err != nil {
			return struct{}{}, fmt.Errorf("%s: %w", name, err)
		}
		*dst = v
		return struct{}{}, nil
	}
}

func fetch[T any](ctx context.Context, delay time.Duration, data func() []T) ([]T, error) {
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data(), nil
}
