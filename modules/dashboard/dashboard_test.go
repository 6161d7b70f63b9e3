package dashboard_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soar/modules/dashboard"
)

func instant() *dashboard.Service {
	return dashboard.NewService(dashboard.WithConfig(dashboard.Config{}))
}

func TestService_Fixtures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := instant()

	cards, err := svc.Cards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, dashboard.Card{
		ID: "1", Variant: "dark", Balance: "$5,756", CardHolder: "Eddy Cusuma",
		ValidThru: "12/22", CardNumber: "3778 **** **** 1234",
	}, cards[0])
	assert.Equal(t, "light", cards[1].Variant)

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 5)
	assert.Equal(t, "Netflix Subscription", txs[3].Title)
	assert.Equal(t, "$14.99", txs[3].Amount)
	assert.True(t, txs[1].IsPositive)

	weekly, err := svc.WeeklyActivity(ctx)
	require.NoError(t, err)
	assert.Equal(t, dashboard.WeeklyActivity{Day: "Tue", Deposit: 350, Withdraw: 450}, weekly[3])

	contacts, err := svc.QuickTransferContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/assets/avatar-workman.png", contacts[2].Avatar)

	balance, err := svc.BalanceHistory(ctx)
	require.NoError(t, err)
	require.Len(t, balance, 12)
	assert.Equal(t, dashboard.BalancePoint{Month: "Dec", Balance: 780}, balance[5])

	// fixtures are copies
	cards[0].Balance = "$0"
	again, err := svc.Cards(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$5,756", again[0].Balance)
}

func TestService_Delays(t *testing.T) {
	t.Parallel()

	svc := dashboard.NewService(dashboard.WithConfig(dashboard.Config{CardsDelay: 20 * time.Millisecond}))
	start := time.Now()
	_, err := svc.Cards(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Cards(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_OverviewRunsConcurrently(t *testing.T) {
	t.Parallel()

	d := 40 * time.Millisecond
	svc := dashboard.NewService(dashboard.WithConfig(dashboard.Config{
		CardsDelay: d, TransactionsDelay: d, WeeklyActivityDelay: d,
		ExpenseStatsDelay: d, QuickTransferDelay: d, BalanceHistoryDelay: d,
	}))

	start := time.Now()
	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 4*d)

	assert.Len(t, o.Cards, 2)
	assert.Len(t, o.Transactions, 5)
	assert.Len(t, o.WeeklyActivity, 7)
	assert.Len(t, o.ExpenseStatistics, 4)
	assert.Len(t, o.QuickTransfer, 3)
	assert.Len(t, o.BalanceHistory, 12)
}

func TestService_OverviewFailsOnFirstError(t *testing.T) {
	t.Parallel()

	svc := dashboard.NewService(dashboard.WithConfig(dashboard.Config{
		TransactionsDelay: time.Second, BalanceHistoryDelay: time.Second,
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	o, err := svc.Overview(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorContains(t, err, "transactions: ")
	assert.Equal(t, dashboard.Overview{}, o)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCharts(t *testing.T) {
	t.Parallel()

	o, err := instant().Overview(context.Background())
	require.NoError(t, err)
	c := o.Charts()

	assert.Equal(t, []string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}, c.Weekly.Labels)
	assert.Equal(t, []int{230, 120, 260, 350, 230, 230, 320}, c.Weekly.Deposit)
	assert.Equal(t, 450, c.Weekly.Max)

	total := 0.0
	for _, s := range c.Expense {
		total += s.Percentage
	}
	assert.InDelta(t, 100, total, 0.001)
	assert.InDelta(t, 360, c.Expense[len(c.Expense)-1].EndAngle, 0.001)
	assert.InDelta(t, 108, c.Expense[0].EndAngle, 0.001)

	assert.Equal(t, 150, c.Balance.Min)
	assert.Equal(t, 780, c.Balance.Max)

	uneven := dashboard.ExpenseChart([]dashboard.ExpenseStatistic{{Name: "a", Percentage: 1}, {Name: "b", Percentage: 3}})
	assert.InDelta(t, 25, uneven[0].Percentage, 0.001)
	assert.Nil(t, dashboard.ExpenseChart(nil))
}

func TestModule_API(t *testing.T) {
	t.Parallel()

	m := dashboard.NewModule(instant(), dashboard.Views{}, nil)
	api := m.API()

	tests := []struct {
		path string
		want int
	}{
		{path: "/cards", want: 2},
		{path: "/transactions", want: 5},
		{path: "/weekly-activity", want: 7},
		{path: "/expense-statistics", want: 4},
		{path: "/quick-transfer", want: 3},
		{path: "/balance-history", want: 12},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			api.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Data []json.RawMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Len(t, body.Data, tt.want)
		})
	}

	t.Run("/overview", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/overview", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data dashboard.Overview `json:"data"`
			Meta dashboard.Charts   `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Data.Cards, 2)
		assert.Equal(t, 780, body.Meta.Balance.Max)
	})
}

func TestModule_Page(t *testing.T) {
	t.Parallel()

	var got dashboard.PageParams
	m := dashboard.NewModule(instant(), dashboard.Views{
		Page: func(p dashboard.PageParams) templ.Component {
			got = p
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := io.WriteString(w, "dashboard")
				return err
			})
		},
	}, nil)

	rec := httptest.NewRecorder()
	m.Page().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dashboard", rec.Body.String())
	assert.Len(t, got.Overview.Transactions, 5)
	assert.Nil(t, got.User)
}
