package dashboard

// BarSeries feeds the weekly activity bar chart.
type BarSeries struct {
	Labels   []string `json:"labels"`
	Deposit  []int    `json:"deposit"`
	Withdraw []int    `json:"withdraw"`
	Max      int      `json:"max"`
}

func WeeklyChart(items []WeeklyActivity) BarSeries {
	s := BarSeries{
		Labels:   make([]string, 0, len(items)),
		Deposit:  make([]int, 0, len(items)),
		Withdraw: make([]int, 0, len(items)),
	}
	for _, it := range items {
		s.Labels = append(s.Labels, it.Day)
		s.Deposit = append(s.Deposit, it.Deposit)
		s.Withdraw = append(s.Withdraw, it.Withdraw)
		s.Max = max(s.Max, it.Deposit, it.Withdraw)
	}
	return s
}

// PieSlice is one wedge of the expense chart, in degrees from 12 o'clock.
type PieSlice struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
}

// ExpenseChart normalizes the statistics so the slices always total 100%.
func ExpenseChart(stats []ExpenseStatistic) []PieSlice {
	total := 0
	for _, st := range stats {
		total += max(st.Percentage, 0)
	}
	if total == 0 {
		return nil
	}

	out := make([]PieSlice, 0, len(stats))
	angle := 0.0
	for _, st := range stats {
		pct := float64(max(st.Percentage, 0)) * 100 / float64(total)
		end := angle + pct*3.6
		out = append(out, PieSlice{
			Name:       st.Name,
			Color:      st.Color,
			Percentage: pct,
			StartAngle: angle,
			EndAngle:   end,
		})
		angle = end
	}
	return out
}

// LineSeries feeds the balance history area chart.
type LineSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Min    int      `json:"min"`
	Max    int      `json:"max"`
}

func BalanceChart(points []BalancePoint) LineSeries {
	s := LineSeries{
		Labels: make([]string, 0, len(points)),
		Values: make([]int, 0, len(points)),
	}
	for i, p := range points {
		s.Labels = append(s.Labels, p.Month)
		s.Values = append(s.Values, p.Balance)
		if i == 0 {
			s.Min, s.Max = p.Balance, p.Balance
			continue
		}
		s.Min = min(s.Min, p.Balance)
		s.Max = max(s.Max, p.Balance)
	}
	return s
}

// Charts bundles the chart series derived from an Overview.
type Charts struct {
	Weekly  BarSeries  `json:"weekly"`
	Expense []PieSlice `json:"expense"`
	Balance LineSeries `json:"balance"`
}

func (o Overview) Charts() Charts {
	return Charts{
		Weekly:  WeeklyChart(o.WeeklyActivity),
		Expense: ExpenseChart(o.ExpenseStatistics),
		Balance: BalanceChart(o.BalanceHistory),
	}
}
