package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/soar/modules/dashboard"
)

func DashboardPage(p dashboard.PageParams) templ.Component {
	return shell("Overview", "/dashboard", p.User, component(func(h *html) {
		o := p.Overview

		h.raw(`<section class="widget my-cards"><h2>My Cards</h2><div class="cards">`)
		for _, c := range o.Cards {
			h.tagf(`<article class="card card-%s" id="card-%s">`, c.Variant, c.ID)
			h.tagf(`<p class="balance"><small>Balance</small>%s</p>`, c.Balance)
			h.tagf(`<p class="holder"><small>CARD HOLDER</small>%s</p>`, c.CardHolder)
			h.tagf(`<p class="valid"><small>VALID THRU</small>%s</p>`, c.ValidThru)
			h.tagf(`<p class="number">%s</p></article>`, c.CardNumber)
		}
		h.raw(`</div></section>`)

		h.raw(`<section class="widget recent-transactions"><h2>Recent Transaction</h2><ul>`)
		for _, t := range o.Transactions {
			sign, class := "-", "negative"
			if t.IsPositive {
				sign, class = "+", "positive"
			}
			h.tagf(`<li class="transaction %s" data-type="%s"><span class="title">%s</span><span class="date">%s</span><span class="amount">%s%s</span></li>`,
				class, t.Type, t.Title, t.Date, sign, t.Amount)
		}
		h.raw(`</ul></section>`)

		h.raw(`<section class="widget weekly-activity"><h2>Weekly Activity</h2>`)
		h.render(weeklyChart(p.Charts.Weekly))
		h.raw(`</section>`)

		h.raw(`<section class="widget expense-statistics"><h2>Expense Statistics</h2>`)
		h.render(expenseChart(p.Charts.Expense))
		h.raw(`</section>`)

		h.raw(`<section class="widget quick-transfer"><h2>Quick Transfer</h2><ul class="contacts">`)
		for _, c := range o.QuickTransfer {
			h.tagf(`<li class="contact" id="contact-%s"><img src="%s" alt="%s"><span>%s</span></li>`, c.ID, c.Avatar, c.Name, c.Name)
		}
		h.raw(`</ul></section>`)

		h.raw(`<section class="widget balance-history"><h2>Balance History</h2>`)
		h.render(balanceChart(p.Charts.Balance))
		h.raw(`</section>`)
	}))
}

const chartHeight = 200

func weeklyChart(s dashboard.BarSeries) templ.Component {
	return component(func(h *html) {
		if s.Max == 0 {
			return
		}
		h.tagf(`<svg class="bar-chart" viewBox="0 0 %s %s" role="img">`, strconv.Itoa(len(s.Labels)*60), strconv.Itoa(chartHeight+20))
		for i, label := range s.Labels {
			x := i * 60
			dh := s.Deposit[i] * chartHeight / s.Max
			wh := s.Withdraw[i] * chartHeight / s.Max
			h.tagf(`<rect class="deposit" x="%s" y="%s" width="20" height="%s"><title>Deposit %s</title></rect>`,
				x+10, chartHeight-dh, dh, s.Deposit[i])
			h.tagf(`<rect class="withdraw" x="%s" y="%s" width="20" height="%s"><title>Withdraw %s</title></rect>`,
				x+32, chartHeight-wh, wh, s.Withdraw[i])
			h.tagf(`<text x="%s" y="%s">%s</text>`, x+20, chartHeight+16, label)
		}
		h.raw(`</svg>`)
	})
}

// expenseChart draws the pie with a CSS conic gradient.
func expenseChart(slices []dashboard.PieSlice) templ.Component {
	return component(func(h *html) {
		stops := make([]string, 0, len(slices))
		for _, s := range slices {
			stops = append(stops, fmt.Sprintf("%s %.1fdeg %.1fdeg", s.Color, s.StartAngle, s.EndAngle))
		}
		h.tagf(`<div class="pie" style="background: conic-gradient(%s)"></div><ul class="legend">`, strings.Join(stops, ", "))
		for _, s := range slices {
			h.tagf(`<li style="color: %s">%s <strong>%s%%</strong></li>`, s.Color, s.Name, strconv.FormatFloat(s.Percentage, 'f', 0, 64))
		}
		h.raw(`</ul>`)
	})
}

func balanceChart(s dashboard.LineSeries) templ.Component {
	return component(func(h *html) {
		if len(s.Values) < 2 {
			return
		}
		span := max(s.Max-s.Min, 1)
		step := 600 / (len(s.Values) - 1)
		points := make([]string, 0, len(s.Values))
		for i, v := range s.Values {
			y := chartHeight - (v-s.Min)*chartHeight/span
			points = append(points, fmt.Sprintf("%d,%d", i*step, y))
		}
		h.tagf(`<svg class="line-chart" viewBox="0 0 600 %s" role="img"><polyline fill="none" points="%s"/>`,
			chartHeight+20, strings.Join(points, " "))
		for i, label := range s.Labels {
			h.tagf(`<text x="%s" y="%s">%s</text>`, i*step, chartHeight+16, label)
		}
		h.raw(`</svg>`)
	})
}
