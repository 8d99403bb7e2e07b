package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"merchdash/internal/models"
)

const barWidth = 30

func money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -f)
	}
	return "$" + humanize.FormatFloat("#,###.##", f)
}

func moneyf(f float64) string {
	return money(decimal.NewFromFloat(f))
}

func count(n int64) string {
	return humanize.Comma(n)
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// bar draws value as a proportion of max.
func bar(value, max float64) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := int(value / max * barWidth)
	if n < 1 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n)
}

func timestamp(t models.Transaction) string {
	ts := t.OccurredAt()
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02 15:04:05")
}

func card(t models.Transaction) string {
	if t.CardLast4 == "" {
		return t.CardType
	}
	return fmt.Sprintf("%s •••• %s", t.CardType, t.CardLast4)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func ago(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
