package models

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// StatusShare is one status row of a transaction summary.
type StatusShare struct {
	Status  Status
	Count   int64
	Percent float64
}

// Shares breaks the summary down by status.
func (s TransactionSummary) Shares() []StatusShare {
	return []StatusShare{
		{StatusCompleted, s.CompletedCount, Percent(s.CompletedCount, s.TotalCount)},
		{StatusPending, s.PendingCount, Percent(s.PendingCount, s.TotalCount)},
		{StatusFailed, s.FailedCount, Percent(s.FailedCount, s.TotalCount)},
	}
}

// CardShares recomputes each card type's share of the distribution total.
// Shares reported by the server are kept when the total is unknown.
func (c CardDistribution) CardShares() []CardTypeShare {
	total := c.TotalTransactions
	if total == 0 {
		for _, d := range c.Distribution {
			total += d.Count
		}
	}
	out := make([]CardTypeShare, len(c.Distribution))
	for i, d := range c.Distribution {
		out[i] = d
		if total > 0 {
			out[i].Percentage = Percent(d.Count, total)
		}
	}
	return out
}
