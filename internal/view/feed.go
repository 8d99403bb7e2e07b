package view

import (
	"strconv"
	"time"

	"merchdash/internal/models"
)

// Feed renders the latest real-time batch.
func (r *Renderer) Feed(txns []models.Transaction, lastUpdate, now time.Time, paused bool) {
	state := "live"
	if paused {
		state = "paused"
	}
	r.title("Real-Time Transactions (" + state + ")")
	r.printf("Last update: %s\n", ago(lastUpdate, now))
	if len(txns) == 0 {
		r.Empty("Waiting for new transactions... (monitoring last 5 minutes)")
		return
	}
	t := r.table("Txn ID", "Merchant", "Amount", "Status", "Card", "Time")
	for _, txn := range txns {
		at := "-"
		if ts := txn.OccurredAt(); !ts.IsZero() {
			at = ts.Format("15:04:05")
		}
		t.Append([]string{
			strconv.FormatInt(txn.TxnID, 10),
			txn.MerchantID,
			money(txn.Amount),
			string(txn.Status),
			orDash(card(txn)),
			at,
		})
	}
	t.Render()
}
