package view

import (
	"merchdash/internal/models"
	"merchdash/internal/pagination"
)

func (r *Renderer) Merchants(list *models.MerchantList, d pagination.Descriptor) {
	if list == nil || len(list.Merchants) == 0 {
		r.Empty("No merchants found")
		return
	}
	t := r.table("ID", "Name", "Status", "Transactions", "Revenue", "Avg Amount", "Success %", "Last Transaction")
	for _, m := range list.Merchants {
		t.Append([]string{
			m.MerchantID,
			m.MerchantName,
			orDash(m.Status),
			count(m.TotalTransactions),
			money(m.TotalRevenue),
			money(m.AverageTransactionAmount),
			percent(m.SuccessRate),
			orDash(m.LastTransactionDate),
		})
	}
	t.Render()
	r.Pagination(d, pagination.OneBased, "merchants")
}

// MerchantDetails renders the profile card, the statistics and the latest
// transactions of one merchant.
func (r *Renderer) MerchantDetails(d *models.MerchantDetails, recent *models.TransactionPage) {
	if d == nil {
		r.Empty("Merchant not found")
		return
	}
	r.title(d.MerchantName + " (" + d.MerchantID + ")")

	profile := r.table()
	for _, row := range [][2]string{
		{"Business Name", d.BusinessName},
		{"Business Type", d.BusinessType},
		{"Status", d.Status},
		{"Email", d.Email},
		{"Phone", d.Phone},
		{"Website", d.Website},
		{"Address", firstNonEmpty(d.Address, d.AddressLine1)},
		{"City", d.City},
		{"Country", d.Country},
		{"Registration #", d.RegistrationNumber},
		{"Industry", d.Industry},
		{"Risk Level", d.RiskLevel},
	} {
		profile.Append([]string{row[0], orDash(row[1])})
	}
	profile.Render()

	r.title("Statistics")
	stats := r.table("Total", "Completed", "Pending", "Failed", "Success %", "Revenue", "Avg Amount", "First", "Last")
	stats.Append([]string{
		count(d.TotalTransactions),
		count(d.CompletedCount),
		count(d.PendingCount),
		count(d.FailedCount),
		percent(d.SuccessRate),
		money(d.TotalRevenue),
		money(d.AverageTransactionAmount),
		orDash(d.FirstTransactionDate),
		orDash(d.LastTransactionDate),
	})
	stats.Render()

	r.title("Recent Transactions")
	if recent == nil || len(recent.Transactions) == 0 {
		r.Empty("No transactions found")
		return
	}
	r.transactionRows(recent.Transactions, false)
	if recent.TotalTransactions > len(recent.Transactions) {
		r.printf("Latest %d of %s transactions\n", len(recent.Transactions), count(int64(recent.TotalTransactions)))
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// MerchantSaved confirms a create or update.
func (r *Renderer) MerchantSaved(verb string, m *models.MerchantStats) {
	if m == nil {
		return
	}
	id := m.MerchantID
	if id == "" {
		id = "(unassigned)"
	}
	r.printf("Merchant %s %s: %s\n", id, verb, orDash(m.MerchantName))
	if m.Status != "" {
		r.printf("Status: %s\n", m.Status)
	}
}
