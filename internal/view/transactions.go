package view

import (
	"strconv"

	"merchdash/internal/filters"
	"merchdash/internal/models"
	"merchdash/internal/pagination"
)

// Transactions renders one page of the listing with its filter line,
// summary and page strip.
func (r *Renderer) Transactions(page *models.TransactionPage, f filters.Transaction, d pagination.Descriptor) {
	r.printf("%s\n", f.Describe())
	if page == nil || len(page.Transactions) == 0 {
		r.Empty("No transactions found for the selected filters")
		return
	}
	r.Summary(page.Summarize())
	r.transactionRows(page.Transactions, f.MerchantID == "")
	r.Pagination(d, pagination.OneBased, "transactions")
}

func (r *Renderer) transactionRows(txns []models.Transaction, withMerchant bool) {
	header := []string{"Txn ID", "Date", "Amount", "Status", "Card", "Auth Code"}
	if withMerchant {
		header = append([]string{"Txn ID", "Merchant"}, header[1:]...)
	}
	t := r.table(header...)
	for _, txn := range txns {
		row := []string{
			strconv.FormatInt(txn.TxnID, 10),
			timestamp(txn),
			money(txn.Amount) + " " + txn.Currency,
			string(txn.Status),
			orDash(card(txn)),
			orDash(txn.AuthCode),
		}
		if withMerchant {
			row = append([]string{row[0], txn.MerchantID}, row[1:]...)
		}
		t.Append(row)
	}
	t.Render()
}

// Summary renders the per-status counts and shares of a transaction set.
func (r *Renderer) Summary(s models.TransactionSummary) {
	t := r.table("Total", "Amount", "Completed", "Pending", "Failed")
	row := []string{count(s.TotalCount), money(s.TotalAmount)}
	for _, share := range s.Shares() {
		row = append(row, count(share.Count)+" ("+percent(share.Percent)+")")
	}
	t.Append(row)
	t.Render()
}

// TransactionDetails renders one transaction with its fee, tax and
// adjustment lines.
func (r *Renderer) TransactionDetails(txn models.Transaction) {
	r.title("Transaction " + strconv.FormatInt(txn.TxnID, 10))
	t := r.table("Field", "Value")
	t.Append([]string{"Merchant", txn.MerchantID})
	t.Append([]string{"Amount", money(txn.Amount) + " " + txn.Currency})
	t.Append([]string{"Status", string(txn.Status)})
	t.Append([]string{"Date", timestamp(txn)})
	t.Append([]string{"Card", orDash(card(txn))})
	t.Append([]string{"Auth Code", orDash(txn.AuthCode)})
	t.Append([]string{"Acquirer", orDash(txn.Acquirer)})
	t.Append([]string{"Issuer", orDash(txn.Issuer)})
	t.Render()

	if len(txn.Details) == 0 {
		return
	}
	dt := r.table("Detail", "Type", "Amount", "Description")
	for _, d := range txn.Details {
		dt.Append([]string{strconv.FormatInt(d.DetailID, 10), d.Type, money(d.Amount), orDash(d.Description)})
	}
	dt.Render()
}
