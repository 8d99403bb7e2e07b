package command

import (
	"context"
	"strconv"
	"strings"

	"merchdash/internal/filters"
	"merchdash/internal/models"
	"merchdash/internal/pages"
)

const (
	actStatus   = "Filter by status"
	actDates    = "Change date range"
	actMerchant = "Filter by merchant"
	actSearch   = "Search"
	actReset    = "Reset filters"
	actDetails  = "Show transaction details"

	allStatuses = "All"
)

type TransactionsCommand struct {
	Env
	Src      pages.TransactionSource
	PageSize int
}

func (c *TransactionsCommand) Name() string {
	return "transactions"
}

func (c *TransactionsCommand) Synopsis() string {
	return "Browse transactions with filters and pagination"
}

func (c *TransactionsCommand) Execute() error {
	ctx := c.context()
	page := pages.NewTransactions(c.Src, c.Stats, c.Now, "", c.PageSize)
	c.settle("transactions", page.Load(ctx))

	for {
		c.render(page)

		action, err := c.choose("Transactions:", transactionActions(page))
		if done, err := leave(err); done {
			return err
		}
		if action == actBack {
			return nil
		}
		if err := c.apply(ctx, page, action); err != nil && !ignorable(err) {
			return err
		}
	}
}

// apply performs one action. Fetch failures land in the page snapshot; only
// prompt errors are returned.
func (c *TransactionsCommand) apply(ctx context.Context, page *pages.Transactions, action string) error {
	var fetchErr error
	switch action {
	case actRetry, actRefresh:
		fetchErr = page.Refetch(ctx)
	case actPrevious:
		fetchErr = page.GoTo(ctx, page.Filters().Page-1)
	case actNext:
		fetchErr = page.GoTo(ctx, page.Filters().Page+1)
	case actGoTo:
		n, err := c.askPage(page.Pagination())
		if err != nil {
			return err
		}
		fetchErr = page.GoTo(ctx, n)
	case actPageSize:
		size, err := c.askPageSize(page.Filters().Size)
		if err != nil {
			return err
		}
		fetchErr = page.Update(ctx, filters.Update{Size: &size})
	case actStatus:
		status, err := c.askStatus(page.Filters().Status)
		if err != nil {
			return err
		}
		fetchErr = page.Update(ctx, filters.Update{Status: &status})
	case actDates:
		r, err := c.askDateRange(page.Filters().Range)
		if err != nil {
			return err
		}
		fetchErr = page.Update(ctx, filters.Update{Range: &r})
	case actMerchant:
		id, err := c.input("Merchant ID (empty for all):", page.Filters().MerchantID, nil)
		if err != nil {
			return err
		}
		id = strings.TrimSpace(id)
		fetchErr = page.Update(ctx, filters.Update{MerchantID: &id})
	case actSearch:
		term, err := c.input("Search:", page.Filters().Search, nil)
		if err != nil {
			return err
		}
		term = strings.TrimSpace(term)
		fetchErr = page.Update(ctx, filters.Update{Search: &term})
	case actReset:
		fetchErr = page.Reset(ctx)
	case actDetails:
		return c.showDetails(page)
	}
	c.settle("transactions", fetchErr)
	return nil
}

func (c *TransactionsCommand) render(page *pages.Transactions) {
	snap := page.Snapshot()
	if snap.Err != "" {
		c.View.Error(snap.Err)
	}
	if snap.Loaded {
		c.View.Transactions(snap.Data, page.Filters(), page.Pagination())
	}
}

func transactionActions(page *pages.Transactions) []string {
	snap := page.Snapshot()
	out := pagerActions(page.Pagination())
	if snap.Data != nil && len(snap.Data.Transactions) > 0 {
		out = append(out, actDetails)
	}
	out = append(out, actStatus, actDates, actMerchant, actSearch, actPageSize, actReset)
	return append(out, reloadAction(snap.Err != ""), actBack)
}

func statusOptions() []string {
	out := []string{allStatuses}
	for _, s := range models.Statuses {
		out = append(out, string(s))
	}
	return out
}

func (c *TransactionsCommand) askStatus(current models.Status) (models.Status, error) {
	def := allStatuses
	if current != "" {
		def = string(current)
	}
	answer, err := c.pick(promptSelect("Status:", statusOptions(), def))
	if err != nil || answer == allStatuses {
		return "", err
	}
	return models.ParseStatus(answer)
}

func (c *TransactionsCommand) showDetails(page *pages.Transactions) error {
	snap := page.Snapshot()
	if snap.Data == nil {
		return nil
	}
	ids := make([]string, len(snap.Data.Transactions))
	for i, txn := range snap.Data.Transactions {
		ids[i] = strconv.FormatInt(txn.TxnID, 10)
	}
	id, err := c.choose("Transaction:", ids)
	if err != nil {
		return err
	}
	for _, txn := range snap.Data.Transactions {
		if strconv.FormatInt(txn.TxnID, 10) == id {
			c.View.TransactionDetails(txn)
			break
		}
	}
	return nil
}
