package command

import (
	"context"
	"strings"

	"merchdash/internal/forms"
	"merchdash/internal/pages"
)

const (
	actViewMerchant = "View merchant"
	actEditMerchant = "Edit merchant"
	actClearSearch  = "Clear search"
)

// MerchantAPI is everything the merchant views need from the API client.
type MerchantAPI interface {
	pages.MerchantSource
	pages.TransactionSource
	MerchantWriter
}

type MerchantsCommand struct {
	Env
	Client MerchantAPI
}

func (c *MerchantsCommand) Name() string {
	return "merchants"
}

func (c *MerchantsCommand) Synopsis() string {
	return "Browse and search merchants"
}

func (c *MerchantsCommand) Execute() error {
	ctx := c.context()
	page := pages.NewMerchants(c.Client, c.Stats)
	c.settle("merchants", page.Load(ctx))

	for {
		snap := page.Snapshot()
		if snap.Err != "" {
			c.View.Error(snap.Err)
		}
		if snap.Loaded {
			if f := page.Filters(); f.Search != "" {
				c.View.Empty("Search: " + f.Search)
			}
			c.View.Merchants(snap.Data, page.Pagination())
		}

		action, err := c.choose("Merchants:", merchantActions(page))
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

func merchantActions(page *pages.Merchants) []string {
	snap := page.Snapshot()
	out := pagerActions(page.Pagination())
	if snap.Data != nil && len(snap.Data.Merchants) > 0 {
		out = append(out, actViewMerchant)
	}
	out = append(out, actSearch)
	if page.Filters().Search != "" {
		out = append(out, actClearSearch)
	}
	out = append(out, actPageSize)
	return append(out, reloadAction(snap.Err != ""), actBack)
}

func (c *MerchantsCommand) apply(ctx context.Context, page *pages.Merchants, action string) error {
	var fetchErr error
	d := page.Pagination()
	switch action {
	case actRetry, actRefresh:
		fetchErr = page.Refetch(ctx)
	case actPrevious:
		fetchErr = page.GoTo(ctx, d.Page-1)
	case actNext:
		fetchErr = page.GoTo(ctx, d.Page+1)
	case actGoTo:
		n, err := c.askPage(d)
		if err != nil {
			return err
		}
		fetchErr = page.GoTo(ctx, n)
	case actPageSize:
		size, err := c.askPageSize(page.Filters().Limit)
		if err != nil {
			return err
		}
		fetchErr = page.SetLimit(ctx, size)
	case actSearch:
		term, err := c.input("Search merchants:", page.Filters().Search, nil)
		if err != nil {
			return err
		}
		fetchErr = page.Search(ctx, strings.TrimSpace(term))
	case actClearSearch:
		fetchErr = page.Search(ctx, "")
	case actViewMerchant:
		id, err := c.pickMerchant(page)
		if err != nil {
			return err
		}
		profile := &MerchantCommand{Env: c.Env, Client: c.Client, ID: id}
		if err := profile.Execute(); err != nil {
			return err
		}
		// the profile may have been edited
		fetchErr = page.Refetch(ctx)
	}
	c.settle("merchants", fetchErr)
	return nil
}

func (c *MerchantsCommand) pickMerchant(page *pages.Merchants) (string, error) {
	snap := page.Snapshot()
	if snap.Data == nil {
		return "", nil
	}
	options := make([]string, len(snap.Data.Merchants))
	ids := make(map[string]string, len(snap.Data.Merchants))
	for i, m := range snap.Data.Merchants {
		options[i] = m.MerchantID + "  " + m.MerchantName
		ids[options[i]] = m.MerchantID
	}
	choice, err := c.choose("Merchant:", options)
	return ids[choice], err
}

// MerchantCommand shows the profile of one merchant with its latest
// transactions.
type MerchantCommand struct {
	Env
	Client MerchantAPI
	// ID skips the merchant id prompt when set.
	ID string
}

func (c *MerchantCommand) Name() string {
	return "merchant"
}

func (c *MerchantCommand) Synopsis() string {
	return "Show merchant details and recent transactions"
}

func (c *MerchantCommand) Execute() error {
	id := c.ID
	if id == "" {
		var err error
		id, err = c.input("Merchant ID:", "", forms.Required("Merchant ID is required"))
		if done, err := leave(err); done {
			return err
		}
		id = strings.TrimSpace(id)
	}
	if id == "" {
		return nil
	}

	ctx := c.context()
	details := pages.NewMerchantDetails(c.Client, c.Client, c.Stats, c.Now)
	c.settle("merchant details", details.Load(ctx, id))

	for {
		snap := details.Snapshot()
		if snap.Err != "" {
			c.View.Error(snap.Err)
		}
		if snap.Loaded {
			c.View.MerchantDetails(snap.Data.Details, snap.Data.Recent)
			if snap.Data.RecentErr != "" {
				c.View.Error("Recent transactions unavailable: " + snap.Data.RecentErr)
			}
		}

		options := []string{}
		if snap.Loaded {
			options = append(options, actEditMerchant)
		}
		options = append(options, reloadAction(snap.Err != ""), actBack)

		action, err := c.choose("Merchant "+id+":", options)
		if done, err := leave(err); done {
			return err
		}

		switch action {
		case actBack:
			return nil
		case actRetry, actRefresh:
			c.settle("merchant details", details.Refetch(ctx))
		case actEditMerchant:
			edit := &EditMerchantCommand{Env: c.Env, Client: c.Client, ID: id}
			saved, err := edit.edit(ctx, id, snap.Data.Details)
			if err != nil && !ignorable(err) {
				return err
			}
			if saved != nil {
				c.View.MerchantSaved("updated", saved)
				c.settle("merchant details", details.Refetch(ctx))
			}
		}
	}
}
