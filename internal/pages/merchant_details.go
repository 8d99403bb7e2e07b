package pages

import (
	"context"
	"errors"
	"time"

	"merchdash/internal/fetch"
	"merchdash/internal/filters"
	"merchdash/internal/metrics"
	"merchdash/internal/models"
)

// RecentTransactionCount is how many transactions the details view shows.
const RecentTransactionCount = 10

// MerchantProfile is a merchant's details together with its latest
// transactions.
type MerchantProfile struct {
	Details *models.MerchantDetails
	Recent  *models.TransactionPage
	// RecentErr is set when the transactions could not be fetched; the
	// profile is still shown with an empty list.
	RecentErr string
}

type MerchantDetails struct {
	merchants    MerchantSource
	transactions TransactionSource
	res          *fetch.Resource[MerchantProfile]
	now          func() time.Time
}

func NewMerchantDetails(merchants MerchantSource, transactions TransactionSource, stats *metrics.FetchStats, now func() time.Time) *MerchantDetails {
	if now == nil {
		now = time.Now
	}
	return &MerchantDetails{
		merchants:    merchants,
		transactions: transactions,
		res:          fetch.New[MerchantProfile](stats),
		now:          now,
	}
}

// Load fetches the profile and recent transactions of one merchant in
// parallel. Only the profile is required.
func (p *MerchantDetails) Load(ctx context.Context, merchantID string) error {
	if merchantID == "" {
		err := errors.New("merchant id is required")
		p.res.Fail(err)
		return err
	}
	f := filters.NewTransaction(p.now())
	f.MerchantID = merchantID
	f.Size = RecentTransactionCount

	return p.res.Load(ctx, func(ctx context.Context) (MerchantProfile, error) {
		var out MerchantProfile
		err := fetch.All(ctx,
			func(ctx context.Context) (err error) {
				out.Details, err = p.merchants.GetMerchantDetails(ctx, merchantID)
				return err
			},
			func(ctx context.Context) error {
				recent, err := p.transactions.ListTransactions(ctx, f)
				if err != nil {
					out.Recent = &models.TransactionPage{Page: f.Page, Size: f.Size}
					out.RecentErr = fetch.ErrorMessage(err)
					return nil
				}
				out.Recent = recent
				return nil
			},
		)
		return out, err
	})
}

func (p *MerchantDetails) Refetch(ctx context.Context) error {
	return p.res.Refetch(ctx)
}

func (p *MerchantDetails) Snapshot() fetch.Snapshot[MerchantProfile] {
	return p.res.Snapshot()
}
