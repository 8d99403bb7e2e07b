package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusReversed  Status = "reversed"
)

// Statuses lists every transaction status in display order.
var Statuses = []Status{StatusCompleted, StatusPending, StatusFailed, StatusReversed}

// ParseStatus accepts a status name case-insensitively. An empty string
// means "all statuses" and yields an empty Status.
func ParseStatus(raw string) (Status, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", nil
	}
	for _, s := range Statuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown transaction status %q", raw)
}

type TransactionDetail struct {
	DetailID    int64           `json:"detailId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type Transaction struct {
	TxnID            int64               `json:"txnId"`
	MerchantID       string              `json:"merchantId"`
	Amount           decimal.Decimal     `json:"amount"`
	Currency         string              `json:"currency"`
	Status           Status              `json:"status"`
	CardType         string              `json:"cardType"`
	CardLast4        string              `json:"cardLast4"`
	AuthCode         string              `json:"authCode"`
	Acquirer         string              `json:"acquirer,omitempty"`
	Issuer           string              `json:"issuer,omitempty"`
	TxnDate          string              `json:"txnDate,omitempty"`
	LocalTxnDateTime string              `json:"localTxnDateTime,omitempty"`
	Timestamp        string              `json:"timestamp,omitempty"`
	CreatedAt        string              `json:"createdAt,omitempty"`
	Details          []TransactionDetail `json:"details,omitempty"`
}

// timestampLayouts covers the formats the API emits for instants,
// local date-times and plain dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// OccurredAt returns the most specific timestamp the API supplied for the
// transaction. The zero time is returned when none parses.
func (t Transaction) OccurredAt() time.Time {
	for _, raw := range []string{t.LocalTxnDateTime, t.Timestamp, t.TxnDate, t.CreatedAt} {
		if raw == "" {
			continue
		}
		if ts, ok := parseTimestamp(raw); ok {
			return ts
		}
	}
	return time.Time{}
}

func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

type TransactionSummary struct {
	TotalCount     int64           `json:"totalCount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	CompletedCount int64           `json:"completedCount"`
	PendingCount   int64           `json:"pendingCount"`
	FailedCount    int64           `json:"failedCount"`
}

// TransactionPage is one page of the /transactions listing.
type TransactionPage struct {
	Transactions      []Transaction       `json:"transactions"`
	TotalTransactions int                 `json:"totalTransactions"`
	Page              int                 `json:"page"`
	Size              int                 `json:"size"`
	TotalPages        int                 `json:"totalPages"`
	Summary           *TransactionSummary `json:"summary,omitempty"`
}

// Summarize returns the server supplied summary, or one computed from the
// rows on the page when the server omitted it.
func (p *TransactionPage) Summarize() TransactionSummary {
	if p.Summary != nil {
		return *p.Summary
	}
	s := TransactionSummary{TotalCount: int64(len(p.Transactions))}
	for _, t := range p.Transactions {
		s.TotalAmount = s.TotalAmount.Add(t.Amount)
		switch t.Status {
		case StatusCompleted:
			s.CompletedCount++
		case StatusPending:
			s.PendingCount++
		case StatusFailed:
			s.FailedCount++
		}
	}
	return s
}
