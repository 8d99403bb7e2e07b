// Package demo serves a self-contained merchant analytics API backed by
// generated data, for running the dashboard without a real backend.
package demo

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"merchdash/internal/models"
)

const localLayout = "2006-01-02T15:04:05"

var (
	cardTypes      = []string{"VISA", "MASTERCARD", "AMEX", "DISCOVER"}
	acquirers      = []string{"Chase Paymentech", "Worldpay", "Adyen"}
	issuers        = []string{"First National", "Metro Credit Union", "Harbor Bank", "Summit Card Services"}
	businessTypes  = []string{"Retail", "Restaurant", "Online", "Travel", "Services"}
	cities         = []string{"Austin", "Denver", "Portland", "Chicago", "Boston"}
	merchantWords  = []string{"Acme", "Blue", "Cedar", "Delta", "Evergreen", "Fulton", "Granite", "Harbor", "Iris", "Juniper", "Keystone", "Lumen"}
	merchantSuffix = []string{"Coffee", "Outfitters", "Books", "Market", "Travel", "Labs", "Bakery", "Hardware"}
)

type merchant struct {
	details models.MerchantDetails
}

type txn struct {
	at time.Time
	models.Transaction
}

// Store is the in-memory dataset behind the demo API.
type Store struct {
	mu        sync.RWMutex
	rng       *rand.Rand
	merchants []*merchant
	byID      map[string]*merchant
	txns      []txn // oldest first
	nextTxnID int64
}

// Generate builds a deterministic dataset of merchantCount merchants with
// transactions spread over the days before now.
func Generate(seed int64, now time.Time, merchantCount, days int) *Store {
	s := &Store{
		rng:       rand.New(rand.NewSource(seed)),
		byID:      make(map[string]*merchant),
		nextTxnID: 1,
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days)
	for i := 0; i < merchantCount; i++ {
		s.addMerchant(s.randomMerchant(i))
	}

	for day := 0; day <= days; day++ {
		date := start.AddDate(0, 0, day)
		n := 20 + s.rng.Intn(30)
		stamps := make([]time.Time, n)
		for i := range stamps {
			stamps[i] = date.Add(time.Duration(s.rng.Int63n(int64(24 * time.Hour))))
		}
		sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })
		for _, at := range stamps {
			if at.After(now) {
				break
			}
			s.appendTxn(at)
		}
	}
	return s
}

func (s *Store) randomMerchant(i int) models.MerchantRequest {
	first := merchantWords[i%len(merchantWords)]
	second := merchantSuffix[s.rng.Intn(len(merchantSuffix))]
	name := first + " " + second
	return models.MerchantRequest{
		MerchantName:       name,
		BusinessName:       name + " LLC",
		Email:              strings.ToLower(first) + "@example.com",
		Phone:              fmt.Sprintf("+1 555 %03d %04d", s.rng.Intn(1000), s.rng.Intn(10000)),
		Address:            fmt.Sprintf("%d Main St, %s", 100+s.rng.Intn(900), cities[s.rng.Intn(len(cities))]),
		RegistrationNumber: fmt.Sprintf("REG-%06d", s.rng.Intn(1000000)),
		Status:             "active",
	}
}

func (s *Store) addMerchant(req models.MerchantRequest) *merchant {
	id := fmt.Sprintf("MCH-%05d", len(s.merchants)+1)
	m := &merchant{}
	m.details.MerchantID = id
	m.details.BusinessType = businessTypes[s.rng.Intn(len(businessTypes))]
	m.details.Industry = m.details.BusinessType
	m.details.RiskLevel = "low"
	applyRequest(&m.details, req)
	s.merchants = append(s.merchants, m)
	s.byID[id] = m
	return m
}

func applyRequest(d *models.MerchantDetails, req models.MerchantRequest) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&d.MerchantName, req.MerchantName)
	set(&d.BusinessName, req.BusinessName)
	set(&d.Email, req.Email)
	set(&d.Phone, req.Phone)
	set(&d.Address, req.Address)
	set(&d.RegistrationNumber, req.RegistrationNumber)
	set(&d.Status, req.Status)
}

func (s *Store) appendTxn(at time.Time) txn {
	m := s.merchants[s.rng.Intn(len(s.merchants))]

	status := models.StatusCompleted
	switch r := s.rng.Intn(100); {
	case r < 8:
		status = models.StatusFailed
	case r < 13:
		status = models.StatusPending
	case r < 15:
		status = models.StatusReversed
	}

	amount := decimal.New(int64(500+s.rng.Intn(49500)), -2)
	t := txn{at: at}
	t.TxnID = s.nextTxnID
	t.MerchantID = m.details.MerchantID
	t.Amount = amount
	t.Currency = "USD"
	t.Status = status
	t.CardType = cardTypes[s.rng.Intn(len(cardTypes))]
	t.CardLast4 = fmt.Sprintf("%04d", s.rng.Intn(10000))
	t.Acquirer = acquirers[s.rng.Intn(len(acquirers))]
	t.Issuer = issuers[s.rng.Intn(len(issuers))]
	t.TxnDate = at.Format(models.DateLayout)
	t.LocalTxnDateTime = at.Format(localLayout)
	if status == models.StatusCompleted {
		t.AuthCode = fmt.Sprintf("%06d", s.rng.Intn(1000000))
		if s.rng.Intn(4) == 0 {
			fee := amount.Mul(decimal.NewFromFloat(0.029)).Round(2)
			t.Details = []models.TransactionDetail{
				{DetailID: t.TxnID*10 + 1, Type: "fee", Amount: fee, Description: "Processing fee"},
			}
		}
	}

	s.nextTxnID++
	s.txns = append(s.txns, t)
	return t
}

// Tick records a new transaction at now, so the recent feed has something to show.
func (s *Store) Tick(now time.Time) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendTxn(now).Transaction
}

// CreateMerchant stores a new merchant and returns its stats.
func (s *Store) CreateMerchant(req models.MerchantRequest) models.MerchantStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(req.Status) == "" {
		req.Status = "active"
	}
	m := s.addMerchant(req)
	return s.statsLocked(m, s.txns)
}

// UpdateMerchant applies the non-empty fields of req.
func (s *Store) UpdateMerchant(id string, req models.MerchantRequest) (models.MerchantStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return models.MerchantStats{}, false
	}
	applyRequest(&m.details, req)
	return s.statsLocked(m, s.txns), true
}

func (s *Store) Merchant(id string) (models.MerchantDetails, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		return models.MerchantDetails{}, false
	}
	d := m.details
	d.MerchantStats = s.statsLocked(m, s.txns)
	return d, true
}

// Merchants returns the merchants whose name, business name or ID contain
// search, in ID order.
func (s *Store) Merchants(search string) []models.MerchantStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	search = strings.ToLower(strings.TrimSpace(search))
	var out []models.MerchantStats
	for _, m := range s.merchants {
		d := m.details
		if search != "" &&
			!strings.Contains(strings.ToLower(d.MerchantName), search) &&
			!strings.Contains(strings.ToLower(d.BusinessName), search) &&
			!strings.Contains(strings.ToLower(d.MerchantID), search) {
			continue
		}
		out = append(out, s.statsLocked(m, s.txns))
	}
	return out
}

func (s *Store) statsLocked(m *merchant, txns []txn) models.MerchantStats {
	st := models.MerchantStats{
		MerchantID:   m.details.MerchantID,
		MerchantName: m.details.MerchantName,
		Status:       m.details.Status,
		TotalRevenue: decimal.Zero,
	}
	var first, last time.Time
	for _, t := range txns {
		if t.MerchantID != m.details.MerchantID {
			continue
		}
		st.TotalTransactions++
		switch t.Status {
		case models.StatusCompleted:
			st.CompletedCount++
			st.TotalRevenue = st.TotalRevenue.Add(t.Amount)
		case models.StatusFailed:
			st.FailedCount++
		case models.StatusPending:
			st.PendingCount++
		}
		if first.IsZero() || t.at.Before(first) {
			first = t.at
		}
		if t.at.After(last) {
			last = t.at
		}
	}
	st.SuccessRate = models.Percent(st.CompletedCount, st.TotalTransactions)
	if st.CompletedCount > 0 {
		st.AverageTransactionAmount = st.TotalRevenue.Div(decimal.NewFromInt(st.CompletedCount)).Round(2)
	}
	if !first.IsZero() {
		st.FirstTransactionDate = first.Format(models.DateLayout)
		st.LastTransactionDate = last.Format(models.DateLayout)
	}
	return st
}

// TransactionFilter narrows Transactions. Zero fields match everything.
type TransactionFilter struct {
	Range      models.DateRange
	MerchantID string
	Status     models.Status
	Search     string
}

func (f TransactionFilter) match(t txn) bool {
	if !inRange(t.at, f.Range) {
		return false
	}
	if f.MerchantID != "" && !strings.EqualFold(t.MerchantID, f.MerchantID) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	for _, field := range []string{fmt.Sprint(t.TxnID), t.MerchantID, t.AuthCode, t.CardLast4, t.CardType} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// inRange includes every instant of the range's end day.
func inRange(at time.Time, r models.DateRange) bool {
	if !r.Start.IsZero() && at.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !at.Before(r.End.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Transactions returns matching transactions, newest first.
func (s *Store) Transactions(f TransactionFilter) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for i := len(s.txns) - 1; i >= 0; i-- {
		if f.match(s.txns[i]) {
			out = append(out, s.txns[i].Transaction)
		}
	}
	return out
}

// Recent returns up to limit transactions after since, newest first.
func (s *Store) Recent(since time.Time, limit int) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for i := len(s.txns) - 1; i >= 0 && len(out) < limit; i-- {
		if !s.txns[i].at.After(since) {
			break
		}
		out = append(out, s.txns[i].Transaction)
	}
	return out
}

// between snapshots the transactions of r, oldest first.
func (s *Store) between(r models.DateRange) []txn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []txn
	for _, t := range s.txns {
		if inRange(t.at, r) {
			out = append(out, t)
		}
	}
	return out
}
