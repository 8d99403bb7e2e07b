package demo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"merchdash/internal/forms"
	"merchdash/internal/logging"
	"merchdash/internal/models"
)

const (
	BasePath = "/api/v1"

	defaultWindowDays  = 30
	defaultPageSize    = 20
	defaultRecentLimit = 10
	defaultTopLimit    = 10
)

// Server exposes a Store over the analytics API routes.
type Server struct {
	store *Store
	now   func() time.Time
	log   *logrus.Entry

	mu       sync.Mutex
	listener net.Listener
	http     *http.Server
	cancel   context.CancelFunc
}

// NewServer serves store. A nil logger discards output.
func NewServer(store *Store, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		log:   logger.WithField("component", "demo"),
	}
}

// Router returns the API routes mounted under BasePath.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix(BasePath).Subrouter()
	api.Use(s.logRequests)

	api.HandleFunc("/merchants", s.listMerchants).Methods(http.MethodGet)
	api.HandleFunc("/merchants", s.createMerchant).Methods(http.MethodPost)
	api.HandleFunc("/merchants/{id}", s.getMerchant).Methods(http.MethodGet)
	api.HandleFunc("/merchants/{id}", s.updateMerchant).Methods(http.MethodPut)
	api.HandleFunc("/merchants/{id}/details", s.getMerchantDetails).Methods(http.MethodGet)

	api.HandleFunc("/transactions", s.listTransactions).Methods(http.MethodGet)

	api.HandleFunc("/analytics/transactions/volume", s.ranged(func(t []txn, r models.DateRange, _ *http.Request) (any, error) {
		return volume(t, r), nil
	})).Methods(http.MethodGet)
	api.HandleFunc("/analytics/transactions/success-rate", s.ranged(func(t []txn, _ models.DateRange, _ *http.Request) (any, error) {
		return successRate(t), nil
	})).Methods(http.MethodGet)
	api.HandleFunc("/analytics/transactions/trends", s.ranged(func(t []txn, r models.DateRange, _ *http.Request) (any, error) {
		return trends(t, r), nil
	})).Methods(http.MethodGet)
	api.HandleFunc("/analytics/transactions/peak-times", s.ranged(func(t []txn, _ models.DateRange, _ *http.Request) (any, error) {
		return peakTimes(t), nil
	})).Methods(http.MethodGet)
	api.HandleFunc("/analytics/transactions/card-distribution", s.ranged(func(t []txn, r models.DateRange, _ *http.Request) (any, error) {
		return cardDistribution(t, r), nil
	})).Methods(http.MethodGet)

	api.HandleFunc("/reports/revenue/by-period", s.ranged(s.revenueByPeriod)).Methods(http.MethodGet)
	api.HandleFunc("/reports/revenue/by-merchant", s.ranged(s.revenueByMerchant)).Methods(http.MethodGet)
	api.HandleFunc("/reports/revenue/forecast", s.forecast).Methods(http.MethodGet)
	api.HandleFunc("/reports/revenue/growth", s.growth).Methods(http.MethodGet)
	api.HandleFunc("/reports/merchants/top-performers", s.ranged(s.topPerformers)).Methods(http.MethodGet)

	api.HandleFunc("/charts/line/trends", s.ranged(s.lineChart)).Methods(http.MethodGet)
	api.HandleFunc("/charts/bar/comparison", s.ranged(s.categoryChart("compareBy", "cardtype", barChart))).Methods(http.MethodGet)
	api.HandleFunc("/charts/pie/distribution", s.ranged(s.categoryChart("distributeBy", "cardtype", pieChart))).Methods(http.MethodGet)
	api.HandleFunc("/charts/drill-down/{category}", s.ranged(s.drillDown)).Methods(http.MethodGet)
	api.HandleFunc("/charts/data/recent", s.recent).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	return r
}

// Start listens on addr and serves until Stop. When tick is positive a new
// transaction is recorded every tick.
func (s *Server) Start(addr string, tick time.Duration) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.listener = listener
	s.http = &http.Server{Handler: s.Router(), ReadHeaderTimeout: 5 * time.Second}
	s.cancel = cancel
	srv := s.http
	s.mu.Unlock()

	s.log.WithField("addr", listener.Addr().String()).Info("demo API listening")
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("serve failed")
		}
	}()
	if tick > 0 {
		go s.generate(ctx, tick)
	}
	return nil
}

// Addr is the listening address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv, cancel := s.http, s.cancel
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	cancel()
	return srv.Shutdown(ctx)
}

func (s *Server) generate(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t := s.store.Tick(s.now())
			s.log.WithFields(logrus.Fields{"txn": t.TxnID, "merchant": t.MerchantID}).Debug("generated transaction")
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// badRequest marks a query parameter problem.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return badRequest{fmt.Sprintf(format, args...)}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	var bad badRequest
	if errors.As(err, &bad) {
		writeError(w, http.StatusBadRequest, bad.msg)
		return
	}
	s.log.WithError(err).Error("handler failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, invalid("%s must be a non-negative integer", name)
	}
	return n, nil
}

// dateRange reads startDate and endDate, defaulting to the last
// defaultWindowDays days.
func (s *Server) dateRange(r *http.Request) (models.DateRange, error) {
	q := r.URL.Query()
	start, end := q.Get("startDate"), q.Get("endDate")
	if start == "" && end == "" {
		return models.LastDays(s.now(), defaultWindowDays*24*time.Hour), nil
	}
	if start == "" || end == "" {
		return models.DateRange{}, invalid("startDate and endDate must be given together")
	}
	dr, err := models.ParseDateRange(start, end)
	if err != nil {
		return models.DateRange{}, invalid("%s", err)
	}
	return dr, nil
}

type rangedHandler func(txns []txn, r models.DateRange, req *http.Request) (any, error)

// ranged resolves the request's date range and hands fn its transactions.
func (s *Server) ranged(fn rangedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dr, err := s.dateRange(r)
		if err != nil {
			s.fail(w, err)
			return
		}
		out, err := fn(s.store.between(dr), dr, r)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) listMerchants(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultPageSize)
	if err != nil {
		s.fail(w, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		s.fail(w, err)
		return
	}
	if limit == 0 {
		limit = defaultPageSize
	}

	all := s.store.Merchants(r.URL.Query().Get("search"))
	page := []models.MerchantStats{}
	if offset < len(all) {
		page = all[offset:min(offset+limit, len(all))]
	}
	total := len(all)
	writeJSON(w, http.StatusOK, models.MerchantList{
		Merchants: page,
		Pagination: models.PaginationInfo{
			Total:       total,
			Limit:       limit,
			Offset:      offset,
			CurrentPage: offset/limit + 1,
			TotalPages:  (total + limit - 1) / limit,
			HasNext:     offset+limit < total,
			HasPrevious: offset > 0,
		},
	})
}

func decodeMerchant(r *http.Request) (models.MerchantRequest, error) {
	var req models.MerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, invalid("malformed merchant: %s", err)
	}
	return req, nil
}

func (s *Server) createMerchant(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMerchant(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := forms.ValidateCreate(req).Err(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.store.CreateMerchant(req))
}

func (s *Server) updateMerchant(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMerchant(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := forms.ValidateUpdate(req).Err(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := mux.Vars(r)["id"]
	m, ok := s.store.UpdateMerchant(id, req)
	if !ok {
		writeError(w, http.StatusNotFound, "merchant "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) getMerchant(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := s.store.Merchant(id)
	if !ok {
		writeError(w, http.StatusNotFound, "merchant "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, d.MerchantStats)
}

func (s *Server) getMerchantDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := s.store.Merchant(id)
	if !ok {
		writeError(w, http.StatusNotFound, "merchant "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	dr, err := s.dateRange(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	page, err := intParam(r, "page", 0)
	if err != nil {
		s.fail(w, err)
		return
	}
	size, err := intParam(r, "size", defaultPageSize)
	if err != nil {
		s.fail(w, err)
		return
	}
	if size == 0 {
		size = defaultPageSize
	}
	status, err := models.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		s.fail(w, invalid("%s", err))
		return
	}

	all := s.store.Transactions(TransactionFilter{
		Range:      dr,
		MerchantID: r.URL.Query().Get("merchantId"),
		Status:     status,
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
	})

	summary := models.TransactionSummary{TotalAmount: decimal.Zero}
	for _, t := range all {
		summary.TotalCount++
		summary.TotalAmount = summary.TotalAmount.Add(t.Amount)
		switch t.Status {
		case models.StatusCompleted:
			summary.CompletedCount++
		case models.StatusPending:
			summary.PendingCount++
		case models.StatusFailed:
			summary.FailedCount++
		}
	}

	rows := []models.Transaction{}
	if from := page * size; from < len(all) {
		rows = all[from:min(from+size, len(all))]
	}
	writeJSON(w, http.StatusOK, models.TransactionPage{
		Transactions:      rows,
		TotalTransactions: len(all),
		Page:              page,
		Size:              size,
		TotalPages:        (len(all) + size - 1) / size,
		Summary:           &summary,
	})
}

func (s *Server) revenueByPeriod(t []txn, _ models.DateRange, r *http.Request) (any, error) {
	period := r.URL.Query().Get("period")
	switch period {
	case "":
		period = "daily"
	case "daily", "weekly", "monthly":
	default:
		return nil, invalid("period must be daily, weekly or monthly")
	}
	return revenueByPeriod(t, period), nil
}

func (s *Server) revenueByMerchant(t []txn, _ models.DateRange, r *http.Request) (any, error) {
	limit, err := intParam(r, "limit", defaultTopLimit)
	if err != nil {
		return nil, err
	}
	return revenueByMerchant(t, limit), nil
}

func (s *Server) forecast(w http.ResponseWriter, r *http.Request) {
	periods, err := intParam(r, "periods", 7)
	if err != nil {
		s.fail(w, err)
		return
	}
	history := s.store.between(models.LastDays(s.now(), defaultWindowDays*24*time.Hour))
	writeJSON(w, http.StatusOK, forecast(periodRevenue(history, "daily"), periods))
}

func (s *Server) growth(w http.ResponseWriter, r *http.Request) {
	current, err := intParam(r, "currentYear", s.now().Year())
	if err != nil {
		s.fail(w, err)
		return
	}
	comparison, err := intParam(r, "comparisonYear", current-1)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, growth(s.store.between(models.DateRange{}), current, comparison))
}

func (s *Server) topPerformers(t []txn, dr models.DateRange, r *http.Request) (any, error) {
	limit, err := intParam(r, "limit", defaultTopLimit)
	if err != nil {
		return nil, err
	}
	sortBy := r.URL.Query().Get("sortBy")
	switch sortBy {
	case "":
		sortBy = "revenue"
	case "revenue", "transactions", "successRate":
	default:
		return nil, invalid("sortBy must be revenue, transactions or successRate")
	}
	return topPerformers(t, dr, limit, sortBy), nil
}

func (s *Server) lineChart(t []txn, _ models.DateRange, r *http.Request) (any, error) {
	q := r.URL.Query()
	metric, group := q.Get("metric"), q.Get("groupBy")
	if metric == "" {
		metric = "revenue"
	}
	if group == "" {
		group = "day"
	}
	return lineChart(t, metric, group), nil
}

func (s *Server) categoryChart(param, def string, build func([]txn, func(txn) string) models.ChartData) rangedHandler {
	return func(t []txn, _ models.DateRange, r *http.Request) (any, error) {
		category := r.URL.Query().Get(param)
		if category == "" {
			category = def
		}
		key, ok := categoryKey(strings.ToLower(category))
		if !ok {
			return nil, invalid("unsupported %s %q", param, category)
		}
		return build(t, key), nil
	}
}

func (s *Server) drillDown(t []txn, _ models.DateRange, r *http.Request) (any, error) {
	category := mux.Vars(r)["category"]
	key, ok := categoryKey(strings.ToLower(category))
	if !ok {
		return nil, invalid("unsupported drill-down category %q", category)
	}
	value := strings.TrimSpace(r.URL.Query().Get("categoryValue"))
	if value == "" {
		return nil, invalid("categoryValue is required")
	}
	return drillDown(t, key, value), nil
}

func (s *Server) recent(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultRecentLimit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if limit == 0 {
		limit = defaultRecentLimit
	}
	since := s.now().Add(-5 * time.Minute)
	if raw := r.URL.Query().Get("since"); raw != "" {
		if since, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			s.fail(w, invalid("since must be an RFC 3339 timestamp"))
			return
		}
	}
	writeJSON(w, http.StatusOK, s.store.Recent(since, limit))
}
