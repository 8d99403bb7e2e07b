package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchdash/internal/filters"
	"merchdash/internal/models"
)

type observed struct {
	method   string
	endpoint string
	status   int
	err      error
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observed
}

func (r *recordingObserver) ObserveRequest(method, endpoint string, status int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, observed{method, endpoint, status, err})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, r *mux.Router, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api/v1/", opts...)
	require.NoError(t, err)
	return c
}

func testRange() models.DateRange {
	return models.DateRange{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	_, err = NewClient("ftp://example.com")
	assert.Error(t, err)

	c, err := NewClient("http://localhost:8080/api/v1/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1", c.BaseURL())
}

func TestListTransactionsSendsFilters(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/transactions", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "50", q.Get("size"))
		assert.Equal(t, "2026-01-01", q.Get("startDate"))
		assert.Equal(t, "2026-01-31", q.Get("endDate"))
		assert.Equal(t, "MCH-00001", q.Get("merchantId"))
		assert.Equal(t, "failed", q.Get("status"))
		assert.False(t, q.Has("search"))

		writeJSON(w, http.StatusOK, map[string]any{
			"transactions": []map[string]any{
				{"txnId": 7, "merchantId": "MCH-00001", "amount": 12.5, "currency": "USD", "status": "failed"},
			},
			"totalTransactions": 101,
			"page":              2,
			"size":              50,
			"totalPages":        3,
		})
	}).Methods(http.MethodGet)

	c := newTestClient(t, r)
	page, err := c.ListTransactions(context.Background(), filters.Transaction{
		Page: 2, Size: 50, Range: testRange(), Status: models.StatusFailed, MerchantID: "MCH-00001",
	})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, int64(7), page.Transactions[0].TxnID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(page.Transactions[0].Amount))
	assert.Equal(t, 101, page.TotalTransactions)
	assert.Nil(t, page.Summary)
}

func TestErrorMessageFromBody(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/merchants/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Merchant not found: " + mux.Vars(req)["id"]})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/merchants", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid email"})
	}).Methods(http.MethodPost)

	obs := &recordingObserver{}
	c := newTestClient(t, r, WithObserver(obs))

	_, err := c.GetMerchant(context.Background(), "MCH-404")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Merchant not found: MCH-404", apiErr.Message)
	assert.True(t, IsNotFound(err))

	_, err = c.CreateMerchant(context.Background(), models.MerchantRequest{BusinessName: "Acme"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid email", apiErr.Message)
	assert.False(t, IsNotFound(err))

	require.Len(t, obs.calls, 2)
	assert.Equal(t, observed{"GET", "/merchants/MCH-404", 404, obs.calls[0].err}, obs.calls[0])
	assert.Equal(t, "POST", obs.calls[1].method)
	assert.Equal(t, 400, obs.calls[1].status)
}

func TestErrorWithoutBody(t *testing.T) {
	e := newError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.Equal(t, "", e.Message)
	assert.Equal(t, "api returned 502 Bad Gateway", e.Error())
}

func TestUpdateMerchantSendsPayload(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/merchants/{id}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, map[string]any{"businessName": "Acme Ltd", "status": "suspended"}, body)
		writeJSON(w, http.StatusOK, map[string]any{"merchantId": mux.Vars(req)["id"], "status": "suspended"})
	}).Methods(http.MethodPut)

	c := newTestClient(t, r)
	got, err := c.UpdateMerchant(context.Background(), "MCH-1", models.MerchantRequest{BusinessName: "Acme Ltd", Status: "suspended"})
	require.NoError(t, err)
	assert.Equal(t, "MCH-1", got.MerchantID)

	_, err = c.UpdateMerchant(context.Background(), "", models.MerchantRequest{})
	assert.Error(t, err)
}

func TestListMerchantsQuery(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/merchants", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "20", q.Get("offset"))
		assert.Equal(t, "coffee", q.Get("search"))
		writeJSON(w, http.StatusOK, map[string]any{
			"merchants":  []map[string]any{{"merchantId": "MCH-3", "merchantName": "Coffee Co"}},
			"pagination": map[string]any{"total": 25, "limit": 10, "offset": 20, "currentPage": 3, "totalPages": 3},
		})
	}).Methods(http.MethodGet)

	c := newTestClient(t, r)
	list, err := c.ListMerchants(context.Background(), MerchantQuery{Search: "coffee", Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, 25, list.Pagination.Total)
	assert.Equal(t, "Coffee Co", list.Merchants[0].MerchantName)
}

func TestRecentTransactionsSince(t *testing.T) {
	since := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/charts/data/recent", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "2026-03-04T10:00:00Z", req.URL.Query().Get("since"))
		assert.Equal(t, "10", req.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, []map[string]any{{"txnId": 1}, {"txnId": 2}})
	}).Methods(http.MethodGet)

	c := newTestClient(t, r)
	txns, err := c.RecentTransactions(context.Background(), since, 10)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestDrillDownAndReports(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/charts/drill-down/{category}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "cardtype", mux.Vars(req)["category"])
		assert.Equal(t, "VISA", req.URL.Query().Get("categoryValue"))
		writeJSON(w, http.StatusOK, models.ChartData{Labels: []string{"a"}, Datasets: []models.ChartDataset{{Label: "x", Data: []float64{3}}}, ChartType: "bar"})
	})
	r.HandleFunc("/api/v1/reports/revenue/forecast", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "7", req.URL.Query().Get("periods"))
		writeJSON(w, http.StatusOK, map[string]any{"method": "linear", "confidence": 0.95})
	})
	r.HandleFunc("/api/v1/reports/revenue/growth", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "2026", req.URL.Query().Get("currentYear"))
		assert.False(t, req.URL.Query().Has("comparisonYear"))
		writeJSON(w, http.StatusOK, map[string]any{"currentYear": 2026, "comparisonYear": 2025})
	})

	c := newTestClient(t, r)
	chart, err := c.DrillDown(context.Background(), DrillCardType, "VISA", testRange())
	require.NoError(t, err)
	assert.Equal(t, 3.0, chart.Max())

	forecast, err := c.RevenueForecast(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "linear", forecast.Method)

	growth, err := c.GrowthAnalysis(context.Background(), 2026, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, growth.ComparisonYear)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	c, err := NewClient(url, WithObserver(obs))
	require.NoError(t, err)

	_, err = c.TransactionVolume(context.Background(), testRange())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
	require.Len(t, obs.calls, 1)
	assert.Equal(t, 0, obs.calls[0].status)
}

func TestTimeout(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/analytics/transactions/volume", func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-req.Context().Done():
		case <-time.After(time.Second):
		}
	})

	c := newTestClient(t, r, WithTimeout(20*time.Millisecond))
	_, err := c.TransactionVolume(context.Background(), testRange())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
