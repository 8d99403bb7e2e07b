package view

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"merchdash/internal/db"
	"merchdash/internal/metrics"
)

// RequestStats renders the in-memory request and fetch counters.
func (r *Renderer) RequestStats(rs *metrics.RequestStats, fs *metrics.FetchStats) {
	r.title("API Requests")
	t := r.table("Requests", "Mean Latency", "Std Dev", "Uptime")
	t.Append([]string{
		strconv.Itoa(rs.RequestCount()),
		rs.MeanLatency().String(),
		rs.StandardDeviation().String(),
		rs.Uptime().Round(time.Second).String(),
	})
	t.Render()

	codes := rs.StatusCodes()
	if len(codes) > 0 {
		keys := make([]string, 0, len(codes))
		for k := range codes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ct := r.table("Status", "Count")
		for _, k := range keys {
			ct.Append([]string{k, strconv.FormatUint(codes[k], 10)})
		}
		ct.Render()
	}

	if fs != nil {
		r.title("Fetches")
		m := fs.GetAllMetrics()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ft := r.table("Metric", "Value")
		for _, k := range keys {
			ft.Append([]string{k, fmt.Sprint(m[k])})
		}
		ft.Render()
	}
}

// DbStats renders the persisted request log of one session.
func (r *Renderer) DbStats(sessionID string, s *db.RequestStats) {
	r.title("Session " + sessionID)
	t := r.table("Metric", "Value")
	t.Append([]string{"Total Requests", strconv.Itoa(s.Total)})
	t.Append([]string{"Successful", strconv.Itoa(s.Successful)})
	t.Append([]string{"Failed", strconv.Itoa(s.Failed)})
	t.Append([]string{"Average Duration (ms)", fmt.Sprintf("%.2f", s.AverageMs)})
	t.Render()

	if len(s.ByEndpoint) > 0 {
		endpoints := make([]string, 0, len(s.ByEndpoint))
		for e := range s.ByEndpoint {
			endpoints = append(endpoints, e)
		}
		sort.Strings(endpoints)
		et := r.table("Endpoint", "Requests")
		for _, e := range endpoints {
			et.Append([]string{e, strconv.Itoa(s.ByEndpoint[e])})
		}
		et.Render()
	}

	if len(s.ByStatusCode) > 0 {
		codes := make([]int, 0, len(s.ByStatusCode))
		for c := range s.ByStatusCode {
			codes = append(codes, c)
		}
		sort.Ints(codes)
		st := r.table("Status", "Requests")
		for _, c := range codes {
			st.Append([]string{metrics.StatusLabel(c), strconv.Itoa(s.ByStatusCode[c])})
		}
		st.Render()
	}
}
