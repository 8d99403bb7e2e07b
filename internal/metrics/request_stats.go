package metrics

import (
	"math"
	"strconv"
	"sync"
	"time"
)

// RequestStats tracks latency and outcome of API requests
type RequestStats struct {
	start         time.Time
	counts        int
	executionTime time.Duration
	sumSquares    float64
	statusCodes   map[string]uint64
	mu            sync.Mutex
	maxCodes      int // Maximum number of distinct codes to track
}

// NewRequestStats creates a new RequestStats instance
func NewRequestStats() *RequestStats {
	return &RequestStats{
		start:       time.Now(),
		statusCodes: make(map[string]uint64),
		maxCodes:    50,
	}
}

// StatusLabel maps an HTTP status to the key used in the distribution.
// Transport failures carry no status and are recorded as "ERR".
func StatusLabel(status int) string {
	if status <= 0 {
		return "ERR"
	}
	return strconv.Itoa(status)
}

// ObserveRequest records one finished request
func (rs *RequestStats) ObserveRequest(method, endpoint string, status int, duration time.Duration, err error) {
	rs.RecordRequest(duration, StatusLabel(status))
}

// RecordRequest records a request with its duration and status label
func (rs *RequestStats) RecordRequest(duration time.Duration, code string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.executionTime += duration
	rs.counts++
	ns := float64(duration)
	rs.sumSquares += ns * ns

	if code == "" {
		return
	}
	rs.statusCodes[code]++

	// Evict the least frequent code once the map grows past its bound
	if len(rs.statusCodes) > rs.maxCodes {
		var minCode string
		var minCount uint64 = ^uint64(0)
		for c, count := range rs.statusCodes {
			if count < minCount {
				minCount = count
				minCode = c
			}
		}
		delete(rs.statusCodes, minCode)
	}
}

// RequestCount returns the number of recorded requests
func (rs *RequestStats) RequestCount() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.counts
}

// Uptime returns the time since the stats were created
func (rs *RequestStats) Uptime() time.Duration {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return time.Since(rs.start)
}

// MeanLatency calculates the mean request latency
func (rs *RequestStats) MeanLatency() time.Duration {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.counts == 0 {
		return 0
	}
	return rs.executionTime / time.Duration(rs.counts)
}

// StandardDeviation calculates the population standard deviation of latencies
func (rs *RequestStats) StandardDeviation() time.Duration {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.counts <= 1 {
		return 0
	}
	n := float64(rs.counts)
	mean := float64(rs.executionTime) / n
	variance := rs.sumSquares/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return time.Duration(math.Sqrt(variance))
}

// StatusCodes returns a copy of the status code distribution
func (rs *RequestStats) StatusCodes() map[string]uint64 {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	result := make(map[string]uint64, len(rs.statusCodes))
	for k, v := range rs.statusCodes {
		result[k] = v
	}
	return result
}
