package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestEndToEndIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "integration_test.db")

	err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer Close()

	sessionID := "test-integration-session"

	err = InsertRequest(&RequestRecord{SessionID: sessionID, Method: "GET", Endpoint: "/merchants", StatusCode: 200, DurationMs: 150, Success: true})
	if err != nil {
		t.Fatalf("Failed to insert successful request: %v", err)
	}

	err = InsertRequest(&RequestRecord{SessionID: sessionID, Method: "GET", Endpoint: "/transactions", StatusCode: 0, Success: false, Error: "connection refused"})
	if err != nil {
		t.Fatalf("Failed to insert transport failure: %v", err)
	}

	err = InsertRequest(&RequestRecord{SessionID: sessionID, Method: "PUT", Endpoint: "/merchants", StatusCode: 400, DurationMs: 200, Success: false, Error: "invalid email"})
	if err != nil {
		t.Fatalf("Failed to insert rejected request: %v", err)
	}

	err = InsertRequest(&RequestRecord{SessionID: "other-session", Method: "GET", Endpoint: "/merchants", StatusCode: 200, DurationMs: 10, Success: true})
	if err != nil {
		t.Fatalf("Failed to insert request for other session: %v", err)
	}

	stats, err := GetRequestStats(sessionID)
	if err != nil {
		t.Fatalf("Failed to get request stats: %v", err)
	}

	if stats.Total != 3 {
		t.Errorf("Expected 3 total requests, got %v", stats.Total)
	}
	if stats.Successful != 1 {
		t.Errorf("Expected 1 successful request, got %v", stats.Successful)
	}
	if stats.Failed != 2 {
		t.Errorf("Expected 2 failed requests, got %v", stats.Failed)
	}
	if stats.AverageMs != 175.0 {
		t.Errorf("Expected average duration of 175.0 ms, got %v", stats.AverageMs)
	}
	if stats.ByEndpoint["/merchants"] != 2 {
		t.Errorf("Expected 2 requests to /merchants, got %v", stats.ByEndpoint["/merchants"])
	}
	if stats.ByStatusCode[0] != 1 || stats.ByStatusCode[200] != 1 || stats.ByStatusCode[400] != 1 {
		t.Errorf("Unexpected status code distribution: %v", stats.ByStatusCode)
	}
}

func TestAsyncLoggerFlushesOnStop(t *testing.T) {
	if err := InitDB(filepath.Join(t.TempDir(), "async.db")); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer Close()

	logger := NewAsyncLogger(100, 10, time.Hour, nil)
	recorder := NewRecorder("async-session", logger, nil)

	for i := 0; i < 25; i++ {
		recorder.ObserveRequest("GET", "/charts/data/recent", 200, 5*time.Millisecond, nil)
	}
	recorder.ObserveRequest("GET", "/charts/data/recent", 500, time.Millisecond, errors.New("api returned 500"))
	logger.Stop()
	logger.Stop()

	stats, err := GetRequestStats("async-session")
	if err != nil {
		t.Fatalf("Failed to get request stats: %v", err)
	}
	if stats.Total != 26 {
		t.Errorf("Expected 26 logged requests, got %d", stats.Total)
	}
	if stats.Failed != 1 {
		t.Errorf("Expected 1 failed request, got %d", stats.Failed)
	}
}

func TestSynchronousRecorder(t *testing.T) {
	if err := InitDB(filepath.Join(t.TempDir(), "sync.db")); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer Close()

	NewRecorder("sync-session", nil, nil).ObserveRequest("POST", "/merchants", 201, 30*time.Millisecond, nil)

	stats, err := GetRequestStats("sync-session")
	if err != nil {
		t.Fatalf("Failed to get request stats: %v", err)
	}
	if stats.Total != 1 || stats.ByStatusCode[201] != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestSynchronousRecorderLogsWriteFailure(t *testing.T) {
	Close()
	logger, hook := logtest.NewNullLogger()

	NewRecorder("sync-session", nil, logger).ObserveRequest("GET", "/merchants", 200, time.Millisecond, nil)

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("Expected a warning for the failed write")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %v", entry.Level)
	}
	if entry.Data["endpoint"] != "/merchants" {
		t.Errorf("Expected endpoint field, got %v", entry.Data)
	}
}

func TestUninitializedDatabase(t *testing.T) {
	Close()
	if Enabled() {
		t.Fatal("Expected database to be disabled after Close")
	}
	if err := InsertRequest(&RequestRecord{SessionID: "x"}); err == nil {
		t.Error("Expected error inserting without a database")
	}
	if _, err := GetRequestStats("x"); err == nil {
		t.Error("Expected error reading stats without a database")
	}
	if err := InitDB(""); err == nil {
		t.Error("Expected error for empty path")
	}
}
