package db

import (
	"fmt"
	"sync"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var (
	dbConn *sqlite.Conn
	// connMu serialises access to dbConn; a sqlite.Conn is not safe for
	// concurrent use and the async writer shares it with the REPL.
	connMu sync.Mutex
)

// InitDB opens the request log database and creates its tables
func InitDB(dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	conn, err := sqlite.OpenConn(dbPath, sqlite.OpenReadWrite|sqlite.OpenCreate)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	return InitDBWithConn(conn)
}

// InitDBWithConn initializes with an existing connection (for testing)
func InitDBWithConn(conn *sqlite.Conn) error {
	connMu.Lock()
	defer connMu.Unlock()
	dbConn = conn
	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Enabled reports whether a database has been initialized
func Enabled() bool {
	connMu.Lock()
	defer connMu.Unlock()
	return dbConn != nil
}

func Close() error {
	connMu.Lock()
	defer connMu.Unlock()
	if dbConn == nil {
		return nil
	}
	err := dbConn.Close()
	dbConn = nil
	return err
}

func createTables() error {
	createTableSQL := `CREATE TABLE IF NOT EXISTS api_requests (id INTEGER PRIMARY KEY AUTOINCREMENT, session_id TEXT NOT NULL, timestamp DATETIME DEFAULT CURRENT_TIMESTAMP, method TEXT NOT NULL, endpoint TEXT NOT NULL, status_code INTEGER, duration_ms INTEGER, success BOOLEAN, error TEXT)`

	if err := sqlitex.ExecuteTransient(dbConn, createTableSQL, nil); err != nil {
		return err
	}

	indexSQL1 := `CREATE INDEX IF NOT EXISTS idx_session_timestamp ON api_requests(session_id, timestamp)`
	if err := sqlitex.ExecuteTransient(dbConn, indexSQL1, nil); err != nil {
		return err
	}

	indexSQL2 := `CREATE INDEX IF NOT EXISTS idx_endpoint ON api_requests(endpoint)`
	return sqlitex.ExecuteTransient(dbConn, indexSQL2, nil)
}

const insertSQL = `
	INSERT INTO api_requests (
		session_id, method, endpoint, status_code, duration_ms, success, error
	) VALUES (?, ?, ?, ?, ?, ?, ?)
`

// RequestRecord is one logged API request
type RequestRecord struct {
	SessionID  string
	Method     string
	Endpoint   string
	StatusCode int
	DurationMs int64
	Success    bool
	Error      string
}

func (r *RequestRecord) args() []interface{} {
	var errText interface{}
	if r.Error != "" {
		errText = r.Error
	}
	return []interface{}{r.SessionID, r.Method, r.Endpoint, r.StatusCode, r.DurationMs, r.Success, errText}
}

// InsertRequest writes a single record inside its own transaction
func InsertRequest(record *RequestRecord) error {
	return insertBatch([]*RequestRecord{record})
}

func insertBatch(batch []*RequestRecord) (err error) {
	connMu.Lock()
	defer connMu.Unlock()
	if dbConn == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := sqlitex.ExecuteTransient(dbConn, "BEGIN IMMEDIATE", nil); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			sqlitex.ExecuteTransient(dbConn, "ROLLBACK", nil)
		}
	}()

	for _, record := range batch {
		err = sqlitex.ExecuteTransient(dbConn, insertSQL, &sqlitex.ExecOptions{Args: record.args()})
		if err != nil {
			return fmt.Errorf("failed to insert request record: %w", err)
		}
	}

	if err = sqlitex.ExecuteTransient(dbConn, "COMMIT", nil); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RequestStats summarises the request log of one session
type RequestStats struct {
	Total        int
	Successful   int
	Failed       int
	AverageMs    float64
	ByEndpoint   map[string]int
	ByStatusCode map[int]int
}

// GetRequestStats returns statistics for the given session with read consistency
func GetRequestStats(sessionID string) (*RequestStats, error) {
	connMu.Lock()
	defer connMu.Unlock()
	if dbConn == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	err := sqlitex.ExecuteTransient(dbConn, "BEGIN", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer sqlitex.ExecuteTransient(dbConn, "ROLLBACK", nil)

	stats := &RequestStats{
		ByEndpoint:   make(map[string]int),
		ByStatusCode: make(map[int]int),
	}

	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT COUNT(*), COALESCE(SUM(success), 0) FROM api_requests WHERE session_id = ?",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				stats.Total = int(stmt.ColumnInt64(0))
				stats.Successful = int(stmt.ColumnInt64(1))
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}
	stats.Failed = stats.Total - stats.Successful

	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT AVG(duration_ms) FROM api_requests WHERE session_id = ? AND duration_ms > 0",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				stats.AverageMs = stmt.ColumnFloat(0)
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT endpoint, COUNT(*) FROM api_requests WHERE session_id = ? GROUP BY endpoint",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				stats.ByEndpoint[stmt.ColumnText(0)] = int(stmt.ColumnInt64(1))
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT status_code, COUNT(*) FROM api_requests WHERE session_id = ? GROUP BY status_code",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				stats.ByStatusCode[int(stmt.ColumnInt64(0))] = int(stmt.ColumnInt64(1))
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	if err := sqlitex.ExecuteTransient(dbConn, "COMMIT", nil); err != nil {
		return nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}
	return stats, nil
}
