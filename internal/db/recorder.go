package db

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Recorder feeds finished API requests into the request log.
type Recorder struct {
	sessionID string
	async     *AsyncLogger
	log       *logrus.Entry
}

// NewRecorder writes through async when set, synchronously otherwise.
// A nil logger discards write failures.
func NewRecorder(sessionID string, async *AsyncLogger, logger *logrus.Logger) *Recorder {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Recorder{sessionID: sessionID, async: async, log: logger.WithField("component", "db")}
}

func (r *Recorder) ObserveRequest(method, endpoint string, status int, duration time.Duration, err error) {
	record := &RequestRecord{
		SessionID:  r.sessionID,
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: status,
		DurationMs: duration.Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		record.Error = err.Error()
	}

	if r.async != nil {
		r.async.Log(record)
		return
	}
	if err := InsertRequest(record); err != nil {
		r.log.WithError(err).WithField("endpoint", endpoint).Warn("failed to write request record")
	}
}
