package db

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AsyncLogger batches request records and writes them off the request path
type AsyncLogger struct {
	records   chan *RequestRecord
	wg        sync.WaitGroup
	batchSize int
	interval  time.Duration
	done      chan struct{}
	stopOnce  sync.Once
	log       *logrus.Entry
}

// NewAsyncLogger starts the background writer. A nil logger discards output.
func NewAsyncLogger(bufferSize, batchSize int, interval time.Duration, logger *logrus.Logger) *AsyncLogger {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	l := &AsyncLogger{
		records:   make(chan *RequestRecord, bufferSize),
		batchSize: batchSize,
		interval:  interval,
		done:      make(chan struct{}),
		log:       logger.WithField("component", "db"),
	}
	l.start()
	return l
}

// Stop flushes queued records and waits for the writer to exit
func (l *AsyncLogger) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		l.wg.Wait()
	})
}

// Log queues a record without blocking. Records are dropped when the buffer is full.
func (l *AsyncLogger) Log(record *RequestRecord) {
	select {
	case <-l.done:
		return
	default:
	}

	select {
	case l.records <- record:
	default:
		l.log.WithField("endpoint", record.Endpoint).Warn("request log buffer full, dropping record")
	}
}

func (l *AsyncLogger) start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		batch := make([]*RequestRecord, 0, l.batchSize)
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		flush := func() {
			if len(batch) == 0 {
				return
			}
			if err := insertBatch(batch); err != nil {
				l.log.WithError(err).WithField("records", len(batch)).Error("failed to write request batch")
			}
			batch = batch[:0]
		}

		for {
			select {
			case record := <-l.records:
				batch = append(batch, record)
				if len(batch) >= l.batchSize {
					flush()
				}
			case <-ticker.C:
				flush()
			case <-l.done:
				for {
					select {
					case record := <-l.records:
						batch = append(batch, record)
						if len(batch) >= l.batchSize {
							flush()
						}
					default:
						flush()
						return
					}
				}
			}
		}
	}()
}
