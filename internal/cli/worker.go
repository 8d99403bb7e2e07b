package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merchdash/internal/feed"

	"github.com/google/uuid"
)

const workerStopTimeout = 5 * time.Second

// workerInfo holds the state of a background feed worker
type workerInfo struct {
	id        string
	name      string
	feed      *feed.Feed
	startTime time.Time
	cancel    context.CancelFunc
	done      chan struct{}
}

// StartFeedWorker runs f until it is stopped or the CLI closes
func (cli *CLI) StartFeedWorker(name string, f *feed.Feed) (string, error) {
	if f == nil {
		return "", errors.New("no feed to run")
	}

	// Generate a unique ID for the worker
	workerID := uuid.New().String()[:8]

	ctx, cancel := context.WithCancel(cli.ctx)
	worker := &workerInfo{
		id:        workerID,
		name:      name,
		feed:      f,
		startTime: time.Now(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	cli.mu.Lock()
	cli.workers[workerID] = worker
	cli.order = append(cli.order, workerID)
	cli.mu.Unlock()

	log := cli.logger.WithField("worker", workerID)
	go func() {
		defer close(worker.done)
		defer cli.forget(worker)

		log.WithField("interval", f.Interval()).Info("feed worker started")
		if err := f.Run(ctx); err != nil {
			log.WithError(err).Error("feed worker exited")
			return
		}
		log.Info("feed worker stopped")
	}()

	return workerID, nil
}

// forget drops w from the registry if it is still registered.
func (cli *CLI) forget(w *workerInfo) {
	cli.mu.Lock()
	defer cli.mu.Unlock()
	if cli.workers[w.id] != w {
		return
	}
	delete(cli.workers, w.id)
	for i, id := range cli.order {
		if id == w.id {
			cli.order = append(cli.order[:i], cli.order[i+1:]...)
			break
		}
	}
}

func (cli *CLI) FeedWorker(id string) (*feed.Feed, bool) {
	cli.mu.Lock()
	defer cli.mu.Unlock()
	w, ok := cli.workers[id]
	if !ok {
		return nil, false
	}
	return w.feed, true
}

func (cli *CLI) WorkerIDs() []string {
	cli.mu.Lock()
	defer cli.mu.Unlock()
	return append([]string(nil), cli.order...)
}

// StopWorker stops a worker by its ID and waits for it to exit
func (cli *CLI) StopWorker(id string) error {
	cli.mu.Lock()
	worker, exists := cli.workers[id]
	cli.mu.Unlock()
	if !exists {
		return fmt.Errorf("worker with ID %s not found", id)
	}

	worker.cancel()
	cli.wait(worker)
	return nil
}

// wait blocks until w exits or workerStopTimeout passes. A worker that
// overstays is dropped from the registry anyway.
func (cli *CLI) wait(w *workerInfo) {
	select {
	case <-w.done:
	case <-time.After(workerStopTimeout):
		cli.logger.WithField("worker", w.id).Warn("worker did not stop in time")
		cli.forget(w)
	}
}

// StopAllWorkers stops all running workers
func (cli *CLI) StopAllWorkers() error {
	cli.mu.Lock()
	workers := make([]*workerInfo, 0, len(cli.workers))
	for _, w := range cli.workers {
		workers = append(workers, w)
	}
	cli.mu.Unlock()

	for _, w := range workers {
		w.cancel()
	}
	for _, w := range workers {
		cli.wait(w)
	}
	return nil
}

// GetWorkerStats returns statistics for all workers
func (cli *CLI) GetWorkerStats() map[string]interface{} {
	cli.mu.Lock()
	defer cli.mu.Unlock()

	stats := make(map[string]interface{})
	stats["active"] = len(cli.workers)
	if len(cli.workers) == 0 {
		return stats
	}

	workerDetails := make([]map[string]interface{}, 0, len(cli.workers))
	for _, id := range cli.order {
		worker := cli.workers[id]
		f := worker.feed

		lastError := ""
		if err := f.LastError(); err != nil {
			lastError = err.Error()
		}
		workerDetails = append(workerDetails, map[string]interface{}{
			"id":          id,
			"name":        worker.name,
			"interval":    f.Interval().String(),
			"runtime":     time.Since(worker.startTime).Round(time.Second).String(),
			"paused":      f.Paused(),
			"last_update": f.LastUpdate(),
			"last_error":  lastError,
			"batch":       len(f.Latest()),
		})
	}
	stats["workers"] = workerDetails
	return stats
}
