package command

import (
	"merchdash/internal/feed"
)

// WorkerController defines the interface for managing background workers
type WorkerController interface {
	// StartFeedWorker runs f in the background until it is stopped
	StartFeedWorker(name string, f *feed.Feed) (string, error)

	// FeedWorker returns the feed run by the worker with the given ID
	FeedWorker(id string) (*feed.Feed, bool)

	// WorkerIDs lists the running workers in start order
	WorkerIDs() []string

	// StopWorker stops a worker by its ID
	StopWorker(id string) error

	// StopAllWorkers stops all running workers
	StopAllWorkers() error

	// GetWorkerStats returns statistics for all workers
	GetWorkerStats() map[string]interface{}
}
