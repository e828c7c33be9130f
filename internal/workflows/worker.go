package workflows

import (
	"go.temporal.io/sdk/workflow"
)

// Worker defines the interface for the scoring workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker.go -package=mocks -mock_names=Worker=MockWorker
type Worker interface {
	// ScorePassport recomputes the score of one passport in one community
	ScorePassport(ctx workflow.Context, communityID uint64, address string) error
}

type WorkerConfig struct {
	// TaskQueue is the task queue the scoring worker listens on
	TaskQueue string
}

// worker is the concrete implementation of Worker
type worker struct {
	config   WorkerConfig
	executor Executor
}

// NewWorker creates a new worker instance
func NewWorker(executor Executor, config WorkerConfig) Worker {
	return &worker{
		executor: executor,
		config:   config,
	}
}
