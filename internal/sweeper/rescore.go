package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/gitcoinco/passport-scorer/internal/adapter"
	"github.com/gitcoinco/passport-scorer/internal/logger"
	"github.com/gitcoinco/passport-scorer/internal/providers/temporal"
	"github.com/gitcoinco/passport-scorer/internal/store"
	"github.com/gitcoinco/passport-scorer/internal/workflows"
)

const (
	SWEEP_CYCLE_INTERVAL = 5 * time.Minute // Time to sleep between sweep cycles
)

// RescoreSweeperConfig holds configuration for the rescore sweeper
type RescoreSweeperConfig struct {
	BatchSize      int           // Passports to dispatch per cycle
	WorkerPoolSize int           // Concurrent dispatches
	GracePeriod    time.Duration // Only dispatch passports flagged longer than this
}

// rescoreSweeper re-dispatches scoring workflows for passports whose
// pending-recalculation flag never got picked up (lost triggers, crashed
// workers, FIFO displacement cascades). Double dispatch is harmless: the
// claim gate collapses concurrent triggers into one scoring pass.
type rescoreSweeper struct {
	config                *RescoreSweeperConfig
	store                 store.Store
	pool                  pond.Pool
	clock                 adapter.Clock
	orchestrator          temporal.TemporalOrchestrator
	orchestratorTaskQueue string
	running               atomic.Bool
	stopChan              chan struct{}
	stoppedCh             chan struct{}
}

// NewRescoreSweeper creates a new rescore sweeper
func NewRescoreSweeper(
	config *RescoreSweeperConfig,
	st store.Store,
	clock adapter.Clock,
	orchestrator temporal.TemporalOrchestrator,
	orchestratorTaskQueue string,
) Sweeper {
	return &rescoreSweeper{
		config:                config,
		store:                 st,
		clock:                 clock,
		orchestrator:          orchestrator,
		orchestratorTaskQueue: orchestratorTaskQueue,
		stopChan:              make(chan struct{}),
		stoppedCh:             make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *rescoreSweeper) Name() string {
	return "rescore-sweeper"
}

// Start begins the sweeper's main loop
func (s *rescoreSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting rescore sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("grace_period", s.config.GracePeriod),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	// Continuous loop - stops when context is canceled or stop is requested
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Rescore sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Rescore sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *rescoreSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *rescoreSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping rescore sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Rescore sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Rescore sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single sweep cycle
func (s *rescoreSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	// Passports flagged within the grace period are skipped: their trigger
	// is most likely still in flight
	olderThan := startTime.Add(-s.config.GracePeriod)
	refs, err := s.store.ListPassportsRequiringCalculation(ctx, olderThan, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list passports requiring calculation: %w", err)
	}

	if len(refs) == 0 {
		logger.InfoCtx(ctx, "No passports pending recalculation, waiting...")
		if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
			return ctx.Err() // Context canceled during sleep
		}
		return nil
	}

	logger.InfoCtx(ctx, "Found passports pending recalculation", zap.Int("count", len(refs)))

	var dispatched, failed atomic.Int32
	for _, ref := range refs {
		s.pool.Submit(func() {
			if err := s.dispatchRescore(ctx, ref); err != nil {
				failed.Add(1)
				logger.ErrorCtx(ctx, err,
					zap.Uint64("community_id", ref.CommunityID),
					zap.String("address", ref.Address),
				)
				return
			}
			dispatched.Add(1)
		})
	}

	// Wait for all dispatches to complete
	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", duration),
		zap.Int("total", len(refs)),
		zap.Int32("dispatched", dispatched.Load()),
		zap.Int32("failed", failed.Load()),
	)

	// Sleep for a while to avoid tight loop; failed dispatches stay
	// flagged and are retried next cycle
	if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
		return ctx.Err() // Context canceled during sleep
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation. Returns true if sleep completed normally.
func (s *rescoreSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}

// dispatchRescore starts a scoring workflow for one flagged passport
func (s *rescoreSweeper) dispatchRescore(ctx context.Context, ref store.PassportRef) error {
	eventID := ulid.MustNewDefault(s.clock.Now()).String()

	workflowOptions := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("%s%d-%s-%s", workflows.SweepWorkflowIDPrefix, ref.CommunityID, ref.Address, eventID),
		TaskQueue:             s.orchestratorTaskQueue,
		WorkflowRunTimeout:    time.Hour,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}

	w := workflows.NewWorker(nil, workflows.WorkerConfig{})
	workflowRun, err := s.orchestrator.ExecuteWorkflow(ctx, workflowOptions, w.ScorePassport, ref.CommunityID, ref.Address)
	if err != nil {
		return fmt.Errorf("failed to start rescore workflow: %w", err)
	}

	// Log workflow start (handle nil workflowRun from tests)
	if workflowRun != nil {
		logger.InfoCtx(ctx, "Rescore workflow started",
			zap.Uint64("community_id", ref.CommunityID),
			zap.String("address", ref.Address),
			zap.String("workflow_id", workflowRun.GetID()),
			zap.String("run_id", workflowRun.GetRunID()),
		)
	}

	return nil
}
