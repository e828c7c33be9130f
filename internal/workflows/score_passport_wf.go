package workflows

import (
	"fmt"
	"strings"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/gitcoinco/passport-scorer/internal/domain"
	"github.com/gitcoinco/passport-scorer/internal/logger"
	"github.com/gitcoinco/passport-scorer/internal/store/schema"
)

// SweepWorkflowIDPrefix marks executions dispatched by the rescore sweeper;
// their in-progress status is BULK_PROCESSING instead of PROCESSING
const SweepWorkflowIDPrefix = "score-passport-sweep-"

// scoreProcessingStatus derives the in-progress status from the workflow ID.
// Reading the ID is deterministic, so this is safe inside workflow code.
func scoreProcessingStatus(ctx workflow.Context) schema.ScoreStatus {
	if strings.HasPrefix(workflow.GetInfo(ctx).WorkflowExecution.ID, SweepWorkflowIDPrefix) {
		return schema.ScoreStatusBulkProcessing
	}
	return schema.ScoreStatusProcessing
}

// ScorePassport recomputes the score of one passport in one community.
//
// The workflow starts by claiming the passport's pending-recalculation
// flag; losing the claim means another execution already covers this
// trigger and the workflow no-ops. Everything after the claim is
// idempotent: stamps are fully replaced and the score row is upserted, so
// a retried run converges to the same state.
func (w *worker) ScorePassport(ctx workflow.Context, communityID uint64, address string) error {
	logger.InfoWf(ctx, "Scoring passport",
		zap.Uint64("communityID", communityID),
		zap.String("address", address),
	)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	// Step 1: Claim the recalculation flag. Exactly one of any set of
	// concurrent triggers wins; the rest stop here.
	var claim *ClaimResult
	err := workflow.ExecuteActivity(ctx, w.executor.ClaimPassport, communityID, address).Get(ctx, &claim)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to claim passport: %w", err),
			zap.Uint64("communityID", communityID),
			zap.String("address", address),
		)
		return err
	}
	if !claim.Claimed {
		logger.InfoWf(ctx, fmt.Sprintf(
			"no passport found for address=%s community_id=%d that has requires_calculation=True or None",
			address, communityID,
		))
		return nil
	}

	// Step 2: Surface the in-progress state before any slow work
	err = workflow.ExecuteActivity(ctx, w.executor.MarkScoreProcessing, claim.PassportID, scoreProcessingStatus(ctx)).Get(ctx, nil)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to mark score processing: %w", err),
			zap.Uint64("passportID", claim.PassportID),
		)
		return err
	}

	// Step 3: Fetch the current stamps from the upstream registry
	var passport *domain.PassportData
	err = workflow.ExecuteActivity(ctx, w.executor.FetchPassport, address).Get(ctx, &passport)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to fetch passport: %w", err),
			zap.String("address", address),
		)
		w.markScoreError(ctx, claim.PassportID, "Unable to fetch passport data.")
		return err
	}
	if passport == nil {
		// Not an infrastructure failure: the registry simply has nothing
		// for this address. Record the terminal state and finish cleanly.
		w.markScoreError(ctx, claim.PassportID, domain.MsgNoPassport)
		return nil
	}

	// Step 4: Drop stamps with invalid credentials
	var valid []domain.Stamp
	err = workflow.ExecuteActivity(ctx, w.executor.ValidateStamps, address, passport).Get(ctx, &valid)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to validate stamps: %w", err),
			zap.String("address", address),
		)
		w.markScoreError(ctx, claim.PassportID, "Unable to validate stamps.")
		return err
	}

	// Step 5: Apply the community's deduplication policy
	var dedupResult *DeduplicationResult
	err = workflow.ExecuteActivity(ctx, w.executor.DeduplicateStamps, communityID, address, valid).Get(ctx, &dedupResult)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to deduplicate stamps: %w", err),
			zap.String("address", address),
		)
		w.markScoreError(ctx, claim.PassportID, "Unable to deduplicate stamps.")
		return err
	}

	// Step 6: Persist the kept stamps and burn their hashes
	err = workflow.ExecuteActivity(ctx, w.executor.SaveStamps, claim.PassportID, communityID, address, dedupResult.Kept).Get(ctx, nil)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to save stamps: %w", err),
			zap.String("address", address),
		)
		w.markScoreError(ctx, claim.PassportID, "Unable to save stamps.")
		return err
	}

	// Step 7: FIFO displacement. Evict the losing claims and rescore the
	// affected addresses in the background.
	if len(dedupResult.Displaced) > 0 {
		var affected []string
		err = workflow.ExecuteActivity(ctx, w.executor.EvictDisplacedStamps, communityID, address, dedupResult.Displaced).Get(ctx, &affected)
		if err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("failed to evict displaced stamps: %w", err),
				zap.String("address", address),
			)
			w.markScoreError(ctx, claim.PassportID, "Unable to evict displaced stamps.")
			return err
		}

		w.rescoreDisplacedPassports(ctx, communityID, affected)
	}

	// Step 8: Compute and persist the final score
	var summary *ScoreSummary
	err = workflow.ExecuteActivity(ctx, w.executor.ComputeAndSaveScore, claim.PassportID, communityID, address, dedupResult.Kept).Get(ctx, &summary)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to compute score: %w", err),
			zap.String("address", address),
		)
		w.markScoreError(ctx, claim.PassportID, "Unable to compute score.")
		return err
	}

	// Step 9: Publish to the score feed. Consumers can always re-read the
	// API, so a broken broker never fails the pass.
	err = workflow.ExecuteActivity(ctx, w.executor.PublishScoreUpdate, communityID, address, summary).Get(ctx, nil)
	if err != nil {
		logger.WarnWf(ctx, "Failed to publish score update (non-fatal)",
			zap.String("address", address),
			zap.Error(err),
		)
	}

	logger.InfoWf(ctx, "Passport scored successfully",
		zap.Uint64("communityID", communityID),
		zap.String("address", address),
		zap.String("score", summary.Score),
	)

	return nil
}

// markScoreError records the terminal ERROR state; a failure here is logged
// but never masks the original error
func (w *worker) markScoreError(ctx workflow.Context, passportID uint64, message string) {
	err := workflow.ExecuteActivity(ctx, w.executor.MarkScoreError, passportID, message).Get(ctx, nil)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to mark score error: %w", err),
			zap.Uint64("passportID", passportID),
		)
	}
}

// rescoreDisplacedPassports starts a fire-and-forget child workflow per
// address whose stamps were displaced. Startup failures are non-fatal: the
// displaced passports stay flagged and the sweeper picks them up.
func (w *worker) rescoreDisplacedPassports(ctx workflow.Context, communityID uint64, addresses []string) {
	for _, displaced := range addresses {
		childWorkflowOptions := workflow.ChildWorkflowOptions{
			WorkflowID:            fmt.Sprintf("score-passport-%d-%s-displaced", communityID, displaced),
			WorkflowRunTimeout:    time.Hour,
			TaskQueue:             w.config.TaskQueue,
			WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
			ParentClosePolicy:     enums.PARENT_CLOSE_POLICY_ABANDON, // Don't wait for completion
		}
		childCtx := workflow.WithChildOptions(ctx, childWorkflowOptions)

		childWorkflow := workflow.ExecuteChildWorkflow(childCtx, w.ScorePassport, communityID, displaced)

		// Only check if the child started successfully, don't wait for it
		var childExecution workflow.Execution
		if err := childWorkflow.GetChildWorkflowExecution().Get(childCtx, &childExecution); err != nil {
			logger.WarnWf(ctx, "Failed to start displaced rescore workflow (non-fatal)",
				zap.String("address", displaced),
				zap.Error(err),
			)
		} else {
			logger.InfoWf(ctx, "Displaced rescore workflow started",
				zap.String("address", displaced),
				zap.String("workflowID", childExecution.ID),
			)
		}
	}
}
