package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"github.com/gitcoinco/passport-scorer/internal/api/shared/dto"
	"github.com/gitcoinco/passport-scorer/internal/domain"
	"github.com/gitcoinco/passport-scorer/internal/pagination"
	"github.com/gitcoinco/passport-scorer/internal/providers/temporal"
	"github.com/gitcoinco/passport-scorer/internal/store"
	"github.com/gitcoinco/passport-scorer/internal/store/schema"
	"github.com/gitcoinco/passport-scorer/internal/workflows"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// SubmitPassport flags a passport for scoring and starts the scoring
	// workflow (requires authentication)
	// POST /registry/submit-passport
	SubmitPassport(c *gin.Context)

	// GetScore retrieves the score of one address in a community (requires
	// authentication)
	// GET /registry/score/:scorer_id/:address
	GetScore(c *gin.Context)

	// ListScores retrieves a community's scores, oldest first
	// GET /registry/score/:scorer_id?address=<address>&limit=<limit>&token=<token>&last_score_timestamp__gte=<ts>&last_score_timestamp__gt=<ts>
	ListScores(c *gin.Context)

	// GetScoreHistory retrieves a community's score-update events, newest first
	// GET /registry/score/:scorer_id/history?address=<address>&created_at=<ts>&limit=<limit>&token=<token>
	GetScoreHistory(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store                 store.Store
	orchestrator          temporal.TemporalOrchestrator
	orchestratorTaskQueue string
}

// NewHandler creates a new REST API handler
func NewHandler(st store.Store, orchestrator temporal.TemporalOrchestrator, orchestratorTaskQueue string) Handler {
	return &handler{
		store:                 st,
		orchestrator:          orchestrator,
		orchestratorTaskQueue: orchestratorTaskQueue,
	}
}

// SubmitPassport flags a passport for scoring and starts the scoring workflow
func (h *handler) SubmitPassport(c *gin.Context) {
	var req dto.SubmitPassportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	address := domain.NormalizeAddress(req.Address)

	community, err := h.store.GetCommunity(c.Request.Context(), req.ScorerID)
	if err != nil {
		respondInternalError(c, err, "Failed to get scorer")
		return
	}
	if community == nil {
		respondNotFound(c, "Scorer not found")
		return
	}

	// Flag the passport before starting the workflow: if the start fails or
	// the worker crashes, the rescore sweeper picks the passport up later
	passport, err := h.store.FlagPassportForCalculation(c.Request.Context(), community.ID, address)
	if err != nil {
		respondInternalError(c, err, "Failed to flag passport for calculation")
		return
	}

	score, err := h.store.EnsureScore(c.Request.Context(), passport.ID, schema.ScoreStatusProcessing)
	if err != nil {
		respondInternalError(c, err, "Failed to initialize score")
		return
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("score-passport-%d-%s-%s", community.ID, address, uuid.New().String()),
		TaskQueue:             h.orchestratorTaskQueue,
		WorkflowRunTimeout:    time.Hour,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}

	w := workflows.NewWorker(nil, workflows.WorkerConfig{})
	if _, err := h.orchestrator.ExecuteWorkflow(c.Request.Context(), workflowOptions, w.ScorePassport, community.ID, address); err != nil {
		respondInternalError(c, err, "Failed to start scoring workflow")
		return
	}

	status := string(schema.ScoreStatusProcessing)
	if score.Status != nil {
		status = string(*score.Status)
	}

	c.JSON(http.StatusAccepted, dto.SubmitPassportResponse{
		Address: address,
		Status:  status,
	})
}

// GetScore retrieves the score of one address in a community
func (h *handler) GetScore(c *gin.Context) {
	scorerID, err := strconv.ParseUint(c.Param("scorer_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid scorer id")
		return
	}

	address := c.Param("address")
	if !domain.Address(address).Valid() {
		respondBadRequest(c, "Invalid address")
		return
	}

	community, err := h.store.GetCommunity(c.Request.Context(), scorerID)
	if err != nil {
		respondInternalError(c, err, "Failed to get scorer")
		return
	}
	if community == nil {
		respondNotFound(c, "Scorer not found")
		return
	}

	score, err := h.store.GetScoreByAddress(c.Request.Context(), community.ID, domain.NormalizeAddress(address))
	if err != nil {
		respondInternalError(c, err, "Failed to get score")
		return
	}
	if score == nil {
		respondNotFound(c, domain.MsgNoPassport)
		return
	}

	c.JSON(http.StatusOK, dto.NewScoreResponse(*score))
}

// ListScores retrieves a community's scores, oldest first
func (h *handler) ListScores(c *gin.Context) {
	scorerID, err := strconv.ParseUint(c.Param("scorer_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid scorer id")
		return
	}

	// Parse query parameters
	params, err := ParseListScoresQuery(c)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			respondBadRequest(c, "Invalid pagination token")
			return
		}
		respondValidationError(c, err.Error())
		return
	}

	community, err := h.store.GetCommunity(c.Request.Context(), scorerID)
	if err != nil {
		respondInternalError(c, err, "Failed to get scorer")
		return
	}
	if community == nil {
		respondNotFound(c, "Scorer not found")
		return
	}

	scores, err := h.store.ListScores(c.Request.Context(), community.ID, store.ScoreQuery{
		Limit:                 params.Limit,
		Cursor:                params.Cursor,
		Address:               domain.NormalizeAddress(params.Address),
		LastScoreTimestampGte: params.Gte,
		LastScoreTimestampGt:  params.Gt,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to list scores")
		return
	}

	next, prev, err := pagination.PageTokens(scores, params.Limit, params.Cursor)
	if err != nil {
		respondInternalError(c, err, "Failed to build pagination tokens")
		return
	}

	items := make([]dto.ScoreResponse, 0, len(scores))
	for _, s := range scores {
		items = append(items, dto.NewScoreResponse(s))
	}

	c.JSON(http.StatusOK, dto.ScoreListResponse{
		Items: items,
		Next:  next,
		Prev:  prev,
	})
}

// GetScoreHistory retrieves a community's score-update events, newest first
func (h *handler) GetScoreHistory(c *gin.Context) {
	scorerID, err := strconv.ParseUint(c.Param("scorer_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid scorer id")
		return
	}

	// Parse query parameters
	params, err := ParseScoreHistoryQuery(c)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			respondBadRequest(c, "Invalid pagination token")
			return
		}
		respondValidationError(c, err.Error())
		return
	}

	community, err := h.store.GetCommunity(c.Request.Context(), scorerID)
	if err != nil {
		respondInternalError(c, err, "Failed to get scorer")
		return
	}
	if community == nil {
		respondNotFound(c, "Scorer not found")
		return
	}

	events, err := h.store.ListEvents(c.Request.Context(), community.ID, store.EventQuery{
		Limit:        params.Limit,
		Cursor:       params.Cursor,
		Action:       schema.EventActionScoreUpdate,
		Address:      domain.NormalizeAddress(params.Address),
		CreatedAtLte: params.CreatedAtLte,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to list score history")
		return
	}

	next, prev, err := pagination.PageTokens(events, params.Limit, params.Cursor)
	if err != nil {
		respondInternalError(c, err, "Failed to build pagination tokens")
		return
	}

	items := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, dto.NewEventResponse(e))
	}

	c.JSON(http.StatusOK, dto.EventListResponse{
		Items: items,
		Next:  next,
		Prev:  prev,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "passport-scorer-api",
	})
}
