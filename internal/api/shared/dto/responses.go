package dto

import (
	"encoding/json"
	"time"

	"github.com/gitcoinco/passport-scorer/internal/store"
	"github.com/gitcoinco/passport-scorer/internal/store/schema"
)

// SubmitPassportResponse acknowledges a scoring submission
type SubmitPassportResponse struct {
	// Address is the normalized passport address
	Address string `json:"address"`
	// Status is the score status at submission time
	Status string `json:"status"`
}

// ScoreResponse is one passport score as presented by the API
type ScoreResponse struct {
	// Address is the passport holder's normalized address
	Address string `json:"address"`
	// Score is the computed score as a decimal string; null until the first
	// successful pass
	Score *string `json:"score"`
	// Status is the score lifecycle status
	Status *string `json:"status"`
	// LastScoreTimestamp is when the score last completed successfully
	LastScoreTimestamp *time.Time `json:"last_score_timestamp"`
	// Error is the user-facing message of the last failed pass
	Error *string `json:"error"`
	// Evidence is the threshold evidence for binary scorers
	Evidence json.RawMessage `json:"evidence,omitempty"`
	// StampScores maps provider name to contributed weight
	StampScores json.RawMessage `json:"stamp_scores,omitempty"`
}

// NewScoreResponse creates a score response from a store row
func NewScoreResponse(s store.ScoreWithAddress) ScoreResponse {
	resp := ScoreResponse{
		Address:            s.Address,
		LastScoreTimestamp: s.LastScoreTimestamp,
		Error:              s.Error,
		Evidence:           json.RawMessage(s.Evidence),
		StampScores:        json.RawMessage(s.StampScores),
	}

	if s.Score.Score != nil {
		v := s.Score.Score.String()
		resp.Score = &v
	}

	if s.Status != nil {
		v := string(*s.Status)
		resp.Status = &v
	}

	return resp
}

// ScoreListResponse is one page of scores with pagination tokens
type ScoreListResponse struct {
	// Items is the page of scores, oldest first
	Items []ScoreResponse `json:"items"`
	// Next is the token for the page after this one; null on the last page
	Next *string `json:"next"`
	// Prev is the token for the page before this one; null on the first page
	Prev *string `json:"prev"`
}

// EventResponse is one audit event as presented by the API
type EventResponse struct {
	// Action is the three-letter event code
	Action string `json:"action"`
	// Address is the normalized address the event concerns
	Address string `json:"address"`
	// CreatedAt is when the event was recorded
	CreatedAt time.Time `json:"created_at"`
	// Data is the action-specific payload
	Data json.RawMessage `json:"data"`
}

// NewEventResponse creates an event response from a store row
func NewEventResponse(e schema.Event) EventResponse {
	return EventResponse{
		Action:    string(e.Action),
		Address:   e.Address,
		CreatedAt: e.CreatedAt,
		Data:      json.RawMessage(e.Data),
	}
}

// EventListResponse is one page of events with pagination tokens
type EventListResponse struct {
	// Items is the page of events, newest first
	Items []EventResponse `json:"items"`
	// Next is the token for the page after this one; null on the last page
	Next *string `json:"next"`
	// Prev is the token for the page before this one; null on the first page
	Prev *string `json:"prev"`
}
