package rest

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gitcoinco/passport-scorer/internal/pagination"
)

const MAX_PAGE_SIZE = 100

// ListScoresQueryParams holds query parameters for GET /registry/score/:scorer_id
type ListScoresQueryParams struct {
	// Filters
	Address string `form:"address"`

	// Pagination
	Limit int    `form:"limit,default=20"`
	Token string `form:"token"`

	// Timestamp filters (RFC 3339)
	LastScoreTimestampGte string `form:"last_score_timestamp__gte"`
	LastScoreTimestampGt  string `form:"last_score_timestamp__gt"`

	// Parsed values
	Cursor *pagination.Cursor `form:"-"`
	Gte    *time.Time         `form:"-"`
	Gt     *time.Time         `form:"-"`
}

// ScoreHistoryQueryParams holds query parameters for GET /registry/score/:scorer_id/history
type ScoreHistoryQueryParams struct {
	// Filters
	Address   string `form:"address"`
	CreatedAt string `form:"created_at"`

	// Pagination
	Limit int    `form:"limit,default=20"`
	Token string `form:"token"`

	// Parsed values
	Cursor       *pagination.Cursor `form:"-"`
	CreatedAtLte *time.Time         `form:"-"`
}

// ParseListScoresQuery parses query parameters for GET /registry/score/:scorer_id.
// A malformed token yields domain.ErrInvalidCursor; a malformed timestamp
// filter yields a plain validation error.
func ParseListScoresQuery(c *gin.Context) (*ListScoresQueryParams, error) {
	var params ListScoresQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	if params.Token != "" {
		cursor, err := pagination.Decode(params.Token)
		if err != nil {
			return nil, err
		}
		params.Cursor = cursor
	}

	if params.LastScoreTimestampGte != "" {
		t, err := time.Parse(time.RFC3339, params.LastScoreTimestampGte)
		if err != nil {
			return nil, fmt.Errorf("invalid last_score_timestamp__gte: %s", params.LastScoreTimestampGte)
		}
		params.Gte = &t
	}

	if params.LastScoreTimestampGt != "" {
		t, err := time.Parse(time.RFC3339, params.LastScoreTimestampGt)
		if err != nil {
			return nil, fmt.Errorf("invalid last_score_timestamp__gt: %s", params.LastScoreTimestampGt)
		}
		params.Gt = &t
	}

	return &params, nil
}

// ParseScoreHistoryQuery parses query parameters for GET /registry/score/:scorer_id/history
func ParseScoreHistoryQuery(c *gin.Context) (*ScoreHistoryQueryParams, error) {
	var params ScoreHistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	if params.Token != "" {
		cursor, err := pagination.Decode(params.Token)
		if err != nil {
			return nil, err
		}
		params.Cursor = cursor
	}

	if params.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, params.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at: %s", params.CreatedAt)
		}
		params.CreatedAtLte = &t
	}

	return &params, nil
}
