package dto

import (
	"fmt"

	"github.com/gitcoinco/passport-scorer/internal/domain"
)

// SubmitPassportRequest asks for a passport to be (re)scored in a community
type SubmitPassportRequest struct {
	// Address is the passport holder's address
	Address string `json:"address" binding:"required"`
	// ScorerID is the community to score the passport in
	ScorerID uint64 `json:"scorer_id" binding:"required"`
}

// Validate validates the request body
func (r *SubmitPassportRequest) Validate() error {
	if !domain.Address(r.Address).Valid() {
		return fmt.Errorf("invalid address: %s", r.Address)
	}
	return nil
}
