package validator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gitcoinco/passport-scorer/internal/domain"
)

// Validator decides whether a stamp's credential may count toward a score
//
//go:generate mockgen -source=validator.go -destination=../mocks/validator.go -package=mocks -mock_names=Validator=MockValidator
type Validator interface {
	// Validate returns a descriptive error when the stamp must be dropped
	Validate(ctx context.Context, stamp domain.Stamp, address string, now time.Time) error
}

type credentialValidator struct {
	trustedIssuers map[string]bool
}

// NewCredentialValidator creates a validator that checks credential expiry,
// issuer trust, the deduplication hash and that the subject DID belongs to
// the scored address
func NewCredentialValidator(trustedIssuers []string) Validator {
	trusted := make(map[string]bool, len(trustedIssuers))
	for _, issuer := range trustedIssuers {
		trusted[issuer] = true
	}
	return &credentialValidator{trustedIssuers: trusted}
}

func (v *credentialValidator) Validate(_ context.Context, stamp domain.Stamp, address string, now time.Time) error {
	credential := stamp.Credential

	if !credential.ExpirationDate.After(now) {
		return fmt.Errorf("credential expired at %s", credential.ExpirationDate.Format(time.RFC3339))
	}

	if len(v.trustedIssuers) > 0 && !v.trustedIssuers[credential.Issuer] {
		return fmt.Errorf("untrusted issuer %q", credential.Issuer)
	}

	if credential.CredentialSubject.Hash == "" {
		return fmt.Errorf("credential has no hash")
	}

	// The subject DID embeds the holder address as its last segment,
	// e.g. "did:pkh:eip155:1:0xabc..."
	subject := strings.ToLower(credential.CredentialSubject.ID)
	if !strings.HasSuffix(subject, domain.NormalizeAddress(address)) {
		return fmt.Errorf("credential subject %q does not match address %s", credential.CredentialSubject.ID, address)
	}

	return nil
}
