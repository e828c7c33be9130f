package reader

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitcoinco/passport-scorer/internal/adapter"
	"github.com/gitcoinco/passport-scorer/internal/domain"
)

// Reader fetches the current passport for an address from the upstream
// credential registry
//
//go:generate mockgen -source=reader.go -destination=../mocks/reader.go -package=mocks -mock_names=Reader=MockReader
type Reader interface {
	// GetPassport returns the address's passport, or (nil, nil) when the
	// registry holds no passport for it
	GetPassport(ctx context.Context, address string) (*domain.PassportData, error)
}

type httpReader struct {
	httpClient adapter.HTTPClient
	baseURL    string
}

// NewHTTPReader creates a reader backed by the registry's HTTP API
func NewHTTPReader(httpClient adapter.HTTPClient, baseURL string) Reader {
	return &httpReader{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// GetPassport fetches the passport from the registry API
func (r *httpReader) GetPassport(ctx context.Context, address string) (*domain.PassportData, error) {
	url := fmt.Sprintf("%s/registry/passport/%s", r.baseURL, domain.NormalizeAddress(address))

	var passport domain.PassportData
	if err := r.httpClient.Get(ctx, url, &passport); err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to call passport registry: %w", err)
	}

	return &passport, nil
}
