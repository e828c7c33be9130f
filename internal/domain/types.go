package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// NormalizeAddress normalizes a blockchain address to its canonical form
// (trimmed, lowercase hex). All persistence and lookups use the normalized
// form so that mixed-case submissions map to the same passport.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Address is a blockchain address as submitted by an API caller
type Address string

// Valid reports whether the address is a 0x-prefixed 20-byte hex string
func (a Address) Valid() bool {
	s := NormalizeAddress(string(a))
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, c := range s[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// CredentialSubject is the subject section of a verifiable credential.
// ID is a DID that embeds the holder address; Hash is the opaque
// deduplication identifier shared across providers.
type CredentialSubject struct {
	// ID is the subject DID, e.g. "did:pkh:eip155:1:0xabc..."
	ID string `json:"id"`
	// Hash is the provider-scoped deduplication hash, e.g. "v0.0.0:Zm9v..."
	Hash string `json:"hash"`
	// Provider is the verification provider that issued the credential
	Provider string `json:"provider"`
}

// Credential is a W3C verifiable credential as returned by the upstream
// credential registry. Proof is carried opaquely; signature verification
// is out of scope here and happens at issuance time.
type Credential struct {
	// Context is the JSON-LD context list
	Context []string `json:"@context,omitempty"`
	// Type is the credential type list
	Type []string `json:"type,omitempty"`
	// Issuer is the DID of the issuing party
	Issuer string `json:"issuer"`
	// IssuanceDate is when the credential was issued
	IssuanceDate time.Time `json:"issuanceDate"`
	// ExpirationDate is when the credential expires
	ExpirationDate time.Time `json:"expirationDate"`
	// CredentialSubject holds the subject DID, hash and provider
	CredentialSubject CredentialSubject `json:"credentialSubject"`
	// Proof is the issuer signature, kept verbatim
	Proof json.RawMessage `json:"proof,omitempty"`
}

// Stamp is a single provider verification attached to a passport
type Stamp struct {
	// Provider is the verification provider name, e.g. "Ens", "Google"
	Provider string `json:"provider"`
	// Credential is the verifiable credential backing the stamp
	Credential Credential `json:"credential"`
}

// PassportData is the upstream view of a passport: the set of stamps
// currently attached to an address
type PassportData struct {
	// Stamps is the list of stamps held by the address
	Stamps []Stamp `json:"stamps"`
}
