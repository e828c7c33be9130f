package domain

import "errors"

// MsgNoPassport is the user-facing error recorded on a score when the
// upstream registry has no passport for the address. The exact wording is
// part of the public API contract.
const MsgNoPassport = "No Passport found for this address."

var (
	// ErrCommunityNotFound indicates the referenced community does not exist
	ErrCommunityNotFound = errors.New("community not found")
	// ErrUnknownDedupPolicy indicates a community carries an unrecognized
	// deduplication policy value
	ErrUnknownDedupPolicy = errors.New("unknown deduplication policy")
	// ErrInvalidCursor indicates a pagination token that could not be decoded
	ErrInvalidCursor = errors.New("invalid pagination token")
	// ErrInvalidAddress indicates an address that failed normalization checks
	ErrInvalidAddress = errors.New("invalid address")
)
