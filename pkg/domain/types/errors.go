package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared across layers
var (
	// ErrInvalidInput indicates a structural violation of the assessment
	// input invariants (negative person count, unknown subject kind).
	// It is never retriable.
	ErrInvalidInput = goerr.New("invalid assessment input")

	// ErrInvalidPolicy indicates a malformed classification policy.
	ErrInvalidPolicy = goerr.New("invalid classification policy")
)
