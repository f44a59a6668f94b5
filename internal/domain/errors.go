package domain

import "errors"

// Precondition errors surfaced to callers before any external call is
// attempted. Both are deterministic and re-triggerable by fixing the
// input.
var (
	ErrMemeNotFound       = errors.New("meme not found")
	ErrNotEligible        = errors.New("meme is not eligible for coin creation")
	ErrCoinAlreadyCreated = errors.New("coin already created for this meme")
	ErrEmptyPrompt        = errors.New("prompt is required")
	ErrUnsupportedChain   = errors.New("chain does not support coin deployment")
)
