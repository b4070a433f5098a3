package refine

import (
	"errors"
	"fmt"
	"strings"
)

// identifies one level of the refinement cascade; lower tiers are always
// attempted first and the first success terminates the walk
type Tier int

const (
	TierLocal Tier = iota
	TierFreeTier
	TierPaidCascade
	TierLegacyFallback
)

func (t Tier) String() string {
	switch t {
	case TierLocal:
		return "local"
	case TierFreeTier:
		return "free_tier"
	case TierPaidCascade:
		return "paid_cascade"
	case TierLegacyFallback:
		return "legacy_fallback"
	default:
		return "unknown"
	}
}

// fixed generation parameters for a text call; not user-configurable
type GenerationParams struct {
	Temperature     float64
	MaxOutputTokens int
}

// what a caller submits for refinement
type Request struct {
	// raw diary text to be converted into an image prompt
	DiaryText string

	// optional prompt already refined on the client; accepted verbatim when
	// its trimmed length exceeds the minimum
	PreRefined string
}

// the refined prompt together with its provenance
type Result struct {
	Prompt string
	Tier   Tier
	Model  string
}

// one provider/model attempt; diagnostics only, never persisted
type Attempt struct {
	Tier   Tier
	Model  string
	Status int
	Err    error
}

// a provider returned a non-2xx response
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider request failed with status %d: %s", e.Status, e.Body)
}

// a 2xx response carried no extractable text
var ErrEmptyText = errors.New("provider returned no extractable text")

// every tier of the cascade failed; carries the last error observed per tier
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	last := make(map[Tier]Attempt, len(e.Attempts))
	for _, a := range e.Attempts {
		last[a.Tier] = a
	}

	parts := make([]string, 0, len(last))

	for _, tier := range []Tier{TierFreeTier, TierPaidCascade, TierLegacyFallback} {
		a, ok := last[tier]
		if !ok {
			continue
		}

		if a.Model != "" {
			parts = append(parts, fmt.Sprintf("%s (%s): %v", tier, a.Model, a.Err))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %v", tier, a.Err))
		}
	}

	return "text refinement exhausted: " + strings.Join(parts, "; ")
}

// builds an attempt record, extracting the HTTP status when the error is a
// provider rejection
func newAttempt(tier Tier, model string, err error) Attempt {
	a := Attempt{Tier: tier, Model: model, Err: err}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		a.Status = provErr.Status
	}

	return a
}
