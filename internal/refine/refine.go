package refine

import (
	"context"
	"strings"

	"codeberg.org/harudiary/server/internal/gcreds"
	"codeberg.org/harudiary/server/internal/logger"
)

// paid cascade models, tried strictly in order; the first 2xx response with
// extractable text wins
var cascadeModels = []string{
	"gemini-2.0-flash-lite",
	"gemini-2.0-flash-lite-preview-02-05",
	"gemini-1.5-flash-001",
}

// legacy text-completion model, one final attempt after the cascade
const legacyModel = "text-bison"

// a pre-refined prompt must be longer than this after trimming to be trusted
const minPreRefinedLength = 5

// fixed parameters for refinement calls on every network tier
var refineParams = GenerationParams{Temperature: 0.3, MaxOutputTokens: 256}

// resolves a paid-provider credential; invoked lazily, at most once per walk
type CredentialSource interface {
	Resolve(ctx context.Context) (*gcreds.Credential, error)
}

// walks the refinement tiers in order, sequentially, stopping at the first
// success; never retries a model and never runs attempts in parallel
type Orchestrator struct {
	freeTier *AIStudioClient // nil when no free-tier key is configured
	vertex   *VertexClient
	creds    CredentialSource
	cascade  []string
	legacy   string
}

// creates the refinement orchestrator; freeTier may be nil
func NewOrchestrator(freeTier *AIStudioClient, vertex *VertexClient, creds CredentialSource) *Orchestrator {
	return &Orchestrator{
		freeTier: freeTier,
		vertex:   vertex,
		creds:    creds,
		cascade:  cascadeModels,
		legacy:   legacyModel,
	}
}

// converts diary text into a final English image prompt, or fails with
// *ExhaustedError once every tier has been attempted
func (o *Orchestrator) Refine(ctx context.Context, req Request) (*Result, error) {
	// local tier: a trusted client-side refinement short-circuits everything,
	// zero network calls
	if len(strings.TrimSpace(req.PreRefined)) > minPreRefinedLength {
		logger.Debug("using pre-refined prompt", "tier", TierLocal.String())
		return &Result{Prompt: req.PreRefined, Tier: TierLocal}, nil
	}

	prompt := buildRefinementPrompt(req.DiaryText)

	var attempts []Attempt

	// free tier: one fixed model, one attempt
	if o.freeTier != nil {
		text, err := o.freeTier.GenerateContent(ctx, prompt, refineParams)
		if err == nil {
			return &Result{Prompt: text, Tier: TierFreeTier, Model: o.freeTier.Model()}, nil
		}

		attempts = append(attempts, newAttempt(TierFreeTier, o.freeTier.Model(), err))
		logger.Warn("free tier refinement failed, falling back to vertex",
			"model", o.freeTier.Model(),
			"error", err,
		)
	}

	// the paid tiers share one credential; without it neither is reachable
	cred, err := o.creds.Resolve(ctx)
	if err != nil {
		attempts = append(attempts,
			newAttempt(TierPaidCascade, "", err),
			newAttempt(TierLegacyFallback, o.legacy, err),
		)

		return nil, &ExhaustedError{Attempts: attempts}
	}

	// paid cascade: a failed model is abandoned immediately in favor of the next
	for _, model := range o.cascade {
		text, err := o.vertex.GenerateContent(ctx, cred, model, prompt, refineParams)
		if err != nil {
			attempts = append(attempts, newAttempt(TierPaidCascade, model, err))
			logger.Warn("cascade model failed", "model", model, "error", err)
			continue
		}

		logger.Info("refinement succeeded", "tier", TierPaidCascade.String(), "model", model)

		return &Result{Prompt: text, Tier: TierPaidCascade, Model: model}, nil
	}

	// legacy fallback: same instruction content reshaped to the completion contract
	text, err := o.vertex.Predict(ctx, cred, o.legacy, prompt, refineParams)
	if err != nil {
		attempts = append(attempts, newAttempt(TierLegacyFallback, o.legacy, err))
		return nil, &ExhaustedError{Attempts: attempts}
	}

	logger.Info("refinement succeeded", "tier", TierLegacyFallback.String(), "model", o.legacy)

	return &Result{Prompt: text, Tier: TierLegacyFallback, Model: o.legacy}, nil
}
