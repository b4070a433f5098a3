package refine

import (
	"context"
	"fmt"
)

// model for free-form generation outside the refinement cascade; the scheduled
// job writes diary bodies and titles through this
const paidGeneratorModel = "gemini-2.0-flash-lite-preview-02-05"

// a single-model text generator backed by the paid provider
type PaidGenerator struct {
	vertex *VertexClient
	creds  CredentialSource
	model  string
}

// creates a paid text generator on the job's fast model
func NewPaidGenerator(vertex *VertexClient, creds CredentialSource) *PaidGenerator {
	return &PaidGenerator{
		vertex: vertex,
		creds:  creds,
		model:  paidGeneratorModel,
	}
}

// generates text for an arbitrary prompt with the given fixed parameters
func (g *PaidGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	cred, err := g.creds.Resolve(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve credential: %w", err)
	}

	return g.vertex.GenerateContent(ctx, cred, g.model, prompt, params)
}
