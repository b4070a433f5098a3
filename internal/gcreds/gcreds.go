package gcreds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"codeberg.org/harudiary/server/internal/logger"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// creates a credential resolver for the given identity material
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// materializes an authenticated identity for Vertex AI, from either the inline
// service account document or application default credentials; failures are
// not cached so a fixed environment takes effect on the next request
func (r *Resolver) Resolve(ctx context.Context) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cred != nil {
		return r.cred, nil
	}

	var (
		cred *Credential
		err  error
	)

	if r.cfg.CredentialsJSON != "" {
		cred, err = r.resolveInline(ctx)
	} else {
		cred, err = r.resolveAmbient(ctx)
	}

	if err != nil {
		return nil, err
	}

	r.cred = cred

	return cred, nil
}

func (r *Resolver) resolveInline(ctx context.Context) (*Credential, error) {
	doc := stripWrappingQuotes(r.cfg.CredentialsJSON)

	var fields map[string]any
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		// never log the document itself, its length is enough to debug
		// truncated environment variables
		logger.Error("failed to parse GOOGLE_CREDENTIALS_JSON",
			"content_length", len(r.cfg.CredentialsJSON),
		)

		return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	// cloud dashboards commonly double-escape multi-line keys, turning real
	// line breaks into the two-character sequence \n, which breaks PEM parsing
	privateKey, _ := fields["private_key"].(string)
	if privateKey != "" {
		privateKey = strings.ReplaceAll(privateKey, `\n`, "\n")
		fields["private_key"] = privateKey
	}

	clientEmail, _ := fields["client_email"].(string)

	// the document's own project id always wins over the configured one; a
	// typoed GOOGLE_PROJECT_ID must not point token requests at the wrong project
	projectID := r.cfg.ProjectID
	if docProject, _ := fields["project_id"].(string); docProject != "" {
		if projectID != "" && projectID != docProject {
			logger.Info("switching project id to the credential document's",
				"configured", projectID,
				"document", docProject,
			)
		}

		projectID = docProject
	}

	if projectID == "" {
		return nil, ErrNoProjectID
	}

	normalized, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, normalized, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	logger.Debug("authenticating as service account", "client_email", clientEmail, "project_id", projectID)

	return &Credential{
		ClientEmail: clientEmail,
		PrivateKey:  privateKey,
		ProjectID:   projectID,
		tokenSource: creds.TokenSource,
	}, nil
}

func (r *Resolver) resolveAmbient(ctx context.Context) (*Credential, error) {
	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}

	projectID := r.cfg.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}

	if projectID == "" {
		return nil, ErrNoProjectID
	}

	return &Credential{
		ProjectID:   projectID,
		tokenSource: creds.TokenSource,
	}, nil
}

// returns a bearer token for the credential, minting or refreshing as needed
func (c *Credential) Token(ctx context.Context) (string, error) {
	_ = ctx // the underlying token source carries its own context

	token, err := c.tokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve access token: %w", err)
	}

	return token.AccessToken, nil
}

// removes one layer of accidental wrapping quotes around a pasted document
func stripWrappingQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}
