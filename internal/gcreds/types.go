package gcreds

import (
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

var (
	// the inline credential document could not be parsed
	ErrMalformedCredential = errors.New("invalid GOOGLE_CREDENTIALS_JSON format")

	// no project identifier could be determined from any source
	ErrNoProjectID = errors.New("google cloud project id is not configured")
)

// an authenticated identity for the paid text-generation provider, resolved
// once per request and never persisted
type Credential struct {
	ClientEmail string
	PrivateKey  string
	ProjectID   string

	tokenSource oauth2.TokenSource
}

// holds the environment-supplied identity material
type Config struct {
	// inline service account JSON; empty selects application default credentials
	CredentialsJSON string

	// separately configured project id; the document's own project id wins
	ProjectID string
}

// resolves Credentials from a fixed Config; a successful resolution is kept
// for the life of the resolver since the token source refreshes itself
type Resolver struct {
	cfg Config

	mu   sync.Mutex
	cred *Credential
}

// builds a Credential around an already-minted token; used by tests and by
// callers that manage their own token lifecycle
func NewStaticCredential(projectID, token string) *Credential {
	return &Credential{
		ProjectID:   projectID,
		tokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	}
}
