package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/harudiary/server/internal/gcreds"
	"golang.org/x/time/rate"
)

const (
	vertexBaseURL  = "https://us-central1-aiplatform.googleapis.com"
	vertexLocation = "us-central1"

	// how much of a provider error body is kept for diagnostics
	maxErrorBodyBytes = 512
)

// shared HTTP client for Vertex AI calls
var vertexHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Vertex AI calls (10 requests/second with burst capacity of 5)
var vertexRateLimiter = rate.NewLimiter(10, 5)

// wire types shared by the gemini-style endpoints (Vertex and AI Studio)

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []safetySetting   `json:"safetySettings,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// wire types for the legacy text-completion predict endpoint

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Content string `json:"content"`
}

type predictParameters struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
}

type predictResponse struct {
	Predictions []struct {
		Content string `json:"content"`
	} `json:"predictions"`
}

// diary content is whimsical, not dangerous; the default thresholds trip on
// fairytale phrasing often enough to matter
var openSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// calls Vertex AI generation models with a resolved credential
type VertexClient struct {
	location   string
	baseURL    string
	httpClient *http.Client
}

// creates a Vertex AI client for the standard location
func NewVertexClient() *VertexClient {
	return &VertexClient{
		location:   vertexLocation,
		baseURL:    vertexBaseURL,
		httpClient: vertexHTTPClient,
	}
}

// issues one generateContent call against the given model and returns the
// first candidate's text
func (c *VertexClient) GenerateContent(
	ctx context.Context,
	cred *gcreds.Credential,
	model, prompt string,
	params GenerationParams,
) (string, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		c.baseURL, cred.ProjectID, c.location, model)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxOutputTokens,
		},
		SafetySettings: openSafetySettings,
	}

	var apiResp geminiResponse
	if err := c.post(ctx, cred, url, reqBody, &apiResp); err != nil {
		return "", err
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyText
	}

	text := strings.TrimSpace(apiResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyText
	}

	return text, nil
}

// issues one predict call against a legacy text-completion model
func (c *VertexClient) Predict(
	ctx context.Context,
	cred *gcreds.Credential,
	model, prompt string,
	params GenerationParams,
) (string, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		c.baseURL, cred.ProjectID, c.location, model)

	reqBody := predictRequest{
		Instances: []predictInstance{{Content: prompt}},
		Parameters: predictParameters{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxOutputTokens,
			TopK:            40,
			TopP:            0.95,
		},
	}

	var apiResp predictResponse
	if err := c.post(ctx, cred, url, reqBody, &apiResp); err != nil {
		return "", err
	}

	if len(apiResp.Predictions) == 0 {
		return "", ErrEmptyText
	}

	text := strings.TrimSpace(apiResp.Predictions[0].Content)
	if text == "" {
		return "", ErrEmptyText
	}

	return text, nil
}

func (c *VertexClient) post(ctx context.Context, cred *gcreds.Credential, url string, reqBody, out any) error {
	token, err := cred.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve access token: %w", err)
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	// rate limiting
	if err := vertexRateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// reads a bounded prefix of an error response body for diagnostics
func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes)) //nolint:errcheck
	return string(body)
}
