package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	aiStudioBaseURL = "https://generativelanguage.googleapis.com"
	aiStudioModel   = "gemini-1.5-flash"
)

// shared HTTP client for AI Studio calls
var aiStudioHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for AI Studio calls; the free tier throttles hard, so we pace
// well below its quota (2 requests/second with burst capacity of 2)
var aiStudioRateLimiter = rate.NewLimiter(2, 2)

// calls the Google AI Studio free tier with an API key
type AIStudioClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// creates a free-tier client; one fixed model, one attempt per refinement
func NewAIStudioClient(apiKey string) *AIStudioClient {
	return &AIStudioClient{
		apiKey:     apiKey,
		model:      aiStudioModel,
		baseURL:    aiStudioBaseURL,
		httpClient: aiStudioHTTPClient,
	}
}

func (c *AIStudioClient) Model() string {
	return c.model
}

// issues one generateContent call and returns the first candidate's text
func (c *AIStudioClient) GenerateContent(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// rate limiting
	if err := aiStudioRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var apiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
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
