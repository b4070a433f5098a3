package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	stabilityBaseURL = "https://api.stability.ai"
	engineID         = "stable-diffusion-xl-1024-v1-0"

	// structural to the product identity, appended to every prompt and never
	// user-overridable
	styleSuffix = ", soft colored pencil style, crayon texture, child's drawing, warm, highly detailed"

	// fixed generation parameters; square output and a reduced step count,
	// 15 instead of 30 halves provider cost with negligible quality loss for
	// this style
	imageSize = 1024
	cfgScale  = 7
	steps     = 15

	maxErrorBodyBytes = 512
)

// shared HTTP client for Stability AI calls
var stabilityHTTPClient = &http.Client{
	Timeout: 120 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Stability AI calls (2 requests/second with burst capacity of 2)
var stabilityRateLimiter = rate.NewLimiter(2, 2)

// calls the single image-synthesis provider; no fallback list, one attempt
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// creates an image synthesis client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    stabilityBaseURL,
		httpClient: stabilityHTTPClient,
	}
}

// submits the refined prompt plus the fixed style suffix and returns the
// generated image as a self-contained data URI; the client never writes to
// any store
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingKey
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.baseURL, engineID)

	reqBody := generationRequest{
		TextPrompts: []textPrompt{
			{Text: prompt + styleSuffix, Weight: 1},
		},
		CfgScale: cfgScale,
		Height:   imageSize,
		Width:    imageSize,
		Samples:  1,
		Steps:    steps,
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
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	// rate limiting
	if err := stabilityRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck
		return "", &ProviderError{Status: resp.StatusCode, Body: string(body)}
	}

	var apiResp generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Artifacts) == 0 || apiResp.Artifacts[0].Base64 == "" {
		return "", ErrEmptyResult
	}

	return "data:image/png;base64," + apiResp.Artifacts[0].Base64, nil
}
