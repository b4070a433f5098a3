package imagegen

import (
	"errors"
	"fmt"
)

var (
	// no Stability API key is configured
	ErrMissingKey = errors.New("missing STABILITY_API_KEY")

	// the provider answered 2xx but returned no image artifact
	ErrEmptyResult = errors.New("image provider returned no artifacts")
)

// the provider rejected the request with a non-2xx status
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("stability ai request failed with status %d: %s", e.Status, e.Body)
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type generationRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type generationResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}
