package generate

// Request represents the request body for diary image generation
type Request struct {
	Prompt string `json:"prompt"`

	// optional prompt already refined client-side (e.g. an on-device model);
	// trusted verbatim when long enough
	PreRefinedPrompt string `json:"preRefinedPrompt"`

	// optional entry title; stored as the first line of the content field
	Title string `json:"title"`
}

// Response represents a successful generation
type Response struct {
	ImageURL      string `json:"imageUrl"`
	RefinedPrompt string `json:"refinedPrompt"`
}

// stored when the caller does not name their entry
const defaultTitle = "My Diary Entry"
