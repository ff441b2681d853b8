package ai

// GenerateRequest describes one text generation call.
type GenerateRequest struct {
	// System is the system instruction establishing role and constraints.
	System string

	// Prompt is the user prompt, including any retrieved context.
	Prompt string

	// Temperature controls sampling randomness. Zero means deterministic.
	Temperature float64

	// MaxTokens caps the completion length. Zero uses the model default.
	MaxTokens int
}

// DefaultMaxConcepts is the cap on terms returned by concept extraction.
const DefaultMaxConcepts = 10

// DefaultMaxQueryVariations is the cap on variations returned by query expansion.
const DefaultMaxQueryVariations = 4
