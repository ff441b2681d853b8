package openai

import "fmt"

const extractionPromptTemplate = `Extract the most important concepts from the given text and return them as JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting, or
acknowledgment. Start your response directly with the opening brace { and end
with the closing brace }. Your output must exactly follow this shape:

{"concepts": ["first concept", "second concept"]}

Rules:
- Concept names must be lowercase, 1-3 words, singular form only.
- Return at most %d concepts, most central first.
- Include only concepts that are explicitly mentioned or clearly implied by the text. Do not hallucinate.
- If no concepts can be identified, return "concepts": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Goroutines are lightweight threads managed by the Go runtime. They communicate over channels."
Output:
{"concepts": ["goroutine", "channel", "go runtime", "concurrency"]}`

const expansionPromptTemplate = `Rewrite the given search query into up to %d alternative phrasings that would
match related educational material. Return them as JSON.

Output ONLY valid JSON of this shape:

{"queries": ["first variation", "second variation"]}

Rules:
- Keep each variation short, at most 8 words.
- Cover synonyms, broader phrasings, and closely related subtopics.
- Do not repeat the original query.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "goroutines"
Output:
{"queries": ["go concurrency", "lightweight threads in go", "goroutine scheduling"]}`

// buildExtractionPrompt creates the system prompt for concept extraction.
func buildExtractionPrompt(maxConcepts int) string {
	return fmt.Sprintf(extractionPromptTemplate, maxConcepts)
}

// buildExpansionPrompt creates the system prompt for query expansion.
func buildExpansionPrompt(maxVariations int) string {
	return fmt.Sprintf(expansionPromptTemplate, maxVariations)
}
