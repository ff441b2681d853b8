package agent

import "strings"

// fleschReadingEase computes the Flesch reading-ease score of the text,
// clamped to [0,100]. Higher means easier to read; 60+ is plain English.
func fleschReadingEase(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := countSentences(text)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func countSentences(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			count++
		}
	}
	return count
}

// countSyllables estimates syllables by counting vowel groups, with the
// usual silent-e adjustment. Crude but stable, which is what the
// readability metric needs.
func countSyllables(word string) int {
	word = strings.ToLower(strings.Trim(word, ".,;:!?\"'()[]{}#*`"))
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
