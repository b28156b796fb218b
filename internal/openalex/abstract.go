package openalex

import (
	"sort"
	"strings"
)

// maxAbstractWords bounds the number of position entries accepted from an
// inverted index. Payloads above the bound are treated as having no abstract.
const maxAbstractWords = 100_000

// reconstructAbstract reconstructs the abstract text from OpenAlex's inverted
// index format. OpenAlex stores abstracts as inverted indices mapping words to
// their positions; reconstruction sorts the (position, word) pairs and joins
// the words with single spaces.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	// Build a slice of (position, word) pairs.
	// Pre-calculate total capacity by summing all position slice lengths.
	type posWord struct {
		pos  int
		word string
	}
	totalPairs := 0
	for _, positions := range invertedIndex {
		totalPairs += len(positions)
	}
	// Guard against malicious payloads with excessive position entries.
	if totalPairs > maxAbstractWords {
		return ""
	}
	pairs := make([]posWord, 0, totalPairs)

	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	// Sort by position
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	// Reconstruct the text with pre-sized builder to reduce allocations.
	// Estimate average word length of 6 characters plus a space separator.
	var builder strings.Builder
	builder.Grow(totalPairs * 7)
	for i, pair := range pairs {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(pair.word)
	}

	return builder.String()
}

// invertAbstract builds an inverted index from abstract text. It is the
// inverse of reconstructAbstract for texts whose words are separated by
// single spaces.
func invertAbstract(text string) map[string][]int {
	if text == "" {
		return nil
	}

	index := make(map[string][]int)
	for pos, word := range strings.Fields(text) {
		index[word] = append(index[word], pos)
	}
	return index
}
