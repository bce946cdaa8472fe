package services

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)
	nonWordChar   = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}]`)
	// Tokens are runs of at least two word characters.
	termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)
)

// CleanText lowercases text, collapses whitespace runs to one space and
// strips every character that is neither a word character nor whitespace.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return nonWordChar.ReplaceAllString(text, "")
}

func Tokenize(text string) []string {
	return termPattern.FindAllString(strings.ToLower(text), -1)
}

func termFrequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, term := range Tokenize(text) {
		tf[term]++
	}
	return tf
}

// CosineSimilarity compares the term-frequency vectors of a and b over the
// union of their vocabularies. It returns 0 when either vector is empty.
func CosineSimilarity(a, b string) float64 {
	tfA := termFrequencies(a)
	tfB := termFrequencies(b)
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	vocabulary := make([]string, 0, len(tfA)+len(tfB))
	for term := range tfA {
		vocabulary = append(vocabulary, term)
	}
	for term := range tfB {
		if _, ok := tfA[term]; !ok {
			vocabulary = append(vocabulary, term)
		}
	}
	sort.Strings(vocabulary)

	var dot, normA, normB float64
	for _, term := range vocabulary {
		x := float64(tfA[term])
		y := float64(tfB[term])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Min(1, math.Max(0, similarity))
}
