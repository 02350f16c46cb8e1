// Package ats scores resumes against job descriptions the way an applicant tracking system would.
package ats

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// maxExtractedKeywords caps the number of keywords taken from a job description
	maxExtractedKeywords = 50
	// minKeywordLength is the shortest token kept; shorter tokens are noise
	minKeywordLength = 3
)

// stopwords are English function words that never count as keywords.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "should": {}, "could": {}, "may": {},
	"might": {}, "must": {}, "can": {},
}

// IsStopword reports whether word is filtered out during keyword extraction.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// KeywordCount is a keyword with the number of times it appeared.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// ExtractKeywords returns the most frequent salient terms of a job description,
// most frequent first, at most 50.
func ExtractKeywords(text string) []string {
	counts := KeywordFrequencies(text)
	keywords := make([]string, 0, len(counts))
	for _, kc := range counts {
		keywords = append(keywords, kc.Keyword)
	}
	return keywords
}

// KeywordFrequencies tokenizes text and returns the top keywords with their counts.
// Equal counts keep the order in which the words first appeared.
func KeywordFrequencies(text string) []KeywordCount {
	if text == "" {
		return []KeywordCount{}
	}

	counts := make([]KeywordCount, 0)
	index := make(map[string]int)
	for _, token := range tokenize(text) {
		if len(token) < minKeywordLength || IsStopword(token) {
			continue
		}
		if i, seen := index[token]; seen {
			counts[i].Count++
			continue
		}
		index[token] = len(counts)
		counts = append(counts, KeywordCount{Keyword: token, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > maxExtractedKeywords {
		counts = counts[:maxExtractedKeywords]
	}
	return counts
}

// tokenize lowercases text, turns every non-word character into a boundary and
// splits on whitespace. Word characters are ASCII letters, digits and underscore.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if isWordChar(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))
	return strings.Fields(cleaned)
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
