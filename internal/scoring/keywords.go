package scoring

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMinTokenLen is the shortest token kept by keyword extraction.
const DefaultMinTokenLen = 4

// Stopwords is a set of lowercase tokens ignored by keyword extraction.
type Stopwords map[string]struct{}

// NewStopwords builds a set from the given words, lowercased.
func NewStopwords(words ...string) Stopwords {
	set := make(Stopwords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Has reports whether word is a stopword.
func (s Stopwords) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// KeywordOptions controls frequency-ranked keyword extraction.
// MinTokenLen <= 0 uses DefaultMinTokenLen.
type KeywordOptions struct {
	Limit       int
	MinTokenLen int
	Stopwords   Stopwords
}

// ExtractTopKeywords returns the limit most frequent tokens of text, dropping
// tokens of three characters or fewer and stopwords. Ties keep first-seen order.
func ExtractTopKeywords(text string, limit int, stopwords Stopwords) []string {
	return ExtractKeywords(text, KeywordOptions{Limit: limit, Stopwords: stopwords})
}

// ExtractKeywords is ExtractTopKeywords with an adjustable minimum token length.
func ExtractKeywords(text string, opts KeywordOptions) []string {
	if opts.Limit <= 0 {
		return []string{}
	}
	minLen := opts.MinTokenLen
	if minLen <= 0 {
		minLen = DefaultMinTokenLen
	}

	counts := make(map[string]int)
	order := make([]string, 0, 32)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(tok) < minLen || opts.Stopwords.Has(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > opts.Limit {
		order = order[:opts.Limit]
	}
	return order
}

// keywordTokens returns the distinct tokens of lowered text that would be
// eligible for extraction, in first-seen order.
func keywordTokens(lowered string, stopwords Stopwords) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 32)
	for _, tok := range strings.Fields(lowered) {
		if utf8.RuneCountInString(tok) < DefaultMinTokenLen || stopwords.Has(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// tokenCounts counts every whitespace token with no filtering. The returned
// slice preserves first-seen order.
func tokenCounts(lowered string) ([]string, map[string]int) {
	counts := make(map[string]int)
	order := make([]string, 0, 32)
	for _, tok := range strings.Fields(lowered) {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	return order, counts
}

func containedIn(haystack string, needles []string) (found, missing []string) {
	found = make([]string, 0, len(needles))
	missing = make([]string, 0, len(needles))
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			found = append(found, n)
		} else {
			missing = append(missing, n)
		}
	}
	return found, missing
}

func dedupe(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 64)
	for _, list := range lists {
		for _, item := range list {
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
