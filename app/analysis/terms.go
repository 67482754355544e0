package analysis

import (
	"sort"
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
)

// Term is a word and how often it occurs across article titles.
type Term struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// stopwords excluded from title term counts. Short function words plus
// a few headline staples that carry no signal.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "he": true, "her": true, "his": true, "in": true, "is": true,
	"it": true, "its": true, "new": true, "not": true, "of": true, "on": true,
	"or": true, "say": true, "says": true, "she": true, "that": true, "the": true,
	"their": true, "this": true, "to": true, "was": true, "were": true,
	"will": true, "with": true, "after": true, "over": true, "up": true,
	"down": true, "more": true, "amid": true, "into": true, "than": true,
	"how": true, "why": true, "what": true, "who": true, "when": true,
}

// TopTerms segments the titles into words and returns the limit most
// frequent terms, ties broken alphabetically.
func TopTerms(titles []string, limit int) []Term {
	counts := make(map[string]int)

	for _, title := range titles {
		tokens := words.FromString(title)
		for tokens.Next() {
			word := strings.ToLower(strings.TrimSpace(tokens.Value()))
			if len(word) < 2 || stopwords[word] {
				continue
			}
			if !isWordLike(word) {
				continue
			}
			counts[word]++
		}
	}

	terms := make([]Term, 0, len(counts))
	for word, count := range counts {
		terms = append(terms, Term{Word: word, Count: count})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Word < terms[j].Word
	})

	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

// isWordLike filters out tokens that are pure punctuation or digits.
func isWordLike(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || r > 127 {
			return true
		}
	}
	return false
}
