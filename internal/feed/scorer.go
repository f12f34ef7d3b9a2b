package feed

import "strings"

// stopWords are stripped from queries before matching. Matching a query made
// entirely of stop words degrades to a recency-ordered listing.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "or": {}, "but": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"this": {}, "that": {}, "it": {}, "as": {}, "from": {},
}

// Tokenize normalizes a free-text query: trim, lowercase, collapse
// whitespace, split on spaces, then drop stop words. An empty result means
// the query carries no searchable signal.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Score is the relevance of one document against a token set.
type Score struct {
	Title int
	Body  int
}

// Zero reports whether the document matched no token at all. Zero-score
// documents are excluded from search results.
func (s Score) Zero() bool {
	return s.Title == 0 && s.Body == 0
}

// Less orders scores ascending: title match count first, body match count as
// tiebreaker. Sort descending with Less(b, a).
func (s Score) Less(o Score) bool {
	if s.Title != o.Title {
		return s.Title < o.Title
	}
	return s.Body < o.Body
}

// ScoreFields counts how many query tokens appear as whole words in the
// title and in the body.
func ScoreFields(tokens []string, title, body string) Score {
	titleWords := wordSet(title)
	bodyWords := wordSet(body)

	var s Score
	for _, tok := range tokens {
		if _, ok := titleWords[tok]; ok {
			s.Title++
		}
		if _, ok := bodyWords[tok]; ok {
			s.Body++
		}
	}
	return s
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[trimPunct(w)] = struct{}{}
	}
	return set
}

// trimPunct strips leading/trailing punctuation so "vlog!" matches "vlog".
func trimPunct(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return r == '\'' || r == '-' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r > 127
}
