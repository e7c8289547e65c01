package prompt

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Scorer ranks text against a search query. ok is false when the text does
// not match at all; higher scores sort first.
type Scorer func(query, text string) (score int, ok bool)

// FuzzyScorer is the default Scorer: a case-insensitive subsequence match
// that favours contiguous runs and word starts.
func FuzzyScorer(query, text string) (int, bool) {
	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

// filterIndexes returns the absolute indexes of the items visible for query.
// An empty query keeps every row in order. Otherwise separators are dropped,
// non-matching choices are dropped, and the rest are ordered by score with
// ties kept in list order.
func filterIndexes[V any](items []Item[V], query string, score Scorer) []int {
	if query == "" {
		out := make([]int, len(items))
		for i := range items {
			out[i] = i
		}
		return out
	}

	type scored struct {
		idx   int
		score int
	}
	var hits []scored
	for i, it := range items {
		c, ok := it.(Choice[V])
		if !ok {
			continue
		}
		s, ok := score(query, strings.TrimSpace(c.searchText()))
		if !ok {
			continue
		}
		hits = append(hits, scored{idx: i, score: s})
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})

	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.idx
	}
	return out
}
