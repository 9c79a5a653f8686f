// Package search ranks corpus exercises against a caller query. It is pure
// over its inputs: the same query against the same corpus always returns the
// same ordered result.
package search

import (
	"errors"
	"sort"
	"strings"

	"stillpoint/internal/corpus"
	"stillpoint/internal/models"
)

const (
	// DefaultLimit applies when the caller passes no limit or a non-positive one.
	DefaultLimit = 3
	// MaxLimit bounds the response size regardless of the requested limit.
	MaxLimit = 50

	topicBonus     = 2
	frameworkBonus = 2
)

// ErrEmptyQuery is returned when a query carries no keywords and no filters.
var ErrEmptyQuery = errors.New("search: query has no keywords or filters")

// Query is a single search request. At least one of Keywords, Topic, or
// Framework must be set.
type Query struct {
	Keywords  []string
	Topic     string
	Framework string
	Limit     int
}

// Engine matches queries against an immutable corpus.
type Engine struct {
	corpus *corpus.Store
}

func New(c *corpus.Store) *Engine { return &Engine{corpus: c} }

// Search returns at most query.Limit exercises ranked by relevance.
//
// Candidates come from the framework/topic filters intersected with the
// union of keyword-index postings. Keywords that hit nothing in the index
// fall back to the filtered set (the whole corpus when no filters were
// given), so a keyword miss alone never empties a valid query. Only filters
// that eliminate everything legitimately return an empty result.
//
// Score = distinct matched keywords (+1 each) + topic filter match (+2) +
// framework filter match (+2). Ties rank by corpus position, which is the
// dataset order and therefore stable across identical queries.
func (e *Engine) Search(q Query) ([]models.Exercise, error) {
	if len(q.Keywords) == 0 && q.Topic == "" && q.Framework == "" {
		return nil, ErrEmptyQuery
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	positions := e.candidates(q)

	keywords := distinctLower(q.Keywords)
	type scored struct {
		pos   int
		score int
	}
	ranked := make([]scored, 0, len(positions))
	for _, pos := range positions {
		ex := e.corpus.At(pos)
		score := 0
		for _, kw := range keywords {
			if containsFold(ex.Title, kw) || containsFold(ex.Topic, kw) || containsFold(ex.Aspect, kw) {
				score++
			}
		}
		if q.Topic != "" && strings.EqualFold(ex.Topic, q.Topic) {
			score += topicBonus
		}
		if q.Framework != "" && strings.EqualFold(ex.Framework, q.Framework) {
			score += frameworkBonus
		}
		ranked = append(ranked, scored{pos: pos, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].pos < ranked[j].pos
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]models.Exercise, len(ranked))
	for i, r := range ranked {
		out[i] = e.corpus.At(r.pos)
	}
	return out, nil
}

// candidates returns corpus positions in ascending order.
func (e *Engine) candidates(q Query) []int {
	filtered := make([]int, 0, e.corpus.Len())
	for pos := 0; pos < e.corpus.Len(); pos++ {
		ex := e.corpus.At(pos)
		if q.Framework != "" && !strings.EqualFold(ex.Framework, q.Framework) {
			continue
		}
		if q.Topic != "" && !strings.EqualFold(ex.Topic, q.Topic) {
			continue
		}
		filtered = append(filtered, pos)
	}

	if len(q.Keywords) == 0 {
		return filtered
	}

	hits := make(map[int]bool)
	for _, kw := range q.Keywords {
		for _, term := range corpus.Tokenize(kw) {
			for _, pos := range e.corpus.Postings(term) {
				hits[pos] = true
			}
		}
	}

	if len(hits) == 0 {
		// A keyword miss alone never empties the result: fall back to the
		// filtered set, which is the whole corpus when no filters were given.
		return filtered
	}

	out := filtered[:0]
	for _, pos := range filtered {
		if hits[pos] {
			out = append(out, pos)
		}
	}
	return out
}

func distinctLower(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
