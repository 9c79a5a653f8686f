// Package corpus holds the static exercise library. The dataset is embedded
// at build time, loaded once at process start, and never mutated afterwards,
// so concurrent readers need no locking.
package corpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"stillpoint/internal/models"
)

//go:embed data/exercises.json
var seedData []byte

type dataset struct {
	Frameworks []models.Framework `json:"frameworks"`
	Exercises  []models.Exercise  `json:"exercises"`
}

// Store is the immutable, indexed exercise corpus.
type Store struct {
	exercises  []models.Exercise
	byID       map[string]int
	frameworks map[string]models.Framework
	keyword    map[string][]int // lower-cased term -> corpus positions, ascending
}

// Load parses the embedded dataset and builds the indexes.
func Load() (*Store, error) {
	return Parse(seedData)
}

// Parse builds a Store from raw dataset JSON. Exercises keep their order in
// the file; that order is the deterministic tie-break used by search.
func Parse(data []byte) (*Store, error) {
	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("corpus: parse dataset: %w", err)
	}
	if len(ds.Exercises) == 0 {
		return nil, fmt.Errorf("corpus: dataset contains no exercises")
	}

	s := &Store{
		exercises:  ds.Exercises,
		byID:       make(map[string]int, len(ds.Exercises)),
		frameworks: make(map[string]models.Framework, len(ds.Frameworks)),
		keyword:    make(map[string][]int),
	}

	for _, f := range ds.Frameworks {
		if f.ID == "" {
			return nil, fmt.Errorf("corpus: framework with empty id")
		}
		if _, dup := s.frameworks[f.ID]; dup {
			return nil, fmt.Errorf("corpus: duplicate framework id %q", f.ID)
		}
		s.frameworks[f.ID] = f
	}

	for i, ex := range ds.Exercises {
		if ex.ID == "" {
			return nil, fmt.Errorf("corpus: exercise at position %d has empty id", i)
		}
		if _, dup := s.byID[ex.ID]; dup {
			return nil, fmt.Errorf("corpus: duplicate exercise id %q", ex.ID)
		}
		if _, ok := s.frameworks[ex.Framework]; !ok {
			return nil, fmt.Errorf("corpus: exercise %q references unknown framework %q", ex.ID, ex.Framework)
		}
		s.byID[ex.ID] = i
		s.indexTerms(i, ex.Title, ex.Topic, ex.Aspect)
	}

	return s, nil
}

func (s *Store) indexTerms(pos int, fields ...string) {
	seen := make(map[string]bool)
	for _, field := range fields {
		for _, term := range Tokenize(field) {
			if seen[term] {
				continue
			}
			seen[term] = true
			s.keyword[term] = append(s.keyword[term], pos)
		}
	}
}

// Tokenize lower-cases text and splits it into letter/digit runs.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Len reports the number of exercises in the corpus.
func (s *Store) Len() int { return len(s.exercises) }

// At returns the exercise at the given corpus position.
func (s *Store) At(pos int) models.Exercise { return s.exercises[pos] }

// ExerciseByID looks up an exercise by its stable id.
func (s *Store) ExerciseByID(id string) (models.Exercise, bool) {
	pos, ok := s.byID[id]
	if !ok {
		return models.Exercise{}, false
	}
	return s.exercises[pos], true
}

// FrameworkByID looks up a framework by id.
func (s *Store) FrameworkByID(id string) (models.Framework, bool) {
	f, ok := s.frameworks[id]
	return f, ok
}

// Postings returns the corpus positions whose indexed terms include term.
// The returned slice is shared and must not be modified.
func (s *Store) Postings(term string) []int {
	return s.keyword[strings.ToLower(term)]
}
