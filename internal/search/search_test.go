package search

import (
	"reflect"
	"testing"

	"stillpoint/internal/corpus"
	"stillpoint/internal/models"
)

const testData = `{
  "frameworks": [
    {"id": "f1", "name": "Framework One"},
    {"id": "f2", "name": "Framework Two"}
  ],
  "exercises": [
    {"id": "e1", "title": "Box breathing", "framework": "f1", "topic": "anxiety", "aspect": "breath awareness"},
    {"id": "e2", "title": "Grounding exercise", "framework": "f2", "topic": "anxiety", "aspect": "grounding"},
    {"id": "e3", "title": "Sleep hygiene review", "framework": "f1", "topic": "sleep", "aspect": "habits"}
  ]
}`

func testEngine(t *testing.T) *Engine {
	t.Helper()
	s, err := corpus.Parse([]byte(testData))
	if err != nil {
		t.Fatalf("failed to parse test corpus: %v", err)
	}
	return New(s)
}

func ids(exercises []models.Exercise) []string {
	out := make([]string, len(exercises))
	for i, ex := range exercises {
		out[i] = ex.ID
	}
	return out
}

func TestSearchByKeyword(t *testing.T) {
	e := testEngine(t)
	got, err := e.Search(Query{Keywords: []string{"breathing"}, Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"e1"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestSearchTopicFilterTieBreaksByCorpusOrder(t *testing.T) {
	e := testEngine(t)
	// e1 and e2 both match the topic with equal scores; the earlier corpus
	// position wins.
	got, err := e.Search(Query{Topic: "anxiety", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"e1"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestSearchFrameworkFilterKeepsInsertionOrder(t *testing.T) {
	e := testEngine(t)
	got, err := e.Search(Query{Framework: "f1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"e1", "e3"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestSearchKeywordIntersectsTopicFilter(t *testing.T) {
	e := testEngine(t)
	// Keyword hits intersect with the topic filter, so only e2 survives even
	// though e1 shares the topic.
	got, err := e.Search(Query{Keywords: []string{"grounding"}, Topic: "anxiety", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 || got[0].ID != "e2" {
		t.Errorf("expected e2 ranked first, got %v", ids(got))
	}
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	e := testEngine(t)
	if _, err := e.Search(Query{}); err != ErrEmptyQuery {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchUnknownFilterYieldsEmpty(t *testing.T) {
	e := testEngine(t)
	got, err := e.Search(Query{Framework: "nope"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", ids(got))
	}
}

func TestSearchKeywordMissFallsBackToCorpus(t *testing.T) {
	e := testEngine(t)
	// No index term matches, and there are no filters: the whole corpus comes
	// back in insertion order rather than an empty result.
	got, err := e.Search(Query{Keywords: []string{"zzzz"}, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"e1", "e2", "e3"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestSearchKeywordMissWithFilterStaysFiltered(t *testing.T) {
	e := testEngine(t)
	// The keyword hits nothing, but the topic filter still selects e3; the
	// miss must not empty a result the filter kept.
	got, err := e.Search(Query{Keywords: []string{"zzzz"}, Topic: "sleep", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"e3"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}

	got, err = e.Search(Query{Keywords: []string{"zzzz"}, Framework: "f1", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"e1", "e3"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestSearchLimit(t *testing.T) {
	e := testEngine(t)

	got, _ := e.Search(Query{Topic: "anxiety", Limit: 0})
	if len(got) > DefaultLimit {
		t.Errorf("zero limit should normalize to default, got %d results", len(got))
	}

	got, _ = e.Search(Query{Keywords: []string{"zzzz"}, Limit: 1000})
	if len(got) > MaxLimit {
		t.Errorf("limit should clamp to %d, got %d results", MaxLimit, len(got))
	}
}

func TestSearchDeterminism(t *testing.T) {
	e := testEngine(t)
	q := Query{Keywords: []string{"exercise", "sleep"}, Limit: 3}
	first, err := e.Search(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := e.Search(q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(ids(first), ids(again)) {
			t.Fatalf("run %d returned %v, first run returned %v", i, ids(again), ids(first))
		}
	}
}

func TestSearchEveryResultMatchesQuery(t *testing.T) {
	e := testEngine(t)
	got, err := e.Search(Query{Keywords: []string{"anxiety"}, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected keyword hits")
	}
	for _, ex := range got {
		if ex.Topic != "anxiety" && ex.Title != "anxiety" && ex.Aspect != "anxiety" {
			t.Errorf("exercise %q does not contain the query keyword", ex.ID)
		}
	}
}
