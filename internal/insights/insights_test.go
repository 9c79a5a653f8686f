package insights

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"stillpoint/internal/models"
	"stillpoint/internal/services"
	"stillpoint/internal/store"
)

// fakeStore keeps insights in memory, content stored as given (encrypted by
// the service before the call).
type fakeStore struct {
	insights map[string]models.Insight
}

func newFakeStore() *fakeStore {
	return &fakeStore{insights: make(map[string]models.Insight)}
}

func (f *fakeStore) CreateInsight(_ context.Context, in models.Insight) error {
	f.insights[in.ID] = in
	return nil
}

func (f *fakeStore) InsightByID(_ context.Context, id string) (models.Insight, error) {
	in, ok := f.insights[id]
	if !ok {
		return models.Insight{}, store.ErrNotFound
	}
	return in, nil
}

func (f *fakeStore) InsightsByUser(_ context.Context, userID int) ([]models.Insight, error) {
	var out []models.Insight
	for _, in := range f.insights {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	// Newest first, matching the SQL ordering.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func testService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	encSvc, err := services.NewEncryptionService(bytes.Repeat([]byte{1}, 32), bytes.Repeat([]byte{2}, 32))
	if err != nil {
		t.Fatalf("failed to build encryption service: %v", err)
	}
	st := newFakeStore()
	return NewService(st, encSvc), st
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "Your mood lifts after breathing exercises.")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Content != "Your mood lifts after breathing exercises." {
		t.Errorf("create returned mangled content: %q", created.Content)
	}
	// Stored content must not be plaintext.
	if st.insights[created.ID].Content == created.Content {
		t.Error("insight content stored unencrypted")
	}

	got, err := svc.Get(ctx, created.ID, 1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Content != created.Content {
		t.Errorf("got %q, want %q", got.Content, created.Content)
	}
}

func TestGetOwnershipMismatchIsNotFound(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "private insight")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Another user probing the id gets the same error as a missing id.
	_, err = svc.Get(ctx, created.ID, 2)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign insight, got %v", err)
	}

	_, missingErr := svc.Get(ctx, "no-such-id", 2)
	if !errors.Is(missingErr, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing insight, got %v", missingErr)
	}
}

func TestListNewestFirstAndScopedToUser(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	first, _ := svc.Create(ctx, 1, "first")
	second, _ := svc.Create(ctx, 1, "second")
	if _, err := svc.Create(ctx, 2, "other user"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Force distinct timestamps; Create stamps time.Now and the fake sorts on it.
	a := st.insights[first.ID]
	a.CreatedAt = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	st.insights[first.ID] = a
	b := st.insights[second.ID]
	b.CreatedAt = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	st.insights[second.ID] = b

	got, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(got))
	}
	if got[0].Content != "second" || got[1].Content != "first" {
		t.Errorf("expected newest first, got [%q, %q]", got[0].Content, got[1].Content)
	}
}
