// Package insights retrieves AI-generated coaching insights with mandatory
// ownership checks. Insight text itself comes from an external generator;
// this package only stores and serves it.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stillpoint/internal/models"
	"stillpoint/internal/services"
	"stillpoint/internal/store"
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateInsight(ctx context.Context, in models.Insight) error
	InsightByID(ctx context.Context, id string) (models.Insight, error)
	InsightsByUser(ctx context.Context, userID int) ([]models.Insight, error)
}

type Service struct {
	store  Store
	encSvc *services.EncryptionService
}

func NewService(st Store, encSvc *services.EncryptionService) *Service {
	return &Service{store: st, encSvc: encSvc}
}

// Get returns an insight by id for the requesting user. An insight owned by a
// different user is reported as not found, identically to a missing id, so
// ids cannot be probed for existence across users.
func (s *Service) Get(ctx context.Context, id string, userID int) (models.Insight, error) {
	in, err := s.store.InsightByID(ctx, id)
	if err != nil {
		return models.Insight{}, err
	}
	if in.UserID != userID {
		return models.Insight{}, store.ErrNotFound
	}
	if err := s.encSvc.DecryptInsight(&in); err != nil {
		return models.Insight{}, fmt.Errorf("insights: decrypt %s: %w", id, err)
	}
	return in, nil
}

// List returns the user's insights, newest first.
func (s *Service) List(ctx context.Context, userID int) ([]models.Insight, error) {
	ins, err := s.store.InsightsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range ins {
		if err := s.encSvc.DecryptInsight(&ins[i]); err != nil {
			return nil, fmt.Errorf("insights: decrypt %s: %w", ins[i].ID, err)
		}
	}
	return ins, nil
}

// Create stores externally generated insight text for a user and returns the
// stored record with plaintext content.
func (s *Service) Create(ctx context.Context, userID int, content string) (models.Insight, error) {
	in := models.Insight{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	stored := in
	if err := s.encSvc.EncryptInsight(&stored); err != nil {
		return models.Insight{}, fmt.Errorf("insights: encrypt: %w", err)
	}
	if err := s.store.CreateInsight(ctx, stored); err != nil {
		return models.Insight{}, err
	}
	return in, nil
}
