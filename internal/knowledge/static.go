package knowledge

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
)

// Static is an in-process stand-in for the knowledge service used in dev
// wiring and tests: fixed scores per query id, transformations that mint a
// fresh document and register it with the provided registrar.
type Static struct {
	mu           sync.RWMutex
	scores       map[id.QueryID]int
	defaultScore int
	registrar    DocumentRegistrar
}

// DocumentRegistrar captures transformed documents so the engine can resolve
// them on the re-validation pass.
type DocumentRegistrar interface {
	Put(ctx context.Context, doc *models.Document) error
}

func NewStatic(defaultScore int, registrar DocumentRegistrar) *Static {
	return &Static{
		scores:       make(map[id.QueryID]int),
		defaultScore: defaultScore,
		registrar:    registrar,
	}
}

// SetScore fixes the score returned for one query id.
func (s *Static) SetScore(queryID id.QueryID, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[queryID] = score
}

func (s *Static) Invoke(_ context.Context, queryID id.QueryID, _ *models.Document) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if score, ok := s.scores[queryID]; ok {
		return score, nil
	}
	return s.defaultScore, nil
}

func (s *Static) Transform(ctx context.Context, doc *models.Document, _ []id.QueryID) (id.DocumentID, error) {
	newID := id.DocumentID(uuid.NewString())
	if s.registrar != nil {
		transformed := &models.Document{
			ID:         newID,
			ContentRef: doc.ContentRef,
			CapturedAt: doc.CapturedAt,
		}
		if err := s.registrar.Put(ctx, transformed); err != nil {
			return "", err
		}
	}
	return newID, nil
}
