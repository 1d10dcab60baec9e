// Package policy provides persistence adapters for policy configuration.
// Policies are authored externally; the engine reads them and the seed/save
// path exists for the authoring flow and tests.
package policy

import (
	"context"
	"sort"
	"sync"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
	"julee/pkg/platform/sentinel"
)

// InMemory is a thread-safe map-backed PolicyStore.
type InMemory struct {
	mu       sync.RWMutex
	policies map[id.PolicyID]*models.Policy
}

func NewInMemory() *InMemory {
	return &InMemory{policies: make(map[id.PolicyID]*models.Policy)}
}

func (s *InMemory) Get(_ context.Context, policyID id.PolicyID) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policy, ok := s.policies[policyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clonePolicy(policy), nil
}

func (s *InMemory) Save(_ context.Context, policy *models.Policy) error {
	if policy == nil {
		return sentinel.ErrInvalidState
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[policy.ID] = clonePolicy(policy)
	return nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Policy, 0, len(s.policies))
	for _, policy := range s.policies {
		out = append(out, clonePolicy(policy))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func clonePolicy(p *models.Policy) *models.Policy {
	out := *p
	out.ValidationQueries = append([]models.QueryRef(nil), p.ValidationQueries...)
	out.TransformationQueries = append([]id.QueryID(nil), p.TransformationQueries...)
	return &out
}
