package policy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"julee/internal/validation/models"
	policystore "julee/internal/validation/store/policy"
	id "julee/pkg/domain"
	"julee/pkg/platform/sentinel"
)

type InMemoryPolicySuite struct {
	suite.Suite
	ctx   context.Context
	store *policystore.InMemory
}

func TestInMemoryPolicySuite(t *testing.T) {
	suite.Run(t, new(InMemoryPolicySuite))
}

func (s *InMemoryPolicySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = policystore.NewInMemory()
}

func (s *InMemoryPolicySuite) newPolicy(policyID id.PolicyID) *models.Policy {
	policy, err := models.NewPolicy(policyID, "Retention policy",
		[]models.QueryRef{{QueryID: "q-complete", MinScore: 70}},
		[]id.QueryID{"t-redact"},
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	return policy
}

func (s *InMemoryPolicySuite) TestSaveAndGet() {
	policy := s.newPolicy("pol-1")
	s.Require().NoError(s.store.Save(s.ctx, policy))

	loaded, err := s.store.Get(s.ctx, "pol-1")
	s.Require().NoError(err)
	s.Equal(policy.Title, loaded.Title)
	s.Equal(policy.ValidationQueries, loaded.ValidationQueries)
	s.Equal(policy.TransformationQueries, loaded.TransformationQueries)
}

func (s *InMemoryPolicySuite) TestGetReturnsCopy() {
	s.Require().NoError(s.store.Save(s.ctx, s.newPolicy("pol-1")))

	first, err := s.store.Get(s.ctx, "pol-1")
	s.Require().NoError(err)
	first.ValidationQueries[0].MinScore = 0

	second, err := s.store.Get(s.ctx, "pol-1")
	s.Require().NoError(err)
	s.Equal(70, second.ValidationQueries[0].MinScore)
}

func (s *InMemoryPolicySuite) TestGetUnknownReturnsNotFound() {
	_, err := s.store.Get(s.ctx, "pol-missing")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *InMemoryPolicySuite) TestSaveRejectsNil() {
	s.Error(s.store.Save(s.ctx, nil))
}

func (s *InMemoryPolicySuite) TestListAllOrdersByID() {
	s.Require().NoError(s.store.Save(s.ctx, s.newPolicy("pol-b")))
	s.Require().NoError(s.store.Save(s.ctx, s.newPolicy("pol-a")))

	all, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(id.PolicyID("pol-a"), all[0].ID)
	s.Equal(id.PolicyID("pol-b"), all[1].ID)
}
