package passrule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"julee/internal/validation/models"
	"julee/internal/validation/passrule"
	dErrors "julee/pkg/domain-errors"
)

type PassRuleSuite struct {
	suite.Suite
	ctx    context.Context
	policy *models.Policy
}

func TestPassRuleSuite(t *testing.T) {
	suite.Run(t, new(PassRuleSuite))
}

func (s *PassRuleSuite) SetupTest() {
	s.ctx = context.Background()
	policy, err := models.NewPolicy("pol-1", "thresholds", []models.QueryRef{
		{QueryID: "q-complete", MinScore: 70},
		{QueryID: "q-accurate", MinScore: 60},
	}, nil, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.policy = policy
}

func (s *PassRuleSuite) set(complete, accurate int) models.ScoreSet {
	return models.ScoreSet{
		{QueryID: "q-complete", Score: complete},
		{QueryID: "q-accurate", Score: accurate},
	}
}

func (s *PassRuleSuite) TestPerQueryMinimum() {
	rule := passrule.NewPerQueryMinimum()

	s.Run("passes when every score meets its threshold", func() {
		passed, err := rule.EvaluatePass(s.ctx, s.policy, s.set(70, 60))
		s.Require().NoError(err)
		s.True(passed)
	})

	s.Run("fails when any score is below its threshold", func() {
		passed, err := rule.EvaluatePass(s.ctx, s.policy, s.set(69, 100))
		s.Require().NoError(err)
		s.False(passed)
	})

	s.Run("extra scores are ignored", func() {
		scores := append(s.set(80, 80), models.ScorePair{QueryID: "q-extra", Score: 0})
		passed, err := rule.EvaluatePass(s.ctx, s.policy, scores)
		s.Require().NoError(err)
		s.True(passed)
	})

	s.Run("missing required query is an error, not a fail", func() {
		scores := models.ScoreSet{{QueryID: "q-complete", Score: 100}}
		_, err := rule.EvaluatePass(s.ctx, s.policy, scores)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "q-accurate")
	})

	s.Run("empty score set is an error", func() {
		_, err := rule.EvaluatePass(s.ctx, s.policy, nil)
		s.Require().Error(err)
	})

	s.Run("nil policy is an error", func() {
		_, err := rule.EvaluatePass(s.ctx, nil, s.set(70, 60))
		s.Require().Error(err)
	})
}

func (s *PassRuleSuite) TestAggregateAverage() {
	s.Run("rejects out-of-range threshold", func() {
		_, err := passrule.NewAggregateAverage(101)
		s.Require().Error(err)
	})

	s.Run("passes on mean at threshold", func() {
		rule, err := passrule.NewAggregateAverage(70)
		s.Require().NoError(err)
		passed, err := rule.EvaluatePass(s.ctx, s.policy, s.set(60, 80))
		s.Require().NoError(err)
		s.True(passed)
	})

	s.Run("one weak score can be carried", func() {
		rule, err := passrule.NewAggregateAverage(70)
		s.Require().NoError(err)
		passed, err := rule.EvaluatePass(s.ctx, s.policy, s.set(40, 100))
		s.Require().NoError(err)
		s.True(passed)
	})

	s.Run("integer average truncates", func() {
		rule, err := passrule.NewAggregateAverage(70)
		s.Require().NoError(err)
		// (69+70)/2 = 69 after truncation.
		passed, err := rule.EvaluatePass(s.ctx, s.policy, s.set(69, 70))
		s.Require().NoError(err)
		s.False(passed)
	})
}

func (s *PassRuleSuite) TestCEL() {
	s.Run("compilation error surfaces at construction", func() {
		_, err := passrule.NewCEL(`scores[`)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("evaluates against scores and thresholds", func() {
		rule, err := passrule.NewCEL(`scores["q-complete"] >= min_scores["q-complete"] || scores["q-accurate"] >= 90`)
		s.Require().NoError(err)

		passed, err := rule.EvaluatePass(s.ctx, s.policy, s.set(30, 95))
		s.Require().NoError(err)
		s.True(passed)

		passed, err = rule.EvaluatePass(s.ctx, s.policy, s.set(30, 50))
		s.Require().NoError(err)
		s.False(passed)
	})

	s.Run("non-boolean result is an error", func() {
		rule, err := passrule.NewCEL(`scores["q-complete"] + 1`)
		s.Require().NoError(err)
		_, err = rule.EvaluatePass(s.ctx, s.policy, s.set(50, 50))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("referencing an absent key is an error", func() {
		rule, err := passrule.NewCEL(`scores["q-missing"] >= 1`)
		s.Require().NoError(err)
		_, err = rule.EvaluatePass(s.ctx, s.policy, s.set(50, 50))
		s.Require().Error(err)
	})
}
