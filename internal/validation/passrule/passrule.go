// Package passrule provides pass/fail strategies for judging a score set
// against a policy. The orchestrator depends only on ports.PassEvaluator;
// which strategy a deployment uses is wiring, not engine logic.
package passrule

import (
	"context"

	"julee/internal/validation/models"
	dErrors "julee/pkg/domain-errors"
)

// PerQueryMinimum passes a document only when every validation query in the
// policy scored at least its configured minimum. This is the default
// strategy: the policy already carries a threshold per query, so the rule
// follows the configuration shape.
type PerQueryMinimum struct{}

func NewPerQueryMinimum() *PerQueryMinimum {
	return &PerQueryMinimum{}
}

func (e *PerQueryMinimum) EvaluatePass(_ context.Context, policy *models.Policy, scores models.ScoreSet) (bool, error) {
	if policy == nil {
		return false, dErrors.New(dErrors.CodeValidation, "policy is required for pass evaluation")
	}
	if len(scores) == 0 {
		return false, dErrors.New(dErrors.CodeValidation, "cannot evaluate an empty score set")
	}
	for _, ref := range policy.ValidationQueries {
		score, ok := scores.Get(ref.QueryID)
		if !ok {
			return false, dErrors.Newf(dErrors.CodeValidation, "score set is missing query %q required by policy %s", ref.QueryID, policy.ID)
		}
		if score < ref.MinScore {
			return false, nil
		}
	}
	return true, nil
}

// AggregateAverage passes a document when the mean of all scores reaches the
// configured threshold. Per-query minimums are ignored; one weak score can
// be carried by strong ones.
type AggregateAverage struct {
	Threshold int
}

func NewAggregateAverage(threshold int) (*AggregateAverage, error) {
	if threshold < models.MinScore || threshold > models.MaxScore {
		return nil, dErrors.Newf(dErrors.CodeValidation, "aggregate threshold %d outside [%d,%d]", threshold, models.MinScore, models.MaxScore)
	}
	return &AggregateAverage{Threshold: threshold}, nil
}

func (e *AggregateAverage) EvaluatePass(_ context.Context, policy *models.Policy, scores models.ScoreSet) (bool, error) {
	if policy == nil {
		return false, dErrors.New(dErrors.CodeValidation, "policy is required for pass evaluation")
	}
	if len(scores) == 0 {
		return false, dErrors.New(dErrors.CodeValidation, "cannot evaluate an empty score set")
	}
	total := 0
	for _, pair := range scores {
		total += pair.Score
	}
	// Integer average truncates; 69.9 does not round up to a 70 threshold.
	return total/len(scores) >= e.Threshold, nil
}
