package passrule

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"julee/internal/validation/models"
	dErrors "julee/pkg/domain-errors"
)

// celCostLimit bounds expression evaluation so a pathological rule cannot
// exhaust the process.
const celCostLimit = 1_000_000

// CEL evaluates a compiled CEL expression against the score set. The
// expression sees:
//
//	scores      map[string]int   score per query id
//	min_scores  map[string]int   policy threshold per query id
//
// Example: `scores["completeness"] >= 70 && scores["accuracy"] >= min_scores["accuracy"]`
//
// The expression is compiled once at construction; evaluation is
// goroutine-safe (cel.Program is immutable).
type CEL struct {
	expression string
	program    cel.Program
}

// NewCEL compiles expression into a reusable pass rule. Compilation errors
// surface synchronously so a bad rule is caught at wiring time, not mid-run.
func NewCEL(expression string) (*CEL, error) {
	env, err := cel.NewEnv(
		cel.Variable("scores", cel.MapType(cel.StringType, cel.IntType)),
		cel.Variable("min_scores", cel.MapType(cel.StringType, cel.IntType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, dErrors.Wrap(issues.Err(), dErrors.CodeValidation, "compile pass-rule expression")
	}

	program, err := env.Program(ast, cel.CostLimit(celCostLimit))
	if err != nil {
		return nil, fmt.Errorf("build pass-rule program: %w", err)
	}

	return &CEL{expression: expression, program: program}, nil
}

func (e *CEL) EvaluatePass(_ context.Context, policy *models.Policy, scores models.ScoreSet) (bool, error) {
	if policy == nil {
		return false, dErrors.New(dErrors.CodeValidation, "policy is required for pass evaluation")
	}
	if len(scores) == 0 {
		return false, dErrors.New(dErrors.CodeValidation, "cannot evaluate an empty score set")
	}

	scoreMap := make(map[string]int, len(scores))
	for _, pair := range scores {
		scoreMap[pair.QueryID.String()] = pair.Score
	}
	minScores := make(map[string]int, len(policy.ValidationQueries))
	for _, ref := range policy.ValidationQueries {
		minScores[ref.QueryID.String()] = ref.MinScore
	}

	out, _, err := e.program.Eval(map[string]any{
		"scores":     scoreMap,
		"min_scores": minScores,
	})
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeValidation, "evaluate pass-rule expression")
	}

	passed, ok := out.Value().(bool)
	if !ok {
		return false, dErrors.Newf(dErrors.CodeValidation, "pass-rule expression %q did not yield a boolean", e.expression)
	}
	return passed, nil
}
