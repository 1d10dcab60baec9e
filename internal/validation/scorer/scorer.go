// Package scorer runs a policy's validation queries against a document and
// collects the results into a score set.
package scorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"julee/internal/validation/models"
	"julee/internal/validation/ports"
	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
)

// DefaultConcurrency caps parallel query invocations when no explicit cap is
// configured.
const DefaultConcurrency = 8

// Scorer invokes independent knowledge-service queries with bounded
// concurrency. Results land at their invocation index, so pair order in the
// returned set reflects invocation order regardless of completion order.
type Scorer struct {
	invoker     ports.QueryInvoker
	concurrency int
	logger      *slog.Logger
}

type Option func(*Scorer)

func WithConcurrency(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		s.logger = logger
	}
}

func New(invoker ports.QueryInvoker, opts ...Option) (*Scorer, error) {
	if invoker == nil {
		return nil, fmt.Errorf("query invoker is required")
	}
	s := &Scorer{
		invoker:     invoker,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Score executes every query in queryIDs against doc.
//
// Fail-fast: the first invoker failure cancels the remaining in-flight
// queries and the whole operation fails; partial scores are discarded, not
// returned, so a mixed-attempt score set can never reach persistence.
//
// A duplicate query id (a caller bug) or an out-of-range score from the
// invoker surfaces a validation error rather than being silently dropped or
// clamped.
func (s *Scorer) Score(ctx context.Context, doc *models.Document, queryIDs []id.QueryID) (models.ScoreSet, error) {
	if doc == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "document is required for scoring")
	}
	if len(queryIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one query is required for scoring")
	}
	seen := make(map[id.QueryID]struct{}, len(queryIDs))
	for _, queryID := range queryIDs {
		if _, dup := seen[queryID]; dup {
			return nil, dErrors.Newf(dErrors.CodeValidation, "duplicate query id %q in scoring request", queryID)
		}
		seen[queryID] = struct{}{}
	}

	scores := make(models.ScoreSet, len(queryIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, queryID := range queryIDs {
		group.Go(func() error {
			score, err := s.invoker.Invoke(groupCtx, queryID, doc)
			if err != nil {
				return s.classifyInvokeError(queryID, err)
			}
			if score < models.MinScore || score > models.MaxScore {
				return dErrors.Newf(dErrors.CodeValidation, "invoker returned score %d for query %q outside [%d,%d]", score, queryID, models.MinScore, models.MaxScore)
			}
			scores[i] = models.ScorePair{QueryID: queryID, Score: score}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Defense against an invoker that reports success for a query id it was
	// never asked about; the set is rechecked before it can be stored.
	if err := models.Validate(scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *Scorer) classifyInvokeError(queryID id.QueryID, err error) error {
	if s.logger != nil {
		s.logger.Warn("query invocation failed", "query_id", queryID, "error", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, fmt.Sprintf("query %s timed out", queryID))
	}
	if dErrors.HasCode(err, dErrors.CodeValidation) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fmt.Sprintf("query %s failed", queryID))
}
