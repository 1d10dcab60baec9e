package service

//go:generate mockgen -source=../ports/ports.go -destination=../ports/mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"julee/internal/validation/metrics"
	"julee/internal/validation/models"
	"julee/internal/validation/passrule"
	"julee/internal/validation/ports/mocks"
	"julee/internal/validation/scorer"
	documentstore "julee/internal/validation/store/document"
	policystore "julee/internal/validation/store/policy"
	runlockstore "julee/internal/validation/store/runlock"
	validationstore "julee/internal/validation/store/validation"
	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
	"julee/pkg/platform/audit"
	"julee/pkg/platform/sentinel"
	"julee/pkg/requestcontext"
)

// =============================================================================
// Orchestrator Test Suite
// =============================================================================
// The orchestrator is the heart of the engine: it owns the status machine,
// the retry-once-via-transformation loop, and the error policy. These tests
// run it against real in-memory stores, the real scorer and pass rule, and
// mocked external calls (query invoker, transformation executor), which is
// exactly the seam the production wiring swaps.

type OrchestratorSuite struct {
	suite.Suite
	ctx  context.Context
	now  time.Time
	ctrl *gomock.Controller

	records   *validationstore.InMemory
	policies  *policystore.InMemory
	documents *documentstore.InMemory
	invoker   *mocks.MockQueryInvoker
	executor  *mocks.MockTransformationExecutor

	service *Service

	doc      *models.Document
	policy   *models.Policy
	onlyDocs *models.Policy
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.ctrl = gomock.NewController(s.T())

	s.records = validationstore.NewInMemory()
	s.policies = policystore.NewInMemory()
	s.documents = documentstore.NewInMemory()
	s.invoker = mocks.NewMockQueryInvoker(s.ctrl)
	s.executor = mocks.NewMockTransformationExecutor(s.ctrl)

	sc, err := scorer.New(s.invoker, scorer.WithConcurrency(1))
	s.Require().NoError(err)

	s.service, err = New(
		s.records, s.policies, s.documents,
		sc, s.executor, passrule.NewPerQueryMinimum(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithLocker(runlockstore.NewInMemory()),
	)
	s.Require().NoError(err)

	s.doc = &models.Document{ID: "doc-1", ContentRef: "s3://docs/doc-1", CapturedAt: s.now}
	s.Require().NoError(s.documents.Put(s.ctx, s.doc))

	s.policy, err = models.NewPolicy("pol-1", "export compliance", []models.QueryRef{
		{QueryID: "q-complete", MinScore: 70},
		{QueryID: "q-accurate", MinScore: 60},
	}, []id.QueryID{"t-redact"}, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.policies.Save(s.ctx, s.policy))

	s.onlyDocs, err = models.NewPolicy("pol-validate-only", "shape check", []models.QueryRef{
		{QueryID: "q-complete", MinScore: 70},
	}, nil, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.policies.Save(s.ctx, s.onlyDocs))
}

func (s *OrchestratorSuite) TearDownTest() {
	s.ctrl.Finish()
}

// scoresFor wires the invoker so every query against the given document id
// returns the mapped score.
func (s *OrchestratorSuite) scoresFor(docID id.DocumentID, byQuery map[id.QueryID]int) {
	s.invoker.EXPECT().
		Invoke(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, queryID id.QueryID, doc *models.Document) (int, error) {
			s.Equal(docID, doc.ID)
			score, ok := byQuery[queryID]
			s.True(ok, "unexpected query %s", queryID)
			return score, nil
		}).
		Times(len(byQuery))
}

func (s *OrchestratorSuite) TestNew() {
	s.Run("nil validation store returns error", func() {
		_, err := New(nil, s.policies, s.documents, &scorer.Scorer{}, s.executor, passrule.NewPerQueryMinimum())
		s.Error(err)
		s.Contains(err.Error(), "validation store is required")
	})

	s.Run("nil pass evaluator returns error", func() {
		_, err := New(s.records, s.policies, s.documents, &scorer.Scorer{}, s.executor, nil)
		s.Error(err)
		s.Contains(err.Error(), "pass evaluator is required")
	})
}

func (s *OrchestratorSuite) TestRunPassesFirstTime() {
	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 85, "q-accurate": 60})

	record, err := s.service.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)

	s.Equal(models.StatusPassed, record.Status)
	s.Require().NotNil(record.Passed)
	s.True(*record.Passed)
	s.Empty(record.TransformedDocumentID)
	s.Nil(record.PostTransformValidationScores)
	s.Require().NotNil(record.CompletedAt)
	s.Equal(s.now, *record.CompletedAt)

	saved, err := s.records.Get(s.ctx, record.ValidationID)
	s.Require().NoError(err)
	s.Equal(models.StatusPassed, saved.Status)
	s.Equal(record.ValidationScores, saved.ValidationScores)
}

func (s *OrchestratorSuite) TestRunTransformsThenPasses() {
	transformed := &models.Document{ID: "doc-1-redacted", ContentRef: "s3://docs/doc-1-redacted", CapturedAt: s.now}

	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 40, "q-accurate": 90})
	s.executor.EXPECT().
		Transform(gomock.Any(), gomock.Any(), []id.QueryID{"t-redact"}).
		DoAndReturn(func(ctx context.Context, doc *models.Document, _ []id.QueryID) (id.DocumentID, error) {
			s.Equal(s.doc.ID, doc.ID)
			s.Require().NoError(s.documents.Put(ctx, transformed))
			return transformed.ID, nil
		})
	s.scoresFor(transformed.ID, map[id.QueryID]int{"q-complete": 82, "q-accurate": 91})

	record, err := s.service.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)

	s.Equal(models.StatusPassed, record.Status)
	s.Equal(transformed.ID, record.TransformedDocumentID)
	s.Require().NotNil(record.PostTransformValidationScores)
	score, ok := record.PostTransformValidationScores.Get("q-complete")
	s.True(ok)
	s.Equal(82, score)
	// The first-pass evidence survives transformation.
	score, ok = record.ValidationScores.Get("q-complete")
	s.True(ok)
	s.Equal(40, score)
}

func (s *OrchestratorSuite) TestRunTransformsThenFails() {
	transformed := &models.Document{ID: "doc-1-redacted", ContentRef: "s3://docs/doc-1-redacted", CapturedAt: s.now}

	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 40, "q-accurate": 90})
	s.executor.EXPECT().
		Transform(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *models.Document, _ []id.QueryID) (id.DocumentID, error) {
			s.Require().NoError(s.documents.Put(ctx, transformed))
			return transformed.ID, nil
		})
	// Still below the q-complete threshold after transformation. Exactly one
	// transformation attempt is ever made; the second failure is final.
	s.scoresFor(transformed.ID, map[id.QueryID]int{"q-complete": 55, "q-accurate": 95})

	record, err := s.service.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)

	s.Equal(models.StatusFailed, record.Status)
	s.Require().NotNil(record.Passed)
	s.False(*record.Passed)
	s.Equal(transformed.ID, record.TransformedDocumentID)
}

func (s *OrchestratorSuite) TestRunValidationOnlyPolicyFailsDirectly() {
	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 10})
	// No executor expectation: a policy without transformation queries must
	// never trigger one.

	record, err := s.service.StartValidation(s.ctx, s.doc.ID, s.onlyDocs.ID)
	s.Require().NoError(err)

	s.Equal(models.StatusFailed, record.Status)
	s.Empty(record.TransformedDocumentID)
}

func (s *OrchestratorSuite) TestRunQueryFailureMarksError() {
	s.invoker.EXPECT().
		Invoke(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, errors.New("connection refused")).
		MinTimes(1)

	record, err := s.service.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)

	s.Equal(models.StatusError, record.Status)
	s.Nil(record.Passed)
	s.Contains(record.ErrorMessage, "stage validate:")
	s.Contains(record.ErrorMessage, "connection refused")
	s.Require().NotNil(record.CompletedAt)

	saved, err := s.records.Get(s.ctx, record.ValidationID)
	s.Require().NoError(err)
	s.Equal(models.StatusError, saved.Status)
}

func (s *OrchestratorSuite) TestRunTransformationFailureMarksError() {
	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 40, "q-accurate": 90})
	s.executor.EXPECT().
		Transform(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(id.DocumentID(""), context.DeadlineExceeded)

	record, err := s.service.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)

	s.Equal(models.StatusError, record.Status)
	s.Contains(record.ErrorMessage, "stage transform:")
	s.Contains(record.ErrorMessage, "timed out")
}

func (s *OrchestratorSuite) TestRunDocumentRetractedMidRun() {
	record, err := models.NewDocumentPolicyValidation(s.records.NewID(), s.doc.ID, s.policy.ID, s.now)
	s.Require().NoError(err)
	s.Require().NoError(record.Start(s.now))
	s.Require().NoError(s.records.Save(s.ctx, record))

	// The document disappears between persistence and resumption. The run
	// lands in ERROR without touching the knowledge service.
	s.documents.Remove(s.ctx, s.doc.ID)

	got, err := s.service.Run(s.ctx, record.ValidationID)
	s.Require().NoError(err)
	s.Equal(models.StatusError, got.Status)
	s.Contains(got.ErrorMessage, "stage validate:")
	s.Contains(got.ErrorMessage, "not found")
}

func (s *OrchestratorSuite) TestRunTerminalRecordIsNoOp() {
	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 85, "q-accurate": 60})
	record, err := s.service.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPassed, record.Status)

	// No further invoker or executor expectations: re-running a terminal
	// record must make zero external calls.
	again, err := s.service.Run(s.ctx, record.ValidationID)
	s.Require().NoError(err)
	s.Equal(record.Status, again.Status)
	s.Equal(record.CompletedAt, again.CompletedAt)
}

func (s *OrchestratorSuite) TestRunResumesFromPersistedStatus() {
	transformed := &models.Document{ID: "doc-1-redacted", ContentRef: "s3://docs/doc-1-redacted", CapturedAt: s.now}

	initial := models.ScoreSet{
		{QueryID: "q-complete", Score: 40},
		{QueryID: "q-accurate", Score: 90},
	}

	// Simulate a crash after TRANSFORMATION_REQUIRED was persisted.
	record, err := models.NewDocumentPolicyValidation(s.records.NewID(), s.doc.ID, s.policy.ID, s.now)
	s.Require().NoError(err)
	s.Require().NoError(record.Start(s.now))
	s.Require().NoError(record.CompleteInitialValidation(initial, s.now))
	s.Require().NoError(record.RequireTransformation(s.now))
	s.Require().NoError(s.records.Save(s.ctx, record))

	s.executor.EXPECT().
		Transform(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *models.Document, _ []id.QueryID) (id.DocumentID, error) {
			s.Require().NoError(s.documents.Put(ctx, transformed))
			return transformed.ID, nil
		})
	s.scoresFor(transformed.ID, map[id.QueryID]int{"q-complete": 88, "q-accurate": 93})

	got, err := s.service.Run(s.ctx, record.ValidationID)
	s.Require().NoError(err)
	s.Equal(models.StatusPassed, got.Status)
	s.Equal(initial, got.ValidationScores)
}

func (s *OrchestratorSuite) TestRunHeldLockReturnsConflict() {
	record, err := models.NewDocumentPolicyValidation(s.records.NewID(), s.doc.ID, s.policy.ID, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.records.Save(s.ctx, record))

	locker := mocks.NewMockRunLocker(s.ctrl)
	locker.EXPECT().Acquire(gomock.Any(), record.ValidationID).Return(sentinel.ErrConflict)

	sc, err := scorer.New(s.invoker)
	s.Require().NoError(err)
	svc, err := New(s.records, s.policies, s.documents, sc, s.executor, passrule.NewPerQueryMinimum(), WithLocker(locker))
	s.Require().NoError(err)

	_, err = svc.Run(s.ctx, record.ValidationID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	// The record did not move.
	saved, getErr := s.records.Get(s.ctx, record.ValidationID)
	s.Require().NoError(getErr)
	s.Equal(models.StatusPending, saved.Status)
}

func (s *OrchestratorSuite) TestRunUnknownValidationReturnsNotFound() {
	_, err := s.service.Run(s.ctx, s.records.NewID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *OrchestratorSuite) TestStartValidationUnknownPolicy() {
	_, err := s.service.StartValidation(s.ctx, s.doc.ID, "pol-missing")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *OrchestratorSuite) TestStartValidationUnknownDocument() {
	_, err := s.service.StartValidation(s.ctx, "doc-missing", s.policy.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *OrchestratorSuite) TestAuditTrail() {
	publisher := mocks.NewMockAuditPublisher(s.ctrl)
	var actions []audit.Action
	publisher.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			actions = append(actions, event.Action)
			return nil
		}).
		AnyTimes()

	sc, err := scorer.New(s.invoker, scorer.WithConcurrency(1))
	s.Require().NoError(err)
	svc, err := New(s.records, s.policies, s.documents, sc, s.executor, passrule.NewPerQueryMinimum(),
		WithLocker(runlockstore.NewInMemory()),
		WithAuditPublisher(publisher),
	)
	s.Require().NoError(err)

	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 85, "q-accurate": 60})
	_, err = svc.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)

	s.Equal([]audit.Action{audit.ActionValidationStarted, audit.ActionValidationPassed}, actions)
}

func (s *OrchestratorSuite) TestRunObservesStageDuration() {
	registry := prometheus.NewRegistry()
	m := metrics.NewWith(registry)

	sc, err := scorer.New(s.invoker, scorer.WithConcurrency(1))
	s.Require().NoError(err)
	svc, err := New(s.records, s.policies, s.documents, sc, s.executor, passrule.NewPerQueryMinimum(),
		WithLocker(runlockstore.NewInMemory()),
		WithMetrics(m),
	)
	s.Require().NoError(err)

	s.invoker.EXPECT().
		Invoke(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, id.QueryID, *models.Document) (int, error) {
			time.Sleep(20 * time.Millisecond)
			return 90, nil
		}).
		Times(2)

	_, err = svc.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)

	families, err := registry.Gather()
	s.Require().NoError(err)

	var count uint64
	var sum float64
	for _, family := range families {
		if family.GetName() != "julee_validation_stage_duration_seconds" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "stage" && label.GetValue() == "validate" {
					count = metric.GetHistogram().GetSampleCount()
					sum = metric.GetHistogram().GetSampleSum()
				}
			}
		}
	}
	s.Require().EqualValues(1, count)
	// The request-scoped clock is frozen for the whole run, so the histogram
	// must be fed from the wall clock to see the queries' real elapsed time.
	s.Greater(sum, 0.0)
}

func (s *OrchestratorSuite) TestRunSaveFailureAfterFinalizeSurfacesCause() {
	record, err := models.NewDocumentPolicyValidation(id.NewValidationID(), s.doc.ID, s.policy.ID, s.now)
	s.Require().NoError(err)
	s.Require().NoError(record.Start(s.now))
	s.Require().NoError(record.CompleteInitialValidation(models.ScoreSet{
		{QueryID: "q-complete", Score: 85},
		{QueryID: "q-accurate", Score: 70},
	}, s.now))

	records := mocks.NewMockValidationStore(s.ctrl)
	records.EXPECT().Get(gomock.Any(), record.ValidationID).Return(record, nil)
	records.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	sc, err := scorer.New(s.invoker)
	s.Require().NoError(err)
	svc, err := New(records, s.policies, s.documents, sc, s.executor, passrule.NewPerQueryMinimum())
	s.Require().NoError(err)

	// The pass rule finalizes the record in memory, then persistence fails.
	// The save failure must surface as the cause, not be masked by an
	// illegal ERROR transition on the already-finalized record.
	_, err = svc.Run(s.ctx, record.ValidationID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.False(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	s.Contains(err.Error(), "connection reset")
}

func (s *OrchestratorSuite) TestListByDocument() {
	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 85, "q-accurate": 60})
	first, err := s.service.StartValidation(s.ctx, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)

	later := requestcontext.WithTime(context.Background(), s.now.Add(time.Hour))
	s.scoresFor(s.doc.ID, map[id.QueryID]int{"q-complete": 90, "q-accurate": 70})
	second, err := s.service.StartValidation(later, s.doc.ID, s.policy.ID)
	s.Require().NoError(err)
	s.NotEqual(first.ValidationID, second.ValidationID)

	history, err := s.service.ListByDocument(s.ctx, s.doc.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(second.ValidationID, history[0].ValidationID)
	s.Equal(first.ValidationID, history[1].ValidationID)
}
