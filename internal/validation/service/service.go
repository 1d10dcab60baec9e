// Package service hosts the validation orchestrator: the state machine that
// drives a DocumentPolicyValidation from PENDING to a terminal status,
// persisting after every transition.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"julee/internal/validation/metrics"
	"julee/internal/validation/models"
	"julee/internal/validation/ports"
	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
	"julee/pkg/platform/audit"
	"julee/pkg/platform/sentinel"
	"julee/pkg/requestcontext"
)

// Scorer runs a policy's validation queries against a document. Satisfied by
// scorer.Scorer; narrowed here so service tests can substitute it directly.
type Scorer interface {
	Score(ctx context.Context, doc *models.Document, queryIDs []id.QueryID) (models.ScoreSet, error)
}

// Service is the validation orchestrator.
//
// Stages execute sequentially per record, each strictly gating the next,
// and the next action is always re-derived from persisted Status, never from
// in-memory continuation state, so a crashed run resumes wherever its last
// save left it. No lock is held across external calls except the per-record
// run lock, which exists precisely to serialize whole runs.
type Service struct {
	records   ports.ValidationStore
	policies  ports.PolicyStore
	documents ports.DocumentStore
	scorer    Scorer
	executor  ports.TransformationExecutor
	passRule  ports.PassEvaluator
	locker    ports.RunLocker

	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher ports.AuditPublisher
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithLocker(locker ports.RunLocker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

func New(records ports.ValidationStore, policies ports.PolicyStore, documents ports.DocumentStore,
	scorer Scorer, executor ports.TransformationExecutor, passRule ports.PassEvaluator, opts ...Option) (*Service, error) {
	if records == nil {
		return nil, fmt.Errorf("validation store is required")
	}
	if policies == nil {
		return nil, fmt.Errorf("policy store is required")
	}
	if documents == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if scorer == nil {
		return nil, fmt.Errorf("scorer is required")
	}
	if executor == nil {
		return nil, fmt.Errorf("transformation executor is required")
	}
	if passRule == nil {
		return nil, fmt.Errorf("pass evaluator is required")
	}

	s := &Service{
		records:   records,
		policies:  policies,
		documents: documents,
		scorer:    scorer,
		executor:  executor,
		passRule:  passRule,
		tracer:    otel.Tracer("julee/validation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StartValidation creates a new PENDING record for the document/policy pair
// and runs it. Each call creates a fresh record: re-validating never
// overwrites history.
func (s *Service) StartValidation(ctx context.Context, documentID id.DocumentID, policyID id.PolicyID) (*models.DocumentPolicyValidation, error) {
	if _, err := s.loadPolicy(ctx, policyID); err != nil {
		return nil, err
	}
	if _, err := s.loadDocument(ctx, documentID); err != nil {
		return nil, err
	}

	record, err := models.NewDocumentPolicyValidation(s.records.NewID(), documentID, policyID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.records.Save(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist new validation record")
	}
	return s.Run(ctx, record.ValidationID)
}

// Run drives the record from its persisted status to a terminal one.
//
// Idempotence: invoking Run on a terminal record returns it unchanged and
// performs no external calls. Resumability: a record in any intermediate
// status continues from there. Infrastructure failures are absorbed into a
// persisted ERROR status and do not propagate as errors; only domain-shape
// problems (malformed input, a concurrent run) surface to the caller.
func (s *Service) Run(ctx context.Context, validationID id.ValidationID) (*models.DocumentPolicyValidation, error) {
	record, err := s.loadRecord(ctx, validationID)
	if err != nil {
		return nil, err
	}
	if record.IsTerminal() {
		return record, nil
	}

	if s.locker != nil {
		if err := s.locker.Acquire(ctx, validationID); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				if s.metrics != nil {
					s.metrics.RunConflicts.Inc()
				}
				return nil, dErrors.Newf(dErrors.CodeConflict, "validation %s is already being processed", validationID)
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "acquire run lock")
		}
		defer func() {
			if releaseErr := s.locker.Release(context.WithoutCancel(ctx), validationID); releaseErr != nil && s.logger != nil {
				s.logger.WarnContext(ctx, "failed to release run lock",
					"validation_id", validationID,
					"error", releaseErr,
				)
			}
		}()
	}

	for !record.IsTerminal() {
		if err := s.step(ctx, record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// step executes exactly one stage for the record's current status.
func (s *Service) step(ctx context.Context, record *models.DocumentPolicyValidation) error {
	switch record.Status {
	case models.StatusPending:
		return s.runStage(ctx, record, "start", s.stageStart)
	case models.StatusInProgress:
		return s.runStage(ctx, record, "validate", s.stageValidate)
	case models.StatusValidationComplete:
		return s.runStage(ctx, record, "determine", s.stageDetermine)
	case models.StatusTransformationRequired:
		return s.runStage(ctx, record, "transform_start", s.stageTransformStart)
	case models.StatusTransformationInProgress:
		return s.runStage(ctx, record, "transform", s.stageTransform)
	case models.StatusTransformationComplete:
		return s.runStage(ctx, record, "revalidate", s.stageRevalidate)
	default:
		return dErrors.Newf(dErrors.CodeInternal, "no stage for status %s", record.Status)
	}
}

func (s *Service) stageStart(ctx context.Context, record *models.DocumentPolicyValidation) error {
	if err := record.Start(requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.save(ctx, record); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RunsStarted.Inc()
	}
	s.emit(ctx, record, audit.ActionValidationStarted, audit.CategoryOperations, "")
	return nil
}

func (s *Service) stageValidate(ctx context.Context, record *models.DocumentPolicyValidation) error {
	policy, err := s.loadPolicy(ctx, record.PolicyID)
	if err != nil {
		return err
	}
	doc, err := s.loadDocument(ctx, record.InputDocumentID)
	if err != nil {
		return err
	}
	scores, err := s.score(ctx, doc, policy.QueryIDs())
	if err != nil {
		return err
	}
	if err := record.CompleteInitialValidation(scores, requestcontext.Now(ctx)); err != nil {
		return err
	}
	return s.save(ctx, record)
}

func (s *Service) stageDetermine(ctx context.Context, record *models.DocumentPolicyValidation) error {
	policy, err := s.loadPolicy(ctx, record.PolicyID)
	if err != nil {
		return err
	}

	passed, err := s.passRule.EvaluatePass(ctx, policy, record.ActiveScores())
	if err != nil {
		return err
	}

	now := requestcontext.Now(ctx)
	switch {
	case passed:
		if err := record.Finalize(true, now); err != nil {
			return err
		}
	case !record.HasTransformed() && policy.HasTransformations():
		// First failure with a transformation configured: try improving the
		// document before judging it.
		if err := record.RequireTransformation(now); err != nil {
			return err
		}
	default:
		if err := record.Finalize(false, now); err != nil {
			return err
		}
	}

	if err := s.save(ctx, record); err != nil {
		return err
	}
	s.recordOutcome(ctx, record)
	return nil
}

func (s *Service) stageTransformStart(ctx context.Context, record *models.DocumentPolicyValidation) error {
	if err := record.StartTransformation(requestcontext.Now(ctx)); err != nil {
		return err
	}
	return s.save(ctx, record)
}

func (s *Service) stageTransform(ctx context.Context, record *models.DocumentPolicyValidation) error {
	policy, err := s.loadPolicy(ctx, record.PolicyID)
	if err != nil {
		return err
	}
	doc, err := s.loadDocument(ctx, record.InputDocumentID)
	if err != nil {
		return err
	}

	transformedID, err := s.executor.Transform(ctx, doc, policy.TransformationQueries)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transformation timed out")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "transformation failed")
	}

	if err := record.CompleteTransformation(transformedID, requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.save(ctx, record); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.TransformationsTotal.Inc()
	}
	s.emit(ctx, record, audit.ActionDocumentTransformed, audit.CategoryCompliance, transformedID.String())
	return nil
}

func (s *Service) stageRevalidate(ctx context.Context, record *models.DocumentPolicyValidation) error {
	policy, err := s.loadPolicy(ctx, record.PolicyID)
	if err != nil {
		return err
	}
	doc, err := s.loadDocument(ctx, record.TransformedDocumentID)
	if err != nil {
		return err
	}
	scores, err := s.score(ctx, doc, policy.QueryIDs())
	if err != nil {
		return err
	}
	if err := record.CompleteRevalidation(scores, requestcontext.Now(ctx)); err != nil {
		return err
	}
	return s.save(ctx, record)
}

// runStage wraps one stage with logging, metrics, a trace span, and the
// error policy: infrastructure failures become a persisted ERROR status and
// are not re-thrown; domain-shape errors (validation input, illegal
// transitions) propagate to the caller with the record unmoved.
func (s *Service) runStage(ctx context.Context, record *models.DocumentPolicyValidation, stage string, fn func(context.Context, *models.DocumentPolicyValidation) error) (err error) {
	ctx, span := s.tracer.Start(ctx, "validation."+stage)
	defer span.End()

	// Wall clock, not the request-scoped clock: that one is frozen per
	// request and only stamps domain timestamps.
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveStage(stage, time.Since(start).Seconds())
		}
	}()

	defer func() {
		if recovered := recover(); recovered != nil {
			err = s.fail(ctx, record, stage, fmt.Errorf("panic: %v", recovered))
		}
	}()

	if stageErr := fn(ctx, record); stageErr != nil {
		if dErrors.HasCode(stageErr, dErrors.CodeValidation) || dErrors.HasCode(stageErr, dErrors.CodeInvariantViolation) {
			// Domain-shape problem: the record must not enter ERROR over it.
			return stageErr
		}
		return s.fail(ctx, record, stage, stageErr)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "validation stage complete",
			"validation_id", record.ValidationID,
			"stage", stage,
			"status", record.Status,
		)
	}
	return nil
}

// fail converts an infrastructure error into a persisted ERROR status. The
// returned error is nil on success so the run loop observes the terminal
// record instead of an exception crossing the orchestrator boundary.
func (s *Service) fail(ctx context.Context, record *models.DocumentPolicyValidation, stage string, cause error) error {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "validation stage failed",
			"validation_id", record.ValidationID,
			"stage", stage,
			"error", cause,
		)
	}
	if record.IsTerminal() {
		// The record already reached its terminal status in memory and only a
		// later step (typically its save) failed. Surface that cause instead
		// of masking it with an illegal ERROR transition.
		return cause
	}
	if err := record.MarkError(stage, cause.Error(), requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.save(ctx, record); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementCompleted(string(record.Status))
	}
	event := s.event(ctx, record, audit.ActionValidationError, audit.CategoryOperations, record.ErrorMessage)
	event.Stage = stage
	ports.LogAudit(ctx, s.logger, s.publisher, event)
	return nil
}

func (s *Service) recordOutcome(ctx context.Context, record *models.DocumentPolicyValidation) {
	if !record.IsTerminal() {
		return
	}
	if s.metrics != nil {
		s.metrics.IncrementCompleted(string(record.Status))
	}
	switch record.Status {
	case models.StatusPassed:
		s.emit(ctx, record, audit.ActionValidationPassed, audit.CategoryCompliance, "")
	case models.StatusFailed:
		s.emit(ctx, record, audit.ActionValidationFailed, audit.CategoryCompliance, "policy not met")
	}
}

func (s *Service) emit(ctx context.Context, record *models.DocumentPolicyValidation, action audit.Action, category audit.EventCategory, reason string) {
	ports.LogAudit(ctx, s.logger, s.publisher, s.event(ctx, record, action, category, reason))
}

func (s *Service) event(ctx context.Context, record *models.DocumentPolicyValidation, action audit.Action, category audit.EventCategory, reason string) audit.Event {
	return audit.Event{
		Category:     category,
		Timestamp:    requestcontext.Now(ctx),
		Action:       action,
		ValidationID: record.ValidationID,
		DocumentID:   record.InputDocumentID,
		PolicyID:     record.PolicyID,
		Reason:       reason,
		RequestID:    requestcontext.RequestID(ctx),
	}
}

func (s *Service) score(ctx context.Context, doc *models.Document, queryIDs []id.QueryID) (models.ScoreSet, error) {
	if s.metrics != nil {
		s.metrics.QueriesInvoked.Add(float64(len(queryIDs)))
	}
	scores, err := s.scorer.Score(ctx, doc, queryIDs)
	if err != nil {
		if s.metrics != nil {
			s.metrics.QueryFailures.Inc()
		}
		return nil, err
	}
	return scores, nil
}

func (s *Service) save(ctx context.Context, record *models.DocumentPolicyValidation) error {
	if err := s.records.Save(ctx, record); err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "persist validation record")
	}
	return nil
}

func (s *Service) loadRecord(ctx context.Context, validationID id.ValidationID) (*models.DocumentPolicyValidation, error) {
	record, err := s.records.Get(ctx, validationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "validation %s not found", validationID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load validation record")
	}
	return record, nil
}

func (s *Service) loadPolicy(ctx context.Context, policyID id.PolicyID) (*models.Policy, error) {
	policy, err := s.policies.Get(ctx, policyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "policy %s not found", policyID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load policy")
	}
	return policy, nil
}

func (s *Service) loadDocument(ctx context.Context, documentID id.DocumentID) (*models.Document, error) {
	doc, err := s.documents.Get(ctx, documentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "document %s not found", documentID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load document")
	}
	return doc, nil
}

// GetValidation returns one record for read access.
func (s *Service) GetValidation(ctx context.Context, validationID id.ValidationID) (*models.DocumentPolicyValidation, error) {
	return s.loadRecord(ctx, validationID)
}

// ListValidations returns every record, oldest first.
func (s *Service) ListValidations(ctx context.Context) ([]*models.DocumentPolicyValidation, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list validation records")
	}
	return records, nil
}

// ListByDocument returns the validation history of one document, most
// recent first.
func (s *Service) ListByDocument(ctx context.Context, documentID id.DocumentID) ([]*models.DocumentPolicyValidation, error) {
	records, err := s.records.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list validation records by document")
	}
	return records, nil
}
