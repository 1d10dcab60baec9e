// Package handler exposes the validation engine over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
	"julee/pkg/platform/httputil"
	"julee/pkg/platform/middleware"
	"julee/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the orchestrator operations the HTTP surface needs.
type Service interface {
	StartValidation(ctx context.Context, documentID id.DocumentID, policyID id.PolicyID) (*models.DocumentPolicyValidation, error)
	Run(ctx context.Context, validationID id.ValidationID) (*models.DocumentPolicyValidation, error)
	GetValidation(ctx context.Context, validationID id.ValidationID) (*models.DocumentPolicyValidation, error)
	ListValidations(ctx context.Context) ([]*models.DocumentPolicyValidation, error)
	ListByDocument(ctx context.Context, documentID id.DocumentID) ([]*models.DocumentPolicyValidation, error)
}

// Handler handles validation endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	timeout time.Duration
}

// New creates a validation Handler. A run can span several external calls,
// so the request timeout defaults generously; override per deployment.
func New(service Service, logger *slog.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handler{
		logger:  logger,
		service: service,
		timeout: timeout,
	}
}

// Register mounts the validation routes on the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(h.timeout))

	router.Post("/validations", h.handleStartValidation)
	router.Post("/validations/{validationID}/run", h.handleRun)
	router.Get("/validations", h.handleListValidations)
	router.Get("/validations/{validationID}", h.handleGetValidation)
	router.Get("/documents/{documentID}/validations", h.handleListByDocument)

	r.Mount("/", router)
}

// handleStartValidation creates a new record for the document/policy pair and
// drives it to a terminal status before responding. ERROR is a legitimate
// outcome and still returns 201: the record was created and is queryable.
func (h *Handler) handleStartValidation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[StartValidationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	documentID, err := id.ParseDocumentID(req.DocumentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	policyID, err := id.ParsePolicyID(req.PolicyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.StartValidation(ctx, documentID, policyID)
	if err != nil {
		h.logger.WarnContext(ctx, "start validation failed",
			"request_id", requestID,
			"document_id", documentID,
			"policy_id", policyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toValidationResponse(record))
}

// handleRun resumes a record from its persisted status. Running a terminal
// record is a no-op that returns the record unchanged.
func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	validationID, err := id.ParseValidationID(chi.URLParam(r, "validationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Run(ctx, validationID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) && !dErrors.HasCode(err, dErrors.CodeConflict) {
			h.logger.ErrorContext(ctx, "validation run failed",
				"request_id", requestcontext.RequestID(ctx),
				"validation_id", validationID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toValidationResponse(record))
}

func (h *Handler) handleGetValidation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	validationID, err := id.ParseValidationID(chi.URLParam(r, "validationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.GetValidation(ctx, validationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toValidationResponse(record))
}

func (h *Handler) handleListValidations(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListValidations(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list validations failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toValidationListResponse(records))
}

func (h *Handler) handleListByDocument(w http.ResponseWriter, r *http.Request) {
	documentID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.service.ListByDocument(r.Context(), documentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list validations by document failed",
			"document_id", documentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toValidationListResponse(records))
}
