package handler

import (
	"time"

	"julee/internal/validation/models"
)

// ValidationResponse is the wire shape of one validation record. Score sets
// serialize as ordered [query_id, score] pairs, matching the persisted form.
type ValidationResponse struct {
	ValidationID                  string          `json:"validation_id"`
	InputDocumentID               string          `json:"input_document_id"`
	PolicyID                      string          `json:"policy_id"`
	Status                        string          `json:"status"`
	ValidationScores              models.ScoreSet `json:"validation_scores"`
	TransformedDocumentID         string          `json:"transformed_document_id,omitempty"`
	PostTransformValidationScores models.ScoreSet `json:"post_transform_validation_scores,omitempty"`
	StartedAt                     time.Time       `json:"started_at"`
	CompletedAt                   *time.Time      `json:"completed_at,omitempty"`
	ErrorMessage                  string          `json:"error_message,omitempty"`
	Passed                        *bool           `json:"passed,omitempty"`
	UpdatedAt                     time.Time       `json:"updated_at"`
}

// ValidationListResponse wraps a list of records.
type ValidationListResponse struct {
	Validations []ValidationResponse `json:"validations"`
	Count       int                  `json:"count"`
}

func toValidationResponse(record *models.DocumentPolicyValidation) ValidationResponse {
	return ValidationResponse{
		ValidationID:                  record.ValidationID.String(),
		InputDocumentID:               record.InputDocumentID.String(),
		PolicyID:                      record.PolicyID.String(),
		Status:                        string(record.Status),
		ValidationScores:              record.ValidationScores,
		TransformedDocumentID:         record.TransformedDocumentID.String(),
		PostTransformValidationScores: record.PostTransformValidationScores,
		StartedAt:                     record.StartedAt,
		CompletedAt:                   record.CompletedAt,
		ErrorMessage:                  record.ErrorMessage,
		Passed:                        record.Passed,
		UpdatedAt:                     record.UpdatedAt,
	}
}

func toValidationListResponse(records []*models.DocumentPolicyValidation) ValidationListResponse {
	out := ValidationListResponse{
		Validations: make([]ValidationResponse, 0, len(records)),
	}
	for _, record := range records {
		out.Validations = append(out.Validations, toValidationResponse(record))
	}
	out.Count = len(out.Validations)
	return out
}
