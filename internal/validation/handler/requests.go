package handler

// StartValidationRequest creates and runs a new validation record for a
// document/policy pair.
type StartValidationRequest struct {
	DocumentID string `json:"document_id"`
	PolicyID   string `json:"policy_id"`
}
