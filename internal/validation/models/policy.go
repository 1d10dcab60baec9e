package models

import (
	"strings"
	"time"

	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
)

// QueryRef ties one validation query to its pass threshold. A document
// meets the reference when its score for QueryID is at least MinScore.
type QueryRef struct {
	QueryID  id.QueryID `json:"query_id"`
	MinScore int        `json:"min_score"`
}

// Policy is immutable configuration describing which knowledge-service
// queries validate a document and, optionally, which queries transform it.
// Policies are created and updated by an external authoring flow; this
// engine only reads them.
//
// Invariants:
//   - ID and Title are non-empty (trimmed)
//   - at least one validation query; query ids unique within the list
//   - every MinScore lies in [0,100]
//   - transformation query ids are non-empty and unique within their list
type Policy struct {
	ID                    id.PolicyID  `json:"policy_id"`
	Title                 string       `json:"title"`
	ValidationQueries     []QueryRef   `json:"validation_queries"`
	TransformationQueries []id.QueryID `json:"transformation_queries,omitempty"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// HasTransformations reports whether the policy configures a transformation
// pass for failing documents.
func (p *Policy) HasTransformations() bool {
	return len(p.TransformationQueries) > 0
}

// IsValidationOnly reports whether a failing document goes straight to
// FAILED with no transformation attempt.
func (p *Policy) IsValidationOnly() bool {
	return !p.HasTransformations()
}

// QueryIDs returns the validation query ids in declaration order.
func (p *Policy) QueryIDs() []id.QueryID {
	ids := make([]id.QueryID, len(p.ValidationQueries))
	for i, ref := range p.ValidationQueries {
		ids[i] = ref.QueryID
	}
	return ids
}

// MinScoreFor returns the threshold configured for queryID.
func (p *Policy) MinScoreFor(queryID id.QueryID) (int, bool) {
	for _, ref := range p.ValidationQueries {
		if ref.QueryID == queryID {
			return ref.MinScore, true
		}
	}
	return 0, false
}

// NewPolicy constructs a policy, rejecting invalid configuration synchronously.
func NewPolicy(policyID id.PolicyID, title string, validation []QueryRef, transformation []id.QueryID, now time.Time) (*Policy, error) {
	if strings.TrimSpace(policyID.String()) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "policy id cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "policy title cannot be empty")
	}
	if len(validation) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "policy requires at least one validation query")
	}

	seen := make(map[id.QueryID]struct{}, len(validation))
	for _, ref := range validation {
		if strings.TrimSpace(ref.QueryID.String()) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "validation query id cannot be empty")
		}
		if _, dup := seen[ref.QueryID]; dup {
			return nil, dErrors.Newf(dErrors.CodeValidation, "duplicate validation query id %q", ref.QueryID)
		}
		seen[ref.QueryID] = struct{}{}
		if ref.MinScore < MinScore || ref.MinScore > MaxScore {
			return nil, dErrors.Newf(dErrors.CodeValidation, "min score %d for query %q outside [%d,%d]", ref.MinScore, ref.QueryID, MinScore, MaxScore)
		}
	}

	seenTransform := make(map[id.QueryID]struct{}, len(transformation))
	for _, queryID := range transformation {
		if strings.TrimSpace(queryID.String()) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "transformation query id cannot be empty")
		}
		if _, dup := seenTransform[queryID]; dup {
			return nil, dErrors.Newf(dErrors.CodeValidation, "duplicate transformation query id %q", queryID)
		}
		seenTransform[queryID] = struct{}{}
	}

	return &Policy{
		ID:                    policyID,
		Title:                 title,
		ValidationQueries:     append([]QueryRef(nil), validation...),
		TransformationQueries: append([]id.QueryID(nil), transformation...),
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}
