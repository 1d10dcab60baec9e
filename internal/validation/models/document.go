package models

import (
	"time"

	id "julee/pkg/domain"
)

// Document is a captured document referenced by the engine. The content
// itself lives in an external document store; ContentRef is an opaque
// pointer the knowledge service can resolve. Immutable once captured:
// transformations always produce a new document with a new id.
type Document struct {
	ID         id.DocumentID `json:"document_id"`
	ContentRef string        `json:"content_ref"`
	CapturedAt time.Time     `json:"captured_at"`
}
