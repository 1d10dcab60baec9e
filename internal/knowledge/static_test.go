package knowledge_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"julee/internal/knowledge"
	"julee/internal/validation/models"
	documentstore "julee/internal/validation/store/document"
)

func TestStaticScoresAndTransforms(t *testing.T) {
	ctx := context.Background()
	documents := documentstore.NewInMemory()
	static := knowledge.NewStatic(75, documents)
	static.SetScore("q-complete", 90)

	doc := &models.Document{
		ID:         "doc-1",
		ContentRef: "s3://captures/doc-1",
		CapturedAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	score, err := static.Invoke(ctx, "q-complete", doc)
	require.NoError(t, err)
	require.Equal(t, 90, score)

	score, err = static.Invoke(ctx, "q-unknown", doc)
	require.NoError(t, err)
	require.Equal(t, 75, score)

	newID, err := static.Transform(ctx, doc, nil)
	require.NoError(t, err)
	require.NotEqual(t, doc.ID, newID)

	transformed, err := documents.Get(ctx, newID)
	require.NoError(t, err)
	require.Equal(t, doc.ContentRef, transformed.ContentRef)
}
