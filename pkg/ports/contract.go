package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunArtifactStoreContract runs a suite of tests to verify that an ArtifactStore
// implementation adheres to the defined interface contract.
func RunArtifactStoreContract(t *testing.T, store ArtifactStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	artifacts := domain.Artifacts{
		ProductPage:    `{"meta":{},"data":{"page":"product"}}`,
		FAQ:            `{"meta":{},"data":{"page":"faq"}}`,
		ComparisonPage: `{"meta":{},"data":{"page":"comparison"}}`,
	}

	t.Run("Write and Read", func(t *testing.T) {
		err := store.Write(ctx, runID, artifacts)
		require.NoError(t, err, "Write should not return error")

		loaded, err := store.Read(ctx, runID)
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, artifacts, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := artifacts
		updated.FAQ = `{"meta":{},"data":{"page":"faq-v2"}}`

		require.NoError(t, store.Write(ctx, runID, updated))

		loaded, err := store.Read(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, updated.FAQ, loaded.FAQ)
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := store.Read(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrArtifactsNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id2 := runID + "-2"
		require.NoError(t, store.Write(ctx, id2, artifacts))

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, runID)
		assert.Contains(t, runs, id2)
	})

	t.Run("Empty Run ID", func(t *testing.T) {
		err := store.Write(ctx, "", artifacts)
		assert.ErrorIs(t, err, ErrInvalidRunID)
	})
}
