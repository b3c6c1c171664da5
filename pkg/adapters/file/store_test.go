package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/folio/pkg/adapters/file"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements ArtifactStore
var _ ports.ArtifactStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunArtifactStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	base := t.TempDir()
	store := file.New(base)

	err := store.Write(context.Background(), "run-1", domain.Artifacts{
		ProductPage:    `{"page":"product"}`,
		FAQ:            `{"page":"faq"}`,
		ComparisonPage: `{"page":"comparison"}`,
	})
	require.NoError(t, err)

	for name, want := range map[string]string{
		file.ProductPageFile:    `{"page":"product"}`,
		file.FAQFile:            `{"page":"faq"}`,
		file.ComparisonPageFile: `{"page":"comparison"}`,
	} {
		data, err := os.ReadFile(filepath.Join(base, "run-1", name))
		require.NoError(t, err, name)
		assert.Equal(t, want, string(data), name)
	}

	entries, err := os.ReadDir(filepath.Join(base, "run-1"))
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files are left behind")
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	err := store.Write(context.Background(), "../escape", domain.Artifacts{FAQ: "{}"})
	assert.ErrorIs(t, err, ports.ErrInvalidRunID)
}

func TestFileStore_ListMissingBase(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	runs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestWriteDir_SkipsEmptyArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	require.NoError(t, file.WriteDir(dir, domain.Artifacts{FAQ: "{}"}))

	_, err := os.Stat(filepath.Join(dir, file.FAQFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, file.ProductPageFile))
	assert.True(t, os.IsNotExist(err))
}
