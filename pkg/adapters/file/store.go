// Package file writes rendered artifacts to the local filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
)

// Artifact file names inside a run directory.
const (
	ProductPageFile    = "product_page.json"
	FAQFile            = "faq.json"
	ComparisonPageFile = "comparison_page.json"
)

// DefaultBasePath is used when New receives an empty path.
var DefaultBasePath = filepath.Join(".folio", "runs")

// Store implements ports.ArtifactStore with one directory per run.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to DefaultBasePath.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	return &Store{BasePath: basePath}
}

// Write stores the artifacts under <base>/<runID>/.
func (s *Store) Write(ctx context.Context, runID string, artifacts domain.Artifacts) error {
	if err := ports.ValidateRunID(runID); err != nil {
		return err
	}
	return WriteDir(filepath.Join(s.BasePath, runID), artifacts)
}

// Read loads the artifacts of a run.
func (s *Store) Read(ctx context.Context, runID string) (domain.Artifacts, error) {
	if err := ports.ValidateRunID(runID); err != nil {
		return domain.Artifacts{}, err
	}
	dir := filepath.Join(s.BasePath, runID)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return domain.Artifacts{}, domain.ErrArtifactsNotFound
	}

	var a domain.Artifacts
	for name, dst := range targets(&a) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return domain.Artifacts{}, fmt.Errorf("failed to read %s: %w", name, err)
		}
		*dst = string(data)
	}
	return a, nil
}

// List returns the run IDs found under the base path.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			runs = append(runs, entry.Name())
		}
	}
	sort.Strings(runs)
	return runs, nil
}

// WriteDir writes the non-empty artifacts directly into dir, creating it if needed.
func WriteDir(dir string, artifacts domain.Artifacts) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}
	for name, src := range targets(&artifacts) {
		if *src == "" {
			continue
		}
		if err := writeAtomic(filepath.Join(dir, name), []byte(*src)); err != nil {
			return err
		}
	}
	return nil
}

func targets(a *domain.Artifacts) map[string]*string {
	return map[string]*string{
		ProductPageFile:    &a.ProductPage,
		FAQFile:            &a.FAQ,
		ComparisonPageFile: &a.ComparisonPage,
	}
}

// writeAtomic writes to a temporary file in the destination directory, syncs
// it and renames it over destPath.
func writeAtomic(destPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), "tmp-"+filepath.Base(destPath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing %s: %w", filepath.Base(destPath), err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filepath.Base(destPath), err)
	}
	return nil
}
