package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
)

// ErrInvalidRunID is returned by sinks for run IDs they cannot key on.
var ErrInvalidRunID = errors.New("invalid run id")

// ArtifactSink receives the rendered documents of a finished run.
type ArtifactSink interface {
	Write(ctx context.Context, runID string, artifacts domain.Artifacts) error
}

// ArtifactStore is a sink that can read artifacts back.
type ArtifactStore interface {
	ArtifactSink

	// Read returns the artifacts of a run.
	// Returns domain.ErrArtifactsNotFound if the run is unknown.
	Read(ctx context.Context, runID string) (domain.Artifacts, error)

	// List returns the IDs of the stored runs.
	List(ctx context.Context) ([]string, error)
}

// ValidateRunID rejects empty IDs and IDs that could escape a key namespace
// or a directory.
func ValidateRunID(runID string) error {
	switch {
	case strings.TrimSpace(runID) == "":
		return fmt.Errorf("%w: empty", ErrInvalidRunID)
	case runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`):
		return fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return nil
}
