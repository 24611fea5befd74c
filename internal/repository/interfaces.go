package repository

import (
	"github.com/acme/voice-call-runner/internal/domain"
)

// ArtifactStore persists per-run call artifacts under a shared
// timestamp+callID key. Exactly one snapshot is written per run.
type ArtifactStore interface {
	// SaveSnapshot serializes the full snapshot as JSON and returns the
	// path it was written to.
	SaveSnapshot(key string, snap *domain.CallStatusSnapshot) (string, error)

	// ArtifactPath resolves the destination path for a downloaded artifact
	// with the given extension (without dot).
	ArtifactPath(key, ext string) string
}
