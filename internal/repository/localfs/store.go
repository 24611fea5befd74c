package localfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acme/voice-call-runner/internal/domain"
	"github.com/acme/voice-call-runner/internal/repository"
)

// Store writes call artifacts to a local directory.
type Store struct {
	dir string
}

var _ repository.ArtifactStore = (*Store)(nil)

// NewStore creates the call-log directory if needed and returns a store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localfs: create call log dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveSnapshot writes the full snapshot to {key}.json.
func (s *Store) SaveSnapshot(key string, snap *domain.CallStatusSnapshot) (string, error) {
	if snap == nil {
		return "", fmt.Errorf("localfs: nil snapshot")
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("localfs: marshal snapshot: %w", err)
	}

	path := s.ArtifactPath(key, "json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("localfs: write snapshot: %w", err)
	}
	return path, nil
}

// ArtifactPath resolves {dir}/{key}.{ext}.
func (s *Store) ArtifactPath(key, ext string) string {
	return filepath.Join(s.dir, key+"."+ext)
}
