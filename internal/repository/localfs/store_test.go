package localfs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/acme/voice-call-runner/internal/domain"
)

func TestSaveSnapshotNamingAndContent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "call_logs"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	recording := "https://example.com/rec.wav"
	snap := &domain.CallStatusSnapshot{
		CallID:       "abc123",
		CallStatus:   domain.CallStatusEnded,
		RecordingURL: &recording,
		CallCost:     &domain.CallCost{TotalDurationSeconds: 42, CombinedCost: 1.23},
	}

	path, err := store.SaveSnapshot("20250601T120000Z_abc123", snap)
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if filepath.Base(path) != "20250601T120000Z_abc123.json" {
		t.Errorf("path = %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var got domain.CallStatusSnapshot
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if got.CallID != "abc123" || got.CallStatus != domain.CallStatusEnded {
		t.Errorf("snapshot round trip mismatch: %+v", got)
	}
	if got.CallCost == nil || got.CallCost.TotalDurationSeconds != 42 {
		t.Errorf("call cost not preserved: %+v", got.CallCost)
	}
}

func TestSaveSnapshotNilFails(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.SaveSnapshot("key", nil); err == nil {
		t.Fatal("expected error for nil snapshot")
	}
}

func TestArtifactPath(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	got := store.ArtifactPath("20250601T120000Z_abc123", "wav")
	if filepath.Base(got) != "20250601T120000Z_abc123.wav" {
		t.Errorf("artifact path = %q", got)
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "call_logs")
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("new store: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("call log dir not created: %v", err)
	}
}
