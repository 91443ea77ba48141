package store

import (
	"os"
	"path/filepath"
	"testing"
)

func sampleFrames() []FrameRecord {
	return []FrameRecord{
		{Time: 0.0, Positions: []Vec3{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}}},
		{Time: 0.01, Positions: []Vec3{{X: 0, Y: 0.99, Z: 0}, {X: 1, Y: 0.99, Z: 0}}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("cord", 0.01, 1.0, 42, true, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "cord" {
		t.Errorf("expected scene 'cord', got %q", meta.Scene)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.NParticles != 2 {
		t.Errorf("expected 2 particles, got %d", meta.NParticles)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if len(frames[0].Positions) != 2 {
		t.Errorf("expected 2 particles in frame 0, got %d", len(frames[0].Positions))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("cloth", 0.01, 1.0, 7, false, sampleFrames()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("fluid", 0.005, 2.0, 1, true, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(dir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); err != nil {
		t.Errorf("metadata.json not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(runDir, "positions.csv")); err != nil {
		t.Errorf("positions.csv not created: %v", err)
	}
}

func TestStoreLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("does-not-exist"); err == nil {
		t.Error("expected error loading unknown run")
	}
}
