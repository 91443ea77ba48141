package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "cord" {
		t.Errorf("expected scene cord, got %s", cfg.Scene)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Scenes.Cord.NParticles == 0 {
		t.Error("default cord preset should have particles")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Scene = "cloth"
	cfg.Scenes.Cloth = ClothParams{W: 8, H: 8, Distance: 0.1, Bending: true}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Scene != "cloth" {
		t.Errorf("expected scene cloth, got %s", loaded.Scene)
	}
	if loaded.Scenes.Cloth.W != 8 || loaded.Scenes.Cloth.H != 8 {
		t.Errorf("expected 8x8 cloth, got %dx%d", loaded.Scenes.Cloth.W, loaded.Scenes.Cloth.H)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/run.yaml"); err == nil {
		t.Fatal("expected an error loading a nonexistent file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cloth", "drape")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scenes.Cloth.W != 16 {
		t.Errorf("expected W 16, got %d", cfg.Scenes.Cloth.W)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("cloth", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "drape"); cfg != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("fluid")
	if len(presets) == 0 {
		t.Error("expected presets for fluid")
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestAllScenesHavePresets(t *testing.T) {
	scenes := []string{"cord", "cloth", "clothdrop", "clothturn", "spheres", "softbody", "softball", "rigidbody", "fluid"}
	for _, s := range scenes {
		if len(ListPresets(s)) == 0 {
			t.Errorf("scene %q has no presets", s)
		}
	}
}
