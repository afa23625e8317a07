package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Plant.Area != 3.0 {
		t.Errorf("Plant.Area = %v, want 3.0", cfg.Plant.Area)
	}
	if cfg.Branch.MaxLength != 1.0 {
		t.Errorf("Branch.MaxLength = %v, want 1.0", cfg.Branch.MaxLength)
	}
	if cfg.Branch.MaxGeneration != 4 {
		t.Errorf("Branch.MaxGeneration = %v, want 4", cfg.Branch.MaxGeneration)
	}
	if cfg.Crowding.MinNeighbors != 2 {
		t.Errorf("Crowding.MinNeighbors = %v, want 2", cfg.Crowding.MinNeighbors)
	}
	if cfg.Light.AttenuationMode != AttenuationUnit {
		t.Errorf("Light.AttenuationMode = %q, want %q", cfg.Light.AttenuationMode, AttenuationUnit)
	}
}

func TestLoadOverridesMergeWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := []byte("plant:\n  area: 5.0\nlight:\n  attenuation_mode: leaf\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatalf("writing override file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Plant.Area != 5.0 {
		t.Errorf("Plant.Area = %v, want overridden 5.0", cfg.Plant.Area)
	}
	if cfg.Light.AttenuationMode != AttenuationLeaf {
		t.Errorf("Light.AttenuationMode = %q, want %q", cfg.Light.AttenuationMode, AttenuationLeaf)
	}
	// Untouched sections keep their defaults.
	if cfg.Branch.MaxLength != 1.0 {
		t.Errorf("Branch.MaxLength = %v, want default 1.0", cfg.Branch.MaxLength)
	}
	if cfg.Plant.BranchArea != 0.1 {
		t.Errorf("Plant.BranchArea = %v, want default 0.1", cfg.Plant.BranchArea)
	}
}

func TestLoadRejectsUnknownAttenuationMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("light:\n  attenuation_mode: sideways\n"), 0644); err != nil {
		t.Fatalf("writing override file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted unknown attenuation mode")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load accepted a missing file path")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Plant.Area = 7.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if loaded.Plant.Area != 7.5 {
		t.Errorf("round-tripped Plant.Area = %v, want 7.5", loaded.Plant.Area)
	}
}
