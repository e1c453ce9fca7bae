package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Project != "default" || cfg.DefaultSort != "id" || cfg.DefaultSortDesc {
		t.Errorf("defaults wrong: %+v", cfg)
	}
	if cfg.DBPath == "" {
		t.Error("db path default missing")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &Config{
		DBPath:          "/tmp/tasks.db",
		Project:         "work",
		DefaultSort:     "priority",
		DefaultSortDesc: true,
		Theme:           "dark",
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, want)
	}
}
