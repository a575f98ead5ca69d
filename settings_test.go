package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s := loadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if s != defaultSettings() {
		t.Fatalf("missing file did not yield defaults: %+v", s)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := defaultSettings()
	s.ServerURL = "ws://play.example.net/ws"
	s.Username = "alice"
	s.WorldWidth = 4096
	s.Debug = true

	if err := s.save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := loadSettings(path)
	if got != s {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, s)
	}
}

func TestLoadSettingsRepairsDegenerateSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("screenWidth: -1\nworldHeight: 0\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := loadSettings(path)
	d := defaultSettings()
	if s.ScreenWidth != d.ScreenWidth || s.ScreenHeight != d.ScreenHeight {
		t.Fatalf("screen size not repaired: %+v", s)
	}
	if s.WorldWidth != d.WorldWidth || s.WorldHeight != d.WorldHeight {
		t.Fatalf("world size not repaired: %+v", s)
	}
	if s.Scale != 1 {
		t.Fatalf("scale not repaired: %+v", s)
	}
}

func TestLoadSettingsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if s := loadSettings(path); s != defaultSettings() {
		t.Fatalf("bad yaml did not yield defaults: %+v", s)
	}
}
