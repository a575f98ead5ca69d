package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	ServerURL    string  `yaml:"serverUrl"`
	Username     string  `yaml:"username"`
	AssetsDir    string  `yaml:"assetsDir"`
	WorldImage   string  `yaml:"worldImage"`
	WorldWidth   float64 `yaml:"worldWidth"`
	WorldHeight  float64 `yaml:"worldHeight"`
	ScreenWidth  int     `yaml:"screenWidth"`
	ScreenHeight int     `yaml:"screenHeight"`
	Scale        int     `yaml:"scale"`
	Vsync        bool    `yaml:"vsync"`
	Debug        bool    `yaml:"debug"`
}

func defaultSettings() Settings {
	return Settings{
		ServerURL:    "ws://localhost:8080/ws",
		AssetsDir:    "assets",
		WorldImage:   "world.png",
		WorldWidth:   2048,
		WorldHeight:  2048,
		ScreenWidth:  800,
		ScreenHeight: 600,
		Scale:        1,
		Vsync:        true,
	}
}

// loadSettings reads the YAML settings file, falling back to defaults when
// it is missing. Zero-valued size fields are filled in so a hand-edited
// file cannot produce a degenerate window or world.
func loadSettings(path string) Settings {
	s := defaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logError("read settings: %v", err)
		}
		return s
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		logError("parse settings: %v", err)
		return defaultSettings()
	}
	if s.ScreenWidth <= 0 || s.ScreenHeight <= 0 {
		s.ScreenWidth = defaultSettings().ScreenWidth
		s.ScreenHeight = defaultSettings().ScreenHeight
	}
	if s.WorldWidth <= 0 || s.WorldHeight <= 0 {
		s.WorldWidth = defaultSettings().WorldWidth
		s.WorldHeight = defaultSettings().WorldHeight
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	return s
}

func (s Settings) save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
