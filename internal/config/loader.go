package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const arenaFile = "arena.yaml"

// SearchPaths lists the files LoadArena tries when no explicit path is
// given, in order: the user's ~/.arena/configs then ./configs.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".arena", "configs", arenaFile))
	}
	return append(paths, filepath.Join("configs", arenaFile))
}

// LoadArena loads the arena configuration. An explicit customPath must
// exist and parse. Otherwise the first readable and valid file from
// SearchPaths wins, then the embedded defaults.
//
// Files are decoded over DefaultArenaConfig, so a file only needs the keys
// it changes.
func LoadArena(customPath string) (ArenaConfig, error) {
	if customPath != "" {
		return loadFile(customPath)
	}
	for _, path := range SearchPaths() {
		if cfg, err := loadFile(path); err == nil {
			return cfg, nil
		}
	}
	if cfg, err := parseArena(defaultArenaYAML); err == nil {
		return cfg, nil
	}
	return DefaultArenaConfig(), nil
}

func loadFile(path string) (ArenaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ArenaConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parseArena(data)
	if err != nil {
		return ArenaConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func parseArena(data []byte) (ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ArenaConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ArenaConfig{}, err
	}
	return cfg, nil
}
