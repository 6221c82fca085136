package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// projectFileNames are the project files we read, in order of preference
var projectFileNames = []string{"vdeploy.toml", "vdeploy.yaml", "vdeploy.yml"}

// projectMarkers identify a project root when walking up from the working directory
var projectMarkers = append([]string{"foundry.toml", "hardhat.config.ts", "hardhat.config.js"}, projectFileNames...)

// FindProjectRoot walks up from the current directory to find a project marker.
// Falls back to the current directory so the built-in defaults still apply.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// loadEnvFiles loads .env files from the project root. Variables already set
// in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				slog.Warn("failed to load env file", "file", envFile, "error", err)
			}
		}
	}
}

// loadProjectFile reads the first project file found in projectRoot.
// Returns (nil, "", nil) when there is none.
func loadProjectFile(projectRoot string) (*config.ProjectFile, string, error) {
	for _, name := range projectFileNames {
		path := filepath.Join(projectRoot, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		cfg, err := decodeProjectFile(path)
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}
	return nil, "", nil
}

func decodeProjectFile(path string) (*config.ProjectFile, error) {
	var cfg config.ProjectFile

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path) //nolint:gosec // project file path
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported project file %s", filepath.Base(path))
	}

	return &cfg, nil
}
