package config

import (
	"time"

	"github.com/trebuchet-org/vdeploy/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	ConfigFile  string // path of the project file, empty when running on built-in defaults

	// Target
	Contract string
	Network  *domain.NetworkProfile
	Compiler domain.CompilerProfile

	// All known network profiles, including the active one
	Networks map[string]*domain.NetworkProfile

	// Execution settings
	Debug          bool
	NonInteractive bool
	Interactive    bool // pick the network from a list before deploying
	JSON           bool // Output in JSON format
	SkipBuild      bool
	Timeout        time.Duration
	PollInterval   time.Duration
}
