package usecase

import (
	"context"
	"strings"

	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
)

// ShowConfigResult contains the resolved configuration, with the signing key masked
type ShowConfigResult struct {
	ProjectRoot   string
	ConfigPath    string
	Exists        bool
	Contract      string
	Network       domain.NetworkProfile
	Compiler      domain.CompilerProfile
	CredentialSet bool
	Credential    string // masked
	ValidationErr error
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{
		config: cfg,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	result := &ShowConfigResult{
		ProjectRoot:   uc.config.ProjectRoot,
		ConfigPath:    uc.config.ConfigFile,
		Exists:        uc.config.ConfigFile != "",
		Contract:      uc.config.Contract,
		Compiler:      uc.config.Compiler,
		ValidationErr: uc.config.Validate(),
	}

	if uc.config.Network != nil {
		result.Network = *uc.config.Network
		result.Network.PrivateKey = ""
		result.CredentialSet = uc.config.Network.PrivateKey != ""
		result.Credential = MaskSecret(uc.config.Network.PrivateKey)
	}

	return result, nil
}

// MaskSecret keeps the first and last four characters of a secret
func MaskSecret(secret string) string {
	s := strings.TrimPrefix(secret, "0x")
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", 8) + s[len(s)-4:]
}
