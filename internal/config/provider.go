package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection.
// Validation of the active network is left to RuntimeConfig.Validate so
// that read-only commands (networks, config) work without a signing key.
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	file, filePath, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, domain.NewError(domain.KindConfig, "load project file", err)
	}

	networks, err := resolveNetworks(file)
	if err != nil {
		return nil, domain.NewError(domain.KindConfig, "resolve networks", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ConfigFile:     filePath,
		Contract:       firstNonEmpty(v.GetString("contract"), projectContract(file), DefaultContract),
		Compiler:       resolveCompiler(file),
		Networks:       networks,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Interactive:    v.GetBool("interactive"),
		JSON:           v.GetBool("json"),
		SkipBuild:      v.GetBool("skip_build"),
		Timeout:        v.GetDuration("timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}

	networkName := firstNonEmpty(v.GetString("network"), projectDefaultNetwork(file), DefaultNetworkName)
	network, ok := networks[networkName]
	if !ok {
		return nil, domain.NewError(domain.KindConfig, "select network",
			fmt.Errorf("%w: %s (known: %s)", domain.ErrNetworkNotFound, networkName, strings.Join(SortedNetworkNames(networks), ", ")))
	}
	cfg.Network = network

	return cfg, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("VDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("poll_interval", "2s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

func projectContract(file *config.ProjectFile) string {
	if file == nil {
		return ""
	}
	return file.Contract
}

func projectDefaultNetwork(file *config.ProjectFile) string {
	if file == nil {
		return ""
	}
	return file.DefaultNetwork
}

func resolveCompiler(file *config.ProjectFile) domain.CompilerProfile {
	compiler := builtinCompiler()
	if file == nil {
		return compiler
	}

	section := file.Compiler
	if section.Version != "" {
		compiler.Version = section.Version
	}
	if section.Optimizer != nil {
		compiler.Optimizer = *section.Optimizer
	}
	if section.OptimizerRuns > 0 {
		compiler.OptimizerRuns = section.OptimizerRuns
	}
	if section.Tool != "" {
		compiler.Tool = section.Tool
	}
	return compiler
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// lookupCredential reads the signing key for a network from the environment
func lookupCredential(envVar string) string {
	return strings.TrimSpace(os.Getenv(envVar))
}
