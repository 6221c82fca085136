package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/vdeploy/internal/app"
	"github.com/trebuchet-org/vdeploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command. Running it without a subcommand deploys.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vdeploy",
		Short: "Compile and deploy the Vault contract",
		Long: `vdeploy compiles the project's contracts and deploys one of them (Vault by
default) to the configured network, signing with the key in PRIVATE_KEY.

Running vdeploy without a subcommand is the same as "vdeploy deploy".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: initApp,
		RunE:              runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (default blast-sepolia)")

	addDeployFlags(rootCmd)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initApp resolves configuration and wires the app into the command context
func initApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	v := config.SetupViper(projectRoot, cmd)

	appInstance, err := app.InitApp(v)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appKey, appInstance))
	return nil
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
