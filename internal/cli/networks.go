package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/vdeploy/internal/cli/render"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Long: `List the built-in networks and those in vdeploy.toml, querying each
endpoint for its chain ID. The active network is marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			offline, _ := cmd.Flags().GetBool("offline")
			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Offline: offline})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout())
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().Bool("offline", false, "Do not query endpoints")
	return cmd
}
