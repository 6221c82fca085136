package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/vdeploy/internal/cli/render"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Compile and deploy the contract",
		Long: `Compile the project with forge, look up the contract's artifact and send
one creation transaction to the selected network.

Each run deploys a new instance. Nothing is recorded between runs.`,
		Example: `  vdeploy deploy
  vdeploy deploy --network anvil
  vdeploy deploy -c src/Vault.sol:Vault --skip-build --json`,
		Args: cobra.NoArgs,
		RunE: runDeploy,
	}

	addDeployFlags(cmd)
	return cmd
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("contract", "c", "", "Contract to deploy, by name or path:Name (default Vault)")
	cmd.Flags().Bool("skip-build", false, "Use existing artifacts instead of running forge build")
	cmd.Flags().BoolP("interactive", "i", false, "Pick the network from a list and confirm before deploying")
	cmd.Flags().Duration("timeout", 0, "Give up waiting for the transaction after this long (default 5m)")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	renderer := render.NewDeployRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), app.Config.JSON)

	result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
		OnStart: renderer.RenderStart,
	})
	if err != nil {
		_ = renderer.RenderError(err)
		return err
	}

	return renderer.Render(result)
}
