package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// RenderConfig renders the resolved configuration
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if result.Exists {
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	} else {
		fmt.Fprintln(r.out, "📁 no vdeploy.toml or vdeploy.yaml found, using built-in defaults")
	}
	fmt.Fprintln(r.out)

	credential := color.New(color.FgRed).Sprint("(not set)")
	if result.CredentialSet {
		credential = result.Credential
	}

	envVar := result.Network.PrivateKeyEnv
	if envVar == "" {
		envVar = domain.DefaultPrivateKeyEnv
	}

	gasLimit := "estimate"
	if result.Network.GasLimit != 0 {
		gasLimit = strconv.FormatUint(result.Network.GasLimit, 10)
	}

	optimizer := "disabled"
	if result.Compiler.Optimizer {
		optimizer = fmt.Sprintf("enabled (%d runs)", result.Compiler.OptimizerRuns)
	}

	t := newTable()
	t.AppendRows([]table.Row{
		{"Project root", result.ProjectRoot},
		{"Contract", result.Contract},
		{"Network", result.Network.Name},
		{"RPC URL", result.Network.RPCURL},
		{"Chain ID", result.Network.ChainID},
		{"Gas price", result.Network.GasPriceString()},
		{"Gas limit", gasLimit},
		{envVar, credential},
		{"Compiler", fmt.Sprintf("solc %s via %s", result.Compiler.Version, result.Compiler.Tool)},
		{"Optimizer", optimizer},
	})
	fmt.Fprintln(r.out, t.Render())

	if result.ValidationErr != nil {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("not ready to deploy: %v", result.ValidationErr)))
	}
	return nil
}
