package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// DeployRenderer renders the outcome of a deploy run. The two status lines
// go to out; details and warnings go to info so out stays easy to parse.
type DeployRenderer struct {
	out  io.Writer
	info io.Writer
	json bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out, info io.Writer, asJSON bool) *DeployRenderer {
	return &DeployRenderer{out: out, info: info, json: asJSON}
}

// RenderStart prints the line shown before anything is built or sent
func (r *DeployRenderer) RenderStart(contract string, network *domain.NetworkProfile) {
	if r.json {
		return
	}
	fmt.Fprintf(r.out, "Deploying %s...\n", contract)
}

// Render prints the deployed address, or the whole result as JSON
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	if r.json {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Deployment)
	}

	for _, w := range result.Warnings {
		fmt.Fprintln(r.info, FormatWarning(w))
	}

	d := result.Deployment
	fmt.Fprintf(r.out, "%s deployed to: %s\n", d.Contract, d.Address.Hex())

	faint := color.New(color.Faint)
	faint.Fprintf(r.info, "  network:     %s (chain %d)\n", d.Network, d.ChainID)
	faint.Fprintf(r.info, "  transaction: %s\n", d.TxHash.Hex())
	faint.Fprintf(r.info, "  block:       %d\n", d.BlockNumber)
	faint.Fprintf(r.info, "  deployer:    %s\n", d.Deployer.Hex())
	if result.Network != nil && result.Network.ExplorerURL != "" {
		faint.Fprintf(r.info, "  explorer:    %s/address/%s\n", strings.TrimSuffix(result.Network.ExplorerURL, "/"), d.Address.Hex())
	}
	return nil
}

// ErrorOutput is the JSON shape of a failed run
type ErrorOutput struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind"`
}

// RenderError writes a failed run as JSON. Plain-text errors are printed by main.
func (r *DeployRenderer) RenderError(err error) error {
	if !r.json || err == nil {
		return nil
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(ErrorOutput{Error: err.Error(), Kind: domain.KindOf(err)})
}
