package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

// RenderNetworksList renders the configured networks as a table
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable()
	t.AppendHeader(table.Row{"", "NETWORK", "CHAIN ID", "GAS PRICE", "RPC URL"})
	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Active {
			marker = color.New(color.FgGreen).Sprint("*")
		}

		chainID := "-"
		if network.ChainID != 0 {
			chainID = fmt.Sprintf("%d", network.ChainID)
		}

		status := network.RPCURL
		if network.Error != nil {
			status = color.New(color.FgRed).Sprintf("%s (%v)", network.RPCURL, network.Error)
		}

		t.AppendRow(table.Row{marker, network.Name, chainID, network.GasPrice, status})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}
