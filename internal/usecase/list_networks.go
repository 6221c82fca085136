package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/vdeploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Offline skips querying endpoints for their chain ID
	Offline bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Active   string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name     string
	RPCURL   string
	ChainID  uint64
	GasPrice string
	Error    error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	timeout  time.Duration
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
		timeout:  5 * time.Second,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{Name: name}
		if profile, ok := uc.config.Networks[name]; ok {
			status.RPCURL = profile.RPCURL
			status.ChainID = profile.ChainID
			status.GasPrice = profile.GasPriceString()
		}

		if !params.Offline {
			// Try to resolve network to get chain ID
			resolveCtx, cancel := context.WithTimeout(ctx, uc.timeout)
			info, err := uc.resolver.ResolveNetwork(resolveCtx, name)
			cancel()
			if err != nil {
				status.Error = err
			} else {
				status.ChainID = info.ChainID
			}
		}

		networks = append(networks, status)
	}

	result := &ListNetworksResult{Networks: networks}
	if uc.config.Network != nil {
		result.Active = uc.config.Network.Name
	}
	return result, nil
}

