package config

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
	"github.com/trebuchet-org/vdeploy/internal/domain"
)

const (
	// DefaultNetworkName is the network used when neither flags nor the project file pick one
	DefaultNetworkName = "blast-sepolia"

	// DefaultContract is the contract deployed when none is named
	DefaultContract = "Vault"

	DefaultSolcVersion   = "0.8.20"
	DefaultOptimizerRuns = 200
	DefaultCompilerTool  = "forge"
)

// builtinNetworks returns the networks known without any project file
func builtinNetworks() map[string]*domain.NetworkProfile {
	return map[string]*domain.NetworkProfile{
		DefaultNetworkName: {
			Name:          DefaultNetworkName,
			RPCURL:        "https://rpc.ankr.com/blast_testnet_sepolia",
			ChainID:       168587773,
			GasPrice:      big.NewInt(params.GWei),
			PrivateKeyEnv: domain.DefaultPrivateKeyEnv,
			ExplorerURL:   "https://sepolia.blastscan.io",
		},
		"anvil": {
			Name:          "anvil",
			RPCURL:        "http://localhost:8545",
			ChainID:       31337,
			PrivateKeyEnv: domain.DefaultPrivateKeyEnv,
		},
	}
}

// builtinCompiler returns the compiler settings used when the project file has none
func builtinCompiler() domain.CompilerProfile {
	return domain.CompilerProfile{
		Version:       DefaultSolcVersion,
		Optimizer:     true,
		OptimizerRuns: DefaultOptimizerRuns,
		Tool:          DefaultCompilerTool,
	}
}
