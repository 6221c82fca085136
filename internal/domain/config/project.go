package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the on-disk project configuration, read from vdeploy.toml or vdeploy.yaml
type ProjectFile struct {
	DefaultNetwork string                   `toml:"default_network" yaml:"default_network"`
	Contract       string                   `toml:"contract" yaml:"contract"`
	Compiler       CompilerSection          `toml:"compiler" yaml:"compiler"`
	Networks       map[string]NetworkConfig `toml:"networks" yaml:"networks"`
}

// CompilerSection mirrors the solidity block of a hardhat config
type CompilerSection struct {
	Version       string `toml:"version" yaml:"version"`
	Optimizer     *bool  `toml:"optimizer" yaml:"optimizer"`
	OptimizerRuns int    `toml:"optimizer_runs" yaml:"optimizer_runs"`
	Tool          string `toml:"tool" yaml:"tool"`
}

// NetworkConfig is a network entry as written in the project file.
// GasPrice is a decimal wei amount, a unit-suffixed amount like "1gwei", or "auto".
type NetworkConfig struct {
	RPCURL        string   `toml:"rpc_url" yaml:"rpc_url"`
	ChainID       uint64   `toml:"chain_id" yaml:"chain_id"`
	GasPrice      GasPrice `toml:"gas_price" yaml:"gas_price"`
	GasLimit      uint64   `toml:"gas_limit" yaml:"gas_limit"`
	PrivateKeyEnv string   `toml:"private_key_env" yaml:"private_key_env"`
	ExplorerURL   string   `toml:"explorer_url" yaml:"explorer_url"`
}

// GasPrice is the raw gas price setting. TOML and YAML allow it as either a
// number or a string, so both decode into the same textual form.
type GasPrice string

func (g *GasPrice) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		*g = GasPrice(val)
	case int64:
		*g = GasPrice(fmt.Sprintf("%d", val))
	case float64:
		*g = GasPrice(fmt.Sprintf("%.0f", val))
	default:
		return fmt.Errorf("gas_price must be a number or string, got %T", v)
	}
	return nil
}

func (g *GasPrice) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("gas_price must be a scalar (line %d)", node.Line)
	}
	*g = GasPrice(node.Value)
	return nil
}
