package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

// DefaultPrivateKeyEnv is the env var the signing key is read from unless a network overrides it
const DefaultPrivateKeyEnv = "PRIVATE_KEY"

// NetworkProfile is a single deployable target environment
type NetworkProfile struct {
	Name        string   `json:"name"`
	RPCURL      string   `json:"rpcUrl"`
	ChainID     uint64   `json:"chainId,omitempty"`  // 0 accepts whatever the endpoint reports
	GasPrice    *big.Int `json:"gasPrice,omitempty"` // nil asks the node
	GasLimit    uint64   `json:"gasLimit,omitempty"` // 0 estimates
	ExplorerURL string   `json:"explorerUrl,omitempty"`

	// PrivateKeyEnv names the env var holding the signing key
	PrivateKeyEnv string `json:"privateKeyEnv"`
	// PrivateKey is the resolved signing key, never rendered
	PrivateKey string `json:"-"`
}

// FixedGasPrice reports whether the profile pins the gas price instead of asking the node
func (n *NetworkProfile) FixedGasPrice() bool {
	return n.GasPrice != nil && n.GasPrice.Sign() > 0
}

// CompilerProfile holds the settings contracts are built with
type CompilerProfile struct {
	Version       string `json:"version"`
	Optimizer     bool   `json:"optimizer"`
	OptimizerRuns int    `json:"optimizerRuns,omitempty"`
	// Tool is the build tool driving solc: "forge" or "none"
	Tool string `json:"tool"`
}

// DeploymentResult is produced once per run and discarded after it is reported
type DeploymentResult struct {
	Contract    string         `json:"contract"`
	Network     string         `json:"network"`
	ChainID     uint64         `json:"chainId"`
	Address     common.Address `json:"address"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
	GasUsed     uint64         `json:"gasUsed"`
	GasPrice    *big.Int       `json:"gasPrice"`
	Deployer    common.Address `json:"deployer"`
}

// DeployRequest is what the chain adapter needs to submit one creation transaction
type DeployRequest struct {
	Network  NetworkProfile
	Bytecode []byte
}

// DeployReceipt is the confirmed outcome of a creation transaction
type DeployReceipt struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	GasPrice    *big.Int
	ChainID     uint64
	Deployer    common.Address
}

// GasPriceString renders the gas price setting in gwei, or "auto"
func (n *NetworkProfile) GasPriceString() string {
	if !n.FixedGasPrice() {
		return "auto"
	}
	gwei := new(big.Float).Quo(new(big.Float).SetInt(n.GasPrice), big.NewFloat(params.GWei))
	return gwei.Text('f', -1) + " gwei"
}
