package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// ChainClient is the subset of the JSON-RPC API a deployment needs
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// DialFunc connects to an RPC endpoint. The returned func releases the connection.
type DialFunc func(ctx context.Context, rpcURL string) (ChainClient, func(), error)

// Deployer sends contract creation transactions and waits for them to be mined
type Deployer struct {
	dial         DialFunc
	pollInterval time.Duration
	log          *slog.Logger
}

// NewDeployer creates a deployer that dials endpoints with ethclient
func NewDeployer(cfg *config.RuntimeConfig, log *slog.Logger) *Deployer {
	return NewDeployerWithDialer(dialEthClient, cfg.PollInterval, log)
}

// NewDeployerWithDialer creates a deployer with a custom dialer
func NewDeployerWithDialer(dial DialFunc, pollInterval time.Duration, log *slog.Logger) *Deployer {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Deployer{
		dial:         dial,
		pollInterval: pollInterval,
		log:          log.With("component", "Deployer"),
	}
}

func dialEthClient(ctx context.Context, rpcURL string) (ChainClient, func(), error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

// Deploy signs and sends one creation transaction carrying req.Bytecode,
// then waits for its receipt. Each call creates a new contract.
func (d *Deployer) Deploy(ctx context.Context, req domain.DeployRequest) (*domain.DeployReceipt, error) {
	network := req.Network

	key, from, err := domain.ParsePrivateKey(network.PrivateKey)
	if err != nil {
		return nil, domain.NewError(domain.KindCredential, "load signing key", err)
	}

	client, closeFn, err := d.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, domain.NewError(domain.KindNetwork, "connect",
			fmt.Errorf("failed to connect to RPC %s: %w", network.RPCURL, err))
	}
	defer closeFn()

	chainID, err := d.checkChainID(ctx, client, network)
	if err != nil {
		return nil, err
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, domain.NewError(domain.KindNetwork, "get nonce", err)
	}

	gasPrice := network.GasPrice
	if !network.FixedGasPrice() {
		gasPrice, err = client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, domain.NewError(domain.KindNetwork, "suggest gas price", err)
		}
	}

	gasLimit := network.GasLimit
	if gasLimit == 0 {
		gasLimit, err = client.EstimateGas(ctx, ethereum.CallMsg{
			From:     from,
			GasPrice: gasPrice,
			Data:     req.Bytecode,
		})
		if err != nil {
			return nil, domain.NewError(domain.KindNetwork, "estimate gas", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		Data:     req.Bytecode,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return nil, domain.NewError(domain.KindCredential, "sign transaction", err)
	}

	d.log.Debug("sending deployment transaction",
		"from", from.Hex(), "nonce", nonce, "gas", gasLimit, "gasPrice", gasPrice, "chainId", chainID)

	if err := client.SendTransaction(ctx, signedTx); err != nil {
		return nil, domain.NewError(domain.KindNetwork, "send transaction", err)
	}

	receipt, err := d.waitForReceipt(ctx, client, signedTx.Hash())
	if err != nil {
		return nil, domain.NewError(domain.KindNetwork, "wait for receipt",
			fmt.Errorf("transaction %s: %w", signedTx.Hash().Hex(), err))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, domain.NewError(domain.KindNetwork, "deploy",
			fmt.Errorf("%w: %s", domain.ErrTransactionReverted, signedTx.Hash().Hex()))
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = crypto.CreateAddress(from, nonce)
	}

	code, err := client.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, domain.NewError(domain.KindNetwork, "check code", err)
	}
	if len(code) == 0 {
		d.log.Warn("no code at deployed address", "address", address.Hex())
	}

	result := &domain.DeployReceipt{
		Address:  address,
		TxHash:   signedTx.Hash(),
		GasUsed:  receipt.GasUsed,
		GasPrice: gasPrice,
		ChainID:  chainID.Uint64(),
		Deployer: from,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return result, nil
}

// checkChainID compares the endpoint's chain with the profile. A profile
// without a chain ID accepts whatever the endpoint reports.
func (d *Deployer) checkChainID(ctx context.Context, client ChainClient, network domain.NetworkProfile) (*big.Int, error) {
	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, domain.NewError(domain.KindNetwork, "get chain ID", err)
	}

	if network.ChainID != 0 && networkChainID.Uint64() != network.ChainID {
		return nil, domain.NewError(domain.KindNetwork, "connect",
			fmt.Errorf("%w: %s expects %d, endpoint reports %d",
				domain.ErrChainIDMismatch, network.Name, network.ChainID, networkChainID.Uint64()))
	}
	return networkChainID, nil
}

// waitForReceipt polls until the transaction is mined or ctx ends
func (d *Deployer) waitForReceipt(ctx context.Context, client ChainClient, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Ensure the adapter implements the interface
var _ usecase.ChainDeployer = (*Deployer)(nil)
