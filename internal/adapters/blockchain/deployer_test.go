package blockchain

import (
	"context"
	"log/slog"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
)

const (
	// anvil's first dev account
	testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	// funded nowhere
	unfundedPrivateKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

	// init code returning a one byte runtime (STOP)
	stopContract = "0x6001600c60003960016000f300"
	// init code that always reverts
	revertContract = "0x60006000fd"

	simulatedChainID = 1337
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// newSimulatedDeployer starts an in-process chain that mines a block every few milliseconds
func newSimulatedDeployer(t *testing.T) (*Deployer, *simulated.Backend) {
	t.Helper()

	key, err := crypto.HexToECDSA(testPrivateKey[2:])
	require.NoError(t, err)
	funded := crypto.PubkeyToAddress(key.PublicKey)

	backend := simulated.NewBackend(types.GenesisAlloc{
		funded: {Balance: new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))},
	})
	t.Cleanup(func() {
		_ = backend.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				backend.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	dial := func(context.Context, string) (ChainClient, func(), error) {
		return backend.Client(), func() {}, nil
	}
	return NewDeployerWithDialer(dial, 10*time.Millisecond, newTestLogger()), backend
}

func testRequest(t *testing.T, privateKey, bytecode string) domain.DeployRequest {
	t.Helper()
	return domain.DeployRequest{
		Network: domain.NetworkProfile{
			Name:       "simulated",
			RPCURL:     "simulated://",
			ChainID:    simulatedChainID,
			PrivateKey: privateKey,
		},
		Bytecode: hexutil.MustDecode(bytecode),
	}
}

func TestDeploy_Success(t *testing.T) {
	deployer, backend := newSimulatedDeployer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	receipt, err := deployer.Deploy(ctx, testRequest(t, testPrivateKey, stopContract))
	require.NoError(t, err)

	assert.NotEqual(t, common.Address{}, receipt.Address)
	assert.NotEqual(t, common.Hash{}, receipt.TxHash)
	assert.Equal(t, uint64(simulatedChainID), receipt.ChainID)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), receipt.Deployer)
	assert.Equal(t, crypto.CreateAddress(receipt.Deployer, 0), receipt.Address)
	assert.NotZero(t, receipt.GasUsed)
	require.NotNil(t, receipt.GasPrice)
	assert.Positive(t, receipt.GasPrice.Sign())

	code, err := backend.Client().CodeAt(ctx, receipt.Address, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, code)
}

func TestDeploy_TwoRunsGiveDistinctAddresses(t *testing.T) {
	deployer, _ := newSimulatedDeployer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	first, err := deployer.Deploy(ctx, testRequest(t, testPrivateKey, stopContract))
	require.NoError(t, err)
	second, err := deployer.Deploy(ctx, testRequest(t, testPrivateKey, stopContract))
	require.NoError(t, err)

	assert.NotEqual(t, first.Address, second.Address)
	assert.NotEqual(t, first.TxHash, second.TxHash)
}

func TestDeploy_FixedGasSettings(t *testing.T) {
	deployer, _ := newSimulatedDeployer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req := testRequest(t, testPrivateKey, stopContract)
	req.Network.GasPrice = big.NewInt(10 * params.GWei)
	req.Network.GasLimit = 200_000

	receipt, err := deployer.Deploy(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, receipt.GasPrice.Cmp(big.NewInt(10*params.GWei)))
}

func TestDeploy_UnfundedAccount(t *testing.T) {
	deployer, _ := newSimulatedDeployer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	receipt, err := deployer.Deploy(ctx, testRequest(t, unfundedPrivateKey, stopContract))
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}

func TestDeploy_Reverted(t *testing.T) {
	deployer, _ := newSimulatedDeployer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// A fixed limit skips estimation, so the revert shows up in the receipt
	req := testRequest(t, testPrivateKey, revertContract)
	req.Network.GasLimit = 100_000

	_, err := deployer.Deploy(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionReverted)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}

func TestDeploy_ChainIDMismatch(t *testing.T) {
	deployer, _ := newSimulatedDeployer(t)

	req := testRequest(t, testPrivateKey, stopContract)
	req.Network.ChainID = 168587773

	_, err := deployer.Deploy(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrChainIDMismatch)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}

func TestDeploy_AnyChainWhenUnset(t *testing.T) {
	deployer, _ := newSimulatedDeployer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req := testRequest(t, testPrivateKey, stopContract)
	req.Network.ChainID = 0

	receipt, err := deployer.Deploy(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, uint64(simulatedChainID), receipt.ChainID)
}

func TestDeploy_InvalidCredentialDoesNotDial(t *testing.T) {
	dial := func(context.Context, string) (ChainClient, func(), error) {
		t.Fatal("dial must not be called with an invalid key")
		return nil, nil, nil
	}
	deployer := NewDeployerWithDialer(dial, time.Millisecond, newTestLogger())

	_, err := deployer.Deploy(context.Background(), testRequest(t, "not-a-key", stopContract))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
	assert.Equal(t, domain.KindCredential, domain.KindOf(err))
}

func TestDeploy_UnreachableEndpoint(t *testing.T) {
	deployer := NewDeployer(&config.RuntimeConfig{PollInterval: time.Millisecond}, newTestLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req := testRequest(t, testPrivateKey, stopContract)
	req.Network.RPCURL = "http://127.0.0.1:1"

	_, err := deployer.Deploy(ctx, req)
	require.Error(t, err)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}

func TestDeploy_TimeoutWhileWaiting(t *testing.T) {
	key, err := crypto.HexToECDSA(testPrivateKey[2:])
	require.NoError(t, err)
	backend := simulated.NewBackend(types.GenesisAlloc{
		crypto.PubkeyToAddress(key.PublicKey): {Balance: big.NewInt(params.Ether)},
	})
	defer backend.Close()

	// Nothing commits blocks, so the receipt never shows up
	dial := func(context.Context, string) (ChainClient, func(), error) {
		return backend.Client(), func() {}, nil
	}
	deployer := NewDeployerWithDialer(dial, 10*time.Millisecond, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err = deployer.Deploy(ctx, testRequest(t, testPrivateKey, stopContract))
	require.Error(t, err)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
	assert.Contains(t, err.Error(), "wait for receipt")
}
