package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/trebuchet-org/vdeploy/internal/config"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	domainconfig "github.com/trebuchet-org/vdeploy/internal/domain/config"
	"github.com/trebuchet-org/vdeploy/internal/domain/models"
)

// ErrDeploymentCancelled is returned when the user declines the confirmation prompt
var ErrDeploymentCancelled = errors.New("deployment cancelled")

// DeployContractParams contains parameters for a deploy run
type DeployContractParams struct {
	// OnStart is called once configuration is valid, before anything is built or sent
	OnStart func(contract string, network *domain.NetworkProfile)
}

// DeployContractResult contains the outcome of a successful deploy run
type DeployContractResult struct {
	Deployment domain.DeploymentResult
	Contract   *models.Contract
	Network    *domain.NetworkProfile
	Warnings   []string
}

// DeployContract compiles, resolves and deploys exactly one contract.
// The first failure ends the run; nothing is retried.
type DeployContract struct {
	config    *domainconfig.RuntimeConfig
	compiler  ContractCompiler
	artifacts ArtifactRepository
	deployer  ChainDeployer
	selector  NetworkSelector
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *domainconfig.RuntimeConfig,
	compiler ContractCompiler,
	artifacts ArtifactRepository,
	deployer ChainDeployer,
	selector NetworkSelector,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		compiler:  compiler,
		artifacts: artifacts,
		deployer:  deployer,
		selector:  selector,
		progress:  progress,
		log:       log.With("component", "DeployContract"),
	}
}

// Run executes the deploy procedure
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	if uc.config.Interactive {
		if err := uc.selectNetwork(ctx); err != nil {
			return nil, err
		}
	}

	// Fail fast: nothing below runs with an incomplete configuration
	if err := uc.config.Validate(); err != nil {
		return nil, err
	}

	network := uc.config.Network
	result := &DeployContractResult{Network: network}

	if params.OnStart != nil {
		params.OnStart(uc.config.Contract, network)
	}
	uc.log.Debug("starting deployment", "contract", uc.config.Contract, "network", network.Name, "rpc", network.RPCURL)

	if uc.shouldCompile() {
		uc.progress.ReportStage(ctx, StageCompiling)
		if err := uc.compiler.Compile(ctx, uc.config.Compiler); err != nil {
			return nil, ensureKind(domain.KindBuild, "compile", err)
		}
	}

	uc.progress.ReportStage(ctx, StageResolving)
	contract, bytecode, warnings, err := uc.resolve(ctx)
	if err != nil {
		return nil, err
	}
	result.Contract = contract
	result.Warnings = warnings
	for _, w := range warnings {
		uc.log.Warn(w)
	}

	uc.progress.ReportStage(ctx, StageDeploying)
	deployCtx := ctx
	if uc.config.Timeout > 0 {
		var cancel context.CancelFunc
		deployCtx, cancel = context.WithTimeout(ctx, uc.config.Timeout)
		defer cancel()
	}

	receipt, err := uc.deployer.Deploy(deployCtx, domain.DeployRequest{
		Network:  *network,
		Bytecode: bytecode,
	})
	if err != nil {
		uc.progress.Error(fmt.Sprintf("Deployment of %s failed", uc.config.Contract))
		return nil, ensureKind(domain.KindNetwork, "deploy", err)
	}

	uc.progress.ReportStage(ctx, StageCompleted)

	result.Deployment = domain.DeploymentResult{
		Contract:    contract.Name,
		Network:     network.Name,
		ChainID:     receipt.ChainID,
		Address:     receipt.Address,
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
		GasPrice:    receipt.GasPrice,
		Deployer:    receipt.Deployer,
	}
	uc.log.Debug("deployment confirmed", "address", receipt.Address.Hex(), "tx", receipt.TxHash.Hex(), "block", receipt.BlockNumber)

	return result, nil
}

func (uc *DeployContract) shouldCompile() bool {
	return !uc.config.SkipBuild && uc.config.Compiler.Tool != "none"
}

// resolve finds the artifact and checks it can be deployed without arguments
func (uc *DeployContract) resolve(ctx context.Context) (*models.Contract, []byte, []string, error) {
	contract, err := uc.artifacts.GetContract(ctx, uc.config.Contract)
	if err != nil {
		return nil, nil, nil, ensureKind(domain.KindArtifact, "resolve "+uc.config.Contract, err)
	}

	artifact := contract.Artifact
	if artifact == nil || artifact.Bytecode.Empty() {
		return nil, nil, nil, domain.NewError(domain.KindArtifact, "resolve "+contract.Name,
			fmt.Errorf("%w (is %s abstract or an interface?)", domain.ErrEmptyBytecode, contract.Name))
	}
	if !artifact.Bytecode.Linked() {
		return nil, nil, nil, domain.NewError(domain.KindArtifact, "resolve "+contract.Name,
			fmt.Errorf("bytecode has unlinked library references"))
	}

	bytecode, err := artifact.Bytecode.Bytes()
	if err != nil {
		return nil, nil, nil, domain.NewError(domain.KindArtifact, "resolve "+contract.Name,
			fmt.Errorf("failed to decode bytecode: %w", err))
	}

	if err := checkConstructor(artifact); err != nil {
		return nil, nil, nil, domain.NewError(domain.KindArtifact, "resolve "+contract.Name, err)
	}

	var warnings []string
	if built := artifact.CompilerVersion(); built != "" && uc.config.Compiler.Version != "" && built != uc.config.Compiler.Version {
		warnings = append(warnings, fmt.Sprintf("%s was compiled with solc %s but the compiler profile requests %s", contract.Name, built, uc.config.Compiler.Version))
	}

	return contract, bytecode, warnings, nil
}

// checkConstructor rejects contracts whose constructor needs arguments
func checkConstructor(artifact *models.Artifact) error {
	raw := bytes.TrimSpace(artifact.ABI)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to parse ABI: %w", err)
	}

	if n := len(parsed.Constructor.Inputs); n > 0 {
		names := make([]string, 0, n)
		for _, in := range parsed.Constructor.Inputs {
			names = append(names, fmt.Sprintf("%s %s", in.Type.String(), in.Name))
		}
		return fmt.Errorf("%w: %s", domain.ErrConstructorArgs, strings.Join(names, ", "))
	}
	return nil
}

// selectNetwork asks the user for the target network and a confirmation
func (uc *DeployContract) selectNetwork(ctx context.Context) error {
	if uc.config.NonInteractive {
		return domain.NewError(domain.KindConfig, "select network",
			fmt.Errorf("interactive selection not available in non-interactive mode"))
	}

	names := config.SortedNetworkNames(uc.config.Networks)
	networks := make([]*domain.NetworkProfile, 0, len(names))
	for _, name := range names {
		networks = append(networks, uc.config.Networks[name])
	}

	current := ""
	if uc.config.Network != nil {
		current = uc.config.Network.Name
	}

	selected, err := uc.selector.SelectNetwork(ctx, networks, current)
	if err != nil {
		return domain.NewError(domain.KindConfig, "select network", err)
	}
	uc.config.Network = selected

	ok, err := uc.selector.Confirm(ctx, fmt.Sprintf("Deploy %s to %s", uc.config.Contract, selected.Name))
	if err != nil {
		return domain.NewError(domain.KindConfig, "confirm", err)
	}
	if !ok {
		return domain.NewError(domain.KindConfig, "confirm", ErrDeploymentCancelled)
	}
	return nil
}

// ensureKind tags err with kind unless something below already classified it
func ensureKind(kind domain.ErrorKind, op string, err error) error {
	var de *domain.DeployError
	if errors.As(err, &de) {
		return err
	}
	return domain.NewError(kind, op, err)
}
