package usecase

import (
	"context"

	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/models"
)

// ContractCompiler builds the project's contracts with the given compiler settings
type ContractCompiler interface {
	Compile(ctx context.Context, compiler domain.CompilerProfile) error
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	// GetContract looks a contract up by "Name" or "path/to/File.sol:Name"
	GetContract(ctx context.Context, ref string) (*models.Contract, error)
}

// ChainDeployer submits a creation transaction and waits for it to be mined
type ChainDeployer interface {
	Deploy(ctx context.Context, req domain.DeployRequest) (*domain.DeployReceipt, error)
}

// NetworkResolver resolves configured networks
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*domain.NetworkProfile, error)
}

// NetworkSelector lets the user pick a network interactively
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []*domain.NetworkProfile, current string) (*domain.NetworkProfile, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    ExecutionStage
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	ReportStage(ctx context.Context, stage ExecutionStage)
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) ReportStage(context.Context, ExecutionStage) {}
func (NopProgress) OnProgress(context.Context, ProgressEvent)   {}
func (NopProgress) Info(string)                                 {}
func (NopProgress) Error(string)                                {}

// ExecutionStage represents a stage of the deploy procedure
type ExecutionStage string

const (
	StageCompiling ExecutionStage = "compiling"
	StageResolving ExecutionStage = "resolving"
	StageDeploying ExecutionStage = "deploying"
	StageCompleted ExecutionStage = "completed"
)
