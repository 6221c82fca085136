package adapters

import (
	"os"

	"github.com/google/wire"
	"github.com/trebuchet-org/vdeploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/vdeploy/internal/adapters/forge"
	"github.com/trebuchet-org/vdeploy/internal/adapters/fs"
	"github.com/trebuchet-org/vdeploy/internal/adapters/interactive"
	"github.com/trebuchet-org/vdeploy/internal/adapters/progress"
	"github.com/trebuchet-org/vdeploy/internal/config"
	domainconfig "github.com/trebuchet-org/vdeploy/internal/domain/config"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// ProvideProgressSink provides the progress sink shown on stderr
func ProvideProgressSink(cfg *domainconfig.RuntimeConfig) usecase.ProgressSink {
	return progress.NewSink(cfg, os.Stderr)
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewArtifactStore,
	wire.Bind(new(usecase.ArtifactRepository), new(*fs.ArtifactStore)),
)

// ForgeSet provides forge-based implementations
var ForgeSet = wire.NewSet(
	forge.NewForgeAdapter,
	wire.Bind(new(usecase.ContractCompiler), new(*forge.ForgeAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.NewNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployer,
	wire.Bind(new(usecase.ChainDeployer), new(*blockchain.Deployer)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideProgressSink,

	FSSet,
	ForgeSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)

var _ usecase.NetworkResolver = (*config.NetworkResolver)(nil)
