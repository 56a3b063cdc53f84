package adapters

import (
	"github.com/google/wire"

	"github.com/trebuchet-org/fundops/internal/adapters/anvil"
	"github.com/trebuchet-org/fundops/internal/adapters/blockchain"
	"github.com/trebuchet-org/fundops/internal/adapters/fs"
	"github.com/trebuchet-org/fundops/internal/adapters/interactive"
	"github.com/trebuchet-org/fundops/internal/adapters/network"
	"github.com/trebuchet-org/fundops/internal/adapters/progress"
	artifactrepo "github.com/trebuchet-org/fundops/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/fundops/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/fundops/internal/adapters/senders"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentStore), new(*deployments.FileRepository)),

	artifactrepo.NewRepositoryFromConfig,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifactrepo.Repository)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// AccountsSet provides named accounts and their signing keys
var AccountsSet = wire.NewSet(
	senders.NewService,
	wire.Bind(new(usecase.AccountResolver), new(*senders.Service)),
	wire.Bind(new(blockchain.KeyStore), new(*senders.Service)),
)

// BlockchainSet provides the JSON-RPC chain client
var BlockchainSet = wire.NewSet(
	blockchain.NewClientFromConfig,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmerAdapter)),
)

// AnvilSet provides local node management
var AnvilSet = wire.NewSet(
	anvil.NewManager,
	wire.Bind(new(usecase.AnvilManager), new(*anvil.Manager)),
)

// ProgressSet selects the progress sink for the output mode
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	AccountsSet,
	BlockchainSet,
	ConfigSet,
	InteractiveSet,
	AnvilSet,
	ProgressSet,
)
