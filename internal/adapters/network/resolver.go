package network

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// chainIDTimeout bounds the eth_chainId lookup of networks without chain_id
const chainIDTimeout = 5 * time.Second

// Resolver handles network configuration resolution
type Resolver struct {
	networks map[string]config.NetworkConfig // lowercased name -> config
	names    []string
}

// NewResolver creates a resolver over the networks of fundops.toml
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	var networks map[string]config.NetworkConfig
	if cfg.Project != nil {
		networks = cfg.Project.Networks
	}
	return NewResolverFromNetworks(networks)
}

// NewResolverFromNetworks creates a resolver over the given networks
func NewResolverFromNetworks(networks map[string]config.NetworkConfig) *Resolver {
	r := &Resolver{networks: make(map[string]config.NetworkConfig, len(networks))}
	for name, network := range networks {
		r.networks[strings.ToLower(name)] = network
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)
	return r
}

// GetNetworks returns the configured network names in sorted order
func (r *Resolver) GetNetworks(ctx context.Context) []string {
	return slices.Clone(r.names)
}

// ResolveNetwork resolves a network by name. A network configured without
// chain_id is asked for it over RPC.
func (r *Resolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	if name == "" {
		return nil, fmt.Errorf("network not specified")
	}

	network, ok := r.networks[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w (configured: %s)", name, domain.ErrNetworkNotConfigured,
			strings.Join(lo.Ternary(len(r.names) > 0, r.names, []string{"none"}), ", "))
	}

	resolved := &config.Network{
		Name:    name,
		ChainID: network.ChainID,
		RPCURL:  network.RPCURL,
	}
	if resolved.ChainID != 0 {
		return resolved, nil
	}

	chainID, err := queryChainID(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID of %s: %w", name, err)
	}
	resolved.ChainID = chainID
	return resolved, nil
}

func queryChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

// Ensure the resolver implements the interface
var _ usecase.NetworkResolver = (*Resolver)(nil)
