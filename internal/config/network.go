package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
)

// resolveNetworks merges project file networks over the built-in ones and
// resolves RPC URLs and signing credentials from the environment.
func resolveNetworks(file *config.ProjectFile) (map[string]*domain.NetworkProfile, error) {
	networks := builtinNetworks()

	if file != nil {
		for name, nc := range file.Networks {
			profile, ok := networks[name]
			if !ok {
				profile = &domain.NetworkProfile{Name: name, PrivateKeyEnv: domain.DefaultPrivateKeyEnv}
				networks[name] = profile
			}

			if nc.RPCURL != "" {
				profile.RPCURL = nc.RPCURL
			}
			if nc.ChainID != 0 {
				profile.ChainID = nc.ChainID
			}
			if nc.GasPrice != "" {
				gasPrice, err := ParseGasPrice(string(nc.GasPrice))
				if err != nil {
					return nil, fmt.Errorf("network %s: %w", name, err)
				}
				profile.GasPrice = gasPrice
			}
			if nc.GasLimit != 0 {
				profile.GasLimit = nc.GasLimit
			}
			if nc.PrivateKeyEnv != "" {
				profile.PrivateKeyEnv = nc.PrivateKeyEnv
			}
			if nc.ExplorerURL != "" {
				profile.ExplorerURL = nc.ExplorerURL
			}
		}
	}

	for name, profile := range networks {
		if override, ok := RPCURLOverride(name); ok {
			profile.RPCURL = override
		}
		profile.RPCURL, _ = ExpandRPCURL(profile.RPCURL)
		profile.PrivateKey = lookupCredential(profile.PrivateKeyEnv)
	}

	return networks, nil
}

// SortedNetworkNames returns network names in a stable order
func SortedNetworkNames(networks map[string]*domain.NetworkProfile) []string {
	names := lo.Keys(networks)
	sort.Strings(names)
	return names
}

// NetworkResolver resolves network names to profiles, filling in chain IDs
// from the endpoint when the profile does not pin one. Lookups are cached
// on disk under <project>/cache/chainIds.json.
type NetworkResolver struct {
	projectRoot string
	networks    map[string]*domain.NetworkProfile
	cache       *NetworkCache
	dialTimeout time.Duration
	mu          sync.RWMutex
}

// NetworkCache caches chain ID lookups
type NetworkCache struct {
	RPCs      map[string]uint64 `json:"rpcs"` // rpcURL -> chainID
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	r := &NetworkResolver{
		projectRoot: cfg.ProjectRoot,
		networks:    cfg.Networks,
		dialTimeout: 10 * time.Second,
	}
	r.loadCache()
	return r
}

// GetNetworks returns the configured network names, sorted
func (r *NetworkResolver) GetNetworks(ctx context.Context) []string {
	return SortedNetworkNames(r.networks)
}

// ResolveNetwork returns the named profile with its chain ID filled in
func (r *NetworkResolver) ResolveNetwork(ctx context.Context, name string) (*domain.NetworkProfile, error) {
	profile, ok := r.networks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, name)
	}

	resolved := *profile
	chainID, err := r.fetchChainID(ctx, resolved.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", name, err)
	}
	if resolved.ChainID != 0 && resolved.ChainID != chainID {
		return nil, fmt.Errorf("%w: %s expects %d, endpoint reports %d",
			domain.ErrChainIDMismatch, name, resolved.ChainID, chainID)
	}
	resolved.ChainID = chainID
	return &resolved, nil
}

// fetchChainID asks the endpoint for its chain ID, using the cache first
func (r *NetworkResolver) fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	r.mu.RLock()
	if chainID, exists := r.cache.RPCs[rpcURL]; exists {
		r.mu.RUnlock()
		return chainID, nil
	}
	r.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, r.dialTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}

	chainID := id.Uint64()
	r.updateCache(rpcURL, chainID)
	return chainID, nil
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.projectRoot, "cache", "chainIds.json")
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = &NetworkCache{RPCs: make(map[string]uint64)}

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		// Cache doesn't exist yet, that's fine
		return
	}

	var cache NetworkCache
	if err := json.Unmarshal(data, &cache); err != nil || cache.RPCs == nil {
		return
	}
	r.cache = &cache
}

// updateCache records a chain ID and persists the cache, ignoring write errors
func (r *NetworkResolver) updateCache(rpcURL string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.RPCs[rpcURL] = chainID
	r.cache.UpdatedAt = time.Now()

	_ = r.saveCache()
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	if err := os.MkdirAll(filepath.Dir(r.cachePath()), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.cachePath(), data, 0644)
}
