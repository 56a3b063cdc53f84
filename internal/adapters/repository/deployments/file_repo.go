package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

const (
	// ChainIDFile sits next to the records of a network
	ChainIDFile = ".chainId"
	recordExt   = ".json"
)

// FileRepository stores one JSON file per deployment under
// <root>/<network>/<name>.json, the hardhat-deploy layout
type FileRepository struct {
	rootDir string
	mu      sync.RWMutex
}

// NewFileRepository creates a repository rooted at the deployments directory
func NewFileRepository(rootDir string) (*FileRepository, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create deployments directory: %w", err)
	}
	return &FileRepository{rootDir: rootDir}, nil
}

// NewFileRepositoryFromConfig creates a repository from the runtime config
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) (*FileRepository, error) {
	return NewFileRepository(cfg.DeploymentsDir)
}

// Root returns the deployments directory
func (m *FileRepository) Root() string {
	return m.rootDir
}

// recordPath rejects names and networks that resolve outside the network directory
func (m *FileRepository) recordPath(network, name string) (string, error) {
	if network == "" || !filepath.IsLocal(network) || strings.ContainsAny(network, `/\`) {
		return "", fmt.Errorf("network %q: %w", network, domain.ErrInvalidName)
	}
	rel := filepath.FromSlash(name) + recordExt
	if name == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%q: %w", name, domain.ErrInvalidName)
	}
	return filepath.Join(m.rootDir, network, rel), nil
}

// GetDeployment reads the record of name on network
func (m *FileRepository) GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.readRecord(network, name)
}

// HasDeployment reports whether a record exists for name on network
func (m *FileRepository) HasDeployment(ctx context.Context, network, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path, err := m.recordPath(network, name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat deployment %s: %w", name, err)
}

// SaveDeployment writes the record atomically, replacing any previous one
func (m *FileRepository) SaveDeployment(ctx context.Context, network string, deployment *models.Deployment) error {
	if deployment.Name == "" {
		return fmt.Errorf("deployment has no name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path, err := m.recordPath(network, deployment.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", deployment.Name, err)
	}

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment %s: %w", deployment.Name, err)
	}

	return writeAtomic(path, data)
}

// ListDeployments walks the network directory, subdirectories included
func (m *FileRepository) ListDeployments(ctx context.Context, network string, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	networkDir := filepath.Join(m.rootDir, network)
	var result []*models.Deployment

	err := filepath.WalkDir(networkDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == networkDir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != recordExt {
			return nil
		}

		rel, err := filepath.Rel(networkDir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), recordExt)

		if filter.Prefix != "" && !strings.HasPrefix(name, filter.Prefix) {
			return nil
		}

		dep, err := m.readRecord(network, name)
		if err != nil {
			return err
		}
		if filter.Contract != "" && dep.Contract != filter.Contract {
			return nil
		}
		if filter.LinkedOnly && len(dep.LinkedData) == 0 {
			return nil
		}

		result = append(result, dep)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments on %s: %w", network, err)
	}

	slices.SortFunc(result, func(a, b *models.Deployment) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

// EnsureDir creates a subdirectory of the network directory
func (m *FileRepository) EnsureDir(ctx context.Context, network, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(m.rootDir, network, filepath.FromSlash(dir)), 0755); err != nil {
		return fmt.Errorf("failed to create %s/%s: %w", network, dir, err)
	}
	return nil
}

// WriteChainID records the chain ID of a network in its .chainId file
func (m *FileRepository) WriteChainID(network string, chainID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Join(m.rootDir, network)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return writeAtomic(filepath.Join(dir, ChainIDFile), []byte(strconv.FormatUint(chainID, 10)))
}

// ReadChainID reads the .chainId file of a network
func (m *FileRepository) ReadChainID(network string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(m.rootDir, network, ChainIDFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("chain id of %s: %w", network, domain.ErrNotFound)
		}
		return 0, err
	}
	id, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id in %s: %w", ChainIDFile, err)
	}
	return id, nil
}

// readRecord expects the caller to hold the lock
func (m *FileRepository) readRecord(network, name string) (*models.Deployment, error) {
	path, err := m.recordPath(network, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("deployment %s on %s: %w", name, network, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read deployment %s: %w", name, err)
	}

	var dep models.Deployment
	if err := json.Unmarshal(data, &dep); err != nil {
		return nil, fmt.Errorf("failed to parse deployment %s: %w", name, err)
	}
	dep.Name = name
	return &dep, nil
}

func writeAtomic(path string, data []byte) error {
	// Write to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// Ensure FileRepository implements DeploymentStore
var _ usecase.DeploymentStore = (*FileRepository)(nil)
var _ usecase.ChainIDRecorder = (*FileRepository)(nil)
