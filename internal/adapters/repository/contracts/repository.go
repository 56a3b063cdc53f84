package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// Repository indexes compiled artifacts by contract name
type Repository struct {
	artifactsDir string
	artifacts    map[string][]string // contract name -> artifact paths
	log          *slog.Logger
	mu           sync.RWMutex
	indexed      bool
}

// NewRepository creates an artifact repository over a Foundry or Hardhat output directory
func NewRepository(artifactsDir string, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir: artifactsDir,
		artifacts:    make(map[string][]string),
		log:          log,
	}
}

// NewRepositoryFromConfig creates an artifact repository from the runtime config
func NewRepositoryFromConfig(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return NewRepository(cfg.ArtifactsDir, log)
}

// Index walks the artifacts directory once
func (i *Repository) Index() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.indexed {
		return nil
	}
	i.artifacts = make(map[string][]string)

	err := filepath.WalkDir(i.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == i.artifactsDir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") || strings.HasSuffix(path, ".metadata.json") {
			return nil
		}

		name := strings.TrimSuffix(filepath.Base(path), ".json")
		i.artifacts[name] = append(i.artifacts[name], path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts in %s: %w", i.artifactsDir, err)
	}

	i.log.Debug("indexed artifacts", "dir", i.artifactsDir, "contracts", len(i.artifacts))
	i.indexed = true
	return nil
}

// GetArtifact loads the artifact of a contract. A name found in several
// directories is ambiguous unless given as "<dir>/<Contract>".
func (i *Repository) GetArtifact(ctx context.Context, contract string) (*models.Artifact, error) {
	if err := i.Index(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	name := contract
	hint := ""
	if idx := strings.LastIndex(contract, "/"); idx >= 0 {
		hint, name = contract[:idx], contract[idx+1:]
	}

	paths := i.artifacts[name]
	if hint != "" {
		paths = lo.Filter(paths, func(p string, _ int) bool {
			return strings.Contains(filepath.ToSlash(p), hint+"/")
		})
	}

	switch len(paths) {
	case 0:
		return nil, fmt.Errorf("%s: %w", contract, domain.ErrArtifactNotFound)
	case 1:
	default:
		return nil, fmt.Errorf("multiple artifacts named %s: %s", contract, strings.Join(paths, ", "))
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", paths[0], err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", paths[0], err)
	}
	if artifact.ContractName == "" {
		artifact.ContractName = name
	}
	return &artifact, nil
}

// Ensure Repository implements ArtifactRepository
var _ usecase.ArtifactRepository = (*Repository)(nil)
