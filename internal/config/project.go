package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/trebuchet-org/fundops/internal/domain/config"
)

// ProjectFile is the project configuration file that marks the project root
const ProjectFile = "fundops.toml"

// Default project-relative paths
const (
	DefaultDeploymentsDir = "deployments"
	DefaultArtifactsDir   = "out"
	DefaultMocksManifest  = "mocks.yaml"
)

// loadDotEnv loads .env and .env.local from the project root. Variables
// already set in the environment take precedence.
func loadDotEnv(projectRoot string) error {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// LoadProjectConfig loads fundops.toml from the project root. A missing file
// yields an empty configuration so that commands like init still work.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	if err := loadDotEnv(projectRoot); err != nil {
		return nil, err
	}

	var cfg config.ProjectConfig
	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	expandProjectEnv(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ProjectFile, err)
	}
	return &cfg, nil
}

// expandProjectEnv expands ${VAR} references in networks and accounts
func expandProjectEnv(cfg *config.ProjectConfig) {
	for name, network := range cfg.Networks {
		network.RPCURL = expandReference(network.RPCURL)
		cfg.Networks[name] = network
	}
	for name, account := range cfg.Accounts {
		account.PrivateKey = expandReference(account.PrivateKey)
		account.Mnemonic = expandReference(account.Mnemonic)
		account.Address = os.ExpandEnv(account.Address)
		cfg.Accounts[name] = account
	}
}

// projectPath resolves a configured path against the project root
func projectPath(projectRoot, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(projectRoot, configured)
}
