package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
)

// DataDirName is the project-local directory holding config.local.json
const DataDirName = ".fundops"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	project, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		DeploymentsDir: projectPath(projectRoot, project.Paths.Deployments, DefaultDeploymentsDir),
		ArtifactsDir:   projectPath(projectRoot, project.Paths.Artifacts, DefaultArtifactsDir),
		MocksManifest:  projectPath(projectRoot, project.Paths.Mocks, DefaultMocksManifest),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Yes:            v.GetBool("yes"),
		Timeout:        v.GetDuration("timeout"),
		Project:        project,
	}

	// An explicit (even empty) list in fundops.toml wins over the default
	cfg.FinalizeNetworks = project.Finalize.Networks
	if cfg.FinalizeNetworks == nil {
		cfg.FinalizeNetworks = v.GetStringSlice("finalize_networks")
	}

	if networkName := v.GetString("network"); networkName != "" {
		network, err := resolveNetwork(project, networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// resolveNetwork looks the network up in fundops.toml. A chain_id of 0 is
// left for the chain client to read from the node.
func resolveNetwork(project *config.ProjectConfig, name string) (*config.Network, error) {
	for configured, network := range project.Networks {
		if !strings.EqualFold(configured, name) {
			continue
		}
		if envVar, ok := DetectEnvVar(network.RPCURL); ok {
			return nil, fmt.Errorf("rpc_url references %s which is not set", envVar)
		}
		return &config.Network{
			Name:    configured,
			ChainID: network.ChainID,
			RPCURL:  network.RPCURL,
		}, nil
	}
	return nil, domain.ErrNetworkNotConfigured
}

// FindProjectRoot walks up from current directory to find fundops.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a fundops project (%s not found)", ProjectFile)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("FUNDOPS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("finalize_networks", []string{"kovan"})
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
