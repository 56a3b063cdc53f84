package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundops/internal/domain/config"
)

const testProjectTOML = `
[paths]
deployments = "deployments"
artifacts = "artifacts"

[networks.kovan]
rpc_url = "${FUNDOPS_TEST_KOVAN_RPC}"
chain_id = 42

[networks.local]
rpc_url = "http://localhost:8545"

[accounts.deployer]
private_key = "${FUNDOPS_TEST_DEPLOYER_KEY}"

[accounts.manager]
mnemonic = "test test test test test test test test test test test junk"
index = 1

[finalize]
networks = ["kovan", "local"]

[[deploy.contracts]]
name = "Registry"
args = ["@deployer"]
tags = ["core"]

[[deploy.contracts]]
name = "FundDeployer"
deps = ["Registry"]
args = ["@Registry"]
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFile), []byte(content), 0644))
	return dir
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("parses fundops.toml and .env", func(t *testing.T) {
		dir := writeProject(t, testProjectTOML)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
			[]byte("FUNDOPS_TEST_DEPLOYER_KEY=0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80\n"), 0644))
		t.Cleanup(func() { os.Unsetenv("FUNDOPS_TEST_DEPLOYER_KEY") })
		t.Setenv("FUNDOPS_TEST_KOVAN_RPC", "https://kovan.example")

		cfg, err := LoadProjectConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "artifacts", cfg.Paths.Artifacts)
		assert.Equal(t, config.NetworkConfig{RPCURL: "https://kovan.example", ChainID: 42}, cfg.Networks["kovan"])
		assert.Equal(t, "http://localhost:8545", cfg.Networks["local"].RPCURL)
		assert.Equal(t, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", cfg.Accounts["deployer"].PrivateKey)
		assert.Equal(t, uint32(1), cfg.Accounts["manager"].Index)
		assert.Equal(t, []string{"kovan", "local"}, cfg.Finalize.Networks)

		require.Len(t, cfg.Deploy.Contracts, 2)
		assert.Equal(t, "FundDeployer", cfg.Deploy.Contracts[1].Name)
		assert.Equal(t, []string{"Registry"}, cfg.Deploy.Contracts[1].Deps)
		assert.Equal(t, []string{"core"}, cfg.Deploy.Contracts[0].Tags)
	})

	t.Run("unset key reference kept", func(t *testing.T) {
		dir := writeProject(t, "[accounts.deployer]\nprivate_key = \"${FUNDOPS_TEST_UNSET_KEY}\"\n")
		cfg, err := LoadProjectConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "${FUNDOPS_TEST_UNSET_KEY}", cfg.Accounts["deployer"].PrivateKey)
	})

	t.Run("missing file yields empty config", func(t *testing.T) {
		cfg, err := LoadProjectConfig(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, cfg.Networks)
		assert.Nil(t, cfg.Finalize.Networks)
	})

	t.Run("invalid toml", func(t *testing.T) {
		dir := writeProject(t, "[networks.kovan\nrpc_url = 1")
		_, err := LoadProjectConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse fundops.toml")
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{name: "network without rpc_url", content: "[networks.kovan]\nchain_id = 42\n"},
			{name: "account without key", content: "[accounts.deployer]\nindex = 1\n"},
			{name: "bad account address", content: "[accounts.watcher]\naddress = \"0x12\"\n"},
			{name: "unnamed contract step", content: "[[deploy.contracts]]\ncontract = \"Registry\"\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := LoadProjectConfig(writeProject(t, tt.content))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid fundops.toml")
			})
		}
	})
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/root", "deployments"), projectPath("/root", "", DefaultDeploymentsDir))
	assert.Equal(t, filepath.Join("/root", "build"), projectPath("/root", "build", DefaultArtifactsDir))
	assert.Equal(t, "/abs/out", projectPath("/root", "/abs/out", DefaultArtifactsDir))
}
