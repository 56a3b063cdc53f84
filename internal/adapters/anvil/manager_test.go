package anvil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundops/internal/domain"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return &Manager{binary: "anvil", tempDir: t.TempDir()}
}

func TestBuildAnvilArgs(t *testing.T) {
	tests := []struct {
		name     string
		instance *domain.AnvilInstance
		want     []string
	}{
		{
			name:     "basic",
			instance: &domain.AnvilInstance{Port: 8545},
			want:     []string{"--port", "8545", "--host", "0.0.0.0"},
		},
		{
			name:     "with chain id",
			instance: &domain.AnvilInstance{Port: 9000, ChainID: 42},
			want:     []string{"--port", "9000", "--host", "0.0.0.0", "--chain-id", "42"},
		},
		{
			name:     "with mnemonic",
			instance: &domain.AnvilInstance{Port: 9000, Mnemonic: "test junk"},
			want:     []string{"--port", "9000", "--host", "0.0.0.0", "--mnemonic", "test junk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildAnvilArgs(tt.instance))
		})
	}
}

func TestSetFilePaths(t *testing.T) {
	m := newTestManager(t)

	t.Run("default instance", func(t *testing.T) {
		instance := &domain.AnvilInstance{}
		m.setFilePaths(instance)

		assert.Equal(t, "anvil", instance.Name)
		assert.Equal(t, filepath.Join(m.tempDir, "fundops-anvil.pid"), instance.PidFile)
		assert.Equal(t, filepath.Join(m.tempDir, "fundops-anvil.log"), instance.LogFile)
	})

	t.Run("preset paths preserved", func(t *testing.T) {
		instance := &domain.AnvilInstance{
			Name:    "kovan",
			PidFile: "/custom/path/my.pid",
			LogFile: "/custom/path/my.log",
		}
		m.setFilePaths(instance)

		assert.Equal(t, "/custom/path/my.pid", instance.PidFile)
		assert.Equal(t, "/custom/path/my.log", instance.LogFile)
	})
}

// newMockRPCServer answers eth_chainId like a node on chain 31337
func newMockRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eth_chainId", req.Method)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "0x7a69"})
	}))
	t.Cleanup(server.Close)
	return server
}

func serverPort(t *testing.T, server *httptest.Server) int {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return port
}

func TestGetStatus(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	t.Run("not running without pid file", func(t *testing.T) {
		status, err := m.GetStatus(ctx, &domain.AnvilInstance{Name: "idle"})
		require.NoError(t, err)
		assert.False(t, status.Running)
	})

	t.Run("running and healthy, port from pid file", func(t *testing.T) {
		server := newMockRPCServer(t)
		port := serverPort(t, server)

		// Our own PID stands in for a live anvil process
		instance := &domain.AnvilInstance{Name: "live"}
		m.setFilePaths(instance)
		require.NoError(t, os.WriteFile(instance.PidFile, []byte(fmt.Sprintf("%d\n%d\n", os.Getpid(), port)), 0644))

		status, err := m.GetStatus(ctx, &domain.AnvilInstance{Name: "live"})
		require.NoError(t, err)
		assert.True(t, status.Running)
		assert.True(t, status.RPCHealthy)
		assert.Equal(t, os.Getpid(), status.PID)
		assert.Equal(t, uint64(31337), status.ChainID)
		assert.Equal(t, fmt.Sprintf("http://localhost:%d", port), status.RPCURL)
	})

	t.Run("start refuses a running instance", func(t *testing.T) {
		instance := &domain.AnvilInstance{Name: "busy"}
		m.setFilePaths(instance)
		require.NoError(t, os.WriteFile(instance.PidFile, []byte(strconv.Itoa(os.Getpid())), 0644))

		err := m.Start(ctx, &domain.AnvilInstance{Name: "busy"})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})
}

func TestStartStop_LiveNode(t *testing.T) {
	if _, err := exec.LookPath("anvil"); err != nil {
		t.Skip("anvil not installed")
	}
	ctx := context.Background()
	m := newTestManager(t)

	instance := &domain.AnvilInstance{Name: "fundops-test", ChainID: 1337}
	require.NoError(t, m.Start(ctx, instance))
	t.Cleanup(func() { _ = m.Stop(ctx, &domain.AnvilInstance{Name: "fundops-test"}) })
	assert.NotZero(t, instance.Port)

	status, err := m.GetStatus(ctx, &domain.AnvilInstance{Name: "fundops-test"})
	require.NoError(t, err)
	assert.True(t, status.RPCHealthy)
	assert.Equal(t, uint64(1337), status.ChainID)

	require.NoError(t, m.Stop(ctx, &domain.AnvilInstance{Name: "fundops-test"}))
	status, err = m.GetStatus(ctx, &domain.AnvilInstance{Name: "fundops-test"})
	require.NoError(t, err)
	assert.False(t, status.Running)
}
