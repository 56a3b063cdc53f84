package anvil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/phayes/freeport"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

const (
	DefaultAnvilName = "anvil"
	DefaultAnvilPort = 8545

	startupTimeout = 10 * time.Second
	stopTimeout    = 5 * time.Second
)

// Manager runs local anvil nodes as background processes tracked by PID files
type Manager struct {
	binary  string
	tempDir string
}

// NewManager creates a manager using the anvil binary on PATH
func NewManager() *Manager {
	return &Manager{
		binary:  "anvil",
		tempDir: os.TempDir(),
	}
}

// setFilePaths fills in defaults for unset instance fields
func (m *Manager) setFilePaths(instance *domain.AnvilInstance) {
	if strings.TrimSpace(instance.Name) == "" {
		instance.Name = DefaultAnvilName
	}
	if instance.PidFile == "" {
		instance.PidFile = filepath.Join(m.tempDir, fmt.Sprintf("fundops-%s.pid", instance.Name))
	}
	if instance.LogFile == "" {
		instance.LogFile = filepath.Join(m.tempDir, fmt.Sprintf("fundops-%s.log", instance.Name))
	}
}

// buildAnvilArgs constructs the command line of an instance
func buildAnvilArgs(instance *domain.AnvilInstance) []string {
	args := []string{"--port", strconv.Itoa(instance.Port), "--host", "0.0.0.0"}
	if instance.ChainID != 0 {
		args = append(args, "--chain-id", strconv.FormatUint(instance.ChainID, 10))
	}
	if instance.Mnemonic != "" {
		args = append(args, "--mnemonic", instance.Mnemonic)
	}
	return args
}

// Start launches anvil and waits until its RPC answers. Port 0 picks a free port.
func (m *Manager) Start(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)

	if _, running := m.runningPID(instance); running {
		return fmt.Errorf("anvil '%s' is already running (PID file exists at %s): %w", instance.Name, instance.PidFile, domain.ErrAlreadyExists)
	}

	if instance.Port == 0 {
		port, err := freeport.GetFreePort()
		if err != nil {
			return fmt.Errorf("failed to find a free port: %w", err)
		}
		instance.Port = port
	}

	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(m.binary, buildAnvilArgs(instance)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	// Keep the node alive after the CLI exits
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start anvil: %w", err)
	}

	if err := writePidFile(instance, cmd.Process.Pid); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	_ = cmd.Process.Release()

	waitCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	for {
		if _, err := m.chainID(waitCtx, instance); err == nil {
			return nil
		}
		select {
		case <-waitCtx.Done():
			return fmt.Errorf("anvil '%s' did not answer on port %d, see %s", instance.Name, instance.Port, instance.LogFile)
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// Stop terminates the instance and removes its PID file
func (m *Manager) Stop(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)

	pid, running := m.runningPID(instance)
	if !running {
		return removeIfExists(instance.PidFile)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	// The process is not our child, so poll until it is gone
	deadline := time.Now().Add(stopTimeout)
	for processAlive(pid) {
		if time.Now().After(deadline) {
			_ = process.Kill()
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	return removeIfExists(instance.PidFile)
}

// GetStatus reports whether the instance runs and answers RPC requests
func (m *Manager) GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	m.setFilePaths(instance)

	status := &domain.AnvilStatus{LogFile: instance.LogFile}
	pid, running := m.runningPID(instance)
	if !running {
		return status, nil
	}

	status.Running = true
	status.PID = pid
	status.RPCURL = rpcURL(instance)

	chainID, err := m.chainID(ctx, instance)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	status.RPCHealthy = true
	status.ChainID = chainID
	return status, nil
}

// chainID asks the node for eth_chainId
func (m *Manager) chainID(ctx context.Context, instance *domain.AnvilInstance) (uint64, error) {
	client, err := rpc.DialContext(ctx, rpcURL(instance))
	if err != nil {
		return 0, err
	}
	defer client.Close()

	var result hexutil.Uint64
	if err := client.CallContext(ctx, &result, "eth_chainId"); err != nil {
		return 0, err
	}
	return uint64(result), nil
}

// writePidFile stores "<pid>\n<port>" so a later status call finds a picked port
func writePidFile(instance *domain.AnvilInstance, pid int) error {
	return os.WriteFile(instance.PidFile, []byte(fmt.Sprintf("%d\n%d\n", pid, instance.Port)), 0644)
}

// runningPID reads the PID file and checks the process still exists.
// An unset instance port is taken from the file.
func (m *Manager) runningPID(instance *domain.AnvilInstance) (int, bool) {
	data, err := os.ReadFile(instance.PidFile)
	if err != nil {
		return 0, false
	}
	lines := strings.Fields(string(data))
	if len(lines) == 0 {
		return 0, false
	}
	pid, err := strconv.Atoi(lines[0])
	if err != nil {
		return 0, false
	}
	if instance.Port == 0 && len(lines) > 1 {
		if port, err := strconv.Atoi(lines[1]); err == nil {
			instance.Port = port
		}
	}
	return pid, processAlive(pid)
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func rpcURL(instance *domain.AnvilInstance) string {
	return fmt.Sprintf("http://localhost:%d", instance.Port)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Ensure Manager implements AnvilManager
var _ usecase.AnvilManager = (*Manager)(nil)
