package domain

// AnvilInstance represents a local anvil node instance
type AnvilInstance struct {
	Name     string `json:"name"`
	Port     int    `json:"port"`
	ChainID  uint64 `json:"chainId,omitempty"`
	Mnemonic string `json:"-"`
	PidFile  string `json:"pidFile"`
	LogFile  string `json:"logFile"`
}

// AnvilStatus represents the status of an anvil instance
type AnvilStatus struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid,omitempty"`
	RPCURL     string `json:"rpcUrl,omitempty"`
	LogFile    string `json:"logFile"`
	RPCHealthy bool   `json:"rpcHealthy"`
	ChainID    uint64 `json:"chainId,omitempty"`
	Error      string `json:"error,omitempty"`
}
