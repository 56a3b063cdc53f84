package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object string `json:"object"`
}

// UnmarshalJSON accepts both the Foundry {"object": "0x.."} form and the
// Hardhat plain string form.
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Object = s
		return nil
	}
	type plain BytecodeObject
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BytecodeObject(p)
	return nil
}

// Artifact represents a compilation artifact
type Artifact struct {
	ContractName string          `json:"contractName,omitempty"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     BytecodeObject  `json:"bytecode"`

	parsed *abi.ABI
}

// ParsedABI parses and caches the artifact's ABI
func (a *Artifact) ParsedABI() (*abi.ABI, error) {
	if a.parsed != nil {
		return a.parsed, nil
	}
	raw := a.ABI
	if len(raw) == 0 {
		raw = json.RawMessage("[]")
	}
	parsed, err := abi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.ContractName, err)
	}
	a.parsed = &parsed
	return a.parsed, nil
}

// BytecodeBytes decodes the creation bytecode
func (a *Artifact) BytecodeBytes() ([]byte, error) {
	obj := strings.TrimSpace(a.Bytecode.Object)
	if obj == "" || obj == "0x" {
		return nil, fmt.Errorf("artifact %s has no bytecode", a.ContractName)
	}
	if strings.Contains(obj, "__") {
		return nil, fmt.Errorf("artifact %s has unlinked library references", a.ContractName)
	}
	return common.FromHex(obj), nil
}
