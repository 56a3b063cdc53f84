package models

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MockPrefix is the directory mock deployments are grouped under
const MockPrefix = "mocks"

// Deployment is a named deployment record for one network.
// Names are unique per network; a name with slashes maps to a subdirectory.
type Deployment struct {
	Name            string          `json:"-"`
	Address         common.Address  `json:"address"`
	ABI             json.RawMessage `json:"abi"`
	Contract        string          `json:"contract,omitempty"`
	Args            string          `json:"args,omitempty"` // hex encoded constructor args
	TransactionHash string          `json:"transactionHash,omitempty"`
	Deployer        string          `json:"deployer,omitempty"`
	LinkedData      json.RawMessage `json:"linkedData,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`

	// Runtime fields (not persisted)
	NewlyDeployed bool `json:"-"`
}

// MockName composes the registry name of a mock: "mocks/<Contract>" or
// "mocks/<Contract> (<name>)".
func MockName(contract, name string) string {
	if name == "" {
		return path.Join(MockPrefix, contract)
	}
	return path.Join(MockPrefix, fmt.Sprintf("%s (%s)", contract, name))
}

// IsMock reports whether the deployment lives under the mocks directory
func (d *Deployment) IsMock() bool {
	return strings.HasPrefix(d.Name, MockPrefix+"/")
}

// IsLinkedData reports whether the record only carries linked data
func (d *Deployment) IsLinkedData() bool {
	return d.Address == (common.Address{}) && len(d.LinkedData) > 0
}

// Dir returns the directory part of the name ("mocks" for mocks, "" otherwise)
func (d *Deployment) Dir() string {
	dir := path.Dir(d.Name)
	if dir == "." {
		return ""
	}
	return dir
}
