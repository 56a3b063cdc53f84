package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// CallMsg is a read-only contract call
type CallMsg struct {
	From common.Address
	To   common.Address
	Data []byte
}

// TxRequest is a state-changing contract call signed by From
type TxRequest struct {
	From   common.Address
	To     common.Address
	Data   []byte
	Value  *big.Int
	Method string // for error reporting only
}

// DeployRequest describes a contract creation
type DeployRequest struct {
	From     common.Address
	Artifact *models.Artifact
	Args     []any
}

// DeployResult is the outcome of a mined contract creation
type DeployResult struct {
	Address         common.Address
	TransactionHash common.Hash
	ConstructorArgs []byte
	Receipt         *Receipt
}

// Receipt is the subset of a transaction receipt fundops cares about
type Receipt struct {
	TransactionHash common.Hash
	BlockNumber     uint64
	GasUsed         uint64
	Status          uint64
}

// ReceiptStatusSuccessful mirrors types.ReceiptStatusSuccessful
const ReceiptStatusSuccessful = uint64(1)
