package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// VersionInfo is a protocol version entry held by governance
type VersionInfo struct {
	ID             uint64
	Address        common.Address
	Active         bool
	ActivationTime *big.Int
}
