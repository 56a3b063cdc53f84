// Package encoding ABI-encodes call arguments for policy hooks and
// integration adapters. All functions are pure.
package encoding

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// HashZero is the 32 byte zero word
var HashZero = common.Hash{}

// Arguments builds unnamed abi.Arguments from solidity type strings
func Arguments(types ...string) (abi.Arguments, error) {
	args := make(abi.Arguments, 0, len(types))
	for i, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			return nil, fmt.Errorf("invalid type %q at position %d: %w", t, i, err)
		}
		args = append(args, abi.Argument{Name: fmt.Sprintf("arg%d", i), Type: typ})
	}
	return args, nil
}

// EncodeArgs packs values as a tuple of the given solidity types.
// Values must already have the Go types go-ethereum expects (common.Address,
// *big.Int, [4]byte, []byte, slices thereof, ...).
func EncodeArgs(types []string, values []any) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("got %d values for %d types", len(values), len(types))
	}
	args, err := Arguments(types...)
	if err != nil {
		return nil, err
	}
	encoded, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode (%s): %w", strings.Join(types, ","), err)
	}
	return encoded, nil
}

// DecodeArgs unpacks data encoded by EncodeArgs
func DecodeArgs(types []string, data []byte) ([]any, error) {
	args, err := Arguments(types...)
	if err != nil {
		return nil, err
	}
	values, err := args.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode (%s): %w", strings.Join(types, ","), err)
	}
	return values, nil
}

// Sighash returns the 4 byte selector of a function signature such as
// "swapA(address,bytes,bytes)".
func Sighash(signature string) [4]byte {
	var selector [4]byte
	copy(selector[:], crypto.Keccak256([]byte(signature))[:4])
	return selector
}

// RandomAddress returns a random address, for fixtures only
func RandomAddress() common.Address {
	return common.BytesToAddress(RandomBytes(common.AddressLength))
}

// RandomBytes returns n random bytes
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return b
}

// FormatBytes32String encodes a short string as a right-padded bytes32.
// Strings of 32 bytes or more are rejected since they would lose the terminator.
func FormatBytes32String(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) > 31 {
		return out, fmt.Errorf("bytes32 string must be less than 32 bytes: %q", s)
	}
	copy(out[:], s)
	return out, nil
}

// ParseUnits parses a decimal string such as "1.5" into an integer scaled by
// 10^decimals. Excess fractional digits are an error.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > int(decimals) {
		trimmed := strings.TrimRight(frac, "0")
		if len(trimmed) > int(decimals) {
			return nil, fmt.Errorf("%q has more than %d decimals", value, decimals)
		}
		frac = trimmed
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal value %q", value)
	}
	if negative {
		n.Neg(n)
	}
	return n, nil
}

// ParseEther is ParseUnits with 18 decimals that panics on malformed input
func ParseEther(value string) *big.Int {
	n, err := ParseUnits(value, 18)
	if err != nil {
		panic(err)
	}
	return n
}

// orZero replaces nil amounts with zero so the packer accepts them
func orZero(values []*big.Int) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		if v == nil {
			v = new(big.Int)
		}
		out[i] = v
	}
	return out
}

func bigOr(v *big.Int, def *big.Int) *big.Int {
	if v == nil {
		return def
	}
	return v
}

func addresses(values []common.Address) []common.Address {
	if values == nil {
		return []common.Address{}
	}
	return values
}
