package usecase

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cast"
	"github.com/trebuchet-org/fundops/internal/domain"
)

// AddressResolver maps an "@Name" reference to a deployment address
type AddressResolver func(name string) (common.Address, error)

// ConvertArgs converts string arguments to the Go values go-ethereum packs
// for the given ABI inputs. Array arguments are comma separated.
func ConvertArgs(inputs abi.Arguments, raw []string, resolve AddressResolver) ([]any, error) {
	if len(raw) != len(inputs) {
		return nil, fmt.Errorf("got %d args for %d constructor inputs", len(raw), len(inputs))
	}

	out := make([]any, len(raw))
	for i, input := range inputs {
		value, err := convertArg(input.Type, raw[i], resolve)
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("arg %s (%s): %w", name, input.Type.String(), err)
		}
		out[i] = value
	}
	return out, nil
}

func convertArg(t abi.Type, raw string, resolve AddressResolver) (any, error) {
	raw = strings.TrimSpace(raw)

	switch t.T {
	case abi.AddressTy:
		return convertAddress(raw, resolve)

	case abi.BoolTy:
		return cast.ToBoolE(raw)

	case abi.StringTy:
		return raw, nil

	case abi.UintTy, abi.IntTy:
		return convertInt(t, raw)

	case abi.BytesTy:
		return hexutil.Decode(raw)

	case abi.FixedBytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(data) > t.Size {
			return nil, fmt.Errorf("%d bytes do not fit in bytes%d", len(data), t.Size)
		}
		if t.Size == 32 {
			var word [32]byte
			copy(word[32-len(data):], data)
			return word, nil
		}
		if t.Size == 4 {
			var sel [4]byte
			copy(sel[:], data)
			return sel, nil
		}
		return nil, fmt.Errorf("unsupported fixed bytes size %d", t.Size)

	case abi.SliceTy:
		return convertSlice(t, raw, resolve)
	}

	return nil, fmt.Errorf("unsupported type %s", t.String())
}

func convertAddress(raw string, resolve AddressResolver) (common.Address, error) {
	if name, ok := strings.CutPrefix(raw, "@"); ok {
		if resolve == nil {
			return common.Address{}, fmt.Errorf("cannot resolve %s", raw)
		}
		return resolve(name)
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("%q: %w", raw, domain.ErrInvalidAddress)
	}
	return common.HexToAddress(raw), nil
}

func convertInt(t abi.Type, raw string) (any, error) {
	if t.Size > 64 {
		n, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return n, nil
	}

	if t.T == abi.UintTy {
		v, err := cast.ToUint64E(raw)
		if err != nil {
			return nil, err
		}
		switch t.Size {
		case 8:
			return uint8(v), nil
		case 16:
			return uint16(v), nil
		case 32:
			return uint32(v), nil
		default:
			return v, nil
		}
	}

	v, err := cast.ToInt64E(raw)
	if err != nil {
		return nil, err
	}
	switch t.Size {
	case 8:
		return int8(v), nil
	case 16:
		return int16(v), nil
	case 32:
		return int32(v), nil
	default:
		return v, nil
	}
}

func convertSlice(t abi.Type, raw string, resolve AddressResolver) (any, error) {
	var parts []string
	if raw != "" {
		parts = strings.Split(raw, ",")
	}

	switch t.Elem.T {
	case abi.AddressTy:
		out := make([]common.Address, 0, len(parts))
		for _, p := range parts {
			addr, err := convertAddress(strings.TrimSpace(p), resolve)
			if err != nil {
				return nil, err
			}
			out = append(out, addr)
		}
		return out, nil

	case abi.UintTy, abi.IntTy:
		if t.Elem.Size <= 64 {
			return nil, fmt.Errorf("unsupported element type %s", t.Elem.String())
		}
		out := make([]*big.Int, 0, len(parts))
		for _, p := range parts {
			n, ok := new(big.Int).SetString(strings.TrimSpace(p), 0)
			if !ok {
				return nil, fmt.Errorf("invalid integer %q", p)
			}
			out = append(out, n)
		}
		return out, nil

	case abi.StringTy:
		return cast.ToStringSliceE(parts)
	}

	return nil, fmt.Errorf("unsupported element type %s", t.Elem.String())
}
