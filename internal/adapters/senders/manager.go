package senders

import (
	"crypto/ecdsa"
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"

	projectconfig "github.com/trebuchet-org/fundops/internal/config"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// sender is one named account; key is nil for address-only accounts
type sender struct {
	address common.Address
	key     *ecdsa.PrivateKey
	// unresolved names the env var an account's key still references
	unresolved string
}

// Service resolves the named accounts of fundops.toml and holds their keys
type Service struct {
	byName    map[string]*sender
	byAddress map[common.Address]*sender
}

// NewService derives every configured account
func NewService(cfg *config.RuntimeConfig) (*Service, error) {
	var accounts map[string]config.AccountConfig
	if cfg.Project != nil {
		accounts = cfg.Project.Accounts
	}
	return NewServiceFromAccounts(accounts)
}

// NewServiceFromAccounts derives the given accounts
func NewServiceFromAccounts(accounts map[string]config.AccountConfig) (*Service, error) {
	s := &Service{
		byName:    make(map[string]*sender, len(accounts)),
		byAddress: make(map[common.Address]*sender, len(accounts)),
	}

	for name, acc := range accounts {
		snd, err := loadSender(acc)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", name, err)
		}
		s.byName[strings.ToLower(name)] = snd
		if snd.unresolved != "" {
			continue
		}
		// A signing entry wins over an address-only one for the same address
		if prev, ok := s.byAddress[snd.address]; !ok || prev.key == nil {
			s.byAddress[snd.address] = snd
		}
	}
	return s, nil
}

func loadSender(acc config.AccountConfig) (*sender, error) {
	for _, value := range []string{acc.PrivateKey, acc.Mnemonic} {
		if envVar, ok := projectconfig.DetectEnvVar(value); ok {
			return &sender{unresolved: envVar}, nil
		}
	}

	switch {
	case acc.PrivateKey != "":
		key, err := crypto.HexToECDSA(strings.TrimPrefix(acc.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		return &sender{address: crypto.PubkeyToAddress(key.PublicKey), key: key}, nil

	case acc.Mnemonic != "":
		key, address, err := derivePrivateKeyFromMnemonic(acc.Mnemonic, acc.Index)
		if err != nil {
			return nil, err
		}
		return &sender{address: address, key: key}, nil

	case acc.Address != "":
		if !common.IsHexAddress(acc.Address) {
			return nil, fmt.Errorf("%s: %w", acc.Address, domain.ErrInvalidAddress)
		}
		return &sender{address: common.HexToAddress(acc.Address)}, nil

	default:
		return nil, fmt.Errorf("one of private_key, mnemonic or address is required")
	}
}

// derivePrivateKeyFromMnemonic derives the key at m/44'/60'/0'/0/<index>
func derivePrivateKeyFromMnemonic(mnemonic string, index uint32) (*ecdsa.PrivateKey, common.Address, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to create wallet from mnemonic: %w", err)
	}

	path := hdwallet.MustParseDerivationPath(fmt.Sprintf("m/44'/60'/0'/0/%d", index))
	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to derive account: %w", err)
	}

	key, err := wallet.PrivateKey(account)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to get private key: %w", err)
	}
	return key, account.Address, nil
}

// NamedAccount returns the address of a named account, case-insensitively
func (s *Service) NamedAccount(name string) (common.Address, error) {
	snd, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return common.Address{}, fmt.Errorf("%s: %w", name, domain.ErrUnknownAccount)
	}
	if snd.unresolved != "" {
		return common.Address{}, fmt.Errorf("account %s needs %s to be set", name, snd.unresolved)
	}
	return snd.address, nil
}

// AccountNames lists the configured names in sorted order
func (s *Service) AccountNames() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PrivateKey returns the signing key of an account address
func (s *Service) PrivateKey(address common.Address) (*ecdsa.PrivateKey, error) {
	snd, ok := s.byAddress[address]
	if !ok {
		return nil, fmt.Errorf("%s: %w", address.Hex(), domain.ErrUnknownAccount)
	}
	if snd.key == nil {
		return nil, fmt.Errorf("account %s is address-only and cannot sign", address.Hex())
	}
	return snd.key, nil
}

// Ensure Service implements AccountResolver
var _ usecase.AccountResolver = (*Service)(nil)
