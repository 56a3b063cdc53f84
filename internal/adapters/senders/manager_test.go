package senders_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundops/internal/adapters/senders"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
)

const (
	testMnemonic = "test test test test test test test test test test test junk"
	anvilKey0    = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

var (
	anvilAccount0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	anvilAccount1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestService_NamedAccount(t *testing.T) {
	svc, err := senders.NewServiceFromAccounts(map[string]config.AccountConfig{
		"deployer": {PrivateKey: anvilKey0},
		"manager":  {Mnemonic: testMnemonic, Index: 1},
		"Watcher":  {Address: "0x00000000000000000000000000000000000000b1"},
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		account string
		want    common.Address
		wantErr error
	}{
		{name: "private key", account: "deployer", want: anvilAccount0},
		{name: "mnemonic and index", account: "manager", want: anvilAccount1},
		{name: "address only, case insensitive", account: "watcher", want: common.HexToAddress("0xb1")},
		{name: "unknown", account: "nobody", wantErr: domain.ErrUnknownAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.NamedAccount(tt.account)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"deployer", "manager", "watcher"}, svc.AccountNames())
}

func TestService_PrivateKey(t *testing.T) {
	svc, err := senders.NewServiceFromAccounts(map[string]config.AccountConfig{
		"deployer": {Mnemonic: testMnemonic},
		"watcher":  {Address: "0x00000000000000000000000000000000000000b1"},
	})
	require.NoError(t, err)

	key, err := svc.PrivateKey(anvilAccount0)
	require.NoError(t, err)
	assert.Equal(t, anvilAccount0, crypto.PubkeyToAddress(key.PublicKey))

	_, err = svc.PrivateKey(common.HexToAddress("0xb1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot sign")

	_, err = svc.PrivateKey(anvilAccount1)
	assert.ErrorIs(t, err, domain.ErrUnknownAccount)
}

func TestService_UnresolvedAccount(t *testing.T) {
	svc, err := senders.NewServiceFromAccounts(map[string]config.AccountConfig{
		"deployer": {PrivateKey: "${FUNDOPS_TEST_UNSET_KEY}"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"deployer"}, svc.AccountNames())
	_, err = svc.NamedAccount("deployer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs FUNDOPS_TEST_UNSET_KEY to be set")
}

func TestService_InvalidAccounts(t *testing.T) {
	tests := []struct {
		name    string
		account config.AccountConfig
		errMsg  string
	}{
		{name: "bad key", account: config.AccountConfig{PrivateKey: "0xzz"}, errMsg: "invalid private key"},
		{name: "bad address", account: config.AccountConfig{Address: "0x12"}, errMsg: "invalid address"},
		{name: "empty", account: config.AccountConfig{}, errMsg: "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := senders.NewServiceFromAccounts(map[string]config.AccountConfig{"x": tt.account})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
