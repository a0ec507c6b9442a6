package wallet

import (
	"testing"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_NotConfigured(t *testing.T) {
	t.Parallel()

	cfg := &data.AppConfig{}
	cfg.Network.Kind = data.NetworkEvm
	p, err := NewProvider(cfg, 0, nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	cfg.Network.Kind = data.NetworkElrond
	p, err = NewProvider(cfg, 0, nil)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNewProvider_Elrond(t *testing.T) {
	t.Parallel()

	cfg := &data.AppConfig{Seedphrase: testMnemonic}
	cfg.Network.Kind = data.NetworkElrond
	p, err := NewProvider(cfg, 3, nil)
	require.NoError(t, err)
	w, ok := p.(*SeedWallet)
	require.True(t, ok)
	assert.Equal(t, int64(3), w.index)

	cfg.Seedphrase = "bad seed"
	_, err = NewProvider(cfg, 3, nil)
	assert.Equal(t, errInvalidMnemonic, err)
}

func TestNewProvider_Keystore(t *testing.T) {
	t.Parallel()

	cfg := &data.AppConfig{}
	cfg.Network.Kind = data.NetworkEvm
	cfg.Wallet.KeystoreDir = t.TempDir()
	cfg.Wallet.LightKDF = true

	p, err := NewProvider(cfg, 0, nil)
	require.NoError(t, err)
	w, ok := p.(*KeystoreWallet)
	require.True(t, ok)
	assert.False(t, w.cfg.Create)
	assert.Equal(t, cfg.Wallet.KeystoreDir, w.cfg.Dir)

	p, err = NewProvider(cfg, 7, nil)
	require.NoError(t, err)
	w = p.(*KeystoreWallet)
	assert.True(t, w.cfg.Create)
	assert.Contains(t, w.cfg.Dir, "7")

	var _ AccountSwitcher = w
}
