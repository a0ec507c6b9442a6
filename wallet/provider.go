package wallet

import (
	"path/filepath"
	"strconv"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
)

// AccountSwitcher is implemented by wallets whose user can change the active
// account.
type AccountSwitcher interface {
	SwitchAccount(index uint32) error
}

// NewProvider - the wallet of owner index as configured. A nil provider is
// returned when no wallet is configured for the network.
func NewProvider(cfg *data.AppConfig, index int64, approver Approver) (lottery.Provider, error) {
	switch cfg.Network.Kind {
	case data.NetworkElrond:
		if cfg.Seedphrase == "" {
			return nil, nil
		}
		w, err := NewSeedWallet(cfg.Seedphrase, index, approver)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		if cfg.Wallet.KeystoreDir == "" {
			return nil, nil
		}
		dir := cfg.Wallet.KeystoreDir
		create := false
		if index > 0 {
			// every bot user gets a keystore of their own
			dir = filepath.Join(dir, strconv.FormatInt(index, 10))
			create = true
		}
		return NewKeystoreWallet(KeystoreConfig{
			Dir:        dir,
			Passphrase: cfg.Wallet.Passphrase,
			Create:     create,
			LightKDF:   cfg.Wallet.LightKDF,
		}, approver), nil
	}
}
