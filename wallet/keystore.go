package wallet

import (
	"context"
	"math/big"
	"sync"

	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
)

var errNoAccounts = errors.New("no accounts in keystore")

// KeystoreConfig - where the encrypted keys live and how to open them
type KeystoreConfig struct {
	Dir        string
	Passphrase string
	// Create lets the wallet generate accounts when asked for one it does
	// not have yet.
	Create bool
	// LightKDF trades key file security for speed.
	LightKDF bool
}

// KeystoreWallet - secp256k1 accounts kept in a go-ethereum keystore
// directory. Key files added or removed on disk are reported as account
// changes, like explicit switches are.
type KeystoreWallet struct {
	ks       *keystore.KeyStore
	cfg      KeystoreConfig
	approver Approver

	mu       sync.Mutex
	selected accounts.Account
	unlocked bool

	feed      accountFeed
	watchOnce sync.Once
	watchSub  event.Subscription
	quit      chan struct{}
}

// NewKeystoreWallet - opens the keystore directory
func NewKeystoreWallet(cfg KeystoreConfig, approver Approver) *KeystoreWallet {
	n, p := keystore.StandardScryptN, keystore.StandardScryptP
	if cfg.LightKDF {
		n, p = keystore.LightScryptN, keystore.LightScryptP
	}
	if approver == nil {
		approver = AutoApprove{}
	}

	return &KeystoreWallet{
		ks:       keystore.NewKeyStore(cfg.Dir, n, p),
		cfg:      cfg,
		approver: approver,
		quit:     make(chan struct{}),
	}
}

// RequestAccounts - unlocks the active account with the configured
// passphrase. A wrong passphrase is a rejection.
func (w *KeystoreWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	all := w.ks.Accounts()
	if len(all) == 0 {
		if !w.cfg.Create {
			return nil, lottery.Classify(lottery.ErrUserRejected, errNoAccounts)
		}
		acc, err := w.ks.NewAccount(w.cfg.Passphrase)
		if err != nil {
			return nil, errors.Wrap(err, "can not create account")
		}
		log.Info("created keystore account", "address", acc.Address.Hex())
		all = []accounts.Account{acc}
	}

	if !w.unlocked || !w.ks.HasAddress(w.selected.Address) {
		if err := w.unlockLocked(all[0]); err != nil {
			return nil, err
		}
	}

	return w.orderedLocked(all), nil
}

// SubscribeAccounts - notifies account switches and key file changes
func (w *KeystoreWallet) SubscribeAccounts(ch chan<- []string) func() {
	w.watchOnce.Do(w.watch)
	return w.feed.subscribe(ch)
}

// SwitchAccount - activates the index-th account of the keystore, creating it
// when index is the next free one and creation is allowed
func (w *KeystoreWallet) SwitchAccount(index uint32) error {
	w.mu.Lock()
	all := w.ks.Accounts()
	var acc accounts.Account
	switch {
	case int(index) < len(all):
		acc = all[index]
	case int(index) == len(all) && w.cfg.Create:
		created, err := w.ks.NewAccount(w.cfg.Passphrase)
		if err != nil {
			w.mu.Unlock()
			return errors.Wrap(err, "can not create account")
		}
		acc = created
		all = append(all, created)
	default:
		w.mu.Unlock()
		return lottery.Classify(lottery.ErrUserRejected, errUnknownAccount)
	}

	if err := w.unlockLocked(acc); err != nil {
		w.mu.Unlock()
		return err
	}
	ordered := w.orderedLocked(all)
	w.mu.Unlock()

	w.feed.send(ordered)

	return nil
}

// Address - the active account
func (w *KeystoreWallet) Address() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.unlocked {
		return ""
	}
	return w.selected.Address.Hex()
}

// Transactor - signs off req with the approver and returns transaction
// options signing with the active account
func (w *KeystoreWallet) Transactor(ctx context.Context, req TxRequest, chainID *big.Int) (*bind.TransactOpts, error) {
	w.mu.Lock()
	acc, unlocked := w.selected, w.unlocked
	w.mu.Unlock()

	if !unlocked || !common.IsHexAddress(req.From) || common.HexToAddress(req.From) != acc.Address {
		return nil, lottery.Classify(lottery.ErrUserRejected, errUnknownAccount)
	}
	if err := w.approver.Approve(ctx, req); err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyStoreTransactorWithChainID(w.ks, acc, chainID)
	if err != nil {
		return nil, err
	}
	sign := opts.Signer
	opts.Signer = func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
		signed, err := sign(address, tx)
		if err != nil {
			return nil, lottery.Classify(lottery.ErrUserRejected, err)
		}
		return signed, nil
	}

	return opts, nil
}

// Close - stops watching the keystore directory
func (w *KeystoreWallet) Close() {
	select {
	case <-w.quit:
	default:
		close(w.quit)
	}
}

func (w *KeystoreWallet) watch() {
	events := make(chan accounts.WalletEvent, 8)
	w.watchSub = w.ks.Subscribe(events)

	go func() {
		defer w.watchSub.Unsubscribe()
		for {
			select {
			case ev := <-events:
				w.walletChanged(ev)
			case <-w.watchSub.Err():
				return
			case <-w.quit:
				return
			}
		}
	}()
}

func (w *KeystoreWallet) walletChanged(ev accounts.WalletEvent) {
	if ev.Kind != accounts.WalletArrived && ev.Kind != accounts.WalletDropped {
		return
	}

	w.mu.Lock()
	all := w.ks.Accounts()
	if w.unlocked && !w.ks.HasAddress(w.selected.Address) {
		w.unlocked = false
		if len(all) > 0 {
			if err := w.unlockLocked(all[0]); err != nil {
				log.Warn("can not unlock account", "address", all[0].Address.Hex(), "error", err)
			}
		}
	}
	ordered := w.orderedLocked(all)
	w.mu.Unlock()

	log.Debug("keystore changed", "accounts", len(ordered))
	w.feed.send(ordered)
}

func (w *KeystoreWallet) unlockLocked(acc accounts.Account) error {
	if err := w.ks.Unlock(acc, w.cfg.Passphrase); err != nil {
		return lottery.Classify(lottery.ErrUserRejected, err)
	}
	if w.unlocked && w.selected.Address != acc.Address {
		_ = w.ks.Lock(w.selected.Address)
	}
	w.selected = acc
	w.unlocked = true

	return nil
}

// orderedLocked lists the addresses with the active one first
func (w *KeystoreWallet) orderedLocked(all []accounts.Account) []string {
	list := make([]string, 0, len(all))
	if w.unlocked {
		list = append(list, w.selected.Address.Hex())
	}
	for _, acc := range all {
		if w.unlocked && acc.Address == w.selected.Address {
			continue
		}
		list = append(list, acc.Address.Hex())
	}

	return list
}
