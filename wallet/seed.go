package wallet

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/ElrondNetwork/elrond-go-crypto/signing"
	"github.com/ElrondNetwork/elrond-go-crypto/signing/ed25519"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/btcsuite/btcutil/bech32"
	"github.com/tyler-smith/go-bip39"
)

var log = logger.GetOrCreate("wallet")

const (
	hardened   = uint32(0x80000000)
	coinType   = 508
	addressHrp = "erd"
)

var (
	errInvalidMnemonic = errors.New("invalid mnemonic")
	errUnknownAccount  = errors.New("account is not managed by this wallet")
)

type bip32 struct {
	Key       []byte
	ChainCode []byte
}

// SeedWallet - ed25519 accounts derived from a bip39 mnemonic on the path
// m/44'/508'/account'/hi'/lo' where hi and lo are the two halves of index.
// index identifies the owner of the wallet (the telegram user), account is
// the one the owner switches between.
type SeedWallet struct {
	seed     []byte
	index    int64
	approver Approver

	mu      sync.RWMutex
	account uint32
	feed    accountFeed
}

// NewSeedWallet - creates the wallet of owner index
func NewSeedWallet(mnemonic string, index int64, approver Approver) (*SeedWallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errInvalidMnemonic
	}
	if approver == nil {
		approver = AutoApprove{}
	}

	return &SeedWallet{
		seed:     bip39.NewSeed(mnemonic, ""),
		index:    index,
		approver: approver,
	}, nil
}

// RequestAccounts - the active account
func (w *SeedWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return []string{w.Address()}, nil
}

// SubscribeAccounts - notifies account switches
func (w *SeedWallet) SubscribeAccounts(ch chan<- []string) func() {
	return w.feed.subscribe(ch)
}

// SwitchAccount - makes account the active one
func (w *SeedWallet) SwitchAccount(account uint32) error {
	w.mu.Lock()
	changed := w.account != account
	w.account = account
	w.mu.Unlock()

	if changed {
		w.feed.send([]string{w.Address()})
	}

	return nil
}

// Address - bech32 address of the active account
func (w *SeedWallet) Address() string {
	return AddressFromPrivateKey(w.privateKey())
}

// PrivateKey - signs off req with the approver and returns the key of the
// active account
func (w *SeedWallet) PrivateKey(ctx context.Context, req TxRequest) ([]byte, error) {
	pk := w.privateKey()
	if req.From != AddressFromPrivateKey(pk) {
		return nil, lottery.Classify(lottery.ErrUserRejected, errUnknownAccount)
	}
	if err := w.approver.Approve(ctx, req); err != nil {
		return nil, err
	}

	return pk, nil
}

func (w *SeedWallet) privateKey() []byte {
	w.mu.RLock()
	account := w.account
	w.mu.RUnlock()

	return PrivateKeyFromSeed(w.seed, account, w.index)
}

// PrivateKeyFromSeed - derives the ed25519 private key of (account, index)
func PrivateKeyFromSeed(seed []byte, account uint32, index int64) []byte {
	path := []uint32{
		44 + hardened,
		coinType + hardened,
		account + hardened,
		hardened + uint32(index>>32),
		hardened + uint32(index&0xFFFFFFFF),
	}

	return derivePrivateKey(seed, path).Key
}

// AddressFromPrivateKey - bech32 address of an ed25519 private key
func AddressFromPrivateKey(privBytes []byte) string {
	pubBytes := publicKey(privBytes)
	if pubBytes == nil {
		return ""
	}
	b, _ := bech32.ConvertBits(pubBytes, 8, 5, true)
	s, _ := bech32.Encode(addressHrp, b)

	return s
}

func publicKey(privBytes []byte) []byte {
	_suite := ed25519.NewEd25519()
	keyGen := signing.NewKeyGenerator(_suite)
	txSignPrivKey, err := keyGen.PrivateKeyFromByteArray(privBytes)
	if err != nil {
		log.Error("invalid private key", "error", err)
		return nil
	}
	pubBytes, _ := txSignPrivKey.GeneratePublic().ToByteArray()

	return pubBytes
}

func derivePrivateKey(seed []byte, path []uint32) *bip32 {
	b := &bip32{}
	digest := hmac.New(sha512.New, []byte("ed25519 seed"))
	digest.Write(seed)
	intermediary := digest.Sum(nil)
	b.Key = intermediary[:32]
	b.ChainCode = intermediary[32:]
	for _, childIdx := range path {
		data := make([]byte, 1+32+4)
		data[0] = 0x00
		copy(data[1:1+32], b.Key)
		binary.BigEndian.PutUint32(data[1+32:1+32+4], childIdx)
		digest = hmac.New(sha512.New, b.ChainCode)
		digest.Write(data)
		intermediary = digest.Sum(nil)
		b.Key = intermediary[:32]
		b.ChainCode = intermediary[32:]
	}
	return b
}
