package network

import (
	"context"
	"math/big"
	"strings"

	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/network/contract"
	"github.com/DrDelphi/LotteryBot/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// EvmSigner is implemented by wallets able to sign EVM transactions
type EvmSigner interface {
	Transactor(ctx context.Context, req wallet.TxRequest, chainID *big.Int) (*bind.TransactOpts, error)
}

// EvmBackend - what the contract handle needs from the RPC client
type EvmBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// EvmContract - the lottery contract on an EVM chain
type EvmContract struct {
	address    common.Address
	caller     *contract.LotteryCaller
	transactor *contract.LotteryTransactor
	backend    bind.DeployBackend
	signer     EvmSigner
	chainID    *big.Int
}

// DialEvm - connects to the RPC endpoint and binds the contract. Without a
// signer the handle can only read.
func DialEvm(ctx context.Context, rpcURL, address string, signer EvmSigner) (*EvmContract, error) {
	if !common.IsHexAddress(address) {
		return nil, errInvalidAddress
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		log.Error("can not dial rpc", "url", rpcURL, "error", err)
		return nil, lottery.Classify(lottery.ErrNetwork, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		log.Error("can not get chain id", "url", rpcURL, "error", err)
		client.Close()
		return nil, lottery.Classify(lottery.ErrNetwork, err)
	}

	return NewEvmContract(common.HexToAddress(address), client, signer, chainID)
}

// NewEvmContract - binds the contract at address on backend
func NewEvmContract(address common.Address, backend EvmBackend, signer EvmSigner, chainID *big.Int) (*EvmContract, error) {
	binding, err := contract.NewLottery(address, backend)
	if err != nil {
		return nil, err
	}

	return &EvmContract{
		address:    address,
		caller:     &binding.LotteryCaller,
		transactor: &binding.LotteryTransactor,
		backend:    backend,
		signer:     signer,
		chainID:    chainID,
	}, nil
}

// NewEvmReader - a read only handle of the contract at address
func NewEvmReader(address common.Address, caller bind.ContractCaller) (*EvmContract, error) {
	binding, err := contract.NewLotteryCaller(address, caller)
	if err != nil {
		return nil, err
	}

	return &EvmContract{
		address: address,
		caller:  binding,
	}, nil
}

func (c *EvmContract) GetBalance(ctx context.Context) (*big.Int, error) {
	balance, err := c.caller.GetBalance(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, classifyEvm(err)
	}

	return balance, nil
}

func (c *EvmContract) GetPlayers(ctx context.Context) ([]string, error) {
	res, err := c.caller.GetPlayers(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, classifyEvm(err)
	}

	players := make([]string, 0, len(res))
	for _, player := range res {
		players = append(players, player.Hex())
	}

	return players, nil
}

func (c *EvmContract) LotteryID(ctx context.Context) (uint64, error) {
	id, err := c.caller.LotteryId(&bind.CallOpts{Context: ctx})
	if err != nil {
		return 0, classifyEvm(err)
	}
	if !id.IsUint64() {
		return 0, lottery.Classify(lottery.ErrNetwork, errInvalidResponse)
	}

	return id.Uint64(), nil
}

func (c *EvmContract) LotteryHistory(ctx context.Context, id uint64) (string, error) {
	winner, err := c.caller.LotteryHistory(&bind.CallOpts{Context: ctx}, new(big.Int).SetUint64(id))
	if err != nil {
		return "", classifyEvm(err)
	}

	return winner.Hex(), nil
}

// Owner - the account allowed to pick and pay the winner
func (c *EvmContract) Owner(ctx context.Context) (string, error) {
	owner, err := c.caller.Owner(&bind.CallOpts{Context: ctx})
	if err != nil {
		return "", classifyEvm(err)
	}

	return owner.Hex(), nil
}

func (c *EvmContract) Enter(ctx context.Context, opts lottery.TxOpts) (string, error) {
	return c.transact(ctx, "enter", opts, func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.transactor.Enter(auth)
	})
}

func (c *EvmContract) PickWinner(ctx context.Context, opts lottery.TxOpts) (string, error) {
	return c.transact(ctx, "pickWinner", opts, func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.transactor.PickWinner(auth)
	})
}

func (c *EvmContract) PayWinner(ctx context.Context, opts lottery.TxOpts) (string, error) {
	return c.transact(ctx, "payWinner", opts, func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.transactor.PayWinner(auth)
	})
}

func (c *EvmContract) Decimals() int32 {
	return evmDecimals
}

func (c *EvmContract) transact(ctx context.Context, method string, opts lottery.TxOpts, send func(*bind.TransactOpts) (*types.Transaction, error)) (string, error) {
	if c.transactor == nil || c.signer == nil {
		return "", lottery.Classify(lottery.ErrProviderUnavailable, errReadOnly)
	}

	auth, err := c.signer.Transactor(ctx, wallet.TxRequest{
		From:   opts.From,
		To:     c.address.Hex(),
		Method: method,
		Value:  opts.Value,
	}, c.chainID)
	if err != nil {
		return "", lottery.Classify(lottery.ErrUserRejected, err)
	}
	auth.Context = ctx
	auth.GasLimit = opts.GasLimit
	auth.Value = opts.Value

	tx, err := send(auth)
	if err != nil {
		log.Warn("can not send transaction", "method", method, "from", opts.From, "error", err)
		return "", classifyEvm(err)
	}
	hash := tx.Hash().Hex()
	log.Info("transaction sent", "method", method, "from", opts.From, "hash", hash)

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return hash, lottery.Classify(lottery.ErrNetwork, err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		log.Warn("transaction failed", "method", method, "hash", hash)
		return hash, lottery.Classify(lottery.ErrCallReverted, errors.Errorf("transaction %s reverted", hash))
	}

	return hash, nil
}

// classifyEvm tells contract reverts from transport failures
func classifyEvm(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "revert") {
		return lottery.Classify(lottery.ErrCallReverted, err)
	}

	return lottery.Classify(lottery.ErrNetwork, err)
}
