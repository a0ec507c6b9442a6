package lottery

import (
	"context"
	"math/big"
)

// Contract - typed handle to the deployed lottery contract. Reads never
// change chain state; the three mutating calls block until the transaction
// has a receipt and return its hash.
type Contract interface {
	GetBalance(ctx context.Context) (*big.Int, error)
	GetPlayers(ctx context.Context) ([]string, error)
	LotteryID(ctx context.Context) (uint64, error)
	LotteryHistory(ctx context.Context, id uint64) (string, error)

	Enter(ctx context.Context, opts TxOpts) (string, error)
	PickWinner(ctx context.Context, opts TxOpts) (string, error)
	PayWinner(ctx context.Context, opts TxOpts) (string, error)

	// Decimals is the number of decimals between the base unit and the
	// standard unit of the chain's native coin.
	Decimals() int32
}

// TxOpts - parameters of a mutating contract call
type TxOpts struct {
	From     string
	Value    *big.Int
	GasLimit uint64
}

// Provider - the wallet the user connects with
type Provider interface {
	// RequestAccounts asks the wallet for access to its accounts. The first
	// returned account is the active one.
	RequestAccounts(ctx context.Context) ([]string, error)

	// SubscribeAccounts delivers the account list every time the wallet
	// switches accounts. Calling the returned function ends the subscription.
	SubscribeAccounts(ch chan<- []string) (unsubscribe func())
}

// Dialer builds the contract handle on top of the provider's transport.
type Dialer func(ctx context.Context, provider Provider) (Contract, error)
