package network

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/network/contract"
	"github.com/DrDelphi/LotteryBot/wallet"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lotteryAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	alice          = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob            = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

// fakeCaller answers eth_call with ABI encoded values per method
type fakeCaller struct {
	t      *testing.T
	parsed abi.ABI

	mu      sync.Mutex
	results map[string][]interface{}
	errs    map[string]error
	args    map[string][]interface{}
}

func newFakeCaller(t *testing.T) *fakeCaller {
	parsed, err := abi.JSON(strings.NewReader(contract.LotteryABI))
	require.NoError(t, err)

	return &fakeCaller{
		t:       t,
		parsed:  parsed,
		results: make(map[string][]interface{}),
		errs:    make(map[string]error),
		args:    make(map[string][]interface{}),
	}
}

func (f *fakeCaller) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (f *fakeCaller) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	method, err := f.parsed.MethodById(call.Data[:4])
	require.NoError(f.t, err)

	f.mu.Lock()
	defer f.mu.Unlock()

	args, err := method.Inputs.Unpack(call.Data[4:])
	require.NoError(f.t, err)
	f.args[method.Name] = args

	if err := f.errs[method.Name]; err != nil {
		return nil, err
	}

	return method.Outputs.Pack(f.results[method.Name]...)
}

func newTestReader(t *testing.T) (*EvmContract, *fakeCaller) {
	caller := newFakeCaller(t)
	c, err := NewEvmReader(lotteryAddress, caller)
	require.NoError(t, err)

	return c, caller
}

func TestEvmContract_Reads(t *testing.T) {
	t.Parallel()

	c, caller := newTestReader(t)
	pot, _ := new(big.Int).SetString("30000000000000000", 10)
	caller.results["getBalance"] = []interface{}{pot}
	caller.results["getPlayers"] = []interface{}{[]common.Address{alice, bob}}
	caller.results["lotteryId"] = []interface{}{big.NewInt(3)}
	caller.results["lotteryHistory"] = []interface{}{bob}
	caller.results["owner"] = []interface{}{alice}

	ctx := context.Background()

	balance, err := c.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, pot, balance)

	players, err := c.GetPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.Hex(), bob.Hex()}, players)

	id, err := c.LotteryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)

	winner, err := c.LotteryHistory(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, bob.Hex(), winner)
	require.Len(t, caller.args["lotteryHistory"], 1)
	assert.Equal(t, big.NewInt(2), caller.args["lotteryHistory"][0])

	owner, err := c.Owner(ctx)
	require.NoError(t, err)
	assert.Equal(t, alice.Hex(), owner)

	assert.Equal(t, int32(18), c.Decimals())
}

func TestEvmContract_EmptyPlayers(t *testing.T) {
	t.Parallel()

	c, caller := newTestReader(t)
	caller.results["getPlayers"] = []interface{}{[]common.Address{}}

	players, err := c.GetPlayers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestEvmContract_ReadErrors(t *testing.T) {
	t.Parallel()

	c, caller := newTestReader(t)
	caller.errs["getBalance"] = errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")
	caller.errs["lotteryHistory"] = errors.New("execution reverted")

	_, err := c.GetBalance(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, lottery.ErrNetwork))
	assert.Equal(t, "dial tcp 127.0.0.1:8545: connect: connection refused", err.Error())

	_, err = c.LotteryHistory(context.Background(), 1)
	assert.True(t, errors.Is(err, lottery.ErrCallReverted))
}

func TestEvmContract_ReadOnlyCanNotTransact(t *testing.T) {
	t.Parallel()

	c, _ := newTestReader(t)
	_, err := c.Enter(context.Background(), lottery.TxOpts{From: alice.Hex(), Value: big.NewInt(1)})
	assert.True(t, errors.Is(err, lottery.ErrProviderUnavailable))
}

type rejectingSigner struct {
	req wallet.TxRequest
}

func (s *rejectingSigner) Transactor(_ context.Context, req wallet.TxRequest, _ *big.Int) (*bind.TransactOpts, error) {
	s.req = req
	return nil, errors.New("user denied transaction signature")
}

func TestEvmContract_SignerRejection(t *testing.T) {
	t.Parallel()

	signer := &rejectingSigner{}
	c := &EvmContract{
		address:    lotteryAddress,
		transactor: &contract.LotteryTransactor{},
		signer:     signer,
		chainID:    big.NewInt(1),
	}

	value := big.NewInt(15000000000000000)
	_, err := c.Enter(context.Background(), lottery.TxOpts{From: alice.Hex(), Value: value, GasLimit: 300000})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lottery.ErrUserRejected))
	assert.Equal(t, "user denied transaction signature", err.Error())

	assert.Equal(t, wallet.TxRequest{
		From:   alice.Hex(),
		To:     lotteryAddress.Hex(),
		Method: "enter",
		Value:  value,
	}, signer.req)
}

func TestClassifyEvm(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(classifyEvm(errors.New("VM Exception while processing transaction: revert")), lottery.ErrCallReverted))
	assert.True(t, errors.Is(classifyEvm(errors.New("i/o timeout")), lottery.ErrNetwork))

	rejected := lottery.Classify(lottery.ErrUserRejected, errors.New("denied"))
	assert.Equal(t, rejected, classifyEvm(rejected))
}
