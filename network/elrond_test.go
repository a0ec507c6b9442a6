package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexerServer(t *testing.T, statuses ...string) (*httptest.Server, *int32) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&calls, 1)) - 1
		if n >= len(statuses) {
			n = len(statuses) - 1
		}
		if statuses[n] == "" {
			fmt.Fprint(w, `{"hits":{"total":{"value":0},"hits":[]}}`)
			return
		}
		fmt.Fprintf(w, `{"hits":{"total":{"value":1},"hits":[{"_id":"%s","_source":{"status":"%s","receiver":"erd1qqqqqqqqqqqqqpgq","value":"0"}}]}}`,
			r.URL.Query().Get("q")[len("_id:"):], statuses[n])
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

type denySigner struct{}

func (denySigner) PrivateKey(_ context.Context, _ wallet.TxRequest) ([]byte, error) {
	return nil, lottery.ErrUserRejected
}

func newTestElrondContract(indexer string) *ElrondContract {
	return &ElrondContract{
		indexerURL:   indexer,
		pollInterval: time.Millisecond,
	}
}

func TestElrondContract_GetTransactionInfo(t *testing.T) {
	t.Parallel()

	srv, _ := indexerServer(t, "success")
	ec := newTestElrondContract(srv.URL)

	info, err := ec.GetTransactionInfo(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", info.ID)
	assert.Equal(t, "success", info.Source.Status)
}

func TestElrondContract_GetTransactionInfoNotIndexed(t *testing.T) {
	t.Parallel()

	srv, _ := indexerServer(t, "")
	ec := newTestElrondContract(srv.URL)

	_, err := ec.GetTransactionInfo(context.Background(), "abc123")
	assert.Equal(t, errNotIndexed, err)
}

func TestElrondContract_WaitTransaction(t *testing.T) {
	t.Parallel()

	srv, calls := indexerServer(t, "", txStatusPending, txStatusPending, txStatusSuccess)
	ec := newTestElrondContract(srv.URL)

	require.NoError(t, ec.waitTransaction(context.Background(), "abc123"))
	assert.Equal(t, int32(4), atomic.LoadInt32(calls))
}

func TestElrondContract_WaitTransactionFailed(t *testing.T) {
	t.Parallel()

	srv, _ := indexerServer(t, txStatusPending, "fail")
	ec := newTestElrondContract(srv.URL)

	err := ec.waitTransaction(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, lottery.ErrCallReverted))
	assert.Equal(t, "transaction abc123 fail", err.Error())
}

func TestElrondContract_WaitTransactionCancelled(t *testing.T) {
	t.Parallel()

	srv, _ := indexerServer(t, txStatusPending)
	ec := newTestElrondContract(srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := ec.waitTransaction(ctx, "abc123")
	assert.True(t, errors.Is(err, lottery.ErrNetwork))
}

func TestElrondContract_WaitTransactionIndexerDown(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	ec := newTestElrondContract(srv.URL)

	err := ec.waitTransaction(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, lottery.ErrNetwork))
	assert.Equal(t, int32(maxIndexerErrors), atomic.LoadInt32(&calls))
}

func TestElrondContract_TransactWithoutIndexer(t *testing.T) {
	t.Parallel()

	ec := newTestElrondContract("")
	ec.signer = denySigner{}
	_, err := ec.Enter(context.Background(), lottery.TxOpts{From: "erd1"})
	assert.True(t, errors.Is(err, lottery.ErrNetwork))
}

func TestElrondContract_ReadOnlyCanNotTransact(t *testing.T) {
	t.Parallel()

	ec := newTestElrondContract("")
	_, err := ec.PayWinner(context.Background(), lottery.TxOpts{From: "erd1"})
	assert.True(t, errors.Is(err, lottery.ErrProviderUnavailable))
}

func TestUint64Arg(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", uint64Arg(0))
	assert.Equal(t, "01", uint64Arg(1))
	assert.Equal(t, "0100", uint64Arg(256))
}

func TestTxValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", txValue(nil))
}

func TestEncodeAddresses(t *testing.T) {
	t.Parallel()

	conv, err := newPubkeyConverter()
	require.NoError(t, err)

	pubkey := make([]byte, 32)
	pubkey[31] = 1
	addresses := encodeAddresses(conv, [][]byte{pubkey})
	require.Len(t, addresses, 1)
	assert.Len(t, addresses[0], 62)

	decoded, err := conv.Decode(addresses[0])
	require.NoError(t, err)
	assert.Equal(t, pubkey, decoded)

	assert.Empty(t, encodeAddresses(conv, nil))
}
