package network

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/utils"
	"github.com/DrDelphi/LotteryBot/wallet"
	"github.com/ElrondNetwork/elrond-go-core/core"
	"github.com/ElrondNetwork/elrond-go-core/core/pubkeyConverter"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/blockchain"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/builders"
	sdkData "github.com/ElrondNetwork/elrond-sdk-erdgo/data"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/interactors"
	"github.com/pkg/errors"
)

var log = logger.GetOrCreate("network")

// ElrondSigner is implemented by wallets holding ed25519 keys
type ElrondSigner interface {
	PrivateKey(ctx context.Context, req wallet.TxRequest) ([]byte, error)
}

// ElrondContract - the lottery contract on an Elrond chain. Reads are VM
// queries through the proxy, writes are signed transactions whose outcome is
// polled from the indexer.
type ElrondContract struct {
	NetworkConfig *sdkData.NetworkConfig

	address      string
	proxyURL     string
	indexerURL   string
	proxy        blockchain.Proxy
	conv         core.PubkeyConverter
	signer       ElrondSigner
	pollInterval time.Duration
}

// DialElrond - reads the network config from the proxy and binds the
// contract. Without a signer the handle can only read.
func DialElrond(ctx context.Context, cfg *data.AppConfig, signer ElrondSigner) (*ElrondContract, error) {
	proxy := blockchain.NewElrondProxy(cfg.Network.Proxy, nil)

	networkConfig, err := proxy.GetNetworkConfig(ctx)
	if err != nil {
		log.Error("can not get network config from proxy", "error", err)
		return nil, lottery.Classify(lottery.ErrNetwork, err)
	}

	conv, err := newPubkeyConverter()
	if err != nil {
		return nil, err
	}
	if _, err = conv.Decode(cfg.ContractAddress); err != nil {
		log.Error("invalid contract address", "address", cfg.ContractAddress, "error", err)
		return nil, errInvalidAddress
	}

	return &ElrondContract{
		NetworkConfig: networkConfig,
		address:       cfg.ContractAddress,
		proxyURL:      cfg.Network.Proxy,
		indexerURL:    cfg.Network.Indexer,
		proxy:         proxy,
		conv:          conv,
		signer:        signer,
		pollInterval:  defaultPollInterval,
	}, nil
}

func newPubkeyConverter() (core.PubkeyConverter, error) {
	conv, err := pubkeyConverter.NewBech32PubkeyConverter(32, log)
	if err != nil {
		log.Error("can not create converter", "error", err)
		return nil, err
	}

	return conv, nil
}

func (ec *ElrondContract) query(ctx context.Context, function string, args []string) ([][]byte, error) {
	req := &sdkData.VmValueRequest{
		Address:  ec.address,
		FuncName: function,
		Args:     args,
	}
	res, err := ec.proxy.ExecuteVMQuery(ctx, req)
	if err != nil {
		log.Error("vm query", "function", function, "args", args, "error", err)
		return nil, lottery.Classify(lottery.ErrNetwork, err)
	}

	return res.Data.ReturnData, nil
}

func (ec *ElrondContract) getScOneResult(ctx context.Context, function string, args []string) ([]byte, error) {
	res, err := ec.query(ctx, function, args)
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, lottery.Classify(lottery.ErrNetwork, errEmptyResponse)
	}

	return res[0], nil
}

func (ec *ElrondContract) GetBalance(ctx context.Context) (*big.Int, error) {
	bytes, err := ec.getScOneResult(ctx, "getBalance", nil)
	if err != nil {
		return nil, err
	}

	return big.NewInt(0).SetBytes(bytes), nil
}

func (ec *ElrondContract) GetPlayers(ctx context.Context) ([]string, error) {
	res, err := ec.query(ctx, "getPlayers", nil)
	if err != nil {
		return nil, err
	}

	return encodeAddresses(ec.conv, res), nil
}

func (ec *ElrondContract) LotteryID(ctx context.Context) (uint64, error) {
	bytes, err := ec.getScOneResult(ctx, "lotteryId", nil)
	if err != nil {
		return 0, err
	}

	id := big.NewInt(0).SetBytes(bytes)
	if !id.IsUint64() {
		return 0, lottery.Classify(lottery.ErrNetwork, errInvalidResponse)
	}

	return id.Uint64(), nil
}

func (ec *ElrondContract) LotteryHistory(ctx context.Context, id uint64) (string, error) {
	bytes, err := ec.getScOneResult(ctx, "lotteryHistory", []string{uint64Arg(id)})
	if err != nil {
		return "", err
	}
	if len(bytes) == 0 {
		return "", nil
	}

	return ec.conv.Encode(bytes), nil
}

func (ec *ElrondContract) Enter(ctx context.Context, opts lottery.TxOpts) (string, error) {
	return ec.transact(ctx, "enter", opts)
}

func (ec *ElrondContract) PickWinner(ctx context.Context, opts lottery.TxOpts) (string, error) {
	return ec.transact(ctx, "pickWinner", opts)
}

func (ec *ElrondContract) PayWinner(ctx context.Context, opts lottery.TxOpts) (string, error) {
	return ec.transact(ctx, "payWinner", opts)
}

func (ec *ElrondContract) Decimals() int32 {
	return int32(ec.NetworkConfig.Denomination)
}

func (ec *ElrondContract) transact(ctx context.Context, function string, opts lottery.TxOpts) (string, error) {
	if ec.signer == nil {
		return "", lottery.Classify(lottery.ErrProviderUnavailable, errReadOnly)
	}
	if ec.indexerURL == "" {
		return "", lottery.Classify(lottery.ErrNetwork, errNoIndexer)
	}

	privateKey, err := ec.signer.PrivateKey(ctx, wallet.TxRequest{
		From:   opts.From,
		To:     ec.address,
		Method: function,
		Value:  opts.Value,
	})
	if err != nil {
		return "", lottery.Classify(lottery.ErrUserRejected, err)
	}

	hash, err := ec.sendTransaction(ctx, privateKey, opts, function)
	if err != nil {
		log.Warn("can not send transaction", "function", function, "from", opts.From, "error", err)
		return "", lottery.Classify(lottery.ErrNetwork, err)
	}
	log.Info("transaction sent", "function", function, "from", opts.From, "hash", hash)

	if err = ec.waitTransaction(ctx, hash); err != nil {
		return hash, err
	}

	return hash, nil
}

func (ec *ElrondContract) sendTransaction(ctx context.Context, privateKey []byte, opts lottery.TxOpts, function string) (string, error) {
	ep := blockchain.NewElrondProxy(ec.proxyURL, nil)
	w := interactors.NewWallet()
	builder, _ := builders.NewTxBuilder(blockchain.NewTxSigner())
	ti, err := interactors.NewTransactionInteractor(ep, builder)
	if err != nil {
		log.Error("error creating transaction interactor", "error", err)
		return "", err
	}

	senderAddress, err := w.GetAddressFromPrivateKey(privateKey)
	if err != nil {
		log.Error("unable to load the address from the private key", "error", err)
		return "", err
	}

	txArgs, err := ep.GetDefaultTransactionArguments(ctx, senderAddress, ec.NetworkConfig)
	if err != nil {
		log.Error("unable to prepare the transaction creation arguments", "error", err)
		return "", err
	}

	txArgs.GasLimit = opts.GasLimit
	txArgs.RcvAddr = ec.address
	txArgs.Data = []byte(function)
	txArgs.Value = txValue(opts.Value)

	tx, err := ti.ApplySignatureAndGenerateTx(privateKey, txArgs)
	if err != nil {
		log.Error("unable to sign transaction", "error", err)
		return "", lottery.Classify(lottery.ErrUserRejected, err)
	}

	return ti.SendTransaction(ctx, tx)
}

// waitTransaction polls the indexer until the transaction leaves the
// pending state. maxIndexerErrors failed requests in a row end the wait.
func (ec *ElrondContract) waitTransaction(ctx context.Context, hash string) error {
	ticker := time.NewTicker(ec.pollInterval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return lottery.Classify(lottery.ErrNetwork, ctx.Err())
		case <-ticker.C:
		}

		info, err := ec.GetTransactionInfo(ctx, hash)
		if err == errNotIndexed {
			failures = 0
			continue
		}
		if err != nil {
			failures++
			log.Debug("can not get transaction info", "hash", hash, "attempt", failures, "error", err)
			if failures >= maxIndexerErrors {
				return lottery.Classify(lottery.ErrNetwork, errors.Wrapf(err, "transaction %s", hash))
			}
			continue
		}
		failures = 0

		switch info.Source.Status {
		case txStatusPending:
			continue
		case txStatusSuccess:
			return nil
		default:
			log.Warn("transaction failed", "hash", hash, "status", info.Source.Status)
			return lottery.Classify(lottery.ErrCallReverted, errors.Errorf("transaction %s %s", hash, info.Source.Status))
		}
	}
}

// GetTransactionInfo - the indexed transaction with the given hash
func (ec *ElrondContract) GetTransactionInfo(ctx context.Context, hash string) (*data.ElasticEntry, error) {
	endpoint := fmt.Sprintf("%s/transactions/_search?size=1&q=_id:%s", ec.indexerURL, hash)
	bytes, err := utils.GetHTTP(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	res := &data.ElasticResult{}
	err = json.Unmarshal(bytes, res)
	if err != nil {
		return nil, err
	}

	if len(res.Hits.Hits) == 0 {
		return nil, errNotIndexed
	}
	if len(res.Hits.Hits) != 1 {
		return nil, errInvalidResponse
	}

	return res.Hits.Hits[0], nil
}

func encodeAddresses(conv core.PubkeyConverter, pubkeys [][]byte) []string {
	addresses := make([]string, 0, len(pubkeys))
	for _, pubkey := range pubkeys {
		addresses = append(addresses, conv.Encode(pubkey))
	}

	return addresses
}

// uint64Arg - VM query argument encoding of an unsigned number
func uint64Arg(n uint64) string {
	return hex.EncodeToString(new(big.Int).SetUint64(n).Bytes())
}

func txValue(value *big.Int) string {
	if value == nil {
		return "0"
	}

	return value.String()
}
