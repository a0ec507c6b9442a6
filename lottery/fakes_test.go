package lottery

import (
	"context"
	"errors"
	"math/big"
	"sync"
)

type fakeContract struct {
	mu sync.Mutex

	balance   *big.Int
	players   []string
	lotteryID uint64
	history   map[uint64]string
	picked    string

	historyReads map[uint64]int
	txs          []TxOpts

	balanceErr error
	playersErr error
	idErr      error
	historyErr error
	enterErr   error
	pickErr    error
	payErr     error

	enterGate chan struct{}
}

func newFakeContract() *fakeContract {
	return &fakeContract{
		balance:      big.NewInt(0),
		lotteryID:    1,
		history:      make(map[uint64]string),
		historyReads: make(map[uint64]int),
	}
}

func (c *fakeContract) GetBalance(_ context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.balanceErr != nil {
		return nil, c.balanceErr
	}
	return new(big.Int).Set(c.balance), nil
}

func (c *fakeContract) GetPlayers(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playersErr != nil {
		return nil, c.playersErr
	}
	return append([]string(nil), c.players...), nil
}

func (c *fakeContract) LotteryID(_ context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idErr != nil {
		return 0, c.idErr
	}
	return c.lotteryID, nil
}

func (c *fakeContract) LotteryHistory(_ context.Context, id uint64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.historyReads[id]++
	if c.historyErr != nil {
		return "", c.historyErr
	}
	return c.history[id], nil
}

func (c *fakeContract) Enter(_ context.Context, opts TxOpts) (string, error) {
	if c.enterGate != nil {
		<-c.enterGate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enterErr != nil {
		return "", c.enterErr
	}
	c.txs = append(c.txs, opts)
	c.players = append(c.players, opts.From)
	c.balance.Add(c.balance, opts.Value)
	return "0xenter", nil
}

func (c *fakeContract) PickWinner(_ context.Context, opts TxOpts) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pickErr != nil {
		return "", c.pickErr
	}
	if len(c.players) == 0 {
		return "", Classify(ErrCallReverted, errors.New("execution reverted: no players"))
	}
	c.txs = append(c.txs, opts)
	c.picked = c.players[len(c.players)-1]
	return "0xpick", nil
}

func (c *fakeContract) PayWinner(_ context.Context, opts TxOpts) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payErr != nil {
		return "", c.payErr
	}
	c.txs = append(c.txs, opts)
	c.history[c.lotteryID] = c.picked
	c.lotteryID++
	c.players = nil
	c.balance = big.NewInt(0)
	return "0xpay", nil
}

func (c *fakeContract) Decimals() int32 {
	return 18
}

func (c *fakeContract) readsOf(id uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.historyReads[id]
}

type fakeProvider struct {
	mu       sync.Mutex
	accounts []string
	err      error
	subs     map[int]chan<- []string
	next     int
}

func newFakeProvider(accounts ...string) *fakeProvider {
	return &fakeProvider{
		accounts: accounts,
		subs:     make(map[int]chan<- []string),
	}
}

func (p *fakeProvider) RequestAccounts(_ context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return append([]string(nil), p.accounts...), nil
}

func (p *fakeProvider) SubscribeAccounts(ch chan<- []string) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.next
	p.next++
	p.subs[id] = ch
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *fakeProvider) switchTo(accounts ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts = accounts
	for _, ch := range p.subs {
		ch <- accounts
	}
}

func (p *fakeProvider) subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

func dialTo(c Contract) Dialer {
	return func(_ context.Context, _ Provider) (Contract, error) {
		return c, nil
	}
}
