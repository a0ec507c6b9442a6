package lottery

import (
	"context"
	"sync"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ethereum/go-ethereum/event"
)

var log = logger.GetOrCreate("lottery")

// Session - a connected wallet: the contract handle plus the active account,
// which follows the wallet's account switches until Close is called.
type Session struct {
	provider Provider
	contract Contract

	mu      sync.RWMutex
	account string

	accountFeed event.Feed
	unsubscribe func()
	quit        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

// Connect - requests account access from the provider, dials the contract and
// starts following account changes
func Connect(ctx context.Context, provider Provider, dial Dialer) (*Session, error) {
	if provider == nil {
		log.Warn("connect", "error", ErrProviderUnavailable)
		return nil, ErrProviderUnavailable
	}

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		log.Debug("account request failed", "error", err)
		return nil, Classify(ErrUserRejected, err)
	}
	if len(accounts) == 0 {
		return nil, ErrUserRejected
	}

	contract, err := dial(ctx, provider)
	if err != nil {
		log.Error("can not dial contract", "error", err)
		return nil, Classify(ErrNetwork, err)
	}

	s := &Session{
		provider: provider,
		contract: contract,
		account:  accounts[0],
		quit:     make(chan struct{}),
	}

	changes := make(chan []string, 4)
	s.unsubscribe = provider.SubscribeAccounts(changes)
	s.wg.Add(1)
	go s.followAccounts(changes)

	log.Info("wallet connected", "account", s.account)

	return s, nil
}

func (s *Session) followAccounts(changes <-chan []string) {
	defer s.wg.Done()

	for {
		select {
		case accounts := <-changes:
			if len(accounts) == 0 {
				continue
			}
			s.setAccount(accounts[0])
		case <-s.quit:
			return
		}
	}
}

func (s *Session) setAccount(account string) {
	s.mu.Lock()
	changed := s.account != account
	s.account = account
	s.mu.Unlock()

	if changed {
		log.Info("active account changed", "account", account)
		s.accountFeed.Send(account)
	}
}

// Account - the active account
func (s *Session) Account() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.account
}

// Contract - the contract handle bound to this session's wallet
func (s *Session) Contract() Contract {
	return s.contract
}

// SubscribeAccount - delivers the new active account on every switch
func (s *Session) SubscribeAccount(ch chan<- string) event.Subscription {
	return s.accountFeed.Subscribe(ch)
}

// Close - stops following the wallet's account changes
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		close(s.quit)
		s.wg.Wait()
	})
}
