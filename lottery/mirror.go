package lottery

import (
	"context"
	"sync"
	"time"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/ethereum/go-ethereum/event"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultHistoryCacheSize   = 1024
	DefaultHistoryConcurrency = 4
)

// MirrorConfig - tuning of the historical reads
type MirrorConfig struct {
	HistoryCacheSize   int
	HistoryConcurrency int
}

// Mirror - keeps a display copy of the contract state. Every read updates its
// own part of the view as soon as it resolves, so a snapshot taken while a
// refresh is running may mix values from different rounds.
type Mirror struct {
	mu   sync.RWMutex
	view data.LotteryView

	history     *lru.Cache
	concurrency int
	feed        event.Feed
}

// NewMirror - creates an empty mirror
func NewMirror(cfg MirrorConfig) (*Mirror, error) {
	if cfg.HistoryCacheSize <= 0 {
		cfg.HistoryCacheSize = DefaultHistoryCacheSize
	}
	if cfg.HistoryConcurrency <= 0 {
		cfg.HistoryConcurrency = DefaultHistoryConcurrency
	}

	cache, err := lru.New(cfg.HistoryCacheSize)
	if err != nil {
		return nil, err
	}

	return &Mirror{
		history:     cache,
		concurrency: cfg.HistoryConcurrency,
	}, nil
}

// Refresh - re-reads pot, players and round id independently, then rebuilds
// the history for the round id that was read
func (m *Mirror) Refresh(ctx context.Context, c Contract) error {
	defer refreshTimer.UpdateSince(time.Now())

	m.mu.Lock()
	m.view.Decimals = c.Decimals()
	m.mu.Unlock()

	// no shared cancellation, a failed read must not abort the others
	var lotteryID uint64
	var g errgroup.Group
	g.Go(func() error {
		pot, err := c.GetBalance(ctx)
		if err != nil {
			log.Warn("can not read pot", "error", err)
			return err
		}
		m.mu.Lock()
		m.view.Pot = pot
		m.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		players, err := c.GetPlayers(ctx)
		if err != nil {
			log.Warn("can not read players", "error", err)
			return err
		}
		m.mu.Lock()
		m.view.Players = players
		m.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		id, err := c.LotteryID(ctx)
		if err != nil {
			log.Warn("can not read lottery id", "error", err)
			return err
		}
		m.mu.Lock()
		m.view.LotteryID = id
		m.mu.Unlock()
		lotteryID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		m.publish()
		return err
	}

	return m.RefreshHistory(ctx, c, lotteryID)
}

// RefreshHistory - clears the history and rebuilds it for rounds currentID
// down to 1. Closed rounds are served from the cache once read.
func (m *Mirror) RefreshHistory(ctx context.Context, c Contract, currentID uint64) error {
	m.mu.Lock()
	m.view.History = nil
	m.mu.Unlock()

	entries, err := m.readHistory(ctx, c, currentID, currentID, currentID)
	if err != nil {
		m.publish()
		return err
	}

	m.mu.Lock()
	m.view.History = entries
	m.mu.Unlock()
	m.publish()

	return nil
}

// HistoryPage - history entries for rounds currentID-offset downwards, at
// most limit of them, in descending order. The view is not touched.
func (m *Mirror) HistoryPage(ctx context.Context, c Contract, currentID uint64, offset, limit int) ([]data.HistoryEntry, error) {
	if offset < 0 || limit <= 0 || uint64(offset) >= currentID {
		return []data.HistoryEntry{}, nil
	}

	from := currentID - uint64(offset)
	count := uint64(limit)
	if count > from {
		count = from
	}

	return m.readHistory(ctx, c, currentID, from, count)
}

func (m *Mirror) readHistory(ctx context.Context, c Contract, currentID, from, n uint64) ([]data.HistoryEntry, error) {
	entries := make([]data.HistoryEntry, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i := uint64(0); i < n; i++ {
		i := i
		id := from - i
		g.Go(func() error {
			winner, err := m.winner(gctx, c, currentID, id)
			if err != nil {
				return err
			}
			entries[i] = data.HistoryEntry{ID: id, Winner: winner}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("can not read lottery history", "lotteryId", currentID, "error", err)
		return nil, err
	}

	return entries, nil
}

func (m *Mirror) winner(ctx context.Context, c Contract, currentID, id uint64) (string, error) {
	if id < currentID {
		if cached, ok := m.history.Get(id); ok {
			historyCacheHits.Inc(1)
			return cached.(string), nil
		}
	}

	winner, err := c.LotteryHistory(ctx, id)
	if err != nil {
		return "", err
	}

	// the running round may still get a winner, closed ones never change
	if id < currentID {
		m.history.Add(id, winner)
	}

	return winner, nil
}

// Snapshot - a copy of the current view
func (m *Mirror) Snapshot() *data.LotteryView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.view.Clone()
}

// Subscribe - delivers a snapshot after every refresh
func (m *Mirror) Subscribe(ch chan<- *data.LotteryView) event.Subscription {
	return m.feed.Subscribe(ch)
}

func (m *Mirror) publish() {
	m.feed.Send(m.Snapshot())
}
