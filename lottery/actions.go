package lottery

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/DrDelphi/LotteryBot/data"
)

// Action - a user triggered operation
type Action string

const (
	ActionConnect    Action = "connect"
	ActionEnter      Action = "enter"
	ActionPickWinner Action = "pickWinner"
	ActionPayWinner  Action = "payWinner"
)

// ActionState - Idle or Submitting, per action
type ActionState int

const (
	Idle ActionState = iota
	Submitting
)

func (s ActionState) String() string {
	if s == Submitting {
		return "Submitting"
	}
	return "Idle"
}

const (
	// DefaultGasLimit is used by all mutating calls when none is configured.
	DefaultGasLimit = 300000
	// DefaultActionTimeout bounds one mutating call, confirmation included.
	DefaultActionTimeout = 5 * time.Minute
)

// ActionConfig - fixed parameters of the mutating calls
type ActionConfig struct {
	EntryValue *big.Int
	GasLimit   uint64
	Timeout    time.Duration
}

// Handlers - the user actions of one page. Every action clears the feedback,
// runs one contract call and records its outcome; a second submission of an
// action that is still pending is refused.
type Handlers struct {
	mirror *Mirror
	cfg    ActionConfig

	mu       sync.Mutex
	feedback data.Feedback
	inflight map[Action]bool
}

// NewHandlers - creates the handlers of a page refreshing the given mirror
func NewHandlers(mirror *Mirror, cfg ActionConfig) *Handlers {
	if cfg.GasLimit == 0 {
		cfg.GasLimit = DefaultGasLimit
	}
	if cfg.EntryValue == nil {
		cfg.EntryValue = big.NewInt(0)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultActionTimeout
	}

	return &Handlers{
		mirror:   mirror,
		cfg:      cfg,
		inflight: make(map[Action]bool),
	}
}

// Feedback - outcome of the last action
func (h *Handlers) Feedback() data.Feedback {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.feedback
}

// State - whether the action is currently being submitted
func (h *Handlers) State(action Action) ActionState {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.inflight[action] {
		return Submitting
	}
	return Idle
}

func (h *Handlers) begin(action Action) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.inflight[action] {
		return ErrSubmissionInFlight
	}
	h.inflight[action] = true
	h.feedback = data.Feedback{}
	submittedCounter(action).Inc(1)

	return nil
}

func (h *Handlers) finish(action Action, success string, err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.inflight, action)
	if err != nil {
		failedCounter(action).Inc(1)
		h.feedback.Error = err.Error()
		log.Debug("action failed", "action", action, "error", err)
		return err
	}
	h.feedback.Success = success

	return nil
}

// Connect - connects the wallet and loads the view for the new session
func (h *Handlers) Connect(ctx context.Context, provider Provider, dial Dialer) (*Session, error) {
	if err := h.begin(ActionConnect); err != nil {
		return nil, err
	}

	s, err := Connect(ctx, provider, dial)
	if err != nil {
		return nil, h.finish(ActionConnect, "", err)
	}

	h.refresh(ctx, s)

	return s, h.finish(ActionConnect, "Wallet connected: "+s.Account(), nil)
}

// Enter - buys an entry in the running round with the configured value
func (h *Handlers) Enter(ctx context.Context, s *Session) error {
	if err := h.begin(ActionEnter); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()
	if s == nil {
		return h.finish(ActionEnter, "", ErrNotConnected)
	}

	hash, err := s.Contract().Enter(ctx, h.txOpts(s, h.cfg.EntryValue))
	if err != nil {
		return h.finish(ActionEnter, "", err)
	}

	h.refresh(ctx, s)

	return h.finish(ActionEnter, fmt.Sprintf("You entered the lottery (transaction %s)", hash), nil)
}

// PickWinner - asks the contract to pick the winner of the running round
func (h *Handlers) PickWinner(ctx context.Context, s *Session) error {
	if err := h.begin(ActionPickWinner); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()
	if s == nil {
		return h.finish(ActionPickWinner, "", ErrNotConnected)
	}

	hash, err := s.Contract().PickWinner(ctx, h.txOpts(s, nil))
	if err != nil {
		return h.finish(ActionPickWinner, "", err)
	}

	h.refresh(ctx, s)

	return h.finish(ActionPickWinner, fmt.Sprintf("Winner picked (transaction %s)", hash), nil)
}

// PayWinner - pays the pot to the picked winner and reports who won
func (h *Handlers) PayWinner(ctx context.Context, s *Session) error {
	if err := h.begin(ActionPayWinner); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()
	if s == nil {
		return h.finish(ActionPayWinner, "", ErrNotConnected)
	}

	c := s.Contract()
	round, err := c.LotteryID(ctx)
	if err != nil {
		round = h.mirror.Snapshot().LotteryID
		log.Warn("can not read lottery id before paying, using mirrored one", "lotteryId", round, "error", err)
	}

	if _, err = c.PayWinner(ctx, h.txOpts(s, nil)); err != nil {
		return h.finish(ActionPayWinner, "", err)
	}

	success := fmt.Sprintf("The winner of lottery #%d has been paid", round)
	winner, err := c.LotteryHistory(ctx, round)
	if err != nil {
		log.Warn("can not read winner", "lotteryId", round, "error", err)
	} else {
		success = "The winner is " + winner
	}

	h.refresh(ctx, s)

	return h.finish(ActionPayWinner, success, nil)
}

func (h *Handlers) txOpts(s *Session, value *big.Int) TxOpts {
	return TxOpts{
		From:     s.Account(),
		Value:    value,
		GasLimit: h.cfg.GasLimit,
	}
}

func (h *Handlers) refresh(ctx context.Context, s *Session) {
	if h.mirror == nil {
		return
	}
	if err := h.mirror.Refresh(ctx, s.Contract()); err != nil {
		log.Warn("can not refresh lottery view", "error", err)
	}
}
