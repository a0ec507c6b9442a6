package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/utils"
	"github.com/DrDelphi/LotteryBot/wallet"
	"github.com/ethereum/go-ethereum/event"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const pendingMessage = "⌛️ Your previous transaction is still pending"

// page - what one telegram user sees: their wallet session and the feedback
// of their last action
type page struct {
	handlers *lottery.Handlers

	mu         sync.Mutex
	provider   lottery.Provider
	session    *lottery.Session
	accountSub event.Subscription
}

func (b *Bot) getPage(user *data.User) *page {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.pages[user.ID]
	if !ok {
		p = &page{
			handlers: lottery.NewHandlers(b.mirror, b.actionCfg),
		}
		b.pages[user.ID] = p
	}

	return p
}

// walletProvider opens the user's wallet on first use
func (p *page) walletProvider(cfg *data.AppConfig, userID int64) (lottery.Provider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.provider != nil {
		return p.provider, nil
	}

	provider, err := wallet.NewProvider(cfg, userID, wallet.AutoApprove{})
	if err != nil {
		return nil, err
	}
	p.provider = provider

	return provider, nil
}

func (p *page) currentSession() *lottery.Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.session
}

func (p *page) currentProvider() lottery.Provider {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.provider
}

// replaceSession closes the previous session, if any
func (p *page) replaceSession(s *lottery.Session, sub event.Subscription) {
	p.mu.Lock()
	oldSession, oldSub := p.session, p.accountSub
	p.session, p.accountSub = s, sub
	p.mu.Unlock()

	if oldSub != nil {
		oldSub.Unsubscribe()
	}
	if oldSession != nil {
		oldSession.Close()
	}
}

func (p *page) close() {
	p.replaceSession(nil, nil)

	if closer, ok := p.currentProvider().(interface{ Close() }); ok {
		closer.Close()
	}
}

func (b *Bot) closeSessions() {
	b.mu.Lock()
	pages := make([]*page, 0, len(b.pages))
	for _, p := range b.pages {
		pages = append(pages, p)
	}
	b.mu.Unlock()

	for _, p := range pages {
		p.close()
	}
}

func (b *Bot) connect(ctx context.Context, user *data.User) {
	p := b.getPage(user)
	provider, err := p.walletProvider(b.cfg, user.ID)
	if err != nil {
		log.Error("can not open wallet", "user", user.ID, "error", err)
		b.sendMessage(user.ID, "⛔️ "+escapeMarkdown(err.Error()))
		return
	}

	s, err := p.handlers.Connect(ctx, provider, b.dial)
	if errors.Is(err, lottery.ErrSubmissionInFlight) {
		b.sendMessage(user.ID, pendingMessage)
		return
	}
	if err == nil {
		accounts := make(chan string, 4)
		sub := s.SubscribeAccount(accounts)
		p.replaceSession(s, sub)
		b.setWallet(user, s.Account())
		go b.followAccount(user, accounts, sub)
	}

	b.sendMessage(user.ID, feedbackText(p.handlers.Feedback()))
	if err == nil {
		b.sendLotteryInfo(user)
	}
}

func (b *Bot) followAccount(user *data.User, accounts <-chan string, sub event.Subscription) {
	for {
		select {
		case account := <-accounts:
			b.setWallet(user, account)
			b.sendMessage(user.ID, "🔁 Active account: "+utils.AccountLink(b.cfg.Network.ExplorerAccount, account))
		case <-sub.Err():
			return
		}
	}
}

func (b *Bot) setWallet(user *data.User, address string) {
	b.mu.Lock()
	user.Wallet = address
	b.mu.Unlock()
}

// runAction - submits action for the user and reports the outcome
func (b *Bot) runAction(ctx context.Context, user *data.User, action lottery.Action) {
	p := b.getPage(user)
	if p.handlers.State(action) == lottery.Submitting {
		b.sendMessage(user.ID, pendingMessage)
		return
	}

	s := p.currentSession()
	if s != nil {
		b.sendMessage(user.ID, "⌛️ Waiting for the transaction to be confirmed...")
	}
	round := b.mirror.Snapshot().LotteryID

	var err error
	switch action {
	case lottery.ActionEnter:
		err = p.handlers.Enter(ctx, s)
	case lottery.ActionPickWinner:
		err = p.handlers.PickWinner(ctx, s)
	case lottery.ActionPayWinner:
		err = p.handlers.PayWinner(ctx, s)
	default:
		return
	}
	if errors.Is(err, lottery.ErrSubmissionInFlight) {
		b.sendMessage(user.ID, pendingMessage)
		return
	}

	text := feedbackText(p.handlers.Feedback())
	if errors.Is(err, lottery.ErrNotConnected) {
		text += "\nPress `" + menuConnect + "` first"
	}
	b.sendMessage(user.ID, text)

	if err == nil && action == lottery.ActionPayWinner {
		b.announceWinner(round)
	}
}

// announceWinner tells the group and the winner, when they use the bot
func (b *Bot) announceWinner(round uint64) {
	for _, entry := range b.mirror.Snapshot().History {
		if entry.ID != round || entry.Winner == "" {
			continue
		}
		user := b.getUserByAddress(entry.Winner)
		var tgUser *data.Telegram
		if user != nil {
			b.mu.Lock()
			tgUser = b.tgUsers[user.ID]
			b.mu.Unlock()
		}
		if b.groupID() != 0 {
			b.sendToGroup(winnerText(round, entry.Winner, tgUser, b.cfg))
		}
		if user != nil {
			b.sendMessage(user.ID, fmt.Sprintf("🤑 You won lottery #%v!", round))
		}
		return
	}
}

func (b *Bot) sendWallet(user *data.User) {
	s := b.getPage(user).currentSession()
	if s == nil {
		b.sendMessage(user.ID, "🔌 Press `"+menuConnect+"` first")
		return
	}

	b.mu.Lock()
	account := user.Account
	b.mu.Unlock()

	msg := tgbotapi.NewMessage(user.ID, walletText(s.Account(), account, b.cfg))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔑 Export key", callbackExportKey),
	))
	b.tgBot.Send(msg)
}

func (b *Bot) sendAccounts(user *data.User) {
	if _, ok := b.getPage(user).currentProvider().(wallet.AccountSwitcher); !ok {
		b.sendMessage(user.ID, "🔌 Press `"+menuConnect+"` first")
		return
	}

	b.mu.Lock()
	account := user.Account
	b.mu.Unlock()

	msg := tgbotapi.NewMessage(user.ID, "`Choose the account to play with`")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = accountsKeyboard(account)
	b.tgBot.Send(msg)
}

func (b *Bot) switchAccount(user *data.User, index int) bool {
	switcher, ok := b.getPage(user).currentProvider().(wallet.AccountSwitcher)
	if !ok {
		b.sendMessage(user.ID, "🔌 Press `"+menuConnect+"` first")
		return false
	}

	if err := switcher.SwitchAccount(uint32(index)); err != nil {
		b.sendMessage(user.ID, "⛔️ "+escapeMarkdown(err.Error()))
		return false
	}

	b.mu.Lock()
	user.Account = uint32(index)
	b.mu.Unlock()

	return true
}

func (b *Bot) sendExportedKey(ctx context.Context, user *data.User) {
	exporter, ok := b.getPage(user).currentProvider().(wallet.KeyExporter)
	if !ok {
		b.sendMessage(user.ID, "🔌 Press `"+menuConnect+"` first")
		return
	}

	name, content, err := exporter.ExportKey(ctx)
	if err != nil {
		log.Warn("can not export key", "user", user.ID, "error", err)
		b.sendMessage(user.ID, "⛔️ "+escapeMarkdown(err.Error()))
		return
	}

	fileable := tgbotapi.NewDocumentUpload(user.ID, tgbotapi.FileBytes{Name: name, Bytes: content})
	b.tgBot.Send(fileable)
}
