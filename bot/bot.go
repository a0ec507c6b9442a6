package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DrDelphi/LotteryBot/config"
	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

var log = logger.GetOrCreate("bot")

// Bot - holds the required fields of the bot application
type Bot struct {
	tgBot  *tgbotapi.BotAPI
	cfg    *data.AppConfig
	dial   lottery.Dialer
	reader lottery.Contract
	mirror *lottery.Mirror

	actionCfg lottery.ActionConfig

	mu      sync.Mutex
	users   map[int64]*data.User
	tgUsers map[int64]*data.Telegram
	pages   map[int64]*page
}

// NewBot - creates a new Bot object. reader is a contract handle used for the
// shared view, dial opens the per user contract handles.
func NewBot(cfg *data.AppConfig, dial lottery.Dialer, reader lottery.Contract, mirror *lottery.Mirror) (*Bot, error) {
	entryValue, err := utils.ToBaseUnits(cfg.Lottery.EntryValue, reader.Decimals())
	if err != nil {
		log.Error("invalid entry value", "value", cfg.Lottery.EntryValue, "error", err)
		return nil, err
	}

	tgBot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Error("can not create telegram bot", "error", err)
		return nil, err
	}

	telegramBot := &Bot{
		tgBot:  tgBot,
		cfg:    cfg,
		dial:   dial,
		reader: reader,
		mirror: mirror,
		actionCfg: lottery.ActionConfig{
			EntryValue: entryValue,
			GasLimit:   cfg.Lottery.GasLimit,
		},
		users:   make(map[int64]*data.User),
		tgUsers: make(map[int64]*data.Telegram),
		pages:   make(map[int64]*page),
	}

	helpMessage = strings.ReplaceAll(helpMessage, "@Lottery", "@"+cfg.Bot.Group)

	return telegramBot, nil
}

// StartTasks - starts bot's tasks. They run until ctx is done.
func (b *Bot) StartTasks(ctx context.Context) {
	go b.refreshTask(ctx)

	go func() {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates, err := b.tgBot.GetUpdatesChan(u)
		if err != nil {
			log.Error("can not get Telegram bot updates", "error", err)
			panic(err)
		}
		updates.Clear()
		for {
			var update tgbotapi.Update
			select {
			case <-ctx.Done():
				b.tgBot.StopReceivingUpdates()
				b.closeSessions()
				return
			case update = <-updates:
			}

			if update.Message != nil {
				if update.Message.Chat.IsPrivate() {
					// private
					if update.Message.IsCommand() {
						b.privateCommandReceived(ctx, update.Message)
						continue
					}
					b.privateMessageReceived(ctx, update.Message)
				} else {
					// public
					if b.groupID() == 0 && update.Message.Chat.UserName == b.cfg.Bot.Group {
						b.setGroupID(update.Message.Chat.ID)
					}
					if update.Message.IsCommand() {
						b.tgBot.Send(tgbotapi.DeleteMessageConfig{ChatID: update.Message.Chat.ID, MessageID: update.Message.MessageID})
						continue
					}
				}
			}
			if update.CallbackQuery != nil {
				b.callbackQueryReceived(ctx, update.CallbackQuery)
			}
		}
	}()
}

// refreshTask keeps the shared view fresh and the group informed about new
// rounds and new players. The group follows every published snapshot, the
// ones produced by user actions included.
func (b *Bot) refreshTask(ctx context.Context) {
	views := make(chan *data.LotteryView, 16)
	sub := b.mirror.Subscribe(views)
	defer sub.Unsubscribe()

	go b.refreshLoop(ctx)

	info := &groupInfo{}
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-sub.Err():
			if err != nil {
				log.Warn("lottery view subscription closed", "error", err)
			}
			return
		case view := <-views:
			b.updateGroup(info, view)
		}
	}
}

func (b *Bot) refreshLoop(ctx context.Context) {
	interval := time.Duration(b.cfg.Lottery.RefreshInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := b.mirror.Refresh(ctx, b.reader); err != nil && ctx.Err() == nil {
			b.reportError("Unable to refresh the lottery. Error: " + err.Error())
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// groupInfo - the lottery info message last posted in the group
type groupInfo struct {
	round     uint64
	players   int
	messageID int
}

// updateGroup posts a new info message for a new round and edits the last one
// when the players change
func (b *Bot) updateGroup(info *groupInfo, view *data.LotteryView) {
	groupID := b.groupID()
	if groupID == 0 || view.LotteryID == 0 {
		return
	}

	text := lotteryInfoText(view, b.cfg, b.actionCfg.EntryValue, "")
	switch {
	case view.LotteryID != info.round:
		msg, err := b.sendToGroup(text)
		if err == nil {
			info.messageID = msg.MessageID
		}
		info.round = view.LotteryID
		info.players = len(view.Players)
	case len(view.Players) != info.players && info.messageID != 0:
		msg := tgbotapi.NewEditMessageText(groupID, info.messageID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true
		b.tgBot.Send(msg)
		info.players = len(view.Players)
	}
}

func (b *Bot) groupID() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cfg.Bot.GroupID
}

// setGroupID - remembers the group chat and stores it in the config file
func (b *Bot) setGroupID(id int64) {
	b.mu.Lock()
	b.cfg.Bot.GroupID = id
	err := config.Save(b.cfg)
	b.mu.Unlock()

	if err != nil {
		log.Warn("can not save group id", "error", err)
	}
}

func (b *Bot) reportError(text string) {
	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, "⛔️ "+text)
	b.tgBot.Send(msg)
}

func (b *Bot) sendToGroup(text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(b.groupID(), text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message to group", "message", text, "error", err)
	}

	return res, err
}

func (b *Bot) sendMessage(userID int64, text string) (tgbotapi.Message, error) {
	b.mu.Lock()
	user := b.users[userID]
	tgUser := b.tgUsers[userID]
	b.mu.Unlock()
	if user == nil {
		return tgbotapi.Message{}, errors.New("user not found")
	}

	name := ""
	if tgUser != nil {
		name = fmt.Sprintf("@%s (%s %s)", tgUser.UserName, tgUser.FirstName, tgUser.LastName)
		log.Info("sent message", "user", name, "message", text)
	}
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message", "user", name, "message", text, "error", err.Error())
	}

	return res, err
}

func (b *Bot) sendLotteryInfo(user *data.User) {
	b.mu.Lock()
	wallet := user.Wallet
	b.mu.Unlock()

	b.sendMessage(user.ID, lotteryInfoText(b.mirror.Snapshot(), b.cfg, b.actionCfg.EntryValue, wallet))
}

// sendHistory - one page of winners, offset rounds below the running one
func (b *Bot) sendHistory(ctx context.Context, user *data.User, offset int, edit *tgbotapi.Message) {
	currentID := b.mirror.Snapshot().LotteryID
	entries, err := b.mirror.HistoryPage(ctx, b.reader, currentID, offset, historyPageSize)
	if err != nil {
		b.sendMessage(user.ID, "❗️ Network error. Please try again later ("+escapeMarkdown(err.Error())+")")
		return
	}

	text := historyText(entries, b.cfg)
	keyboard := historyKeyboard(offset, currentID)
	if edit != nil {
		msg := tgbotapi.NewEditMessageText(user.ID, edit.MessageID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true
		msg.ReplyMarkup = keyboard
		b.tgBot.Send(msg)
		return
	}

	msg := tgbotapi.NewMessage(user.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	b.tgBot.Send(msg)
}

func (b *Bot) getOrCreateUser(tgUser *tgbotapi.User) *data.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := int64(tgUser.ID)
	user, ok := b.users[id]
	if !ok {
		user = &data.User{
			ID: id,
		}
		b.users[id] = user
	}

	tg, ok := b.tgUsers[id]
	if !ok || tg.UserName != tgUser.UserName || tg.FirstName != tgUser.FirstName || tg.LastName != tgUser.LastName {
		b.tgUsers[id] = &data.Telegram{
			ID:        id,
			UserName:  tgUser.UserName,
			FirstName: tgUser.FirstName,
			LastName:  tgUser.LastName,
		}
	}

	return user
}

func (b *Bot) getUserByAddress(address string) *data.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, user := range b.users {
		if strings.EqualFold(user.Wallet, address) {
			return user
		}
	}

	return nil
}
