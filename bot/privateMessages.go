package bot

import (
	"context"

	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateMessageReceived(ctx context.Context, message *tgbotapi.Message) {
	user := b.getOrCreateUser(message.From)
	name := utils.FormatTgUser(message.From)
	log.Info("private message received", "message", message.Text, "user", name)

	switch message.Text {
	case menuAbout:
		msg := tgbotapi.NewMessage(user.ID, aboutMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tgBot.Send(msg)
		return
	case menuMainHelp:
		msg := tgbotapi.NewMessage(user.ID, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		_, err := b.tgBot.Send(msg)
		if err != nil {
			log.Error("unable to send message", "message", helpMessage, "error", err)
		}
		return
	case menuConnect:
		go b.connect(ctx, user)
		return
	case menuWallet:
		b.sendWallet(user)
		return
	case menuSwitchAccount:
		b.sendAccounts(user)
		return
	case menuLotteryInfo:
		b.sendLotteryInfo(user)
		return
	case menuHistory:
		go b.sendHistory(ctx, user, 1, nil)
		return
	case menuPlay:
		go b.runAction(ctx, user, lottery.ActionEnter)
		return
	case menuPickWinner:
		go b.runAction(ctx, user, lottery.ActionPickWinner)
		return
	case menuPayWinner:
		go b.runAction(ctx, user, lottery.ActionPayWinner)
		return
	}
}
