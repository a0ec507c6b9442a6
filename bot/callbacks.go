package bot

import (
	"context"

	"github.com/DrDelphi/LotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) callbackQueryReceived(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	cb := callback.Data
	b.tgBot.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, ""))
	user := b.getOrCreateUser(callback.From)
	name := utils.FormatTgUser(callback.From)
	log.Info("callback received", "callback", cb, "user", name)

	kind, arg, ok := parseCallback(cb)
	if !ok {
		log.Warn("invalid callback", "callback", cb, "user", name)
		return
	}

	switch kind {
	case callbackExportKey:
		go b.sendExportedKey(ctx, user)
	case callbackAccount:
		if arg >= switchableAccounts {
			return
		}
		if b.switchAccount(user, arg) && callback.Message != nil {
			edit := tgbotapi.NewEditMessageReplyMarkup(user.ID, callback.Message.MessageID, accountsKeyboard(uint32(arg)))
			b.tgBot.Send(edit)
		}
	case callbackHistory:
		go b.sendHistory(ctx, user, arg, callback.Message)
	}
}
