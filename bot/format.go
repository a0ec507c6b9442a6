package bot

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const maxListedPlayers = 20

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// lotteryInfoText - the lottery view as shown in the group (wallet empty) or
// to a connected user
func lotteryInfoText(view *data.LotteryView, cfg *data.AppConfig, entryValue *big.Int, wallet string) string {
	symbol := cfg.Network.Symbol

	text := "`Lottery Info`\n\n"
	text += fmt.Sprintf("`Lottery:` #%v\n", view.LotteryID)
	text += fmt.Sprintf("`Pot:` %s %s\n", utils.NicePrice(view.Pot, view.Decimals, utils.NiceDecimals), symbol)
	text += fmt.Sprintf("`Entry:` %s %s\n", utils.NicePrice(entryValue, view.Decimals, utils.NiceDecimals), symbol)
	text += fmt.Sprintf("`Players:` %v\n", len(view.Players))
	for i, player := range view.Players {
		if i == maxListedPlayers {
			text += fmt.Sprintf("   ... and %v more\n", len(view.Players)-maxListedPlayers)
			break
		}
		text += fmt.Sprintf("   %v. %s\n", i+1, utils.AccountLink(cfg.Network.ExplorerAccount, player))
	}

	history := view.DisplayHistory()
	if len(history) > lastWinners {
		history = history[:lastWinners]
	}
	if len(history) > 0 {
		text += "\n`Last winners:`\n"
		text += historyLines(history, cfg)
	}

	if wallet != "" {
		entries := 0
		for _, player := range view.Players {
			if strings.EqualFold(player, wallet) {
				entries++
			}
		}
		switch entries {
		case 0:
		case 1:
			text += "\nYou have `1` entry"
		default:
			text += fmt.Sprintf("\nYou have `%v` entries", entries)
		}
	}

	return text
}

func historyLines(entries []data.HistoryEntry, cfg *data.AppConfig) string {
	text := ""
	for _, entry := range entries {
		winner := "-"
		if entry.Winner != "" {
			winner = utils.AccountLink(cfg.Network.ExplorerAccount, entry.Winner)
		}
		text += fmt.Sprintf("`#%v` %s\n", entry.ID, winner)
	}

	return text
}

func historyText(entries []data.HistoryEntry, cfg *data.AppConfig) string {
	if len(entries) == 0 {
		return "🚫 No winners yet"
	}

	return "`Lottery History`\n\n" + historyLines(entries, cfg)
}

// winnerText - the group announcement of a paid round. tgUser is the winner's
// Telegram account when the winner plays through the bot.
func winnerText(round uint64, winner string, tgUser *data.Telegram, cfg *data.AppConfig) string {
	text := fmt.Sprintf("🎉 The winner of lottery #%v is %s", round, utils.AccountLink(cfg.Network.ExplorerAccount, winner))
	if tgUser != nil {
		text += " (" + utils.FormatDbTgUser(tgUser) + ")"
	}

	return text
}

func walletText(address string, account uint32, cfg *data.AppConfig) string {
	return fmt.Sprintf("`Wallet:` %s\n`Account:` #%v\n`Network:` %s",
		utils.AccountLink(cfg.Network.ExplorerAccount, address), account, cfg.Network.Kind)
}

func feedbackText(fb data.Feedback) string {
	if fb.Error != "" {
		return "⛔️ " + escapeMarkdown(fb.Error)
	}
	if fb.Success != "" {
		return "✅ " + escapeMarkdown(fb.Success)
	}

	return ""
}

func callbackData(kind string, arg int) string {
	return kind + ":" + strconv.Itoa(arg)
}

// parseCallback splits callback data built by callbackData
func parseCallback(cb string) (string, int, bool) {
	kind, rawArg, found := strings.Cut(cb, ":")
	if !found {
		return cb, 0, true
	}
	arg, err := strconv.Atoi(rawArg)
	if err != nil || arg < 0 {
		return "", 0, false
	}

	return kind, arg, true
}

func accountsKeyboard(active uint32) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, switchableAccounts)
	for i := 0; i < switchableAccounts; i++ {
		label := fmt.Sprintf("#%v", i)
		if uint32(i) == active {
			label = "✔️ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackData(callbackAccount, i)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// historyKeyboard pages to older rounds, nil when offset is the last page
func historyKeyboard(offset int, currentID uint64) *tgbotapi.InlineKeyboardMarkup {
	next := offset + historyPageSize
	if uint64(next) >= currentID {
		return nil
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏪ Older", callbackData(callbackHistory, next)),
	))

	return &keyboard
}
