package bot

import (
	"math/big"
	"strings"
	"testing"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	bob   = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
)

func testConfig() *data.AppConfig {
	cfg := &data.AppConfig{}
	cfg.Network.Kind = data.NetworkEvm
	cfg.Network.Symbol = "ETH"
	cfg.Network.ExplorerAccount = "https://etherscan.io/address/"
	return cfg
}

func testView() *data.LotteryView {
	return &data.LotteryView{
		Pot:       big.NewInt(45000000000000000),
		Decimals:  18,
		Players:   []string{alice, bob, alice},
		LotteryID: 3,
		History: []data.HistoryEntry{
			{ID: 3},
			{ID: 2, Winner: bob},
			{ID: 1, Winner: alice},
		},
	}
}

func TestLotteryInfoText(t *testing.T) {
	t.Parallel()

	text := lotteryInfoText(testView(), testConfig(), big.NewInt(15000000000000000), "")
	assert.Contains(t, text, "`Lottery:` #3\n")
	assert.Contains(t, text, "`Pot:` 0.045 ETH\n")
	assert.Contains(t, text, "`Entry:` 0.015 ETH\n")
	assert.Contains(t, text, "`Players:` 3\n")
	assert.Contains(t, text, "1. [0x709979...dc79C8](https://etherscan.io/address/"+alice+")")
	assert.Contains(t, text, "`#2` [0x3C44Cd...4293BC]")
	assert.NotContains(t, text, "`#3`")
	assert.NotContains(t, text, "You have")
}

func TestLotteryInfoText_Entries(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	view := testView()
	entry := big.NewInt(15000000000000000)

	assert.True(t, strings.HasSuffix(lotteryInfoText(view, cfg, entry, strings.ToLower(alice)), "You have `2` entries"))
	assert.True(t, strings.HasSuffix(lotteryInfoText(view, cfg, entry, bob), "You have `1` entry"))
	assert.NotContains(t, lotteryInfoText(view, cfg, entry, "0x0000000000000000000000000000000000000001"), "You have")
}

func TestLotteryInfoText_ManyPlayers(t *testing.T) {
	t.Parallel()

	view := testView()
	view.Players = make([]string, maxListedPlayers+5)
	for i := range view.Players {
		view.Players[i] = alice
	}

	text := lotteryInfoText(view, testConfig(), big.NewInt(0), "")
	assert.Contains(t, text, "... and 5 more")
	assert.NotContains(t, text, "21. ")
}

func TestHistoryText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "🚫 No winners yet", historyText(nil, testConfig()))

	text := historyText([]data.HistoryEntry{{ID: 2, Winner: bob}, {ID: 1}}, testConfig())
	assert.True(t, strings.HasPrefix(text, "`Lottery History`"))
	assert.Contains(t, text, "`#1` -\n")
}

func TestWinnerText(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	link := "[0x709979...dc79C8](https://etherscan.io/address/" + alice + ")"

	assert.Equal(t, "🎉 The winner of lottery #4 is "+link, winnerText(4, alice, nil, cfg))
	assert.Equal(t, "🎉 The winner of lottery #4 is "+link+" (@alice)",
		winnerText(4, alice, &data.Telegram{ID: 9, UserName: "alice"}, cfg))
}

func TestFeedbackText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", feedbackText(data.Feedback{}))
	assert.Equal(t, "⛔️ user rejected the request", feedbackText(data.Feedback{Error: "user rejected the request"}))
	assert.Equal(t, "✅ The winner is "+alice, feedbackText(data.Feedback{Success: "The winner is " + alice}))
	assert.Equal(t, "⛔️ insufficient\\_funds", feedbackText(data.Feedback{Error: "insufficient_funds"}))
}

func TestParseCallback(t *testing.T) {
	t.Parallel()

	kind, arg, ok := parseCallback(callbackData(callbackAccount, 3))
	require.True(t, ok)
	assert.Equal(t, callbackAccount, kind)
	assert.Equal(t, 3, arg)

	kind, _, ok = parseCallback(callbackExportKey)
	require.True(t, ok)
	assert.Equal(t, callbackExportKey, kind)

	_, _, ok = parseCallback("ACCOUNT:x")
	assert.False(t, ok)
	_, _, ok = parseCallback("HISTORY:-10")
	assert.False(t, ok)
}

func TestHistoryKeyboard(t *testing.T) {
	t.Parallel()

	assert.Nil(t, historyKeyboard(1, 3))

	keyboard := historyKeyboard(1, 25)
	require.NotNil(t, keyboard)
	require.Len(t, keyboard.InlineKeyboard, 1)
	require.NotNil(t, keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "HISTORY:11", *keyboard.InlineKeyboard[0][0].CallbackData)

	assert.NotNil(t, historyKeyboard(11, 25))
	assert.Nil(t, historyKeyboard(21, 25))
}

func TestAccountsKeyboard(t *testing.T) {
	t.Parallel()

	keyboard := accountsKeyboard(2)
	require.Len(t, keyboard.InlineKeyboard, 1)
	row := keyboard.InlineKeyboard[0]
	require.Len(t, row, switchableAccounts)
	assert.Equal(t, "#0", row[0].Text)
	assert.Equal(t, "✔️ #2", row[2].Text)
	assert.Equal(t, "ACCOUNT:4", *row[4].CallbackData)
}
