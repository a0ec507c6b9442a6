package bot

const (
	menuConnect       = "🔌 Connect Wallet"
	menuPlay          = "🎟 Play now"
	menuPickWinner    = "🎲 Pick Winner"
	menuPayWinner     = "💸 Pay Winner"
	menuLotteryInfo   = "ℹ️ Lottery Info"
	menuHistory       = "🏆 History"
	menuWallet        = "👛 Wallet"
	menuSwitchAccount = "🔁 Switch Account"
	menuMainHelp      = "📖 Help"
	menuAbout         = "©️ About"

	callbackExportKey = "EXPORT"
	callbackAccount   = "ACCOUNT"
	callbackHistory   = "HISTORY"

	historyPageSize    = 10
	lastWinners        = 5
	switchableAccounts = 5

	aboutMessage = "*Made with ❤️ by* [@DrDelphi](https://t.me/DrDelphi)"
)

var (
	helpMessage = "`DISCLAIMER !`\n" +
		"\n" +
		"🔴 All prizes are considered friend gifts.\n" +
		"🟡 This bot is in no way sponsored, endorsed or administered by the blockchain it runs on.\n" +
		"🟢 You agree to choose to join or stay in this group, you play on your own free will.\n" +
		"🟣 Must be 18 years old or older to play!\n" +
		"\n" +
		"\n" +
		"`Instructions`\n" +
		"\n" +
		"This is a Lottery Telegram Bot that interacts with a lottery smart contract.\n\n" +
		"Press `Connect Wallet` first. The bot will open a wallet for you from which you enter the lottery and where you receive the prize.\n\n" +
		"`Play now` buys one entry in the running lottery. When the owner picks the winner, the whole pot is paid to one of the players.\n\n" +
		"You can watch the lottery and discuss free topics on @Lottery\n\n" +
		"\n" +
		"🍀 Good luck!"
)
