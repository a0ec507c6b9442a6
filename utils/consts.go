package utils

const (
	DefaultConfigPath = "config.json"

	DefaultEntryValue      = "0.015"
	DefaultRefreshInterval = 6

	EvmSymbol           = "ETH"
	EvmExplorerAccount  = "https://etherscan.io/address/"
	EvmExplorerTransact = "https://etherscan.io/tx/"

	ElrondSymbol           = "EGLD"
	ElrondExplorerAccount  = "https://explorer.elrond.com/accounts/"
	ElrondExplorerTransact = "https://explorer.elrond.com/transactions/"

	// NiceDecimals is the number of decimals amounts are shown with.
	NiceDecimals = 4
)
