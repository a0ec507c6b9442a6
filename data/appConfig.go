package data

const (
	NetworkEvm    = "evm"
	NetworkElrond = "elrond"
)

// AppConfig holds the application configuration read from config.json
type AppConfig struct {
	Bot struct {
		Token   string `json:"token" toml:"token" env:"LOTTERY_BOT_TOKEN"`
		Owner   int64  `json:"owner" toml:"owner"`
		Group   string `json:"group" toml:"group"`
		GroupID int64  `json:"groupID" toml:"groupID"`
	} `json:"bot" toml:"bot"`
	Seedphrase      string `json:"seed" toml:"seed" env:"LOTTERY_SEED"`
	ContractAddress string `json:"contractAddress" toml:"contractAddress" env:"LOTTERY_CONTRACT"`
	Network         struct {
		Kind                string `json:"kind" toml:"kind"`
		Proxy               string `json:"proxy" toml:"proxy" env:"LOTTERY_RPC"`
		Indexer             string `json:"indexer" toml:"indexer"`
		ExplorerTransaction string `json:"explorerTransaction" toml:"explorerTransaction"`
		ExplorerAccount     string `json:"explorerAccount" toml:"explorerAccount"`
		Symbol              string `json:"symbol" toml:"symbol"`
	} `json:"network" toml:"network"`
	Wallet struct {
		KeystoreDir string `json:"keystoreDir" toml:"keystoreDir"`
		Passphrase  string `json:"passphrase" toml:"passphrase" env:"LOTTERY_KEYSTORE_PASSPHRASE"`
		LightKDF    bool   `json:"lightKDF" toml:"lightKDF"`
	} `json:"wallet" toml:"wallet"`
	Lottery struct {
		EntryValue         string `json:"entryValue" toml:"entryValue"`
		GasLimit           uint64 `json:"gasLimit" toml:"gasLimit"`
		HistoryCacheSize   int    `json:"historyCacheSize" toml:"historyCacheSize"`
		HistoryConcurrency int    `json:"historyConcurrency" toml:"historyConcurrency"`
		RefreshInterval    int    `json:"refreshInterval" toml:"refreshInterval"`
	} `json:"lottery" toml:"lottery"`
}
