package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/utils"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

var (
	cfgPath string
)

// NewConfig - reads the application configuration from the provided path
// (json, or toml for a .toml extension), applies the environment overrides
// and the defaults and returns an AppConfig struct or an error if something
// goes wrong
func NewConfig(configPath string) (*data.AppConfig, error) {
	cfg, err := readFile(configPath)
	if err != nil {
		return nil, err
	}

	if err = env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "can not read environment")
	}

	if err = applyDefaults(cfg); err != nil {
		return nil, err
	}

	cfgPath = configPath

	return cfg, nil
}

// readFile - the configuration as stored on disk, without environment
// overrides or defaults
func readFile(configPath string) (*data.AppConfig, error) {
	bytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &data.AppConfig{}
	if isToml(configPath) {
		err = toml.Unmarshal(bytes, cfg)
	} else {
		err = json.Unmarshal(bytes, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "can not parse %s", configPath)
	}

	return cfg, nil
}

func applyDefaults(cfg *data.AppConfig) error {
	if cfg.Network.Kind == "" {
		cfg.Network.Kind = data.NetworkEvm
	}

	switch cfg.Network.Kind {
	case data.NetworkEvm:
		setDefault(&cfg.Network.Symbol, utils.EvmSymbol)
		setDefault(&cfg.Network.ExplorerAccount, utils.EvmExplorerAccount)
		setDefault(&cfg.Network.ExplorerTransaction, utils.EvmExplorerTransact)
	case data.NetworkElrond:
		setDefault(&cfg.Network.Symbol, utils.ElrondSymbol)
		setDefault(&cfg.Network.ExplorerAccount, utils.ElrondExplorerAccount)
		setDefault(&cfg.Network.ExplorerTransaction, utils.ElrondExplorerTransact)
	default:
		return errors.Errorf("unknown network kind %q", cfg.Network.Kind)
	}

	setDefault(&cfg.Lottery.EntryValue, utils.DefaultEntryValue)
	if cfg.Lottery.RefreshInterval <= 0 {
		cfg.Lottery.RefreshInterval = utils.DefaultRefreshInterval
	}

	return nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func isToml(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Save - stores the values learned at runtime (the group id) into the file
// the configuration was read from. Everything else is kept as it is on disk,
// so environment overrides never end up in the file.
func Save(cfg *data.AppConfig) error {
	stored, err := readFile(cfgPath)
	if err != nil {
		return err
	}
	stored.Bot.GroupID = cfg.Bot.GroupID

	var buf bytes.Buffer
	if isToml(cfgPath) {
		if err = toml.NewEncoder(&buf).Encode(stored); err != nil {
			return err
		}
	} else {
		b, err := json.MarshalIndent(stored, "", "  ")
		if err != nil {
			return err
		}
		buf.Write(b)
	}

	return os.WriteFile(cfgPath, buf.Bytes(), 0644)
}
