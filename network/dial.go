package network

import (
	"context"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
)

// NewDialer - builds the contract handles of the configured network. The
// provider signs the transactions when it is able to; a nil provider gives a
// read only handle.
func NewDialer(cfg *data.AppConfig) lottery.Dialer {
	return func(ctx context.Context, provider lottery.Provider) (lottery.Contract, error) {
		switch cfg.Network.Kind {
		case data.NetworkEvm, "":
			signer, _ := provider.(EvmSigner)
			c, err := DialEvm(ctx, cfg.Network.Proxy, cfg.ContractAddress, signer)
			if err != nil {
				return nil, err
			}
			return c, nil
		case data.NetworkElrond:
			signer, _ := provider.(ElrondSigner)
			c, err := DialElrond(ctx, cfg, signer)
			if err != nil {
				return nil, err
			}
			return c, nil
		default:
			log.Error("can not dial", "kind", cfg.Network.Kind, "error", errUnknownNetwork)
			return nil, errUnknownNetwork
		}
	}
}
