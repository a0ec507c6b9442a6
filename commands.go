package main

import (
	"context"
	"fmt"

	"github.com/DrDelphi/LotteryBot/bot"
	"github.com/DrDelphi/LotteryBot/config"
	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/network"
	"github.com/DrDelphi/LotteryBot/utils"
	"github.com/DrDelphi/LotteryBot/wallet"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var (
	offsetFlag = cli.IntFlag{
		Name:  "offset",
		Value: 1,
		Usage: "Rounds to skip below the running one",
	}
	limitFlag = cli.IntFlag{
		Name:  "limit",
		Value: 10,
		Usage: "Number of rounds to show",
	}

	commandBot = cli.Command{
		Name:   "bot",
		Usage:  "Run the telegram bot",
		Action: runBot,
	}
	commandStatus = cli.Command{
		Name:   "status",
		Usage:  "Show the running lottery",
		Action: runStatus,
	}
	commandHistory = cli.Command{
		Name:   "history",
		Usage:  "Show the winners of past rounds",
		Flags:  []cli.Flag{offsetFlag, limitFlag},
		Action: runHistory,
	}
	commandEnter = cli.Command{
		Name:   "enter",
		Usage:  "Enter the running lottery with the configured wallet",
		Action: actionCommand(lottery.ActionEnter),
	}
	commandPickWinner = cli.Command{
		Name:   "pick-winner",
		Usage:  "Pick the winner of the running lottery (contract owner only)",
		Action: actionCommand(lottery.ActionPickWinner),
	}
	commandPayWinner = cli.Command{
		Name:   "pay-winner",
		Usage:  "Pay the pot to the picked winner (contract owner only)",
		Action: actionCommand(lottery.ActionPayWinner),
	}
)

// lotteryApp - what every command needs
type lotteryApp struct {
	cfg    *data.AppConfig
	dial   lottery.Dialer
	reader lottery.Contract
	mirror *lottery.Mirror
}

func newApp(ctx context.Context, c *cli.Context) (*lotteryApp, error) {
	cfg, err := config.NewConfig(c.GlobalString(configFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "can not load config")
	}

	dial := network.NewDialer(cfg)
	reader, err := dial(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "can not reach the contract")
	}

	mirror, err := lottery.NewMirror(lottery.MirrorConfig{
		HistoryCacheSize:   cfg.Lottery.HistoryCacheSize,
		HistoryConcurrency: cfg.Lottery.HistoryConcurrency,
	})
	if err != nil {
		return nil, err
	}

	return &lotteryApp{
		cfg:    cfg,
		dial:   dial,
		reader: reader,
		mirror: mirror,
	}, nil
}

func runBot(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, c)
	if err != nil {
		return err
	}

	b, err := bot.NewBot(a.cfg, a.dial, a.reader, a.mirror)
	if err != nil {
		return err
	}
	b.StartTasks(ctx)
	log.Info("bot started", "network", a.cfg.Network.Kind, "contract", a.cfg.ContractAddress)

	<-ctx.Done()
	log.Info("bot stopping")

	return nil
}

func runStatus(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, c)
	if err != nil {
		return err
	}

	if err = a.mirror.Refresh(ctx, a.reader); err != nil {
		return err
	}
	view := a.mirror.Snapshot()
	symbol := a.cfg.Network.Symbol

	fmt.Printf("Contract:  %s\n", a.cfg.ContractAddress)
	if owned, ok := a.reader.(interface {
		Owner(ctx context.Context) (string, error)
	}); ok {
		if owner, err := owned.Owner(ctx); err == nil {
			fmt.Printf("Owner:     %s\n", owner)
		}
	}
	fmt.Printf("Lottery:   #%d\n", view.LotteryID)
	fmt.Printf("Pot:       %s %s\n", view.PotString(), symbol)
	fmt.Printf("Players:   %d\n", len(view.Players))
	for i, player := range view.Players {
		fmt.Printf("  %3d. %s\n", i+1, player)
	}
	history := view.DisplayHistory()
	if len(history) > 0 {
		fmt.Println("Winners:")
		printHistory(history)
	}

	return nil
}

func runHistory(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, c)
	if err != nil {
		return err
	}

	currentID, err := a.reader.LotteryID(ctx)
	if err != nil {
		return err
	}

	entries, err := a.mirror.HistoryPage(ctx, a.reader, currentID, c.Int(offsetFlag.Name), c.Int(limitFlag.Name))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No winners yet")
		return nil
	}
	printHistory(entries)

	return nil
}

func printHistory(entries []data.HistoryEntry) {
	for _, entry := range entries {
		winner := entry.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("  #%-5d %s\n", entry.ID, winner)
	}
}

func actionCommand(action lottery.Action) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		sigCtx, stop := signalContext()
		defer stop()
		ctx, cancel := callContext(sigCtx)
		defer cancel()

		a, err := newApp(ctx, c)
		if err != nil {
			return err
		}

		var approver wallet.Approver = wallet.AutoApprove{}
		if !c.GlobalBool(yesFlag.Name) {
			approver = wallet.PromptApprover{Decimals: a.reader.Decimals(), Symbol: a.cfg.Network.Symbol}
		}

		provider, err := wallet.NewProvider(a.cfg, 0, approver)
		if err != nil {
			return err
		}
		if closer, ok := provider.(interface{ Close() }); ok {
			defer closer.Close()
		}

		entryValue, err := utils.ToBaseUnits(a.cfg.Lottery.EntryValue, a.reader.Decimals())
		if err != nil {
			return err
		}
		handlers := lottery.NewHandlers(a.mirror, lottery.ActionConfig{
			EntryValue: entryValue,
			GasLimit:   a.cfg.Lottery.GasLimit,
		})

		s, err := handlers.Connect(ctx, provider, a.dial)
		if err != nil {
			return err
		}
		defer s.Close()
		fmt.Println(handlers.Feedback().Success)

		switch action {
		case lottery.ActionEnter:
			err = handlers.Enter(ctx, s)
		case lottery.ActionPickWinner:
			err = handlers.PickWinner(ctx, s)
		case lottery.ActionPayWinner:
			err = handlers.PayWinner(ctx, s)
		}
		if err != nil {
			return err
		}
		fmt.Println(handlers.Feedback().Success)

		return nil
	}
}
