package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DrDelphi/LotteryBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/rcrowley/go-metrics"
	"github.com/urfave/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = logger.GetOrCreate("main")

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Value: utils.DefaultConfigPath,
		Usage: "Path of the json or toml configuration file",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Value: "*:INFO",
		Usage: "Log level pattern, for example *:INFO,network:DEBUG",
	}
	logFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "Also write the logs into this file, rotated at 100MB",
	}
	metricsIntervalFlag = cli.DurationFlag{
		Name:  "metrics-interval",
		Usage: "Log the collected metrics with this period, 0 disables it",
	}
	yesFlag = cli.BoolFlag{
		Name:  "yes",
		Usage: "Sign transactions without asking for confirmation",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "LotteryBot"
	app.Usage = "Play an on-chain lottery from telegram or from the command line"
	app.Version = "v1.0.0"
	app.Flags = []cli.Flag{
		configFlag,
		logLevelFlag,
		logFileFlag,
		metricsIntervalFlag,
		yesFlag,
	}
	app.Commands = []cli.Command{
		commandBot,
		commandStatus,
		commandHistory,
		commandEnter,
		commandPickWinner,
		commandPayWinner,
	}
	app.Before = initLogging

	if err := app.Run(os.Args); err != nil {
		log.Error("lottery bot stopped", "error", err)
		os.Exit(1)
	}
}

func initLogging(c *cli.Context) error {
	if err := logger.SetLogLevel(c.GlobalString(logLevelFlag.Name)); err != nil {
		return err
	}

	if path := c.GlobalString(logFileFlag.Name); path != "" {
		fileLogger := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		}
		if err := logger.AddLogObserver(fileLogger, &logger.PlainFormatter{}); err != nil {
			return err
		}
	}

	if interval := c.GlobalDuration(metricsIntervalFlag.Name); interval > 0 {
		go metrics.Log(metrics.DefaultRegistry, interval, metricsLogger{})
	}

	return nil
}

// metricsLogger forwards the go-metrics report to the application log
type metricsLogger struct{}

func (metricsLogger) Printf(format string, v ...interface{}) {
	log.Info("metrics " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// signalContext is done on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// callContext bounds one command line action
func callContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 5*time.Minute)
}
