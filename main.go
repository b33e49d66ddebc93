package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lguibr/messagetask/logging"
	"github.com/lguibr/messagetask/player"
	"github.com/lguibr/messagetask/render"
	"github.com/lguibr/messagetask/utils"
	"github.com/rs/zerolog"
)

func main() {
	logger := logging.New(logging.ProfileRuntime)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("configuration rejected")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	result, err := player.Play(ctx, cfg, logger)
	stop()

	if logger.GetLevel() <= zerolog.DebugLevel {
		logger.Debug().Msg("transcript\n" + render.Transcript(result.Transcript))
	}
	fmt.Print(render.Summary(result))

	if err != nil {
		logger.Error().Err(err).Msg("exchange failed")
		os.Exit(1)
	}
}

func loadConfig() (utils.Config, error) {
	path := os.Getenv(utils.EnvConfigPath)
	if path == "" {
		return utils.DefaultConfig(), nil
	}
	return utils.LoadConfig(path)
}
