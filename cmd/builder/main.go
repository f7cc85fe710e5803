package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MattRWallace/NHLPredictor/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		panic(err)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := application.Logger
	logger.Info("builder starting", "seasons", application.Config.BuilderSeasons, "store", application.Config.StoreDriver)

	result, err := application.Builder.BuildSeasons(ctx, application.Config.BuilderSeasons)
	if err != nil {
		logger.Error("build run failed", "error", err)
		application.Close()
		os.Exit(1)
	}

	logger.Info("builder finished",
		"games_ingested", result.GamesIngested,
		"skater_lines", result.SkaterLinesAppended,
		"goalie_lines", result.GoalieLinesAppended,
		"players_upserted", result.PlayersUpserted,
		"players_deleted", result.PlayersDeleted,
	)
}
