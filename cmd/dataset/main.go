package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MattRWallace/NHLPredictor/internal/app"
	"github.com/MattRWallace/NHLPredictor/internal/domain/dataset"
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

	matrix, result, err := application.Summarizer.Summarize(ctx)
	if err != nil {
		logger.Error("summarize failed", "error", err)
		application.Close()
		os.Exit(1)
	}

	output := application.Config.DatasetOutput
	var w io.Writer = os.Stdout
	if output != "" && output != "-" {
		file, err := os.Create(output)
		if err != nil {
			logger.Error("create dataset output", "path", output, "error", err)
			application.Close()
			os.Exit(1)
		}
		defer func() { _ = file.Close() }()
		w = file
	}

	if err := dataset.WriteCSV(w, matrix); err != nil {
		logger.Error("write dataset", "path", output, "error", err)
		application.Close()
		os.Exit(1)
	}

	logger.Info("dataset written",
		"path", output,
		"rows", result.Rows,
		"one_sided_games", result.OneSidedGames,
		"unlabeled_games", result.UnlabeledGames,
	)
}
