package main

import (
	"fmt"
	"os"

	"github.com/wangdage1949/WIF500-Lottery/internal/app"
	"github.com/wangdage1949/WIF500-Lottery/internal/config"
	"github.com/wangdage1949/WIF500-Lottery/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// Configuration failures happen before the log file path is known, so
	// they go through a stderr logger.
	bootLog := logger.NewLogger("wifrecover")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		bootLog.Error().Err(err).Msg("configuration error")
		os.Exit(1)
	}

	log := logger.NewFileLogger("wifrecover", cfg.Log.File)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("init error")
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(a.Run())
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
