// Package main is the sunset viewer: a mirror water plane under an
// atmospheric sky, rendered with OpenGL.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tidemirror/internal/config"
	"github.com/Faultbox/tidemirror/internal/logger"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	screenshots := flag.String("screenshots", "screenshots", "Directory for F12 captures")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Tidemirror sunset ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := newApp(cfg, flags, *screenshots)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("render loop failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
