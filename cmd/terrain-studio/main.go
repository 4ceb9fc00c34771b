// Package main is the entry point for the ImGui terrain studio.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/heightforge/internal/config"
	"github.com/Faultbox/heightforge/internal/logger"
	"github.com/Faultbox/heightforge/internal/studio"
)

func init() {
	// SDL and GL must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Terrain Studio ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	s, err := studio.New(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to start studio", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	s.Run()
	s.Close()

	logger.Info("studio closed normally")
}
