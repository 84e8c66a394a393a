// Package main runs the locomotion playground: a character on a floor with a
// few platforms, driven by keyboard and pointer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/config"
	"github.com/Faultbox/strider/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, path, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Strider Playground ===", zap.String("config", path))
	logger.Sugar.Debugf("Config: %+v", cfg)

	p, err := newPlayground(cfg, path)
	if err != nil {
		logger.Error("failed to start playground", zap.Error(err))
		os.Exit(1)
	}
	defer p.Close()

	if err := p.Run(); err != nil {
		logger.Error("playground error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("playground closed normally")
}
