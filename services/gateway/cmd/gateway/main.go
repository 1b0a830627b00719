package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"flexfit/internal/util"
	"flexfit/services/gateway/internal/config"
	"flexfit/services/gateway/internal/server"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.InitLogger(cfg.LogLevel)

	httpServer, err := server.New(server.Config{
		UserServiceURL:             cfg.UserServiceURL,
		PlanServiceURL:             cfg.PlanServiceURL,
		TTSServiceURL:              cfg.TTSServiceURL,
		RedisAddr:                  cfg.RedisAddr,
		RedisPassword:              cfg.RedisPassword,
		RegisterRateLimitPerMinute: cfg.RegisterRateLimitPerMinute,
		LoginRateLimitPerMinute:    cfg.LoginRateLimitPerMinute,
	})
	if err != nil {
		logger.Error("failed to init gateway", "err", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("gateway listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
