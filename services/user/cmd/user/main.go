package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"flexfit/internal/usertoken"
	"flexfit/internal/util"
	"flexfit/services/user/internal/app"
	"flexfit/services/user/internal/config"
	"flexfit/services/user/internal/server"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.InitLogger(cfg.LogLevel)

	tokenVerifier, err := usertoken.NewVerifier(cfg.JWTSecret, usertoken.DefaultLeeway)
	if err != nil {
		logger.Error("failed to init token verifier", "err", err)
		os.Exit(1)
	}

	appCore, err := app.New(app.Config{
		DatabaseURL: cfg.DatabaseURL,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    usertoken.DefaultTTL,
	})
	if err != nil {
		logger.Error("failed to init app", "err", err)
		os.Exit(1)
	}

	httpServer := server.New(server.Config{
		App:           appCore,
		TokenVerifier: tokenVerifier,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("user server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
