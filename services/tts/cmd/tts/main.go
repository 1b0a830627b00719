package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"flexfit/internal/util"
	"flexfit/pkg/storage"
	"flexfit/services/tts/internal/app"
	"flexfit/services/tts/internal/config"
	"flexfit/services/tts/internal/server"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.InitLogger(cfg.LogLevel)

	ctx := context.Background()
	synth, err := app.NewGoogleSynthesizer(ctx, cfg.GoogleCredentialsFile)
	if err != nil {
		logger.Error("failed to init synthesizer", "err", err)
		os.Exit(1)
	}

	var audioStore storage.ObjectStore
	if cfg.Minio.Endpoint != "" {
		audioStore, err = storage.NewMinioStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			logger.Error("failed to init audio store", "err", err)
			os.Exit(1)
		}
	}

	appCore, err := app.New(app.Config{
		Synthesizer:     synth,
		AudioStore:      audioStore,
		DefaultVoice:    cfg.DefaultVoice,
		DefaultLanguage: cfg.DefaultLanguage,
	})
	if err != nil {
		logger.Error("failed to init app", "err", err)
		os.Exit(1)
	}

	httpServer := server.New(server.Config{App: appCore})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("tts server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
