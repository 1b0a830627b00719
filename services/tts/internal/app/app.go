package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"flexfit/internal/util"
	"flexfit/pkg/storage"
)

const (
	DefaultVoice    = "en-US-Neural2-F"
	DefaultLanguage = "en-US"
	audioFormat     = "MP3"
	audioURLExpiry  = 24 * time.Hour
)

// ErrSynthesisFailed hides provider detail from clients.
var ErrSynthesisFailed = errors.New("speech synthesis failed")

// Config holds runtime configuration for the core application.
type Config struct {
	Synthesizer     Synthesizer
	AudioStore      storage.ObjectStore
	DefaultVoice    string
	DefaultLanguage string
}

// App synthesizes speech and optionally stores clips for URL-based access.
type App struct {
	tts             Synthesizer
	audio           storage.ObjectStore
	defaultVoice    string
	defaultLanguage string
}

// New constructs the application. AudioStore may be nil, in which case
// generated responses carry only inline audio.
func New(cfg Config) (*App, error) {
	if cfg.Synthesizer == nil {
		return nil, fmt.Errorf("synthesizer required")
	}
	voice := cfg.DefaultVoice
	if voice == "" {
		voice = DefaultVoice
	}
	language := cfg.DefaultLanguage
	if language == "" {
		language = DefaultLanguage
	}
	return &App{
		tts:             cfg.Synthesizer,
		audio:           cfg.AudioStore,
		defaultVoice:    voice,
		defaultLanguage: language,
	}, nil
}

func (a *App) applyDefaults(req SynthesisRequest) SynthesisRequest {
	if req.VoiceName == "" {
		req.VoiceName = a.defaultVoice
	}
	if req.LanguageCode == "" {
		req.LanguageCode = a.defaultLanguage
	}
	if req.SpeakingRate == 0 {
		req.SpeakingRate = 1.0
	}
	return req
}

// Synthesize returns raw MP3 bytes for the text.
func (a *App) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	logger := util.LoggerFromContext(ctx)
	req = a.applyDefaults(req)
	audio, err := a.tts.Synthesize(ctx, req)
	if err != nil {
		logger.Error("synthesis failed", "voice", req.VoiceName, "error", err)
		return nil, ErrSynthesisFailed
	}
	return audio, nil
}

// AudioResult is the JSON shape for generated clips.
type AudioResult struct {
	AudioContent string    `json:"audioContent"`
	AudioURL     string    `json:"audioUrl,omitempty"`
	VoiceName    string    `json:"voiceName"`
	LanguageCode string    `json:"languageCode"`
	AudioFormat  string    `json:"audioFormat"`
	SizeBytes    int       `json:"sizeBytes"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// GenerateAudio synthesizes the text and, when object storage is
// configured, uploads the clip and returns a time-limited URL alongside
// the inline base64 audio.
func (a *App) GenerateAudio(ctx context.Context, req SynthesisRequest) (AudioResult, error) {
	logger := util.LoggerFromContext(ctx)
	req = a.applyDefaults(req)
	audio, err := a.tts.Synthesize(ctx, req)
	if err != nil {
		logger.Error("synthesis failed", "voice", req.VoiceName, "error", err)
		return AudioResult{}, ErrSynthesisFailed
	}
	result := AudioResult{
		AudioContent: base64.StdEncoding.EncodeToString(audio),
		VoiceName:    req.VoiceName,
		LanguageCode: req.LanguageCode,
		AudioFormat:  audioFormat,
		SizeBytes:    len(audio),
		GeneratedAt:  time.Now().UTC(),
	}
	if a.audio != nil {
		key := "tts/" + util.NewID() + ".mp3"
		if err := a.audio.Put(ctx, key, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg"); err != nil {
			// Inline audio still works without the stored copy.
			logger.Warn("audio upload failed", "key", key, "error", err)
			return result, nil
		}
		url, err := a.audio.PresignGet(ctx, key, audioURLExpiry)
		if err != nil {
			logger.Warn("audio presign failed", "key", key, "error", err)
			return result, nil
		}
		result.AudioURL = url
	}
	return result, nil
}

// Voices lists available voices, optionally filtered by language.
func (a *App) Voices(ctx context.Context, languageCode string) ([]Voice, error) {
	voices, err := a.tts.Voices(ctx, languageCode)
	if err != nil {
		util.LoggerFromContext(ctx).Error("list voices failed", "error", err)
		return nil, ErrSynthesisFailed
	}
	return voices, nil
}
