package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vocalcart/config"
	"vocalcart/internal/application"
	"vocalcart/internal/domain"
	"vocalcart/internal/infra/anthropic"
	"vocalcart/internal/infra/audio"
	"vocalcart/internal/infra/gemini"
	"vocalcart/internal/infra/prefs"
	"vocalcart/internal/infra/storage"
	"vocalcart/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("loading .env", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	preferences := prefs.NewFileStore(cfg.Preferences.Path)
	saved, err := preferences.Load()
	if err != nil {
		logger.Warn("loading preferences", "error", err)
	}
	lang := domain.ResolveLanguage(string(saved), cfg.Preferences.Language, os.Getenv("LANG"))

	var geminiClient *gemini.Client
	if cfg.Gemini.APIKey != "" {
		models := gemini.Models{
			Text:  cfg.Gemini.TextModel,
			Image: cfg.Gemini.ImageModel,
			TTS:   cfg.Gemini.TTSModel,
			Voice: cfg.Gemini.Voice,
		}
		if cfg.Gemini.BaseURL != "" {
			geminiClient = gemini.NewClientWithURL(cfg.Gemini.APIKey, models, cfg.Gemini.BaseURL)
		} else {
			geminiClient = gemini.NewClient(cfg.Gemini.APIKey, models)
		}
	}

	interpreter := createInterpreter(cfg, geminiClient, logger)

	var images application.ImageGenerator = &application.NoopImages{}
	var speech application.SpeechSynthesizer = &application.NoopSpeech{}
	if geminiClient != nil {
		images = geminiClient
		speech = geminiClient
	} else {
		logger.Warn("gemini api key not set, images and speech disabled")
	}

	publisher := createPublisher(ctx, cfg.Storage, logger)
	player := createPlayer(cfg.Audio, logger)

	engine := application.NewEngine(
		application.NewStore(preferences, lang),
		interpreter,
		images,
		publisher,
		speech,
		player,
		application.TimerScheduler{},
		loadTiming(cfg.Timing, logger),
		logger,
	)

	rateWindow, err := config.Duration(cfg.Server.RateWindow, time.Minute)
	if err != nil {
		logger.Warn("invalid rate window, using default", "error", err)
	}

	server := web.New(engine, web.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthToken:      cfg.Server.AuthToken,
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     rateWindow,
		AccessLog:      cfg.Server.AccessLog,
	}, logger)

	logger.Info("starting vocalcart",
		"addr", cfg.Server.Addr,
		"intent_provider", cfg.Intent.Provider,
		"audio_output", player.Name(),
		"language", lang,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutting down server", "error", err)
	}
	engine.Wait()
}

func createInterpreter(cfg *config.Config, geminiClient *gemini.Client, logger *slog.Logger) application.IntentInterpreter {
	switch cfg.Intent.Provider {
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			logger.Warn("anthropic api key not set")
		}
		return anthropic.NewClaudeClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	default:
		if geminiClient == nil {
			logger.Warn("gemini api key not set, commands will not be understood")
			return gemini.NewClient("", gemini.Models{})
		}
		return geminiClient
	}
}

func createPublisher(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) application.ImagePublisher {
	if !cfg.Enabled {
		return &application.DataURIPublisher{}
	}

	expiry, err := config.Duration(cfg.URLExpiry, 24*time.Hour)
	if err != nil {
		logger.Warn("invalid url expiry, using default", "error", err)
	}

	store, err := storage.NewImageStore(storage.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		UseSSL:    cfg.UseSSL,
		URLExpiry: expiry,
	})
	if err != nil {
		logger.Warn("creating image store, using inline images", "error", err)
		return &application.DataURIPublisher{}
	}

	if err := store.EnsureBucket(ctx); err != nil {
		logger.Warn("preparing image bucket, using inline images", "bucket", cfg.Bucket, "error", err)
		return &application.DataURIPublisher{}
	}

	logger.Info("storing item images in object storage", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return store
}

func createPlayer(cfg config.AudioConfig, logger *slog.Logger) application.AudioPlayer {
	output, err := audio.NewOutput(cfg.Output, logger)
	if err != nil {
		logger.Warn("audio output unavailable, speech muted", "output", cfg.Output, "error", err)
		return &application.NoopPlayer{}
	}
	speaker, err := audio.NewSpeaker(output, application.SpeechAudioFormat(), logger)
	if err != nil {
		logger.Warn("speech format not playable, speech muted", "error", err)
		return &application.NoopPlayer{}
	}
	return speaker
}

func loadTiming(cfg config.TimingConfig, logger *slog.Logger) application.Timing {
	defaults := application.DefaultTiming()
	timing := defaults

	fields := []struct {
		name     string
		value    string
		fallback time.Duration
		target   *time.Duration
	}{
		{"removal_delay", cfg.RemovalDelay, defaults.RemovalDelay, &timing.RemovalDelay},
		{"feedback_delay", cfg.FeedbackDelay, defaults.FeedbackDelay, &timing.FeedbackDelay},
		{"highlight_delay", cfg.HighlightDelay, defaults.HighlightDelay, &timing.HighlightDelay},
		{"error_dismiss", cfg.ErrorDismiss, defaults.ErrorDismiss, &timing.ErrorDismiss},
	}
	for _, f := range fields {
		d, err := config.Duration(f.value, f.fallback)
		if err != nil {
			logger.Warn("invalid timing, using default", "setting", f.name, "error", err)
		}
		*f.target = d
	}

	return timing
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
