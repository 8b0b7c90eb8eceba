// Command mediaforge runs the generative-media MCP server over stdio or
// streamable HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge/internal/provider/anthropic"
	"github.com/mediaforge/mediaforge/internal/provider/google"
	"github.com/mediaforge/mediaforge/internal/provider/openai"
	"github.com/mediaforge/mediaforge/internal/provider/veo"
	"github.com/mediaforge/mediaforge/internal/web"
	"github.com/mediaforge/mediaforge/mcp"
	"github.com/mediaforge/mediaforge/retry"
	"github.com/mediaforge/mediaforge/storage"
	"github.com/mediaforge/mediaforge/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mediaforge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)

	if cfg.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}

	ctx := context.Background()

	sink, err := buildSink(ctx, cfg, logger)
	if err != nil {
		return err
	}

	svcs, err := buildServices(ctx, cfg, sink, logger)
	if err != nil {
		return err
	}

	switch transport := cfg.NormalizedTransport(); transport {
	case "stdio":
		logger.Info().Msg("serving MCP over stdio")
		return mcp.ServeStdio(svcs)
	case "streamable-http", "http":
		return serveHTTP(cfg, mcp.HTTPHandler(mcp.NewServer(svcs)), logger)
	default:
		return fmt.Errorf("unknown MCP_TRANSPORT %q", transport)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// buildSink selects the storage backend: "local", "gcs", or "auto" (gcs when
// a bucket is configured, local otherwise).
func buildSink(ctx context.Context, cfg *Config, logger zerolog.Logger) (storage.Sink, error) {
	backend := strings.ToLower(cfg.StorageBackend)
	useGCS := backend == "gcs" || (backend == "auto" && cfg.GCSBucket != "")

	if useGCS {
		if cfg.GCSBucket == "" {
			return nil, errors.New("GCS_BUCKET is required for the gcs storage backend")
		}
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		logger.Info().Str("bucket", cfg.GCSBucket).Msg("using GCS storage")
		return storage.NewGCSStore(client, storage.GCSOptions{
			Bucket:     cfg.GCSBucket,
			Prefix:     cfg.GCSPrefix,
			PublicRead: cfg.GCSPublicRead,
		})
	}

	logger.Info().Str("dir", cfg.StaticDir).Msg("using local storage")
	return storage.NewFileStore(cfg.StaticDir, cfg.BaseURL)
}

func buildServices(ctx context.Context, cfg *Config, sink storage.Sink, logger zerolog.Logger) (mcp.Services, error) {
	veoClient, err := veo.NewClient(veo.Options{
		APIKey: cfg.GeminiAPIKey,
		Logger: logger.With().Str("provider", "veo").Logger(),
	})
	if err != nil {
		return mcp.Services{}, err
	}

	googleClient, err := google.New(ctx, cfg.GeminiAPIKey,
		google.WithLogger(logger.With().Str("provider", "google").Logger()))
	if err != nil {
		return mcp.Services{}, fmt.Errorf("google client: %w", err)
	}

	var openaiImages tools.ImageGenerator
	if cfg.OpenAIAPIKey != "" {
		openaiImages = openai.New(cfg.OpenAIAPIKey,
			openai.WithLogger(logger.With().Str("provider", "openai").Logger()))
	}

	var claudeVision tools.VisionAnalyzer
	if cfg.AnthropicAPIKey != "" {
		claudeVision = anthropic.New(cfg.AnthropicAPIKey,
			anthropic.WithLogger(logger.With().Str("provider", "anthropic").Logger()))
	}

	return mcp.Services{
		Video:   tools.NewVideoService(veoClient, sink, nil, nil, logger),
		Image:   tools.NewImageService(googleClient, openaiImages, sink, nil, logger),
		Speech:  tools.NewSpeechService(googleClient, sink, nil, retry.DefaultConfig(), logger),
		Analyze: tools.NewAnalyzeService(googleClient, claudeVision, nil, nil, logger),
	}, nil
}

func serveHTTP(cfg *Config, mcpHandler http.Handler, logger zerolog.Logger) error {
	staticDir := cfg.StaticDir
	if strings.ToLower(cfg.StorageBackend) == "gcs" {
		staticDir = ""
	}

	router := web.NewRouter(web.Options{
		MCP:       mcpHandler,
		StaticDir: staticDir,
		APIKey:    cfg.MCPAPIKey,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("serving MCP over streamable HTTP")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
