package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"docbrief/api/handlers"
	"docbrief/api/routes"
	"docbrief/config"
	"docbrief/internal/extract"
	"docbrief/internal/service/summary"
	"docbrief/internal/summarize"
	"docbrief/internal/upload"
	"docbrief/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	outputs := []string{"stdout"}
	if cfg.Log.File != "" {
		outputs = append(outputs, cfg.Log.File)
	}
	log, err := logger.NewLogger(
		logger.WithLevel(cfg.Log.Level),
		logger.WithEncoding(cfg.Log.Encoding),
		logger.WithOutputPaths(outputs),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	extractor, err := extract.New(ctx, extract.Options{
		Backend:            cfg.Extract.Backend,
		PageLimit:          cfg.Extract.PageLimit,
		MinTextChars:       cfg.Extract.MinTextChars,
		PageWorkers:        cfg.Extract.PageWorkers,
		OCRBackend:         cfg.OCR.Backend,
		OCRLanguages:       cfg.OCR.Languages,
		OCRDPI:             cfg.OCR.DPI,
		AWSRegion:          cfg.OCR.AWS.Region,
		AWSAccessKeyID:     cfg.OCR.AWS.AccessKeyID,
		AWSSecretAccessKey: cfg.OCR.AWS.SecretAccessKey,
	}, log)
	if err != nil {
		log.Fatal("failed to build extractor", logger.Error(err))
	}

	summarizer, err := summarize.New(ctx, summarize.Options{
		Provider:       cfg.Summarize.Provider,
		Concurrency:    cfg.Summarize.Concurrency,
		MaxAttempts:    cfg.Summarize.MaxAttempts,
		BaseDelay:      cfg.Summarize.RetryBaseDelay,
		MaxDelay:       cfg.Summarize.RetryMaxDelay,
		OpenAIKey:      cfg.Summarize.OpenAI.APIKey,
		OpenAIModel:    cfg.Summarize.OpenAI.Model,
		AnthropicKey:   cfg.Summarize.Anthropic.APIKey,
		AnthropicModel: cfg.Summarize.Anthropic.Model,
		GeminiKey:      cfg.Summarize.Gemini.APIKey,
		GeminiModel:    cfg.Summarize.Gemini.Model,
		OllamaEndpoint: cfg.Summarize.Ollama.Endpoint,
		OllamaModel:    cfg.Summarize.Ollama.Model,
	}, log)
	if err != nil {
		log.Fatal("failed to build summarizer", logger.Error(err))
	}

	validator := upload.NewValidator(log, cfg.Upload.MaxBytes)

	svc := summary.NewService(validator, extractor, summarizer, log, &summary.ServiceConfig{
		ChunkSize:        cfg.Chunk.Size,
		DefaultWordLimit: cfg.Summarize.WordLimit,
		Provider:         cfg.Summarize.Provider,
		RequestTimeout:   cfg.Server.RequestTimeout,
	})

	h := handlers.NewHandlers(svc, cfg.Summarize.WordLimit, log)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, h, cfg.Server.CORSOrigins, log)

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: r,
	}

	go func() {
		log.Info("server starting",
			logger.String("addr", srv.Addr),
			logger.String("extractor", cfg.Extract.Backend),
			logger.String("ocr", cfg.OCR.Backend),
			logger.String("provider", cfg.Summarize.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", logger.Error(err))
	}
}
