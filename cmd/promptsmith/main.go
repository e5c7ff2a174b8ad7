// Command promptsmith turns a job position and a task description into a
// ready-to-use AI prompt and a recommended free AI tool.
//
// Usage:
//
//	GEMINI_API_KEY=AIza... promptsmith [flags]
//	promptsmith -serve [flags]
//
// Flags:
//
//	-config string     Path to config file (default: ~/.config/promptsmith/config.yaml)
//	-model string      Gemini model ID (default: gemini-2.5-flash)
//	-addr string       Listen address for -serve (default: :8080)
//	-log-level string  Log level: debug, info, warn, error
//	-log-file string   Write TUI logs to this file (TUI logs are discarded otherwise)
//	-serve             Serve the browser front end instead of the TUI
//	-api-key string    API key for the TUI session (overrides GEMINI_API_KEY)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/promptsmith"
	bt "github.com/fwojciec/promptsmith/bubbletea"
	"github.com/fwojciec/promptsmith/gemini"
	"github.com/fwojciec/promptsmith/server"
	pyaml "github.com/fwojciec/promptsmith/yaml"
	pzap "github.com/fwojciec/promptsmith/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "promptsmith: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	defaultConfig, _ := pyaml.DefaultPath()
	var opts options
	flag.StringVar(&opts.configPath, "config", defaultConfig, "Path to config file")
	flag.StringVar(&opts.model, "model", "", "Gemini model ID")
	flag.StringVar(&opts.addr, "addr", "", "Listen address for -serve")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&opts.logFile, "log-file", "", "Write TUI logs to this file")
	flag.BoolVar(&opts.serve, "serve", false, "Serve the browser front end instead of the TUI")
	flag.StringVar(&opts.apiKey, "api-key", "", "API key for the TUI session (overrides GEMINI_API_KEY)")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			opts.configExplicit = true
		}
	})

	s, err := resolveConfig(opts, environment{
		model:    os.Getenv("PROMPTSMITH_MODEL"),
		addr:     os.Getenv("PROMPTSMITH_ADDR"),
		logLevel: os.Getenv("LOG_LEVEL"),
		apiKey:   os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return err
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logOut, closeLog, err := logOutput(s)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := pzap.NewLogger(s.cfg.LogLevel, logOut)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := gemini.New(gemini.WithModel(s.cfg.Model), gemini.WithBaseURL(s.cfg.BaseURL))
	svc := promptsmith.NewService(pzap.NewGenerator(client, logger, client.Model()))

	if s.serve {
		return serve(ctx, s.cfg, svc, logger)
	}

	keys := promptsmith.NewKeyring()
	keys.Set(s.apiKey)
	m := bt.New(svc.Generate, keys, s.cfg.Positions, promptsmith.DefaultTheme())
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// logOutput picks the log destination. The TUI owns stdout, so it logs to
// -log-file or nowhere.
func logOutput(s settings) (io.Writer, func(), error) {
	if s.serve {
		return os.Stdout, func() {}, nil
	}
	if s.logFile == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(s.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func serve(ctx context.Context, cfg promptsmith.Config, svc *promptsmith.Service, logger *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	handler := server.New(svc.Generate, logger, cfg.Positions, server.WithRateLimit(cfg.RateLimit))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server exited")
	return nil
}
