package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/campushelp/backend/internal/config"
	"github.com/zhouzirui/campushelp/backend/internal/handler"
	botModel "github.com/zhouzirui/campushelp/backend/internal/model/bot"
	"github.com/zhouzirui/campushelp/backend/internal/service/bot"
	"github.com/zhouzirui/campushelp/backend/internal/service/sentiment"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize sentiment probe; a broken backend degrades to "not configured"
	probe, err := sentiment.NewFromConfig(ctx, cfg.Sentiment)
	if err != nil {
		log.Printf("warning: failed to initialize sentiment backend %q: %v", cfg.Sentiment.Provider, err)
		log.Println("continuing without sentiment analysis - 请检查情感分析相关环境变量")
	} else if probe.Configured() {
		log.Printf("Sentiment probe initialized with provider=%s timeout=%s", cfg.Sentiment.Provider, cfg.Sentiment.Timeout)
	} else {
		log.Println("情感分析后端未配置，sentiment 命令将提示未配置")
	}

	profile := botModel.Default(cfg.Bot.ID, cfg.Bot.Name)
	botService := bot.NewService(profile, probe, nil)
	log.Printf("Bot %s (%s) rules: %v", profile.Name, profile.ID, botService.Rules())

	router := handler.NewRouter(botService, cfg.WebSocket)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("CampusHelp backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
