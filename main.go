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

	"github.com/gin-gonic/gin"
	"github.com/homeworkbot/bot"
	"github.com/homeworkbot/config"
	"github.com/homeworkbot/database"
	"github.com/homeworkbot/handlers"
	"github.com/homeworkbot/logger"
	"github.com/homeworkbot/practicum"
	"github.com/homeworkbot/service"
	"github.com/homeworkbot/storage"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	botCfg, err := config.LoadEnvCfg(".env")
	if err != nil {
		log.Fatal(err)
	}

	appLogger, err := logger.NewLogger(botCfg.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer appLogger.Sync()

	if err := botCfg.Validate(); err != nil {
		appLogger.Fatalw("required environment variables are not set, stopping", "error", err)
	}

	botAPI, err := bot.NewBot(botCfg, appLogger.Named("bot"))
	if err != nil {
		appLogger.Fatalw("failed to create telegram bot", "error", err)
	}

	var journal storage.Journal = storage.Nop{}
	if botCfg.ConnString != "" {
		pool, err := database.GetPool(ctx, botCfg, appLogger)
		if err != nil {
			appLogger.Fatalw("failed to open notification journal", "error", err)
		}
		defer pool.Close()

		botStorage := storage.NewBotStorage(pool, appLogger)
		if err := botStorage.Migrate(ctx); err != nil {
			appLogger.Fatalw("failed to prepare notification journal", "error", err)
		}
		journal = botStorage
	}

	notifier := bot.NewNotifier(botAPI, botCfg.TelegramChatID, journal, appLogger)

	client := practicum.NewClient(practicum.ClientConfig{
		Endpoint: botCfg.Endpoint,
		Token:    botCfg.PracticumToken,
		Timeout:  botCfg.HTTPTimeout,
	}, appLogger)

	svc := service.NewService(client, notifier, service.Options{
		RetryPeriod:  botCfg.RetryPeriod,
		ReportErrors: botCfg.ReportErrors,
	}, appLogger)

	if botCfg.HTTPAddr != "" {
		go serveStatus(ctx, botCfg, svc, appLogger)
	}

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Errorw("poll loop stopped", "error", err)
	}
	appLogger.Info("shutting down")
}

func serveStatus(ctx context.Context, cfg *config.Config, svc *service.Service, logger *zap.SugaredLogger) {
	logger = logger.Named("http")
	if !cfg.BotEnv {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handlers.NewRouter(handlers.NewBotHandler(svc, cfg.RetryPeriod)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("status server shutdown: %v", err)
		}
	}()

	logger.Infof("status server listening on %v", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("status server: %v", err)
	}
}
