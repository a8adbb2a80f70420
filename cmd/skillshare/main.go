package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/app"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/config"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/provider"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/repository"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/repository/memory"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type repositories struct {
	users    service.UserRepository
	requests service.SessionRequestRepository
	sessions service.SessionRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("store", cfg.Store), zap.Error(err))
	}
	defer closeStore()

	// Google Calendar: общий лимит запросов и таймаут на каждый вызов
	creds, credsFile := clientCredentials(cfg, logger)
	limiter := rate.NewLimiter(rate.Limit(cfg.Google.RatePerSec), int(cfg.Google.RatePerSec)+1)

	calendar := provider.NewGoogleCalendar(provider.GoogleCalendarOptions{
		ApplicationName: cfg.Google.ApplicationName,
		Timeout:         cfg.Google.Timeout,
		Limiter:         limiter,
	})
	refresher := provider.NewTokenRefresher(creds, "", limiter, cfg.Google.Timeout)

	// Сервисы
	userService := service.NewUserService(repos.users, logger)
	resolver := service.NewCredentialResolver(repos.users, refresher, logger)
	provisioner := service.NewMeetingProvisioner(calendar, resolver, service.MeetingProvisioningOptions{
		Credentials:     creds,
		CredentialsFile: credsFile,
	}, logger)
	sessionService := service.NewSessionService(repos.sessions, repos.users, provisioner, logger)
	requestService := service.NewSessionRequestService(repos.requests, sessionService, logger)

	scheduler := app.NewScheduler(provisioner, cfg.HealthCheckInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_TOKEN is required")
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, userService, requestService, sessionService, provisioner, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Bot commands menu was not set", zap.Error(err))
	}

	logger.Info("Starting skill sharing bot",
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.Store),
		zap.Bool("calendar_configured", creds.Configured()),
	)

	// Блокируется до сигнала завершения
	botController.Start(ctx)

	logger.Info("Shutting down")
}

// openStore открывает PostgreSQL (с миграциями) или in-memory хранилище
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("Using in-memory store, data will be lost on restart")
		return repositories{
			users:    memory.NewUserStore(),
			requests: memory.NewSessionRequestStore(),
			sessions: memory.NewSessionStore(),
		}, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return repositories{}, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return repositories{}, nil, err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		pool.Close()
		return repositories{}, nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return repositories{}, nil, err
	}

	return repositories{
		users:    repository.NewUserRepository(pool),
		requests: repository.NewSessionRequestRepository(pool),
		sessions: repository.NewSessionRepository(pool),
	}, pool.Close, nil
}

// clientCredentials берёт client credentials из файла, а при ошибке из переменных окружения.
// Возвращает путь к файлу, если он был прочитан.
func clientCredentials(cfg *config.Config, logger *zap.Logger) (provider.ClientCredentials, string) {
	if cfg.Google.CredentialsFile != "" {
		creds, err := provider.LoadClientCredentials(cfg.Google.CredentialsFile)
		if err == nil {
			return creds, cfg.Google.CredentialsFile
		}
		logger.Warn("Failed to load Google credentials file, falling back to environment",
			zap.String("path", cfg.Google.CredentialsFile),
			zap.Error(err),
		)
	}

	creds := provider.ClientCredentials{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
	}
	if !creds.Configured() {
		logger.Warn("Google client credentials are not configured, meetings will use placeholder links")
	}
	return creds, ""
}
