package connection

import (
	"context"
	"fmt"

	"personalhub/controller/common"
	"personalhub/services"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds the opened resources shared by the server and the commands.
type App struct {
	Config *Config
	Deps   *common.Deps
	Redis  *redis.Client

	closers []func() error
}

// NewApp opens the database, redis and blob store and wires every service.
func NewApp(ctx context.Context, cfg *Config) (*App, error) {
	app := &App{Config: cfg}

	db, err := OpenDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, func() error { return CloseDatabase(db) })

	rdb, err := OpenRedis(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, err
	}
	if rdb != nil {
		app.Redis = rdb
		app.closers = append(app.closers, rdb.Close)
	}

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		app.Close()
		return nil, err
	}
	if gcs, ok := store.(*services.GCSStore); ok {
		app.closers = append(app.closers, gcs.Close)
	}

	hub := services.NewNotificationHub()
	if rdb != nil {
		hub.UseRedis(rdb, cfg.Redis.Channel)
	}
	sinks := []services.NotificationSink{hub}
	if cfg.Telegram.Enabled {
		tg, err := services.NewTelegramNotifier(cfg.Telegram.Token, db)
		if err != nil {
			// notifications still work without telegram
			logrus.WithError(err).Warn("telegram notifications disabled")
		} else {
			sinks = append(sinks, tg)
		}
	}

	app.Deps = &common.Deps{
		DB: db,
		Tokens: services.NewTokenService(db, services.TokenConfig{
			AccessSecret:  cfg.JWT.AccessSecret,
			RefreshSecret: cfg.JWT.RefreshSecret,
			AccessTTL:     cfg.JWT.AccessTTL,
			RefreshTTL:    cfg.JWT.RefreshTTL,
			Issuer:        cfg.JWT.Issuer,
		}),
		Users:         services.NewUserService(db),
		Streaks:       services.NewStreakService(db),
		Notifications: services.NewNotificationService(db, sinks...),
		Hub:           hub,
		AI: services.NewAIService(services.AIConfig{
			APIKey:      cfg.AI.APIKey,
			BaseURL:     cfg.AI.BaseURL,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
		}),
		Store: store,
		Mailer: services.NewEmailService(services.EmailConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			From:      cfg.SMTP.From,
			ContactTo: cfg.SMTP.ContactTo,
		}),
		Captcha: services.NewCaptchaService(services.CaptchaConfig{
			Enabled:         cfg.Recaptcha.Enabled,
			ProjectID:       cfg.Recaptcha.ProjectID,
			SiteKey:         cfg.Recaptcha.SiteKey,
			CredentialsFile: cfg.Recaptcha.CredentialsFile,
			MinScore:        cfg.Recaptcha.MinScore,
		}),
		MediaPrefix:  cfg.Storage.MediaPrefix,
		StaticPrefix: cfg.Storage.StaticPrefix,
	}
	return app, nil
}

func openStore(ctx context.Context, cfg StorageConfig) (services.BlobStore, error) {
	switch cfg.Backend {
	case "gcs":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("storage.bucket is required for the gcs backend")
		}
		return services.NewGCSStore(ctx, cfg.Bucket, cfg.CredentialsFile, cfg.BaseURL)
	case "local", "":
		return services.NewLocalStore(cfg.LocalDir, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// Close releases everything NewApp opened, in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logrus.WithError(err).Warn("close failed")
		}
	}
	a.closers = nil
}
