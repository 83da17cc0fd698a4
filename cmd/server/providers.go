package main

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mert-chat/internal/config"
	"mert-chat/internal/domain/chat"
	"mert-chat/internal/domain/conversation"
	domainratelimit "mert-chat/internal/domain/ratelimit"
	"mert-chat/internal/domain/user"
	"mert-chat/internal/infrastructure/auth"
	"mert-chat/internal/infrastructure/crontab"
	"mert-chat/internal/infrastructure/database"
	"mert-chat/internal/infrastructure/inference"
	"mert-chat/internal/infrastructure/lock"
	"mert-chat/internal/infrastructure/ratelimit"
	"mert-chat/internal/infrastructure/redisclient"
	"mert-chat/internal/interfaces/httpserver"
	"mert-chat/internal/interfaces/httpserver/middlewares"
	"mert-chat/internal/utils/httpclients"
	"mert-chat/pkg/telemetry"
)

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, dbCfg database.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := database.Migrate(ctx, db, log); err != nil {
		cleanup()
		return nil, nil, err
	}
	return db, cleanup, nil
}

// newRedisClient returns a nil client when no component needs redis.
func newRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (redis.UniversalClient, func(), error) {
	if !cfg.RedisRequired() {
		return nil, func() {}, nil
	}
	client, err := redisclient.New(ctx, cfg.RedisURL, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func newLimiter(selection *ratelimit.Selection) domainratelimit.Limiter {
	return selection.Limiter
}

// newSweeper keeps the interface nil for the redis backend, which expires keys itself.
func newSweeper(selection *ratelimit.Selection) crontab.Sweeper {
	if selection.Memory == nil {
		return nil
	}
	return selection.Memory
}

func newPersona(cfg *config.Config) (chat.Persona, error) {
	file, err := config.LoadPersona(cfg.ChatPersonaFile)
	if err != nil {
		return chat.Persona{}, err
	}
	if file == nil {
		return chat.DefaultPersona(), nil
	}
	return chat.NewPersona(file.Name, file.SystemPrompt), nil
}

func newChatOptions(cfg *config.Config, persona chat.Persona) chat.Options {
	return chat.Options{
		Model:        cfg.ChatModel,
		MaxTokens:    cfg.ChatMaxTokens,
		Temperature:  cfg.ChatTemperature,
		HistoryLimit: cfg.ChatHistoryLimit,
		Persona:      persona,
	}
}

func newGate(cfg *config.Config, limiter domainratelimit.Limiter, log zerolog.Logger) *chat.Gate {
	return chat.NewGate(limiter, log, chat.WithMaxMessageLength(cfg.ChatMaxMessageLength))
}

func newCompletionProvider(cfg *config.Config, log zerolog.Logger) chat.CompletionProvider {
	client := httpclients.NewClient("openai", cfg.OpenAITimeout)
	return inference.NewOpenAIProvider(client, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, log)
}

func newLocker(cfg *config.Config, client redis.UniversalClient, log zerolog.Logger) chat.Locker {
	if !cfg.ConversationLockEnabled || client == nil {
		return chat.NoopLocker{}
	}
	return lock.NewRedsyncLocker(client, cfg.ConversationLockTTL, log)
}

func newSanitizer(cfg *config.Config) *telemetry.Sanitizer {
	salt := cfg.LogPIISalt
	if strings.TrimSpace(salt) == "" {
		salt = cfg.ServiceName
	}
	return telemetry.NewSanitizer(telemetry.PIILevel(cfg.LogPIILevel), salt)
}

func newChatService(
	gate *chat.Gate,
	repo conversation.Repository,
	provider chat.CompletionProvider,
	opts chat.Options,
	locker chat.Locker,
	sanitizer *telemetry.Sanitizer,
	log zerolog.Logger,
) *chat.Service {
	return chat.NewService(gate, repo, provider, opts, log, chat.WithLocker(locker), chat.WithSanitizer(sanitizer))
}

// newTokenValidator returns a nil validator when bearer auth is disabled.
func newTokenValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (middlewares.TokenValidator, error) {
	if !cfg.AuthEnabled {
		log.Warn().Msg("bearer authentication disabled")
		return nil, nil
	}
	validator, err := auth.NewJWTValidator(ctx, cfg.AuthJWKSURL, cfg.AuthIssuer, cfg.AuthAudience,
		cfg.AuthJWKSRefresh, cfg.AuthClockSkew, log)
	if err != nil {
		return nil, err
	}
	return validator, nil
}

func newAuthenticator(cfg *config.Config, validator middlewares.TokenValidator, users *user.Service, log zerolog.Logger) (*middlewares.Authenticator, error) {
	return middlewares.NewAuthenticator(validator, users, cfg.AuthTrustGatewayHeaders, log)
}

var errSigningKeysNotLoaded = errors.New("jwks signing keys not loaded")

// keyReadiness is implemented by validators that fetch signing keys in the background.
type keyReadiness interface {
	Ready() bool
}

// newReadinessProbe checks the database and, when bearer auth is on, the JWKS cache.
func newReadinessProbe(db *gorm.DB, validator middlewares.TokenValidator) httpserver.ReadinessProbe {
	keys, _ := validator.(keyReadiness)
	return func(ctx context.Context) error {
		if err := database.Ping(ctx, db); err != nil {
			return err
		}
		if keys != nil && !keys.Ready() {
			return errSigningKeysNotLoaded
		}
		return nil
	}
}
