//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"mert-chat/internal/config"
	"mert-chat/internal/domain/chat"
	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/domain/user"
	"mert-chat/internal/infrastructure/crontab"
	"mert-chat/internal/infrastructure/ratelimit"
	"mert-chat/internal/infrastructure/repository/conversationrepo"
	"mert-chat/internal/infrastructure/repository/userrepo"
	"mert-chat/internal/interfaces/httpserver"
	"mert-chat/internal/interfaces/httpserver/handlers"
)

var infrastructureSet = wire.NewSet(
	newDatabaseConfig,
	newGormDB,
	newRedisClient,
	ratelimit.New,
	newLimiter,
	newSweeper,
	newCompletionProvider,
	newLocker,
	newSanitizer,
	conversationrepo.NewPostgresRepository,
	wire.Bind(new(conversation.Repository), new(*conversationrepo.PostgresRepository)),
	userrepo.NewPostgresRepository,
	wire.Bind(new(user.Repository), new(*userrepo.PostgresRepository)),
	crontab.NewCrontab,
)

var domainSet = wire.NewSet(
	newPersona,
	newChatOptions,
	newGate,
	newChatService,
	conversation.NewService,
	user.NewService,
)

var interfacesSet = wire.NewSet(
	newTokenValidator,
	newAuthenticator,
	newReadinessProbe,
	wire.Bind(new(handlers.ChatSender), new(*chat.Service)),
	wire.Bind(new(handlers.ProfileService), new(*user.Service)),
	handlers.NewProvider,
	httpserver.New,
)

// BuildApplication assembles the chat service with Wire.
func BuildApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		interfacesSet,
		NewApplication,
	)
	return nil, nil, nil
}
