//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/legalmitra/legalmitra/internal/bootstrap"
	"github.com/legalmitra/legalmitra/internal/domain/auth"
	"github.com/legalmitra/legalmitra/internal/domain/chat"
	"github.com/legalmitra/legalmitra/internal/infra/config"
	httpiface "github.com/legalmitra/legalmitra/internal/interface/http"
	"github.com/legalmitra/legalmitra/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChatConfig,
		provideAuthConfig,
		provideKnowledgeTable,
		provideGenerator,
		provideReplyStore,
		provideAttachmentStore,
		provideUserRepository,
		provideMailer,
		provideStatic,
		chat.NewService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
