package main

import (
	"context"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/legalmitra/legalmitra/internal/domain/auth"
	"github.com/legalmitra/legalmitra/internal/domain/chat"
	"github.com/legalmitra/legalmitra/internal/infra/attachstore"
	"github.com/legalmitra/legalmitra/internal/infra/config"
	"github.com/legalmitra/legalmitra/internal/infra/llm/gemini"
	"github.com/legalmitra/legalmitra/internal/infra/mailer"
	"github.com/legalmitra/legalmitra/internal/infra/replystore"
	"github.com/legalmitra/legalmitra/internal/infra/userrepo"
	"github.com/legalmitra/legalmitra/internal/knowledge"
	"github.com/legalmitra/legalmitra/web"
)

func provideStatic() fs.FS {
	return web.Public()
}

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		Prompt:         cfg.Chat.Prompt,
		MatchThreshold: cfg.Chat.MatchThreshold,
		CacheTTL:       cfg.Chat.CacheTTL,
		TopTrending:    cfg.Chat.TopTrending,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		ResetTokenTTL:   cfg.Auth.ResetTokenTTL,
		FrontendURL:     cfg.Auth.FrontendURL,
	}
}

// provideKnowledgeTable loads the CSV at startup. A load failure leaves the
// table empty so the service can still run on the generative fallback.
func provideKnowledgeTable(cfg *config.Config, logger *slog.Logger) *knowledge.Table {
	table := knowledge.NewTable(cfg.Knowledge.Path, logger)
	if err := table.Reload(); err != nil {
		logger.Error("knowledge table load failed, starting with empty table", "path", cfg.Knowledge.Path, "error", err)
	} else {
		logger.Info("knowledge table loaded", "path", cfg.Knowledge.Path, "entries", table.Len())
	}
	return table
}

// provideGenerator returns nil when no API key is configured; the chat
// service then answers with a canned unavailable reply on table misses.
func provideGenerator(cfg *config.Config, logger *slog.Logger) (chat.Generator, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("no LLM api key configured, generative fallback disabled")
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := gemini.NewClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature)
	if err != nil {
		return nil, err
	}
	logger.Info("generative fallback enabled", "model", cfg.LLM.Model)
	return client, nil
}

func provideUserRepository(cfg *config.Config, logger *slog.Logger) auth.Repository {
	fallback := userrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory user repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory user repository", "error", err)
		return fallback
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory user repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory user repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres user repository enabled")
	return userrepo.NewPostgresRepository(pool)
}

func provideReplyStore(cfg *config.Config, logger *slog.Logger) chat.Store {
	if cfg.Chat.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return replystore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return replystore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("valkey reply store enabled", "addr", cfg.Chat.Valkey.Addr)
			return replystore.NewValkeyStore(client, "chat")
		}
	}
	return replystore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Chat.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Chat.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Chat.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideAttachmentStore(cfg *config.Config, logger *slog.Logger) chat.AttachmentStore {
	if !cfg.S3.Enabled {
		return attachstore.NewMemoryStore()
	}
	store, err := attachstore.NewS3Store(cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Error("failed to initialize s3 attachment store, falling back to memory", "error", err)
		return attachstore.NewMemoryStore()
	}
	logger.Info("s3 attachment store enabled", "bucket", cfg.S3.Bucket)
	return store
}

// provideMailer returns nil when SMTP credentials are missing; the auth
// service then logs reset links instead of sending mail.
func provideMailer(cfg *config.Config, logger *slog.Logger) auth.Mailer {
	mailCfg := mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}
	if !mailCfg.Configured() {
		logger.Info("smtp credentials not set, reset links will be logged")
		return nil
	}
	return mailer.NewSMTPMailer(mailCfg, logger)
}
