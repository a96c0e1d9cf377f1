package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legalmitra/legalmitra/internal/knowledge"
	apperrors "github.com/legalmitra/legalmitra/pkg/errors"
)

// Canned replies for the degraded resolution outcomes.
const (
	replyEmptyMessage  = "Please enter a message."
	replyUnavailable   = "AI service is currently unavailable. Please try again later."
	replyNotUnderstood = "Sorry, I couldn't understand that. Could you rephrase?"

	lawReferenceMarker = "Related Law: "

	audioMessage      = "User sent an audio message."
	fileMessageFormat = "User uploaded a file: %s"
)

// Service turns a user query into a final reply, either from the knowledge
// table or the generative fallback.
type Service interface {
	Resolve(ctx context.Context, req Request) (Response, error)
	Trending(ctx context.Context) ([]TrendingQuery, error)
}

type service struct {
	cfg         Config
	table       *knowledge.Table
	store       Store
	generator   Generator
	attachments AttachmentStore
	logger      *slog.Logger
}

// NewService wires up the chat domain. generator may be nil when no API
// credential is configured; attachments may be nil to discard uploads.
func NewService(cfg Config, table *knowledge.Table, store Store, generator Generator, attachments AttachmentStore, logger *slog.Logger) Service {
	return &service{
		cfg:         cfg,
		table:       table,
		store:       store,
		generator:   generator,
		attachments: attachments,
		logger:      logger.With("component", "chat.service"),
	}
}

// Resolve is stateless per call apart from the shared read-only table and
// the best-effort reply cache; concurrent calls need no coordination.
func (s *service) Resolve(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	switch {
	case req.Audio != nil:
		s.storeAttachment(ctx, req.Audio)
		message = audioMessage
	case req.File != nil:
		s.storeAttachment(ctx, req.File)
		message = fmt.Sprintf(fileMessageFormat, req.File.Name)
	}

	if message == "" {
		return Response{}, apperrors.Wrap("invalid_input", replyEmptyMessage, nil)
	}

	canonical := canonicalQuery(message)
	if err := s.store.IncrementQuery(ctx, canonical, message); err != nil {
		s.logger.Warn("trending increment failed", "error", err)
	}

	if cached, ok := s.cachedReply(ctx, canonical); ok {
		return s.withTrending(ctx, Response{
			Reply:           cached.Reply,
			Source:          SourceCache,
			MatchedQuestion: cached.MatchedQuestion,
		}), nil
	}

	match, found := knowledge.BestMatch(message, s.table.Snapshot())
	if found && match.Score > s.cfg.MatchThreshold {
		reply := match.Record.Answer
		if match.Record.LawReference != "" {
			reply += "\n" + lawReferenceMarker + match.Record.LawReference
		}
		s.saveReply(ctx, CachedReply{
			Canonical:       canonical,
			Question:        message,
			Reply:           reply,
			MatchedQuestion: match.Record.Question,
			CreatedAt:       time.Now(),
		})
		return s.withTrending(ctx, Response{
			Reply:           reply,
			Source:          SourceTable,
			MatchedQuestion: match.Record.Question,
			Score:           match.Score,
		}), nil
	}

	if s.generator == nil {
		return s.withTrending(ctx, Response{Reply: replyUnavailable, Source: SourceCanned}), nil
	}

	prompt := strings.TrimSpace(s.cfg.Prompt)
	if prompt == "" {
		prompt = "You are a helpful legal rights assistant."
	}
	answer, err := s.generator.Generate(ctx, prompt+"\nUser: "+message)
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "fallback generation failed", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = replyNotUnderstood
	}
	return s.withTrending(ctx, Response{Reply: answer, Source: SourceAI}), nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	recs, err := s.store.TopQueries(ctx, s.cfg.TopTrending)
	if err != nil {
		return nil, apperrors.Wrap("chat_error", "failed to load trending queries", err)
	}
	return recs, nil
}

func (s *service) cachedReply(ctx context.Context, canonical string) (CachedReply, bool) {
	cached, ok, err := s.store.GetReply(ctx, canonical)
	if err != nil {
		s.logger.Warn("reply cache lookup failed", "error", err)
		return CachedReply{}, false
	}
	return cached, ok
}

func (s *service) saveReply(ctx context.Context, record CachedReply) {
	if err := s.store.SaveReply(ctx, record, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("reply cache save failed", "error", err)
	}
}

func (s *service) storeAttachment(ctx context.Context, att *Attachment) {
	if s.attachments == nil || len(att.Data) == 0 {
		return
	}
	key := uuid.NewString()
	if att.Name != "" {
		key += "-" + att.Name
	}
	if err := s.attachments.Put(ctx, key, att.Data, att.MIME); err != nil {
		s.logger.Warn("attachment store failed", "key", key, "error", err)
	}
}

func (s *service) withTrending(ctx context.Context, resp Response) Response {
	if s.cfg.TopTrending <= 0 {
		return resp
	}
	recs, err := s.store.TopQueries(ctx, s.cfg.TopTrending)
	if err != nil {
		s.logger.Warn("trending fetch failed", "error", err)
		return resp
	}
	resp.Recommendations = recs
	return resp
}
