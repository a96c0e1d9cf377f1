package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/legalmitra/legalmitra/internal/knowledge"
	apperrors "github.com/legalmitra/legalmitra/pkg/errors"
)

type stubStore struct {
	mu       sync.Mutex
	replies  map[string]CachedReply
	trending map[string]int64
}

func newStubStore() *stubStore {
	return &stubStore{replies: make(map[string]CachedReply), trending: make(map[string]int64)}
}

func (s *stubStore) GetReply(_ context.Context, canonical string) (CachedReply, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.replies[canonical]
	return record, ok, nil
}

func (s *stubStore) SaveReply(_ context.Context, record CachedReply, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[record.Canonical] = record
	return nil
}

func (s *stubStore) IncrementQuery(_ context.Context, canonical, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trending[canonical]++
	return nil
}

func (s *stubStore) TopQueries(_ context.Context, _ int) ([]TrendingQuery, error) {
	return nil, nil
}

type stubGenerator struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompt = prompt
	return g.reply, g.err
}

type stubAttachments struct {
	keys []string
}

func (a *stubAttachments) Put(_ context.Context, key string, _ []byte, _ string) error {
	a.keys = append(a.keys, key)
	return nil
}

func newTestTable(t *testing.T, rows ...string) *knowledge.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faq.csv")
	content := "keyword,question,answer,law_reference\n" + strings.Join(rows, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	table := knowledge.NewTable(path, newTestLogger())
	require.NoError(t, table.Reload())
	return table
}

func newEmptyTable(t *testing.T) *knowledge.Table {
	t.Helper()
	return newTestTable(t)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_EmptyMessage(t *testing.T) {
	svc := NewService(Config{MatchThreshold: 0.3}, newEmptyTable(t), newStubStore(), nil, nil, newTestLogger())

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.Resolve(context.Background(), Request{Message: message})
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, "invalid_input"), "message %q", message)
	}
}

func TestResolve_ExactTableMatch(t *testing.T) {
	table := newTestTable(t, "fir,How to file a police complaint?,Go to station.,")
	svc := NewService(Config{MatchThreshold: 0.3}, table, newStubStore(), nil, nil, newTestLogger())

	resp, err := svc.Resolve(context.Background(), Request{Message: "how to file a police complaint?"})
	require.NoError(t, err)
	require.Equal(t, "Go to station.", resp.Reply)
	require.Equal(t, SourceTable, resp.Source)
	require.Equal(t, 1.0, resp.Score)
	require.Equal(t, "How to file a police complaint?", resp.MatchedQuestion)
}

func TestResolve_AppendsLawReference(t *testing.T) {
	table := newTestTable(t, "dowry,What is dowry law?,Dowry is illegal.,Dowry Prohibition Act 1961")
	svc := NewService(Config{MatchThreshold: 0.3}, table, newStubStore(), nil, nil, newTestLogger())

	resp, err := svc.Resolve(context.Background(), Request{Message: "what is dowry law?"})
	require.NoError(t, err)
	require.Equal(t, "Dowry is illegal.\nRelated Law: Dowry Prohibition Act 1961", resp.Reply)
}

func TestResolve_ThresholdIsStrict(t *testing.T) {
	question := "How to report workplace harassment?"
	query := "reporting harassment at workplace"
	score := knowledge.Similarity(strings.ToLower(query), strings.ToLower(question))
	require.Greater(t, score, 0.0)
	require.Less(t, score, 1.0)

	table := newTestTable(t, "harassment,"+question+",Document incidents.,")

	// Score exactly equal to the threshold must not serve the table answer.
	atThreshold := NewService(Config{MatchThreshold: score}, table, newStubStore(), nil, nil, newTestLogger())
	resp, err := atThreshold.Resolve(context.Background(), Request{Message: query})
	require.NoError(t, err)
	require.Equal(t, replyUnavailable, resp.Reply)

	below := NewService(Config{MatchThreshold: score - 1e-9}, table, newStubStore(), nil, nil, newTestLogger())
	resp, err = below.Resolve(context.Background(), Request{Message: query})
	require.NoError(t, err)
	require.Equal(t, "Document incidents.", resp.Reply)
}

func TestResolve_EmptyTableFallsToGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "Generated answer."}
	svc := NewService(Config{Prompt: "Be helpful.", MatchThreshold: 0.3}, newEmptyTable(t), newStubStore(), gen, nil, newTestLogger())

	resp, err := svc.Resolve(context.Background(), Request{Message: "anything"})
	require.NoError(t, err)
	require.Equal(t, "Generated answer.", resp.Reply)
	require.Equal(t, SourceAI, resp.Source)
	require.Equal(t, 1, gen.calls)
	require.Equal(t, "Be helpful.\nUser: anything", gen.prompt)
}

func TestResolve_GeneratorUnavailable(t *testing.T) {
	svc := NewService(Config{MatchThreshold: 0.3}, newEmptyTable(t), newStubStore(), nil, nil, newTestLogger())

	resp, err := svc.Resolve(context.Background(), Request{Message: "anything"})
	require.NoError(t, err)
	require.Equal(t, replyUnavailable, resp.Reply)
	require.Equal(t, SourceCanned, resp.Source)
}

func TestResolve_GeneratorEmptyReply(t *testing.T) {
	gen := &stubGenerator{reply: "   "}
	svc := NewService(Config{MatchThreshold: 0.3}, newEmptyTable(t), newStubStore(), gen, nil, newTestLogger())

	resp, err := svc.Resolve(context.Background(), Request{Message: "anything"})
	require.NoError(t, err)
	require.Equal(t, replyNotUnderstood, resp.Reply)
}

func TestResolve_GeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := NewService(Config{MatchThreshold: 0.3}, newEmptyTable(t), newStubStore(), gen, nil, newTestLogger())

	_, err := svc.Resolve(context.Background(), Request{Message: "anything"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "llm_error"))
}

func TestResolve_AudioAttachment(t *testing.T) {
	gen := &stubGenerator{reply: "Noted."}
	attachments := &stubAttachments{}
	svc := NewService(Config{MatchThreshold: 0.3}, newEmptyTable(t), newStubStore(), gen, attachments, newTestLogger())

	resp, err := svc.Resolve(context.Background(), Request{
		Audio: &Attachment{Name: "voice.webm", MIME: "audio/webm", Data: []byte("riff")},
	})
	require.NoError(t, err)
	require.Equal(t, "Noted.", resp.Reply)
	require.Contains(t, gen.prompt, audioMessage)
	require.Len(t, attachments.keys, 1)
	require.Contains(t, attachments.keys[0], "voice.webm")
}

func TestResolve_FileAttachment(t *testing.T) {
	gen := &stubGenerator{reply: "Received."}
	svc := NewService(Config{MatchThreshold: 0.3}, newEmptyTable(t), newStubStore(), gen, nil, newTestLogger())

	_, err := svc.Resolve(context.Background(), Request{
		File: &Attachment{Name: "evidence.pdf", MIME: "application/pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)
	require.Contains(t, gen.prompt, "User uploaded a file: evidence.pdf")
}

func TestResolve_ServesCachedReply(t *testing.T) {
	table := newTestTable(t, "fir,How to file a police complaint?,Go to station.,")
	store := newStubStore()
	svc := NewService(Config{MatchThreshold: 0.3, CacheTTL: time.Hour}, table, store, nil, nil, newTestLogger())

	first, err := svc.Resolve(context.Background(), Request{Message: "How to file a police complaint?"})
	require.NoError(t, err)
	require.Equal(t, SourceTable, first.Source)

	second, err := svc.Resolve(context.Background(), Request{Message: "how to file a police complaint"})
	require.NoError(t, err)
	require.Equal(t, SourceCache, second.Source)
	require.Equal(t, first.Reply, second.Reply)
}

func TestCanonicalQuery(t *testing.T) {
	require.Equal(t, "how to file an fir", canonicalQuery("  How to file an FIR?!  "))
	require.Equal(t, "dowry law", canonicalQuery("dowry,,,law"))
	require.Equal(t, "", canonicalQuery("?!."))
}
