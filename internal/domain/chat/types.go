package chat

import "time"

// Request encapsulates one chat turn. Message may be empty when an
// attachment is present; the service substitutes an acknowledgement text.
type Request struct {
	Message string      `json:"message"`
	Audio   *Attachment `json:"-"`
	File    *Attachment `json:"-"`
}

// Attachment carries an uploaded file from the transport layer.
type Attachment struct {
	Name string
	MIME string
	Data []byte
}

// Response is returned to the HTTP transport.
type Response struct {
	Reply           string          `json:"reply"`
	Source          string          `json:"source,omitempty"`
	MatchedQuestion string          `json:"matchedQuestion,omitempty"`
	Score           float64         `json:"score,omitempty"`
	Recommendations []TrendingQuery `json:"recommendations,omitempty"`
}

// Reply sources.
const (
	SourceTable  = "table"
	SourceCache  = "cache"
	SourceAI     = "ai"
	SourceCanned = "canned"
)

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// CachedReply captures a resolved table answer persisted in the reply store.
type CachedReply struct {
	Canonical       string    `json:"canonical"`
	Question        string    `json:"question"`
	Reply           string    `json:"reply"`
	MatchedQuestion string    `json:"matchedQuestion"`
	CreatedAt       time.Time `json:"createdAt"`
}
