package chat

import "time"

// Config holds runtime knobs for the resolution service.
type Config struct {
	// Prompt is the instructional preamble sent ahead of the user query on
	// the generative fallback path.
	Prompt string
	// MatchThreshold is the similarity a table match must strictly exceed
	// to be served. Empirically chosen, tunable.
	MatchThreshold float64
	CacheTTL       time.Duration
	TopTrending    int
}
