package knowledge

import "strings"

// Match is the outcome of a best-match scan over the table.
type Match struct {
	Record Record
	Score  float64
}

// BestMatch returns the record whose question is most similar to the query,
// with its score. The query is trimmed and lower-cased before comparison;
// stored questions are lower-cased. On an empty table found is false and the
// score 0. The first record achieving the maximum score wins exact ties.
func BestMatch(query string, records []Record) (Match, bool) {
	if len(records) == 0 {
		return Match{}, false
	}
	normalized := strings.ToLower(strings.TrimSpace(query))

	best := Match{Record: records[0], Score: Similarity(normalized, strings.ToLower(records[0].Question))}
	for _, record := range records[1:] {
		score := Similarity(normalized, strings.ToLower(record.Question))
		if score > best.Score {
			best = Match{Record: record, Score: score}
		}
	}
	return best, true
}

// Similarity computes the Sorensen-Dice coefficient over character bigrams:
// 2 * shared bigrams (counting multiplicity) / total bigrams of both
// strings. It is symmetric and bounded in [0, 1]. Strings shorter than two
// characters have no bigrams and score 0 against everything except a
// character-identical string, which scores 1.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	bigrams := make(map[string]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[string(ra[i:i+2])]++
	}

	shared := 0
	for i := 0; i < len(rb)-1; i++ {
		pair := string(rb[i : i+2])
		if bigrams[pair] > 0 {
			bigrams[pair]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(ra)-1+len(rb)-1)
}
