package knowledge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/legalmitra/legalmitra/pkg/errors"
)

// Upstream CSV files name their columns inconsistently, so each field is
// resolved from a list of acceptable header aliases, first non-empty wins.
var (
	keywordAliases  = []string{"question_keyword", "keywords", "keyword"}
	questionAliases = []string{"question", "question_en", "question_keyword", "keywords", "keyword"}
	answerAliases   = []string{"answer", "answer_en"}
	lawRefAliases   = []string{"law_reference"}
)

// LoadFile reads a CSV knowledge base from disk.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap("load_error", fmt.Sprintf("open knowledge base %s", path), err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses CSV rows into records. The first row is the header. Rows with
// an empty question and answer are kept; matching naturally deprioritizes
// them through near-zero scores.
func Load(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.Wrap("load_error", "read knowledge base header", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeHeader(name)] = i
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap("load_error", "read knowledge base row", err)
		}
		records = append(records, Record{
			Keyword:      pick(row, columns, keywordAliases),
			Question:     pick(row, columns, questionAliases),
			Answer:       pick(row, columns, answerAliases),
			LawReference: pick(row, columns, lawRefAliases),
		})
	}
	return records, nil
}

func pick(row []string, columns map[string]int, aliases []string) string {
	for _, alias := range aliases {
		idx, ok := columns[alias]
		if !ok || idx >= len(row) {
			continue
		}
		if value := strings.TrimSpace(row[idx]); value != "" {
			return value
		}
	}
	return ""
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
}
