package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/legalmitra/legalmitra/pkg/errors"
)

func TestLoad_AliasedColumns(t *testing.T) {
	csvData := strings.Join([]string{
		"keyword,question_en,answer_en,law_reference",
		"dowry,What is dowry law?,Dowry is illegal.,Dowry Prohibition Act 1961",
		"fir,How to file an FIR?,Go to the police station.,",
	}, "\n")

	records, err := Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "dowry", records[0].Keyword)
	require.Equal(t, "What is dowry law?", records[0].Question)
	require.Equal(t, "Dowry is illegal.", records[0].Answer)
	require.Equal(t, "Dowry Prohibition Act 1961", records[0].LawReference)
	require.Empty(t, records[1].LawReference)
}

func TestLoad_StripsByteOrderMark(t *testing.T) {
	csvData := "\ufeffkeyword,question,answer\nfir,How to file an FIR?,Go to the police station.\n"

	records, err := Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "fir", records[0].Keyword)
	require.Equal(t, "How to file an FIR?", records[0].Question)
}

func TestLoad_KeywordFallsBackToQuestion(t *testing.T) {
	csvData := "keywords,answer\nmaternity leave,Check local labour law.\n"

	records, err := Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "maternity leave", records[0].Keyword)
	require.Equal(t, "maternity leave", records[0].Question)
}

func TestLoad_PrimaryColumnsWinOverAliases(t *testing.T) {
	csvData := "keyword,question,question_en,answer,answer_en\nk,primary q,english q,primary a,english a\n"

	records, err := Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, "primary q", records[0].Question)
	require.Equal(t, "primary a", records[0].Answer)
}

func TestLoad_KeepsRowsWithEmptyQuestionAndAnswer(t *testing.T) {
	csvData := "keyword,question,answer\n,,\nfir,How to file an FIR?,Go to the station.\n"

	records, err := Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.False(t, records[0].Usable())
	require.True(t, records[1].Usable())
}

func TestLoad_UnevenRows(t *testing.T) {
	csvData := "keyword,question,answer\nfir,How to file an FIR?\n"

	records, err := Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "How to file an FIR?", records[0].Question)
	require.Empty(t, records[0].Answer)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "load_error"))
}

func TestTable_ReloadSwapsAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.csv")
	require.NoError(t, os.WriteFile(path, []byte("question,answer\nq one,a one\n"), 0o644))

	table := NewTable(path, newTestLogger())
	require.Zero(t, table.Len())

	require.NoError(t, table.Reload())
	require.Equal(t, 1, table.Len())

	// A failed reload keeps the previous snapshot.
	require.NoError(t, os.Remove(path))
	require.Error(t, table.Reload())
	require.Equal(t, 1, table.Len())
	require.Equal(t, "q one", table.Snapshot()[0].Question)
}
