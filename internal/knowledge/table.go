package knowledge

import (
	"log/slog"
	"sync/atomic"
)

// Table is the process-wide knowledge base. Snapshots are immutable; Reload
// builds a full replacement before publishing it with a single atomic swap,
// so concurrent readers never observe a partially populated table. A failed
// reload keeps the previous snapshot.
type Table struct {
	records atomic.Pointer[[]Record]
	path    string
	logger  *slog.Logger
}

// NewTable constructs an empty table bound to a CSV source path.
func NewTable(path string, logger *slog.Logger) *Table {
	t := &Table{path: path, logger: logger.With("component", "knowledge.table")}
	empty := make([]Record, 0)
	t.records.Store(&empty)
	return t
}

// Reload parses the source file and swaps in the new snapshot. On failure
// the live table is untouched and the error returned.
func (t *Table) Reload() error {
	records, err := LoadFile(t.path)
	if err != nil {
		return err
	}
	t.records.Store(&records)
	t.logger.Info("knowledge base loaded", "path", t.path, "rows", len(records))
	return nil
}

// Snapshot returns the current read-only record set.
func (t *Table) Snapshot() []Record {
	return *t.records.Load()
}

// Len reports the current number of records.
func (t *Table) Len() int {
	return len(t.Snapshot())
}
