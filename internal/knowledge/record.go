// Package knowledge holds the CSV-backed legal FAQ table and the
// similarity matching used to answer questions from it.
package knowledge

// Record is one knowledge-base entry.
type Record struct {
	Keyword      string
	Question     string
	Answer       string
	LawReference string
}

// Usable reports whether the record can meaningfully participate in
// matching. Unusable records are still loaded; they just never win.
func (r Record) Usable() bool {
	return r.Question != "" && r.Answer != ""
}
