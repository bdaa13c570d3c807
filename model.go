package main

// Column is a translated column definition kept in a CREATE TABLE block.
type Column struct {
	Name        string
	SourceType  string // type token as it appeared in the dump, e.g. "int(11)"
	Type        string // target type; empty when the column is dropped
	Extra       string // translated modifiers, e.g. "NOT NULL DEFAULT '0'"
	Dropped     bool
	Passthrough bool // no mapping rule applied
}

// TableReport summarizes one converted table.
type TableReport struct {
	Name     string
	Columns  []Column // includes dropped columns, in source order
	DistKey  string
	SortKeys []string
}

// Diagnostic is a non-fatal problem found while reading the dump.
type Diagnostic struct {
	Line    int
	Table   string
	Message string
}

// Report describes a finished conversion run.
type Report struct {
	Tables      []TableReport
	Diagnostics []Diagnostic
}

// sideOutputs holds the statements deferred to the end of the run.
type sideOutputs struct {
	foreignKeys     []string
	fulltextIndexes []string
	sequences       []string
	casts           []string
}

// all returns every deferred statement in emission order.
func (s *sideOutputs) all() []string {
	n := len(s.foreignKeys) + len(s.fulltextIndexes) + len(s.sequences) + len(s.casts)
	out := make([]string, 0, n)
	out = append(out, s.foreignKeys...)
	out = append(out, s.fulltextIndexes...)
	out = append(out, s.sequences...)
	out = append(out, s.casts...)
	return out
}

// Stats are the running counters of a conversion.
type Stats struct {
	Lines          int
	Tables         int
	Inserts        int
	Unrecognized   int
	DroppedColumns int
	Deferred       int
}

// runContext is the state that lives for a whole conversion run: deferred
// statements, counters and the report. Table-scoped state lives in
// tableBuilder.
type runContext struct {
	opts   convertOptions
	side   sideOutputs
	stats  Stats
	report Report
}

func newRunContext(opts convertOptions) *runContext {
	return &runContext{opts: opts}
}

func (rc *runContext) diagnose(line int, table, msg string) {
	rc.report.Diagnostics = append(rc.report.Diagnostics, Diagnostic{Line: line, Table: table, Message: msg})
}
