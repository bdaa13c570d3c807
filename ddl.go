package main

import (
	"fmt"
	"regexp"
	"strings"
)

var referencesRe = regexp.MustCompile(`REFERENCES\s+"((?:[^"]|"")+)"`)

// tableBuilder accumulates one CREATE TABLE block. It exists only between
// a table start marker and its end marker.
type tableBuilder struct {
	name     string
	columns  []Column
	lines    []string // inline definitions in emission order
	distKeys []string
	sortKeys []string
	sortSeen map[string]bool
}

func newTableBuilder(name string) *tableBuilder {
	return &tableBuilder{name: name, sortSeen: make(map[string]bool)}
}

// addColumn records a mapped column and queues its deferred statements.
func (tb *tableBuilder) addColumn(rc *runContext, def columnDef) Column {
	m := mapType(def.Type, def.Extra, def.Flags)
	col := Column{
		Name:        def.Name,
		SourceType:  def.Type,
		Type:        m.Type,
		Extra:       m.Extra,
		Dropped:     m.Type == "",
		Passthrough: m.Passthrough,
	}
	tb.columns = append(tb.columns, col)

	table := qualifiedTable(rc.opts.Schema, tb.name)
	name := quoteIdent(def.Name)
	if m.CastTo != "" {
		rc.side.casts = append(rc.side.casts, fmt.Sprintf(
			`ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT, ALTER COLUMN %s TYPE %s USING CAST(%s as %s)`,
			table, name, name, m.CastTo, name, m.CastTo,
		))
	}
	if def.Name == "id" && m.NeedsSequence {
		seq := qualifiedTable(rc.opts.Schema, tb.name+"_id_seq")
		rc.side.sequences = append(rc.side.sequences,
			fmt.Sprintf("CREATE SEQUENCE %s", seq),
			fmt.Sprintf("SELECT setval(%s, max(id)) FROM %s", quoteLiteral(seq), table),
			fmt.Sprintf(`ALTER TABLE %s ALTER COLUMN "id" SET DEFAULT nextval(%s)`, table, quoteLiteral(seq)),
		)
	}
	if !col.Dropped {
		tb.lines = append(tb.lines, strings.TrimSpace(name+" "+col.Type+" "+col.Extra))
	}
	return col
}

// addPrimaryKey keeps the declaration inline and records the distribution key.
func (tb *tableBuilder) addPrimaryKey(line string) {
	tb.lines = append(tb.lines, strings.TrimSuffix(line, ","))
	if id, ok := firstQuotedIdentifier(line); ok {
		tb.distKeys = append(tb.distKeys, id)
	}
}

// addSortKeys records the columns of a KEY or UNIQUE KEY declaration.
func (tb *tableBuilder) addSortKeys(line string) {
	for _, c := range keyColumns(line) {
		if c == "" || tb.sortSeen[c] {
			continue
		}
		tb.sortSeen[c] = true
		tb.sortKeys = append(tb.sortKeys, c)
	}
}

// addForeignKey queues a deferred constraint plus an index over the
// referencing columns.
func (tb *tableBuilder) addForeignKey(rc *runContext, line string) {
	table := qualifiedTable(rc.opts.Schema, tb.name)
	def := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(line, "CONSTRAINT")), ",")
	// the referenced table lives in the target schema too
	def = referencesRe.ReplaceAllStringFunc(def, func(m string) string {
		ref := strings.ReplaceAll(referencesRe.FindStringSubmatch(m)[1], `""`, `"`)
		return "REFERENCES " + qualifiedTable(rc.opts.Schema, ref)
	})
	rc.side.foreignKeys = append(rc.side.foreignKeys,
		fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFERRABLE INITIALLY DEFERRED", table, def))

	_, after, found := strings.Cut(line, "FOREIGN KEY")
	if !found {
		return
	}
	referencing, _, _ := strings.Cut(after, "REFERENCES")
	if cols := keyColumns(referencing); len(cols) > 0 {
		rc.side.foreignKeys = append(rc.side.foreignKeys,
			fmt.Sprintf("CREATE INDEX ON %s (%s)", table, joinIdents(cols, ", ")))
	}
}

// addFulltextKey queues a GIN text-search index over the key's columns.
func (tb *tableBuilder) addFulltextKey(rc *runContext, line string) {
	cols := keyColumns(line)
	if len(cols) == 0 {
		return
	}
	rc.side.fulltextIndexes = append(rc.side.fulltextIndexes, fmt.Sprintf(
		"CREATE INDEX ON %s USING gin(to_tsvector('%s', %s))",
		qualifiedTable(rc.opts.Schema, tb.name), rc.opts.FulltextLanguage, joinIdents(cols, " || ' ' || "),
	))
}

// generateCreateTable renders the accumulated block, its key clauses and
// the grant.
func generateCreateTable(tb *tableBuilder, schema, grantTo string) string {
	table := qualifiedTable(schema, tb.name)

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s(\n", table)
	for i, line := range tb.lines {
		b.WriteString("    ")
		b.WriteString(line)
		if i < len(tb.lines)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(")")
	if len(tb.distKeys) > 0 {
		fmt.Fprintf(&b, "\nDISTKEY(%s)", targetIdent(tb.distKeys[0]))
	}
	if len(tb.sortKeys) > 0 {
		fmt.Fprintf(&b, "\nSORTKEY(%s)", joinIdents(tb.sortKeys, ","))
	}
	b.WriteString(";\n")
	if grantTo != "" {
		fmt.Fprintf(&b, "GRANT SELECT ON TABLE %s TO %s;\n", table, grantTo)
	}
	return b.String()
}

// report summarizes the table for the run report.
func (tb *tableBuilder) report() TableReport {
	r := TableReport{
		Name:     tb.name,
		Columns:  tb.columns,
		SortKeys: tb.sortKeys,
	}
	if len(tb.distKeys) > 0 {
		r.DistKey = tb.distKeys[0]
	}
	return r
}
