package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

var (
	errNestedTable        = errors.New("CREATE TABLE inside an unterminated table definition")
	errUnexpectedTableEnd = errors.New("end of table definition with no open table")
	errUnterminatedTable  = errors.New("input ended inside a table definition")
)

// maxLineSize bounds a single dump line; extended INSERTs can be large.
const maxLineSize = 256 * 1024 * 1024

// convertOptions controls what the transcoder emits.
type convertOptions struct {
	Schema            string
	GrantTo           string
	FulltextLanguage  string
	NullZeroDatetimes bool
}

func defaultConvertOptions() convertOptions {
	return convertOptions{
		Schema:            "mysql",
		GrantTo:           "PUBLIC",
		FulltextLanguage:  "english",
		NullZeroDatetimes: true,
	}
}

// transcoder is the line state machine. table is non-nil exactly while
// state is stateInTable.
type transcoder struct {
	rc    *runContext
	out   *bufio.Writer
	state parseState
	table *tableBuilder

	// onLine is called after every input line; used for progress.
	onLine func(Stats)
}

type lineHandler func(t *transcoder, lineNo int, line string) error

var lineHandlers = map[lineKind]lineHandler{
	lineIgnored:     func(*transcoder, int, string) error { return nil },
	lineTableStart:  (*transcoder).startTable,
	lineTableEnd:    (*transcoder).endTable,
	lineInsert:      (*transcoder).insert,
	lineColumn:      (*transcoder).column,
	linePrimaryKey:  func(t *transcoder, _ int, line string) error { t.table.addPrimaryKey(line); return nil },
	lineForeignKey:  func(t *transcoder, _ int, line string) error { t.table.addForeignKey(t.rc, line); return nil },
	lineKey:         func(t *transcoder, _ int, line string) error { t.table.addSortKeys(line); return nil },
	lineFulltextKey: func(t *transcoder, _ int, line string) error { t.table.addFulltextKey(t.rc, line); return nil },
	lineUnknown:     (*transcoder).unknown,
}

// convert streams a dump from r to w and returns the run report. The
// deferred statements are written after the last line. w is flushed on
// every return path.
func convert(r io.Reader, w io.Writer, opts convertOptions, onLine func(Stats)) (*Report, Stats, error) {
	t := &transcoder{
		rc:     newRunContext(opts),
		out:    bufio.NewWriter(w),
		onLine: onLine,
	}
	err := t.run(r)
	if ferr := t.out.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("write output: %w", ferr)
	}
	return &t.rc.report, t.rc.stats, err
}

func (t *transcoder) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		t.rc.stats.Lines = lineNo
		line := normalizeLine(sc.Text())
		kind := classifyLine(t.state, line)
		if err := lineHandlers[kind](t, lineNo, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if t.onLine != nil {
			t.onLine(t.rc.stats)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if t.state == stateInTable {
		return fmt.Errorf("table %q: %w", t.table.name, errUnterminatedTable)
	}
	return t.writeDeferred()
}

func (t *transcoder) startTable(lineNo int, line string) error {
	if t.state == stateInTable {
		return fmt.Errorf("table %q: %w", t.table.name, errNestedTable)
	}
	name, ok := firstQuotedIdentifier(line)
	if !ok {
		fields := strings.Fields(strings.TrimPrefix(line, "CREATE TABLE"))
		if len(fields) == 0 || fields[0] == "(" {
			return fmt.Errorf("CREATE TABLE without a table name")
		}
		name = strings.TrimSuffix(fields[0], "(")
	}
	t.table = newTableBuilder(name)
	t.state = stateInTable
	return nil
}

func (t *transcoder) endTable(lineNo int, line string) error {
	if t.state != stateInTable {
		return errUnexpectedTableEnd
	}
	tb := t.table
	if _, err := t.out.WriteString(generateCreateTable(tb, t.rc.opts.Schema, t.rc.opts.GrantTo)); err != nil {
		return fmt.Errorf("write table %s: %w", tb.name, err)
	}
	t.rc.report.Tables = append(t.rc.report.Tables, tb.report())
	t.rc.stats.Tables++
	t.table = nil
	t.state = stateOutside
	return nil
}

func (t *transcoder) insert(lineNo int, line string) error {
	if t.rc.opts.NullZeroDatetimes {
		line = fixInsert(line)
	}
	if _, err := t.out.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write insert: %w", err)
	}
	t.rc.stats.Inserts++
	return nil
}

func (t *transcoder) column(lineNo int, line string) error {
	def := parseColumnDef(line)
	if def.Name == "" {
		// the target rejects zero-length identifiers
		t.rc.stats.Unrecognized++
		log.Printf("  column without a name at line %d in table %s: %s", lineNo, t.table.name, line)
		t.rc.diagnose(lineNo, t.table.name, "column without a name: "+line)
		return nil
	}
	col := t.table.addColumn(t.rc, def)
	if col.Dropped {
		t.rc.stats.DroppedColumns++
	}
	return nil
}

func (t *transcoder) unknown(lineNo int, line string) error {
	t.rc.stats.Unrecognized++
	table := ""
	if t.table != nil {
		table = t.table.name
		log.Printf("  unknown line %d inside table %s: %s", lineNo, table, line)
	} else {
		log.Printf("  unknown line %d: %s", lineNo, line)
	}
	t.rc.diagnose(lineNo, table, "unrecognized line: "+line)
	return nil
}

// writeDeferred emits foreign keys, full-text indexes, sequences and casts
// collected over the whole run, in that order.
func (t *transcoder) writeDeferred() error {
	stmts := t.rc.side.all()
	t.rc.stats.Deferred = len(stmts)
	for _, s := range stmts {
		if _, err := t.out.WriteString(s + ";\n"); err != nil {
			return fmt.Errorf("write deferred statements: %w", err)
		}
	}
	return nil
}
