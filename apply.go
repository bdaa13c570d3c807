package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type statementExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// applyFile runs the converted script at path against the target database.
func applyFile(ctx context.Context, dsn, path string, includeInserts bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("apply: read %s: %w", path, err)
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return 0, fmt.Errorf("apply: connect target: %w", err)
	}
	defer conn.Close(context.Background())

	if err := conn.Ping(ctx); err != nil {
		return 0, fmt.Errorf("apply: ping target: %w", err)
	}
	return applyScript(ctx, conn, string(data), includeInserts)
}

// applyScript executes every statement of script in order and stops at the
// first failure. INSERT statements are skipped unless includeInserts is set.
// It returns the number of statements executed.
func applyScript(ctx context.Context, exec statementExecutor, script string, includeInserts bool) (int, error) {
	stmts := splitStatements(script)
	log.Printf("  applying %d statements...", len(stmts))

	n := 0
	for i, stmt := range stmts {
		if !includeInserts && strings.HasPrefix(stmt, "INSERT INTO") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := exec.Exec(ctx, stmt); err != nil {
			return n, fmt.Errorf("apply: statement %d: %w\nSQL: %s", i+1, err, stmt)
		}
		n++
	}
	return n, nil
}

// splitStatements splits SQL text on semicolons, ignoring empty entries
// and semicolons inside quoted literals, quoted identifiers and comments.
func splitStatements(sql string) []string {
	var stmts []string
	var current strings.Builder
	var quote byte // ' or " while inside a quoted run
	inLineComment := false
	inBlockComment := false

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			stmts = append(stmts, s)
		}
		current.Reset()
	}

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		next := byte(0)
		if i+1 < len(sql) {
			next = sql[i+1]
		}

		switch {
		case inLineComment:
			if c == '\n' {
				inLineComment = false
				current.WriteByte(c)
			}
		case inBlockComment:
			if c == '*' && next == '/' {
				inBlockComment = false
				i++
			}
		case quote != 0:
			current.WriteByte(c)
			if c == quote {
				// a doubled quote is an escaped quote, not the end of the run
				if next == quote {
					current.WriteByte(next)
					i++
				} else {
					quote = 0
				}
			}
		case c == '-' && next == '-':
			inLineComment = true
			i++
		case c == '/' && next == '*':
			inBlockComment = true
			i++
		case c == '\'' || c == '"':
			quote = c
			current.WriteByte(c)
		case c == ';':
			flush()
		default:
			current.WriteByte(c)
		}
	}

	// Trailing statement without semicolon
	flush()
	return stmts
}
