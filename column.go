package main

import (
	"regexp"
	"strings"
)

// columnDef is a parsed column line before type mapping.
type columnDef struct {
	Name  string
	Type  string
	Extra string
	Flags typeFlags
}

var (
	charsetRe    = regexp.MustCompile(`(?i)CHARACTER SET \w+\s*`)
	collateRe    = regexp.MustCompile(`(?i)COLLATE \w+\s*`)
	signednessRe = regexp.MustCompile(`(?i)\s*\b(?:un)?signed\b`)
	unsignedRe   = regexp.MustCompile(`(?i)\bunsigned\b`)
	columnNameRe = regexp.MustCompile(`^"((?:[^"]|"")+)"`)
)

// parseColumnDef parses `"name" type modifiers[,]`. It never fails: a line
// whose name is not a complete quoted identifier yields an empty Name and
// the whole remainder as the type.
func parseColumnDef(line string) columnDef {
	line = strings.TrimSuffix(strings.TrimSpace(line), ",")

	m := columnNameRe.FindStringSubmatch(line)
	if m == nil {
		return columnDef{Type: strings.TrimSpace(strings.TrimPrefix(line, `"`))}
	}

	def := columnDef{Name: strings.ReplaceAll(m[1], `""`, `"`)}
	def.Type, def.Extra = splitTypeToken(strings.TrimSpace(line[len(m[0]):]))

	bare := unquotedText(def.Extra)
	def.Flags = typeFlags{
		Unsigned:   unsignedRe.MatchString(bare),
		UTF8MB4:    strings.Contains(strings.ToLower(bare), "utf8mb4"),
		HasDefault: defaultClauseIndex(def.Extra) >= 0,
	}
	def.Extra = cleanModifiers(def.Extra)
	return def
}

// splitTypeToken separates the type token from the modifiers. A token that
// opens a parenthesis ends at the balancing paren, so enum literals with
// spaces or commas stay whole.
func splitTypeToken(s string) (string, string) {
	ws := strings.IndexAny(s, " \t")
	open := strings.IndexByte(s, '(')
	if open >= 0 && (ws < 0 || open < ws) {
		if end := matchingParen(s, open); end < len(s) {
			return s[:end+1], strings.TrimSpace(s[end+1:])
		}
	}
	if ws < 0 {
		return s, ""
	}
	return s[:ws], strings.TrimSpace(s[ws+1:])
}

// cleanModifiers drops the MySQL-only parts of a column's modifiers.
// Quoted literals such as comments are left untouched.
func cleanModifiers(extra string) string {
	var b strings.Builder
	for _, seg := range splitQuoted(extra) {
		if seg.quoted {
			b.WriteString(seg.text)
			continue
		}
		t := charsetRe.ReplaceAllString(seg.text, "")
		t = collateRe.ReplaceAllString(t, "")
		b.WriteString(signednessRe.ReplaceAllString(t, ""))
	}
	return strings.TrimSpace(b.String())
}

type quotedSegment struct {
	text   string
	quoted bool
}

// splitQuoted cuts s into alternating bare and quoted runs. A quoted run
// includes its quotes; an unclosed quote runs to the end of s.
func splitQuoted(s string) []quotedSegment {
	var segs []quotedSegment
	start := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == quote:
			segs = append(segs, quotedSegment{s[start : i+1], true})
			start, quote = i+1, 0
		case quote == 0 && (c == '\'' || c == '"' || c == '`'):
			if i > start {
				segs = append(segs, quotedSegment{s[start:i], false})
			}
			start, quote = i, c
		}
	}
	if start < len(s) {
		segs = append(segs, quotedSegment{s[start:], quote != 0})
	}
	return segs
}

// unquotedText returns s with its quoted runs blanked out.
func unquotedText(s string) string {
	var b strings.Builder
	for _, seg := range splitQuoted(s) {
		if seg.quoted {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// defaultClauseIndex returns the offset of the DEFAULT keyword in
// modifiers, or -1. mysqldump writes keywords in upper case; text inside
// quoted literals and identifiers is skipped.
func defaultClauseIndex(extra string) int {
	const kw = "DEFAULT"
	var quote byte
	for i := 0; i < len(extra); i++ {
		c := extra[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case strings.HasPrefix(extra[i:], kw) &&
			(i == 0 || extra[i-1] == ' ' || extra[i-1] == '\t') &&
			(i+len(kw) == len(extra) || !isWordByte(extra[i+len(kw)])):
			return i
		}
	}
	return -1
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
