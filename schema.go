package main

import (
	"regexp"
	"strings"
)

// targetReservedWords are reserved words of the PostgreSQL dialect plus the
// warehouse-specific ones; they must be quoted as identifiers.
var targetReservedWords = map[string]bool{
	"all": true, "analyse": true, "analyze": true, "and": true, "any": true,
	"array": true, "as": true, "asc": true, "authorization": true, "backup": true,
	"between": true, "binary": true, "blanksasnull": true, "both": true, "bytedict": true,
	"case": true, "cast": true, "check": true, "collate": true, "column": true,
	"constraint": true, "create": true, "credentials": true, "cross": true,
	"current_date": true, "current_role": true, "current_time": true,
	"current_timestamp": true, "current_user": true, "default": true, "deferrable": true,
	"delta": true, "desc": true, "distinct": true, "do": true, "else": true,
	"encode": true, "encrypt": true, "end": true, "except": true, "explicit": true,
	"false": true, "fetch": true, "for": true, "foreign": true, "freeze": true,
	"from": true, "full": true, "globaldict256": true, "grant": true, "group": true,
	"having": true, "ilike": true, "in": true, "initially": true, "inner": true,
	"intersect": true, "into": true, "is": true, "isnull": true, "join": true,
	"lateral": true, "leading": true, "left": true, "like": true, "limit": true,
	"localtime": true, "localtimestamp": true, "lzo": true, "natural": true, "not": true,
	"notnull": true, "null": true, "off": true, "offset": true, "oid": true, "old": true,
	"on": true, "only": true, "open": true, "or": true, "order": true, "outer": true,
	"overlaps": true, "percent": true, "placing": true, "primary": true, "raw": true,
	"references": true, "returning": true, "right": true, "select": true,
	"session_user": true, "similar": true, "some": true, "symmetric": true,
	"sysdate": true, "table": true, "then": true, "timestamp": true, "to": true,
	"top": true, "trailing": true, "true": true, "union": true, "unique": true,
	"user": true, "using": true, "variadic": true, "verbose": true, "wallet": true,
	"when": true, "where": true, "window": true, "with": true, "without": true,
}

// needsQuoting reports whether an identifier needs quoting beyond
// reserved-word checks (e.g. contains hyphens, spaces, uppercase, etc.).
func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i, r := range name {
		if r >= 'a' && r <= 'z' || r == '_' {
			continue
		}
		if i > 0 && (r >= '0' && r <= '9' || r == '$') {
			continue
		}
		return true
	}
	return false
}

// targetIdent returns a target-safe identifier, quoting reserved words and
// names that contain characters invalid in unquoted identifiers.
func targetIdent(name string) string {
	if targetReservedWords[name] || needsQuoting(name) {
		return quoteIdent(name)
	}
	return name
}

// quoteIdent always double-quotes name.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// qualifiedTable returns schema.table for emitted statements.
func qualifiedTable(schema, table string) string {
	return targetIdent(schema) + "." + targetIdent(table)
}

var quotedIdentRe = regexp.MustCompile(`"((?:[^"]|"")+)"`)

// quotedIdentifiers returns every double-quoted identifier in s, unquoted,
// in order of appearance.
func quotedIdentifiers(s string) []string {
	matches := quotedIdentRe.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.ReplaceAll(m[1], `""`, `"`))
	}
	return out
}

// firstQuotedIdentifier returns the first double-quoted identifier in s.
func firstQuotedIdentifier(s string) (string, bool) {
	ids := quotedIdentifiers(s)
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// keyColumns returns the identifiers inside the first parenthesized list of
// a key declaration such as KEY "idx" ("a","b"(10)). Prefix lengths are
// not identifiers and are skipped.
func keyColumns(line string) []string {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return nil
	}
	return quotedIdentifiers(line[open:matchingParen(line, open)])
}

// matchingParen returns the index of the ')' that balances the '(' at open,
// ignoring parens inside single-quoted literals and double-quoted
// identifiers. It returns len(s) when the paren is never closed.
func matchingParen(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

// joinIdents quotes each identifier for the target and joins them with sep.
func joinIdents(names []string, sep string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = targetIdent(n)
	}
	return strings.Join(quoted, sep)
}
