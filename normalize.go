package main

import "strings"

// escapeFixer rewrites MySQL backslash-escaped quotes (\') to the standard
// doubled form. An escaped backslash (\\) is matched first at every
// position, so the quote in \\' is never treated as escaped.
var escapeFixer = strings.NewReplacer(`\\`, `\\`, `\'`, `''`)

// normalizeLine trims a raw dump line and fixes its string escapes.
// normalizeLine(normalizeLine(s)) == normalizeLine(s).
func normalizeLine(raw string) string {
	return escapeFixer.Replace(strings.TrimSpace(raw))
}

const zeroDatetime = "'0000-00-00 00:00:00'"

// fixInsert replaces MySQL zero datetimes, which the target rejects, with NULL.
func fixInsert(line string) string {
	return strings.ReplaceAll(line, zeroDatetime, "NULL")
}
