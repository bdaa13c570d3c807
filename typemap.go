package main

import (
	"fmt"
	"strconv"
	"strings"
)

// typeFlags are the modifier facts that influence type mapping.
type typeFlags struct {
	Unsigned   bool
	UTF8MB4    bool
	HasDefault bool
}

// mappedType is the result of mapping one source column type.
type mappedType struct {
	Type          string // empty: drop the column
	Extra         string
	CastTo        string // applied after load, e.g. "boolean"
	NeedsSequence bool
	Passthrough   bool // no rule matched; Type is the source type
}

// mapType maps a MySQL column type and its cleaned modifiers to the target
// dialect. It is pure: equal inputs give equal outputs.
func mapType(sourceType, extra string, flags typeFlags) mappedType {
	t := strings.ToLower(sourceType)

	switch {
	case strings.HasPrefix(t, "tinyint("):
		return mappedType{Type: "int4", Extra: extra, CastTo: "boolean", NeedsSequence: true}
	case strings.HasPrefix(t, "int("):
		if flags.Unsigned {
			return mappedType{Type: "bigint", Extra: extra, NeedsSequence: true}
		}
		return mappedType{Type: "integer", Extra: extra, NeedsSequence: true}
	case strings.HasPrefix(t, "bigint("):
		return mappedType{Type: "bigint", Extra: extra, NeedsSequence: true}
	case strings.HasPrefix(t, "mediumint("):
		return mappedType{Type: "integer", Extra: extra, NeedsSequence: true}
	case strings.HasPrefix(t, "smallint("):
		if flags.Unsigned {
			return mappedType{Type: "integer", Extra: extra, NeedsSequence: true}
		}
		return mappedType{Type: "int2", Extra: extra, NeedsSequence: true}
	case t == "text", t == "longtext", t == "mediumtext", t == "tinytext", t == "blob":
		return mappedType{}
	case strings.HasPrefix(t, "varchar("):
		if n, ok := typeLength(t); ok {
			return mappedType{Type: fmt.Sprintf("varchar(%d)", n*charWidth(flags)), Extra: extra}
		}
	case strings.HasPrefix(t, "char("):
		if n, ok := typeLength(t); ok {
			return mappedType{Type: fmt.Sprintf("char(%d)", n*charWidth(flags)), Extra: extra}
		}
	case t == "datetime":
		return mappedType{Type: "timestamp with time zone", Extra: extra}
	case t == "double":
		return mappedType{Type: "double precision", Extra: extra}
	case t == "timestamp":
		if flags.HasDefault {
			if i := defaultClauseIndex(extra); i >= 0 {
				extra = strings.TrimSpace(extra[:i])
			}
		}
		return mappedType{Type: "timestamp", Extra: extra}
	case strings.HasPrefix(t, "enum("), strings.HasPrefix(t, "set("):
		return mappedType{Type: fmt.Sprintf("varchar(%d)", enumSetWidth(sourceType)*3), Extra: extra}
	}
	return mappedType{Type: sourceType, Extra: extra, Passthrough: true}
}

// charWidth is the worst-case byte width of one MySQL character: the target
// sizes character columns in bytes.
func charWidth(flags typeFlags) int {
	if flags.UTF8MB4 {
		return 4
	}
	return 3
}

// typeLength parses N out of "name(N)".
func typeLength(t string) (int, bool) {
	open := strings.IndexByte(t, '(')
	if open < 0 || !strings.HasSuffix(t, ")") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(t[open+1 : len(t)-1]))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
