package main

import "strings"

// parseState is the position of the transcoder relative to table blocks.
type parseState int

const (
	stateOutside parseState = iota
	stateInTable
)

func (s parseState) String() string {
	if s == stateInTable {
		return "in-table"
	}
	return "outside"
}

// lineKind is the statement role of a normalized dump line.
type lineKind int

const (
	lineUnknown lineKind = iota
	lineIgnored
	lineTableStart
	lineTableEnd
	lineInsert
	lineColumn
	linePrimaryKey
	lineForeignKey
	lineKey
	lineFulltextKey
)

var lineKindNames = map[lineKind]string{
	lineUnknown:     "unknown",
	lineIgnored:     "ignored",
	lineTableStart:  "table start",
	lineTableEnd:    "table end",
	lineInsert:      "insert",
	lineColumn:      "column",
	linePrimaryKey:  "primary key",
	lineForeignKey:  "foreign key",
	lineKey:         "key",
	lineFulltextKey: "fulltext key",
}

func (k lineKind) String() string { return lineKindNames[k] }

type lineRule struct {
	match func(line string) bool
	kind  lineKind
}

func hasPrefix(prefix string) func(string) bool {
	return func(line string) bool { return strings.HasPrefix(line, prefix) }
}

// isTableEnd matches ");" and also a closing paren followed by table
// options, e.g. ") ENGINE=InnoDB DEFAULT CHARSET=utf8;".
func isTableEnd(line string) bool {
	return strings.HasPrefix(line, ")") && strings.HasSuffix(line, ";")
}

// Lines skipped in every state: comments, mysqldump locking, drops.
var ignoredRules = []lineRule{
	{func(line string) bool { return line == "" }, lineIgnored},
	{hasPrefix("--"), lineIgnored},
	{hasPrefix("/*"), lineIgnored},
	{hasPrefix("LOCK TABLES"), lineIgnored},
	{hasPrefix("UNLOCK TABLES"), lineIgnored},
	{hasPrefix("DROP TABLE"), lineIgnored},
}

// Rule order matters: the first matching rule wins.
var outsideRules = []lineRule{
	{hasPrefix("CREATE TABLE"), lineTableStart},
	{hasPrefix("INSERT INTO"), lineInsert},
	{isTableEnd, lineTableEnd},
}

var inTableRules = []lineRule{
	{hasPrefix(`"`), lineColumn},
	{hasPrefix("PRIMARY KEY"), linePrimaryKey},
	{hasPrefix("CONSTRAINT"), lineForeignKey},
	{hasPrefix("UNIQUE KEY"), lineKey},
	{hasPrefix("FULLTEXT KEY"), lineFulltextKey},
	{hasPrefix("KEY"), lineKey},
	{isTableEnd, lineTableEnd},
	{hasPrefix("CREATE TABLE"), lineTableStart},
}

// classifyLine returns the role of a normalized line in the given state.
// It is total: anything no rule claims is lineUnknown.
func classifyLine(state parseState, line string) lineKind {
	for _, r := range ignoredRules {
		if r.match(line) {
			return r.kind
		}
	}
	rules := outsideRules
	if state == stateInTable {
		rules = inTableRules
	}
	for _, r := range rules {
		if r.match(line) {
			return r.kind
		}
	}
	return lineUnknown
}
