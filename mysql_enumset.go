package main

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// parseEnumSetMembers returns the member literals of an enum(...) or
// set(...) type token, unquoted. Doubled and backslash-escaped quotes are
// both understood.
func parseEnumSetMembers(typeToken string) ([]string, error) {
	open := strings.IndexByte(typeToken, '(')
	close := strings.LastIndexByte(typeToken, ')')
	if open < 0 || close <= open {
		return nil, fmt.Errorf("invalid enum/set type %q", typeToken)
	}

	inside := typeToken[open+1 : close]
	var members []string
	i := 0
	for i < len(inside) {
		for i < len(inside) && (inside[i] == ' ' || inside[i] == ',') {
			i++
		}
		if i >= len(inside) {
			break
		}
		if inside[i] != '\'' {
			return nil, fmt.Errorf("invalid enum/set member list in %q", typeToken)
		}
		i++

		var b strings.Builder
		closed := false
		for i < len(inside) {
			c := inside[i]
			if c == '\\' && i+1 < len(inside) {
				b.WriteByte(inside[i+1])
				i += 2
				continue
			}
			if c == '\'' {
				if i+1 < len(inside) && inside[i+1] == '\'' {
					b.WriteByte('\'')
					i += 2
					continue
				}
				i++
				closed = true
				break
			}
			b.WriteByte(c)
			i++
		}
		if !closed {
			return nil, fmt.Errorf("unterminated enum/set member in %q", typeToken)
		}

		members = append(members, b.String())
	}

	return members, nil
}

// longestMember returns the length in characters of the longest member.
func longestMember(members []string) int {
	longest := 0
	for _, m := range members {
		if n := utf8.RuneCountInString(m); n > longest {
			longest = n
		}
	}
	return longest
}

// enumSetWidth sizes the varchar replacing an enum or set column. The
// members themselves are not carried over. When the literal list cannot be
// parsed it falls back to a plain comma split, as mysqldump output is
// normally well formed.
func enumSetWidth(typeToken string) int {
	members, err := parseEnumSetMembers(typeToken)
	if err != nil {
		open := strings.IndexByte(typeToken, '(')
		inside := strings.TrimSuffix(typeToken[open+1:], ")")
		members = nil
		for _, m := range strings.Split(inside, ",") {
			members = append(members, strings.Trim(strings.TrimSpace(m), "'"))
		}
	}
	// varchar(0) is not a valid type
	return max(longestMember(members), 1)
}
