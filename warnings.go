package main

import (
	"fmt"
	"strings"
)

// targetNativeTypes are pass-through type prefixes the target accepts as is.
var targetNativeTypes = []string{
	"date", "time", "decimal", "numeric", "float", "real", "boolean", "bool",
}

func collectDroppedColumnWarnings(report *Report) []string {
	if report == nil {
		return nil
	}

	var warnings []string
	for _, t := range report.Tables {
		for _, col := range t.Columns {
			if !col.Dropped {
				continue
			}
			warnings = append(warnings, fmt.Sprintf(
				"column %s.%s (%s) has no target equivalent and was left out of the table",
				t.Name, col.Name, col.SourceType,
			))
		}
	}
	return warnings
}

func collectPassthroughTypeWarnings(report *Report) []string {
	if report == nil {
		return nil
	}

	var warnings []string
	for _, t := range report.Tables {
		for _, col := range t.Columns {
			if col.Dropped || !col.Passthrough || isTargetNativeType(col.Type) {
				continue
			}
			warnings = append(warnings, fmt.Sprintf(
				"column %s.%s keeps source type %q, which the target may reject",
				t.Name, col.Name, col.Type,
			))
		}
	}
	return warnings
}

func isTargetNativeType(t string) bool {
	t = strings.ToLower(t)
	for _, native := range targetNativeTypes {
		if t == native || strings.HasPrefix(t, native+"(") {
			return true
		}
	}
	return false
}
