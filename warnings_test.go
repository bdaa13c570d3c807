package main

import (
	"reflect"
	"testing"
)

func TestCollectDroppedColumnWarnings(t *testing.T) {
	report := &Report{Tables: []TableReport{{
		Name: "posts",
		Columns: []Column{
			{Name: "id", SourceType: "int(11)", Type: "integer"},
			{Name: "body", SourceType: "longtext", Dropped: true},
		},
	}}}
	want := []string{"column posts.body (longtext) has no target equivalent and was left out of the table"}
	if got := collectDroppedColumnWarnings(report); !reflect.DeepEqual(got, want) {
		t.Errorf("collectDroppedColumnWarnings() = %q, want %q", got, want)
	}
	if got := collectDroppedColumnWarnings(nil); got != nil {
		t.Errorf("collectDroppedColumnWarnings(nil) = %q, want nil", got)
	}
}

func TestCollectPassthroughTypeWarnings(t *testing.T) {
	report := &Report{Tables: []TableReport{{
		Name: "t",
		Columns: []Column{
			{Name: "d", SourceType: "date", Type: "date", Passthrough: true},
			{Name: "amount", SourceType: "decimal(10,2)", Type: "decimal(10,2)", Passthrough: true},
			{Name: "f", SourceType: "float", Type: "float", Passthrough: true},
			{Name: "geo", SourceType: "geometry", Type: "geometry", Passthrough: true},
			{Name: "ts", SourceType: "timestamp", Type: "timestamp"},
			{Name: "blob", SourceType: "blob", Dropped: true},
		},
	}}}
	want := []string{`column t.geo keeps source type "geometry", which the target may reject`}
	if got := collectPassthroughTypeWarnings(report); !reflect.DeepEqual(got, want) {
		t.Errorf("collectPassthroughTypeWarnings() = %q, want %q", got, want)
	}
}

func TestIsTargetNativeType(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{"date", true},
		{"DECIMAL(10,2)", true},
		{"time", true},
		{"float", true},
		{"timestamp", false},
		{"datetimeoffset", false},
		{"year(4)", false},
		{"geometry", false},
	}
	for _, tt := range tests {
		if got := isTargetNativeType(tt.typ); got != tt.want {
			t.Errorf("isTargetNativeType(%q) = %t, want %t", tt.typ, got, tt.want)
		}
	}
}
