package main

import "testing"

func TestParseColumnDef(t *testing.T) {
	tests := []struct {
		name string
		line string
		want columnDef
	}{
		{
			"unsigned int",
			`"id" int(11) unsigned NOT NULL,`,
			columnDef{Name: "id", Type: "int(11)", Extra: "NOT NULL", Flags: typeFlags{Unsigned: true}},
		},
		{
			"charset and collation stripped",
			`"title" varchar(20) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci DEFAULT NULL,`,
			columnDef{Name: "title", Type: "varchar(20)", Extra: "DEFAULT NULL", Flags: typeFlags{UTF8MB4: true, HasDefault: true}},
		},
		{
			"no modifiers",
			`"body" text,`,
			columnDef{Name: "body", Type: "text"},
		},
		{
			"no trailing comma",
			`"created" datetime NOT NULL`,
			columnDef{Name: "created", Type: "datetime", Extra: "NOT NULL"},
		},
		{
			"enum with spaces and commas",
			`"state" enum('new item','in, progress') NOT NULL DEFAULT 'new item',`,
			columnDef{Name: "state", Type: "enum('new item','in, progress')", Extra: "NOT NULL DEFAULT 'new item'", Flags: typeFlags{HasDefault: true}},
		},
		{
			"decimal with scale",
			`"price" decimal(10,2) signed NOT NULL DEFAULT '0.00',`,
			columnDef{Name: "price", Type: "decimal(10,2)", Extra: "NOT NULL DEFAULT '0.00'", Flags: typeFlags{HasDefault: true}},
		},
		{
			"unterminated name falls back to whole remainder",
			`"broken int(11),`,
			columnDef{Type: "broken int(11)"},
		},
		{
			"doubled quote in name",
			`"a""b" int(11) NOT NULL,`,
			columnDef{Name: `a"b`, Type: "int(11)", Extra: "NOT NULL"},
		},
		{
			"comment mentioning default",
			`"ts" timestamp NOT NULL COMMENT 'uses default time',`,
			columnDef{Name: "ts", Type: "timestamp", Extra: "NOT NULL COMMENT 'uses default time'"},
		},
		{
			"comment with modifier words left alone",
			`"n" int(11) NOT NULL COMMENT 'unsigned utf8mb4 CHARACTER SET latin1',`,
			columnDef{Name: "n", Type: "int(11)", Extra: "NOT NULL COMMENT 'unsigned utf8mb4 CHARACTER SET latin1'"},
		},
		{
			"default and comment",
			`"ts" timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP COMMENT 'it''s default',`,
			columnDef{Name: "ts", Type: "timestamp", Extra: "NOT NULL DEFAULT CURRENT_TIMESTAMP COMMENT 'it''s default'", Flags: typeFlags{HasDefault: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseColumnDef(tt.line)
			if got != tt.want {
				t.Errorf("parseColumnDef(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitTypeToken(t *testing.T) {
	tests := []struct {
		in, typ, extra string
	}{
		{"int(11) NOT NULL", "int(11)", "NOT NULL"},
		{"datetime", "datetime", ""},
		{"set('a','b c')", "set('a','b c')", ""},
		{"enum('a)','b') DEFAULT 'a)'", "enum('a)','b')", "DEFAULT 'a)'"},
		{"varchar(10", "varchar(10", ""},
		{"double NOT NULL DEFAULT '0'", "double", "NOT NULL DEFAULT '0'"},
	}
	for _, tt := range tests {
		typ, extra := splitTypeToken(tt.in)
		if typ != tt.typ || extra != tt.extra {
			t.Errorf("splitTypeToken(%q) = (%q, %q), want (%q, %q)", tt.in, typ, extra, tt.typ, tt.extra)
		}
	}
}

func TestDefaultClauseIndex(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"DEFAULT NULL", 0},
		{"NOT NULL DEFAULT '0'", 9},
		{"NOT NULL COMMENT 'uses default time'", -1},
		{"NOT NULL COMMENT 'DEFAULT'", -1},
		{`NOT NULL COMMENT "a DEFAULT b"`, -1},
		{"NOT NULL default 0", -1},
		{"DEFAULTS", -1},
		{"NOT NULL COMMENT 'x' DEFAULT 1", 21},
		{"", -1},
	}
	for _, tt := range tests {
		if got := defaultClauseIndex(tt.in); got != tt.want {
			t.Errorf("defaultClauseIndex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCleanModifiers(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"unsigned NOT NULL", "NOT NULL"},
		{"CHARACTER SET utf8 COLLATE utf8_bin NOT NULL", "NOT NULL"},
		{"NOT NULL COMMENT 'signed CHARACTER SET x'", "NOT NULL COMMENT 'signed CHARACTER SET x'"},
		{"DEFAULT 'it''s' COMMENT 'unsigned'", "DEFAULT 'it''s' COMMENT 'unsigned'"},
		{"COMMENT 'open", "COMMENT 'open"},
	}
	for _, tt := range tests {
		if got := cleanModifiers(tt.in); got != tt.want {
			t.Errorf("cleanModifiers(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
