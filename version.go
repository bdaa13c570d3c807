package main

import (
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X main.buildVersion=... -X main.buildCommit=...".
var (
	buildVersion = "dev"
	buildCommit  = ""
)

func versionString() string {
	commit := buildCommit
	if commit == "" {
		commit = vcsRevision()
	}
	return formatVersion(buildVersion, commit)
}

// vcsRevision returns the commit stamped by the go command, if any.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func formatVersion(version, commit string) string {
	v := strings.TrimSpace(version)
	if v == "" || v == "dev" {
		if c := shortCommit(commit); c != "" {
			return "dev-" + c
		}
		return "dev"
	}
	return v
}

func shortCommit(commit string) string {
	c := strings.TrimSpace(commit)
	if c == "unknown" {
		return ""
	}
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
