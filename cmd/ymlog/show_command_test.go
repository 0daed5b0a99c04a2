package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ymlog/internal/replay"
)

func TestFilterEntriesKeepsPlaceholders(t *testing.T) {
	entries := []replay.Entry{
		{Placeholder: true, Scope: "build"},
		{Level: "debug", Message: "noise"},
		{Level: "error", Message: "boom"},
	}

	filtered := filterEntries(entries, "warn")
	if len(filtered) != 2 {
		t.Fatalf("filtered = %d, want 2: %+v", len(filtered), filtered)
	}
	if !filtered[0].Placeholder || filtered[1].Message != "boom" {
		t.Errorf("unexpected filtering: %+v", filtered)
	}

	if got := filterEntries(entries, ""); len(got) != len(entries) {
		t.Errorf("empty level filter dropped entries: %+v", got)
	}
}

func TestEntryRow(t *testing.T) {
	placeholder := entryRow(replay.Entry{Placeholder: true, Scope: "build"})
	if placeholder[1] != "scope" || placeholder[3] != "build/" {
		t.Errorf("placeholder row: %v", placeholder)
	}

	row := entryRow(replay.Entry{
		Depth:   1,
		Level:   "info",
		Message: "two\nlines",
		Fields:  []replay.Field{{Key: "host", Value: "web 1"}},
	})
	if !strings.Contains(row[3], "\\n") {
		t.Errorf("multi-line message not folded: %q", row[3])
	}
	if row[4] != `host="web 1"` {
		t.Errorf("fields column: %q", row[4])
	}
}

func TestRenderEntryTable(t *testing.T) {
	out := renderEntryTable([]replay.Entry{
		{Placeholder: true, Scope: "build"},
		{Depth: 1, Level: "info", Message: "hello"},
	})
	if !strings.Contains(out, "DEPTH") || !strings.Contains(out, "hello") {
		t.Errorf("unexpected table output:\n%s", out)
	}
}

func TestShowFallsBackToPlainWhenOutputIsCaptured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	stream := "---\n- msg: hello\n  level: info\n"
	if err := os.WriteFile(path, []byte(stream), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	var buf bytes.Buffer
	cmd := newShowCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "0\tinfo\t\thello\t") {
		t.Errorf("expected tab-separated row, got:\n%s", out)
	}
	if strings.Contains(out, "DEPTH") {
		t.Errorf("decorated table written to a captured writer:\n%s", out)
	}
}
