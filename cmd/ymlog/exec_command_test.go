package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"testing"

	"ymlog/internal/logging"
	"ymlog/internal/replay"
)

func TestForwardLinesEmitsEachLine(t *testing.T) {
	var lines []string
	err := forwardLines(strings.NewReader("one\ntwo\nthree"), func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("forwardLines: %v", err)
	}
	if len(lines) != 3 || lines[0] != "one" || lines[2] != "three" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestForwardLinesDrainsAfterOverlongLine(t *testing.T) {
	overlong := strings.Repeat("a", 2*1024*1024)
	r := strings.NewReader(overlong + "\nnever seen\n")

	var lines []string
	err := forwardLines(r, func(line string) { lines = append(lines, line) })
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("forwardLines error = %v, want bufio.ErrTooLong", err)
	}
	if len(lines) != 0 {
		t.Errorf("emitted lines after failed scan: %v", lines)
	}
	if r.Len() != 0 {
		t.Errorf("reader not drained, %d bytes left; the child would block", r.Len())
	}
}

func TestRunLoggedSurvivesOverlongOutputLine(t *testing.T) {
	shell, err := exec.LookPath("sh")
	if err != nil {
		t.Skipf("sh not available: %v", err)
	}

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "trace", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log := slog.New(logging.NewHandler(logger))

	args := []string{shell, "-c", `head -c 4194304 /dev/zero | tr '\0' 'a'; echo done`}
	code, runErr := runLogged(context.Background(), log, logger.Enter("run"), args)
	if runErr != nil {
		t.Fatalf("runLogged: %v", runErr)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := replay.Documents(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("log stream does not parse: %v", err)
	}
	var sawInterrupted, sawExited bool
	for _, entry := range replay.Flatten(entries) {
		if strings.Contains(entry.Message, "capture interrupted") {
			sawInterrupted = true
		}
		if entry.Message == "command exited" {
			sawExited = true
		}
	}
	if !sawInterrupted {
		t.Error("expected a record reporting the interrupted capture")
	}
	if !sawExited {
		t.Error("expected the final command exited record")
	}
}
