package scope

import (
	"errors"
	"testing"
)

func TestDepthMatchesUnmatchedEnters(t *testing.T) {
	var s Stack
	if s.Depth() != 0 {
		t.Fatalf("fresh stack depth = %d, want 0", s.Depth())
	}

	s.Enter("a")
	s.Enter("b")
	s.Enter("c")
	if s.Depth() != 3 {
		t.Fatalf("depth after 3 enters = %d, want 3", s.Depth())
	}

	if err := s.Exit(); err != nil {
		t.Fatalf("Exit returned error: %v", err)
	}
	if s.Depth() != 2 {
		t.Fatalf("depth after exit = %d, want 2", s.Depth())
	}
}

func TestExitUnderflow(t *testing.T) {
	var s Stack
	err := s.Exit()
	if !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
	if s.Depth() != 0 {
		t.Fatalf("depth after underflow = %d, want 0", s.Depth())
	}

	// The stack stays usable after an underflow.
	s.Enter("after")
	if s.Depth() != 1 {
		t.Fatalf("depth after recovery = %d, want 1", s.Depth())
	}
}

func TestFramesCarryLabelsAndSequence(t *testing.T) {
	var s Stack
	first := s.Enter("build")
	second := s.Enter("compile")

	if first.Depth != 1 || second.Depth != 2 {
		t.Errorf("frame depths = %d, %d; want 1, 2", first.Depth, second.Depth)
	}
	if first.Label != "build" || second.Label != "compile" {
		t.Errorf("frame labels = %q, %q", first.Label, second.Label)
	}
	if second.OpenedAt <= first.OpenedAt {
		t.Errorf("OpenedAt must be monotonic: %d then %d", first.OpenedAt, second.OpenedAt)
	}

	frames := s.Frames()
	if len(frames) != 2 || frames[0].Label != "build" {
		t.Errorf("Frames() = %+v", frames)
	}
}

func TestResetClearsAllFrames(t *testing.T) {
	var s Stack
	s.Enter("a")
	s.Enter("b")
	s.Reset()
	if s.Depth() != 0 {
		t.Fatalf("depth after reset = %d, want 0", s.Depth())
	}

	// Sequence numbers keep advancing across resets.
	frame := s.Enter("c")
	if frame.OpenedAt != 3 {
		t.Errorf("OpenedAt after reset = %d, want 3", frame.OpenedAt)
	}
}
