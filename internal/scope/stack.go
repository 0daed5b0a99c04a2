package scope

import "errors"

// ErrUnderflow reports an Exit call with no matching Enter. Callers recover
// by clamping depth to zero and logging a warning; logging code must never
// take the host program down.
var ErrUnderflow = errors.New("scope exit without matching enter")

// Frame is one level of the nesting stack.
type Frame struct {
	Depth    int
	Label    string
	OpenedAt uint64 // monotonic sequence number of the Enter call
}

// Stack tracks unmatched Enter calls. The zero value is ready to use.
type Stack struct {
	frames []Frame
	seq    uint64
}

// Enter pushes a new frame one level deeper and returns it. Every Enter is
// expected to be paired with exactly one Exit.
func (s *Stack) Enter(label string) Frame {
	s.seq++
	frame := Frame{
		Depth:    len(s.frames) + 1,
		Label:    label,
		OpenedAt: s.seq,
	}
	s.frames = append(s.frames, frame)
	return frame
}

// Exit pops the top frame. Exiting an empty stack returns ErrUnderflow and
// leaves the depth clamped at zero.
func (s *Stack) Exit() error {
	if len(s.frames) == 0 {
		return ErrUnderflow
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Depth reports the number of unmatched Enter calls. Never negative.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Frames returns the open frames, outermost first. The slice aliases the
// stack's storage and is only valid until the next mutation.
func (s *Stack) Frames() []Frame {
	return s.frames
}

// Reset drops every open frame, returning the stack to depth zero.
func (s *Stack) Reset() {
	s.frames = s.frames[:0]
}
