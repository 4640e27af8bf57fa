package objects

// State is an opaque graphics state captured by a Surface. The objects
// package never looks inside it; it only hands it back to the surface.
type State interface{}

// BufferSnapshot is a capture of the live buffer at one point in time.
// Content is only kept when the live buffer was the scratch buffer of an
// enclosing session; page buffers are never written while recording.
type BufferSnapshot struct {
	Content []byte
	Page    int
	State   State

	recording bool
}

// Capture records the page, the graphics state and the recording mode of s,
// plus a copy of the scratch buffer when s is already recording.
func Capture(s Surface) BufferSnapshot {
	b := BufferSnapshot{
		Page:      s.CurrentPage(),
		State:     s.CaptureState(),
		recording: s.Recording(),
	}
	if b.recording {
		b.Content = clone(s.Buffer(0))
	}
	return b
}

// Restore writes the snapshot back into s. The recording flag goes first:
// it decides which buffer is live, and the content must land in that one.
// Page content spliced while the session was open is left alone.
func (b BufferSnapshot) Restore(s Surface) {
	s.SetRecording(b.recording)
	if b.recording {
		s.SetBuffer(0, clone(b.Content), false)
	}
	s.RestoreState(b.State)
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
