package objects

// Surface is the part of a rendering engine that the object machinery
// drives. Page numbers are 1-based; page 0 addresses the live buffer, that
// is the buffer the engine currently writes drawing operators into.
//
// While recording is on, the engine must write into a scratch buffer of its
// own and leave all page buffers untouched.
type Surface interface {
	// CurrentPage returns the number of the active page, 0 before the
	// first page.
	CurrentPage() int

	// Buffer returns the content of the given page buffer, or of the live
	// buffer for page 0.
	Buffer(page int) []byte

	// SetBuffer replaces the content of the given buffer, or appends to it
	// when appendMode is set.
	SetBuffer(page int, content []byte, appendMode bool)

	CaptureState() State
	RestoreState(State)

	// SetRecording redirects the live buffer into (on) or out of (off) the
	// engine's scratch buffer.
	SetRecording(on bool)
	Recording() bool
}
