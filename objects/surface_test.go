package objects_test

import (
	"github.com/hkvstore/dompdf/objects"
)

// memState is the graphics state of memSurface.
type memState struct {
	LineWidth float64
	Color     string
}

// memSurface is an in-memory objects.Surface: one buffer per page and a
// scratch buffer used while recording.
type memSurface struct {
	pages     [][]byte // 1-based, pages[0] unused
	page      int
	scratch   []byte
	recording bool
	state     memState
}

func newMemSurface() *memSurface {
	return &memSurface{pages: [][]byte{nil}, state: memState{LineWidth: 1, Color: "black"}}
}

func (s *memSurface) addPage() {
	s.pages = append(s.pages, []byte{})
	s.page = len(s.pages) - 1
}

func (s *memSurface) draw(op string) {
	if s.recording {
		s.scratch = append(s.scratch, op...)
		return
	}
	s.pages[s.page] = append(s.pages[s.page], op...)
}

func (s *memSurface) CurrentPage() int { return s.page }

func (s *memSurface) Buffer(page int) []byte {
	if page == 0 {
		if s.recording {
			return s.scratch
		}
		return s.pages[s.page]
	}
	return s.pages[page]
}

func (s *memSurface) SetBuffer(page int, content []byte, appendMode bool) {
	buf := &s.scratch
	switch {
	case page > 0:
		buf = &s.pages[page]
	case !s.recording:
		buf = &s.pages[s.page]
	}
	if appendMode {
		*buf = append(*buf, content...)
	} else {
		*buf = append([]byte{}, content...)
	}
}

func (s *memSurface) CaptureState() objects.State { return s.state }

func (s *memSurface) RestoreState(st objects.State) { s.state = st.(memState) }

func (s *memSurface) SetRecording(on bool) { s.recording = on }

func (s *memSurface) Recording() bool { return s.recording }
