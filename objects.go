package dompdf

import (
	"errors"

	"github.com/hkvstore/dompdf/fpdf"
	"github.com/hkvstore/dompdf/objects"
)

// ErrRecordingActive is returned by NewPage while an object is open.
var ErrRecordingActive = errors.New("dompdf: cannot start a page while an object is open")

// surface exposes the engine to the object manager.
type surface struct {
	pdf *fpdf.Fpdf
}

func (s surface) CurrentPage() int {
	return s.pdf.CurrentPage()
}

func (s surface) Buffer(page int) []byte {
	return s.pdf.Buffer(page)
}

func (s surface) SetBuffer(page int, content []byte, appendMode bool) {
	s.pdf.SetBuffer(page, content, appendMode)
}

func (s surface) CaptureState() objects.State {
	return s.pdf.GraphicsState()
}

func (s surface) RestoreState(st objects.State) {
	if gs, ok := st.(fpdf.GraphicsState); ok {
		s.pdf.SetGraphicsState(gs)
	}
}

func (s surface) SetRecording(on bool) {
	s.pdf.SetRecording(on)
}

func (s surface) Recording() bool {
	return s.pdf.Recording()
}

// OpenObject starts a new object and returns its id. Everything drawn until
// the matching CloseObject goes into the object instead of the page.
// Objects can be nested.
func (c *Canvas) OpenObject() int {
	return int(c.objects.OpenObject())
}

// ReopenObject resumes drawing into the closed object id.
func (c *Canvas) ReopenObject(id int) error {
	return c.objects.ReopenObject(objects.ObjectID(id))
}

// CloseObject closes the innermost open object.
func (c *Canvas) CloseObject() error {
	_, err := c.objects.CloseObject()
	return err
}

// AddObject places the closed object id on pages. placement is one of:
//
//	add       the current page
//	all       the current page and every following one (default)
//	odd       odd pages from the current one
//	even      even pages from the current one
//	next      the next page
//	nextodd   odd pages after the current one
//	nexteven  even pages after the current one
func (c *Canvas) AddObject(id int, placement string) error {
	return c.objects.AddObject(objects.ObjectID(id), placement)
}

// StopObject ends the placement of object id. The current page still
// receives the object if it is due there. Unknown ids are ignored.
func (c *Canvas) StopObject(id int) {
	c.objects.StopObject(objects.ObjectID(id))
}

// NewPage starts a new page. Objects placed on the page being left are
// added to it first.
func (c *Canvas) NewPage() error {
	if c.objects.Depth() > 0 {
		return ErrRecordingActive
	}
	c.Fpdf.AddPage()
	return c.Fpdf.Error()
}

// PageNumber returns the current page number, 0 before the first page.
func (c *Canvas) PageNumber() int {
	return c.Fpdf.PageNo()
}

// PageCount returns the number of pages.
func (c *Canvas) PageCount() int {
	return c.Fpdf.PageCount()
}

// PageText prints text on every page when the document is written. The
// placeholders {PAGE_NUM} and {PAGE_COUNT} are replaced with the page number
// and the page count.
func (c *Canvas) PageText(x, y float64, text, font string, size float64, col Color) {
	c.pageTexts = append(c.pageTexts, pageText{x: x, y: y, text: text, font: font, size: size, color: col})
}

// PageScript registers fn to draw on every page when the document is
// written. fn must not start pages or open objects.
func (c *Canvas) PageScript(fn func(pageNumber, pageCount int, c *Canvas)) {
	if fn != nil {
		c.pageScripts = append(c.pageScripts, fn)
	}
}
