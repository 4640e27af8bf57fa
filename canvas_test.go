package dompdf_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/bmp"

	"github.com/hkvstore/dompdf"
	"github.com/hkvstore/dompdf/fpdf"
)

func newCanvas(t *testing.T, options ...any) *dompdf.Canvas {
	t.Helper()
	c := dompdf.New(append([]any{dompdf.Compression(false)}, options...)...)
	if err := c.NewPage(); err != nil {
		t.Fatal(err)
	}
	return c
}

// object records a text object and places it.
func object(t *testing.T, c *dompdf.Canvas, text, placement string) int {
	t.Helper()
	id := c.OpenObject()
	c.Text(10, 20, text, "helvetica", 10, dompdf.Black)
	if err := c.CloseObject(); err != nil {
		t.Fatal(err)
	}
	if err := c.AddObject(id, placement); err != nil {
		t.Fatal(err)
	}
	return id
}

// perPage counts the occurrences of text on every page, 1-based.
func perPage(c *dompdf.Canvas, text string) []int {
	n := make([]int, c.PageCount()+1)
	for p := 1; p <= c.PageCount(); p++ {
		n[p] = bytes.Count(c.Fpdf.Buffer(p), []byte("("+text+") Tj"))
	}
	return n
}

func TestHeaderAndAlternatingFooters(t *testing.T) {
	c := newCanvas(t)
	object(t, c, "HEADER", "all")
	object(t, c, "ODD", "odd")
	object(t, c, "EVEN", "even")
	object(t, c, "STAMP", "next")
	c.Text(50, 50, "BODY", "times", 12, dompdf.Black)
	for c.PageCount() < 4 {
		if err := c.NewPage(); err != nil {
			t.Fatal(err)
		}
	}
	out, err := c.OutputBytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("missing PDF header")
	}

	for text, want := range map[string][]int{
		"HEADER": {0, 1, 1, 1, 1},
		"ODD":    {0, 1, 0, 1, 0},
		"EVEN":   {0, 0, 1, 0, 1},
		"STAMP":  {0, 0, 1, 0, 0},
		"BODY":   {0, 1, 0, 0, 0},
	} {
		if diff := cmp.Diff(want, perPage(c, text)); diff != "" {
			t.Errorf("%s per page (-want +got):\n%s", text, diff)
		}
	}
}

func TestObjectRecordedBeforeFirstPage(t *testing.T) {
	c := dompdf.New(dompdf.Compression(false))
	object(t, c, "EARLY", "all")
	c.NewPage()
	c.NewPage()
	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 1, 1}, perPage(c, "EARLY")); diff != "" {
		t.Errorf("per page (-want +got):\n%s", diff)
	}
}

func TestStopObject(t *testing.T) {
	c := newCanvas(t)
	id := object(t, c, "FOOTER", "all")
	c.NewPage()
	c.StopObject(id)
	c.NewPage()
	c.StopObject(id)
	c.StopObject(12345)
	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 1, 1, 0}, perPage(c, "FOOTER")); diff != "" {
		t.Errorf("per page (-want +got):\n%s", diff)
	}
}

func TestReopenObject(t *testing.T) {
	c := newCanvas(t)
	c.Text(0, 0, "PAGE", "courier", 8, dompdf.Black)
	before := c.Fpdf.Buffer(1)

	id := c.OpenObject()
	c.Text(0, 0, "A", "courier", 8, dompdf.Black)
	c.CloseObject()
	if err := c.ReopenObject(id); err != nil {
		t.Fatal(err)
	}
	c.Text(0, 0, "B", "courier", 8, dompdf.Black)
	c.CloseObject()

	if got := c.Fpdf.Buffer(1); !bytes.Equal(got, before) {
		t.Errorf("page changed by recording: got=%q, want=%q", got, before)
	}
	c.AddObject(id, "add")
	c.OutputBytes()
	page := string(c.Fpdf.Buffer(1))
	a, b := strings.Index(page, "(A) Tj"), strings.Index(page, "(B) Tj")
	if a < 0 || b < a {
		t.Errorf("reopened object content out of order: %q", page)
	}
}

func TestReopenUnknownObject(t *testing.T) {
	c := newCanvas(t)
	if err := c.ReopenObject(99); err == nil {
		t.Error("expected error reopening an unknown object")
	}
	if err := c.CloseObject(); err == nil {
		t.Error("expected error closing without an open object")
	}
	if err := c.AddObject(1, "sometimes"); err == nil {
		t.Error("expected error for unknown object")
	}
}

func TestNewPageWhileRecording(t *testing.T) {
	c := newCanvas(t)
	c.OpenObject()
	if err := c.NewPage(); !errors.Is(err, dompdf.ErrRecordingActive) {
		t.Errorf("got=%v, want ErrRecordingActive", err)
	}
	if got, want := c.PageCount(), 1; got != want {
		t.Errorf("page count: got=%v, want=%v", got, want)
	}
	c.CloseObject()
	if err := c.NewPage(); err != nil {
		t.Error(err)
	}
}

func TestUnclosedObjectAtOutput(t *testing.T) {
	var log bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&log, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newCanvas(t, logger)
	c.Text(0, 0, "BODY", "helvetica", 8, dompdf.Black)
	c.OpenObject()
	c.Text(0, 0, "LOST", "helvetica", 8, dompdf.Black)

	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 1}, perPage(c, "BODY")); diff != "" {
		t.Errorf("per page (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 0}, perPage(c, "LOST")); diff != "" {
		t.Errorf("per page (-want +got):\n%s", diff)
	}
	if !strings.Contains(log.String(), "level=WARN") {
		t.Errorf("no warning logged:\n%s", log.String())
	}
	if !strings.Contains(log.String(), "object session opened") {
		t.Errorf("no debug diagnostics logged:\n%s", log.String())
	}
}

func TestUnclosedObjectWithoutPages(t *testing.T) {
	var log bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&log, nil))
	c := dompdf.New(dompdf.Compression(false), logger)
	c.OpenObject()
	c.Text(0, 0, "LOST", "helvetica", 8, dompdf.Black)

	out, err := c.OutputBytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("missing PDF header")
	}
	if diff := cmp.Diff([]int{0, 0}, perPage(c, "LOST")); diff != "" {
		t.Errorf("per page (-want +got):\n%s", diff)
	}
	if !strings.Contains(log.String(), "level=WARN") {
		t.Errorf("no warning logged:\n%s", log.String())
	}
}

func TestSessionRestoresTransformations(t *testing.T) {
	c := newCanvas(t)
	c.Save()
	c.Translate(5, 5)
	c.OpenObject()
	c.Restore()
	if err := c.CloseObject(); err != nil {
		t.Fatal(err)
	}
	c.Restore()
	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
}

func TestAddBeforeFirstPage(t *testing.T) {
	c := dompdf.New(dompdf.Compression(false))
	object(t, c, "ONCE", "add")
	object(t, c, "SOON", "next")
	c.NewPage()
	c.NewPage()
	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
	for text, want := range map[string][]int{
		"ONCE": {0, 1, 0},
		"SOON": {0, 1, 0},
	} {
		if diff := cmp.Diff(want, perPage(c, text)); diff != "" {
			t.Errorf("%s per page (-want +got):\n%s", text, diff)
		}
	}
}

func TestPageText(t *testing.T) {
	c := newCanvas(t)
	c.PageText(20, 800, "Page {PAGE_NUM} of {PAGE_COUNT}", "helvetica-bold", 9, dompdf.Black)
	c.NewPage()
	c.NewPage()
	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
	for p := 1; p <= 3; p++ {
		want := "Page " + string(rune('0'+p)) + " of 3"
		if got := perPage(c, want)[p]; got != 1 {
			t.Errorf("page %d: %q found %d times", p, want, got)
		}
	}
}

func TestPageScript(t *testing.T) {
	c := newCanvas(t)
	var calls [][2]int
	c.PageScript(func(pageNumber, pageCount int, pc *dompdf.Canvas) {
		calls = append(calls, [2]int{pageNumber, pageCount})
		pc.Line(0, 0, 100, 0, dompdf.RGB(255, 0, 0), 1, []float64{2, 2}, "round")
	})
	c.NewPage()
	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][2]int{{1, 2}, {2, 2}}, calls); diff != "" {
		t.Errorf("script calls (-want +got):\n%s", diff)
	}
	for p := 1; p <= 2; p++ {
		if page := string(c.Fpdf.Buffer(p)); !strings.Contains(page, " RG\n") {
			t.Errorf("page %d: script drawing missing", p)
		}
	}
}

func TestTranslucentColorIsScoped(t *testing.T) {
	c := newCanvas(t)
	c.FilledRectangle(0, 0, 10, 10, dompdf.Color{R: 1, Alpha: 0.5})
	if alpha, _ := c.Fpdf.GetAlpha(); alpha != 1 {
		t.Errorf("alpha leaked: got=%v, want=1", alpha)
	}
	page := string(c.Fpdf.Buffer(1))
	if !strings.Contains(page, "/GS1 gs") {
		t.Errorf("no transparency state in %q", page)
	}
	if err := c.Err(); err != nil {
		t.Error(err)
	}
}

func TestTransformations(t *testing.T) {
	c := newCanvas(t)
	c.Save()
	c.Translate(10, 10)
	c.Rotate(90, 50, 50)
	c.Scale(2, 2, 0, 0)
	c.Transform(1, 0, 0, 1, 5, 5)
	c.Rectangle(0, 0, 10, 10, dompdf.Black, 1, nil)
	c.Restore()
	c.ClippingRectangle(0, 0, 100, 100)
	c.ClippingPolygon([]float64{0, 0, 10, 0, 10, 10})
	c.ClippingEnd()
	c.ClippingEnd()
	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(c.Fpdf.Buffer(1)), " cm\n"); got != 4 {
		t.Errorf("cm operators: got=%v, want=4", got)
	}
}

func TestPolygonOddCoordinates(t *testing.T) {
	c := newCanvas(t)
	c.Polygon([]float64{0, 0, 10}, dompdf.Black, 1, nil, true, "")
	if c.Err() == nil {
		t.Error("expected error for odd coordinate count")
	}
}

func TestUnknownFontFamily(t *testing.T) {
	c := newCanvas(t)
	c.Text(0, 0, "x", "fantasy", 10, dompdf.Black)
	if c.Err() == nil {
		t.Error("expected error for unknown font family")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want dompdf.Color
		ok   bool
	}{
		{"#ff0000", dompdf.Color{R: 1, Alpha: 1}, true},
		{"00ff00", dompdf.Color{G: 1, Alpha: 1}, true},
		{"#fff", dompdf.Color{R: 1, G: 1, B: 1, Alpha: 1}, true},
		{"#000000ff", dompdf.Color{Alpha: 1}, true},
		{"#12", dompdf.Color{}, false},
		{"#zzzzzz", dompdf.Color{}, false},
	}
	for _, test := range tests {
		got, err := dompdf.ParseHexColor(test.in)
		if (err == nil) != test.ok {
			t.Errorf("%s: err=%v, want ok=%v", test.in, err, test.ok)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", test.in, diff)
		}
	}
}

func TestImageBMP(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.Gray{Y: 200})
	var data bytes.Buffer
	if err := bmp.Encode(&data, img); err != nil {
		t.Fatal(err)
	}
	readFile := fpdf.ReadFileFunc(func(path string) ([]byte, error) {
		return data.Bytes(), nil
	})
	c := newCanvas(t, readFile)
	c.Image("pixel.bmp", 10, 10, 30, 0)
	c.Image("pixel.bmp", 50, 10, 30, 0)
	out, err := c.OutputBytes()
	if err != nil {
		t.Fatal(err)
	}
	if got := bytes.Count(c.Fpdf.Buffer(1), []byte("/I1 Do")); got != 2 {
		t.Errorf("image draws: got=%v, want=2", got)
	}
	if got := bytes.Count(out, []byte("/Subtype /Image")); got != 1 {
		t.Errorf("embedded images: got=%v, want=1", got)
	}
}

func TestImageNotAnImage(t *testing.T) {
	c := newCanvas(t)
	if err := c.RegisterImage("junk", []byte("not an image")); err == nil {
		t.Error("expected error registering junk data")
	}
}

func TestStream(t *testing.T) {
	var written string
	var size int
	writeFile := fpdf.WriteFileFunc(func(path string, content []byte) error {
		written, size = path, len(content)
		return nil
	})
	c := newCanvas(t, writeFile, dompdf.Paper("letter"), fpdf.Landscape)
	if err := c.Stream("out.pdf"); err != nil {
		t.Fatal(err)
	}
	if got, want := written, "out.pdf"; got != want {
		t.Errorf("path: got=%v, want=%v", got, want)
	}
	if size == 0 {
		t.Error("nothing written")
	}
	if w, h := c.Fpdf.GetPageSize(); w != 792 || h != 612 {
		t.Errorf("page size: got=%vx%v, want=792x612", w, h)
	}
}

func TestAddInfo(t *testing.T) {
	c := newCanvas(t)
	c.AddInfo("Title", "Annual (draft)")
	c.AddInfo("Author", "Finance")
	c.AddInfo("Keywords", "report 2024")
	c.AddInfo("CreationDate", "2024-01-02T03:04:05Z")
	c.AddInfo("ModDate", "D:20240203040506")
	out, err := c.OutputBytes()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`/Title (Annual \(draft\))`,
		"/Author (Finance)",
		"/Keywords (report 2024)",
		"/Creator (dompdf)",
		"/CreationDate (D:20240102030405)",
		"/ModDate (D:20240203040506)",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestAddInfoErrors(t *testing.T) {
	c := newCanvas(t)
	c.AddInfo("CreationDate", "yesterday")
	if c.Err() == nil {
		t.Error("expected error for invalid date")
	}
	c = newCanvas(t)
	c.AddInfo("Colour", "blue")
	if c.Err() == nil {
		t.Error("expected error for unknown entry")
	}
}

func TestLineStyles(t *testing.T) {
	c := newCanvas(t)
	c.Line(0, 0, 10, 0, dompdf.Black, 1, nil, "round")
	c.Polygon([]float64{0, 0, 10, 0, 10, 10}, dompdf.Black, 1, nil, false, "bevel")
	c.Curve(0, 0, 10, 20, 30, 20, 40, 0, dompdf.Black, 1, nil)
	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	page := string(c.Fpdf.Buffer(1))
	for _, want := range []string{"1 J\n", "2 j\n", " c\n", " l S\n", "h\nS\n"} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not contain %q:\n%s", want, page)
		}
	}
}

func TestClippingRoundedRectangle(t *testing.T) {
	c := newCanvas(t)
	c.ClippingRoundedRectangle(10, 10, 100, 50, 5, 5, 5, 0)
	c.FilledRectangle(0, 0, 200, 200, dompdf.Black)
	c.ClippingEnd()
	if _, err := c.OutputBytes(); err != nil {
		t.Fatal(err)
	}
	page := string(c.Fpdf.Buffer(1))
	if got := strings.Count(page, " c\n"); got != 3 {
		t.Errorf("corner curves: got=%v, want=3", got)
	}
	if !strings.Contains(page, "h\nW n\n") {
		t.Errorf("no clipping path in %q", page)
	}
}

