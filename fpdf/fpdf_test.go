package fpdf_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"

	"github.com/hkvstore/dompdf/fpdf"
)

func init() {
	fpdf.SetDefaultCompression(false)
	fpdf.SetDefaultCatalogSort(true)
	fpdf.SetDefaultCreationDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	fpdf.SetDefaultModificationDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New(fpdf.POINT, "a4")
	pdf.AddPage()
	return pdf
}

func TestOutputStructure(t *testing.T) {
	pdf := newDoc()
	pdf.SetFont("helvetica", "B", 14)
	pdf.Text(72, 72, "Hello")
	pdf.AddPage()
	pdf.Rect(10, 10, 50, 20, "D")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-1.3\n") {
		t.Errorf("missing header: %q", out[:min(len(out), 16)])
	}
	if !strings.HasSuffix(out, "%EOF\n") {
		t.Error("missing trailer")
	}
	for _, want := range []string{"/Count 2", "/BaseFont /Helvetica-Bold", "(Hello) Tj", " re S"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestRecordingLeavesPageUntouched(t *testing.T) {
	pdf := newDoc()
	pdf.Line(0, 0, 10, 10)
	before := pdf.Buffer(1)

	pdf.SetRecording(true)
	pdf.Rect(1, 2, 3, 4, "F")
	if got := pdf.Buffer(1); !bytes.Equal(got, before) {
		t.Errorf("page changed while recording: got=%q, want=%q", got, before)
	}
	if got := string(pdf.Buffer(0)); !strings.Contains(got, " re f") {
		t.Errorf("live buffer while recording: got=%q", got)
	}
	pdf.SetRecording(false)

	if got, want := string(pdf.Buffer(0)), string(before); got != want {
		t.Errorf("live buffer after recording: got=%q, want=%q", got, want)
	}
}

func TestRecordingBeforeFirstPage(t *testing.T) {
	pdf := fpdf.New(fpdf.POINT)
	pdf.SetRecording(true)
	pdf.SetDrawColor(255, 0, 0)
	pdf.Line(0, 0, 1, 1)
	if got := string(pdf.Buffer(0)); !strings.Contains(got, " RG\n") {
		t.Errorf("recording before first page: got=%q", got)
	}
	pdf.SetRecording(false)
}

func TestSetBufferAppendWrapsContent(t *testing.T) {
	pdf := newDoc()
	pdf.SetBuffer(1, nil, false)
	pdf.SetBuffer(1, []byte("0 0 m 1 1 l S"), true)
	if got, want := string(pdf.Buffer(1)), "q\n0 0 m 1 1 l S\nQ\n"; got != want {
		t.Errorf("appended buffer: got=%q, want=%q", got, want)
	}

	pdf.SetBuffer(7, []byte("x"), true)
	if pdf.Ok() {
		t.Error("expected error for missing page")
	}
}

func TestAddPageWhileRecording(t *testing.T) {
	pdf := newDoc()
	pdf.SetRecording(true)
	pdf.AddPage()
	if pdf.Ok() {
		t.Fatal("expected error adding a page while recording")
	}
	if got, want := pdf.PageCount(), 1; got != want {
		t.Errorf("page count: got=%v, want=%v", got, want)
	}
}

func TestCloseWhileRecording(t *testing.T) {
	pdf := newDoc()
	pdf.SetRecording(true)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err == nil {
		t.Error("expected error writing a document with an open recording")
	}
}

func TestGraphicsStateRoundTrip(t *testing.T) {
	pdf := newDoc()
	pdf.SetFont("times", "I", 9)
	pdf.SetLineWidth(2)
	pdf.SetDrawColor(10, 20, 30)
	pdf.SetFillColor(40, 50, 60)
	pdf.SetDashPattern([]float64{3, 1}, 0)
	pdf.SetAlpha(0.5, "Multiply")
	pdf.SetXY(7, 8)
	want := pdf.GraphicsState()

	pdf.SetFont("courier", "", 20)
	pdf.SetLineWidth(5)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetDashPattern(nil, 0)
	pdf.SetAlpha(1, "Normal")
	pdf.TransformBegin()
	pdf.TransformTranslate(10, 10)

	pdf.SetGraphicsState(want)
	if diff := cmp.Diff(want, pdf.GraphicsState()); diff != "" {
		t.Errorf("graphics state (-want +got):\n%s", diff)
	}
	if r, g, b := pdf.GetDrawColor(); r != 10 || g != 20 || b != 30 {
		t.Errorf("draw color: got=%d,%d,%d", r, g, b)
	}
	if fam, style := pdf.GetFont(); fam != "times" || style != "I" {
		t.Errorf("font: got=%s %s", fam, style)
	}
	if pt, _ := pdf.GetFontSize(); pt != 9 {
		t.Errorf("font size: got=%v, want=9", pt)
	}
	if r, g, b := pdf.GetFillColor(); r != 40 || g != 50 || b != 60 {
		t.Errorf("fill color: got=%d,%d,%d", r, g, b)
	}
	if r, g, b := pdf.GetTextColor(); r != 0 || g != 0 || b != 0 {
		t.Errorf("text color: got=%d,%d,%d", r, g, b)
	}
	if got := pdf.GetLineWidth(); got != 2 {
		t.Errorf("line width: got=%v, want=2", got)
	}
	if x, y := pdf.GetXY(); x != 7 || y != 8 {
		t.Errorf("position: got=%v,%v", x, y)
	}
}

func TestTransformNesting(t *testing.T) {
	pdf := newDoc()
	pdf.TransformBegin()
	pdf.TransformTranslate(10, 20)
	if got, want := pdf.CTM(), matrix.Translate(10, -20); got != want {
		t.Errorf("ctm: got=%v, want=%v", got, want)
	}
	pdf.TransformBegin()
	pdf.TransformScale(2, 2, 0, 0)
	pdf.TransformEnd()
	if got, want := pdf.CTM(), matrix.Translate(10, -20); got != want {
		t.Errorf("ctm after inner end: got=%v, want=%v", got, want)
	}
	pdf.TransformEnd()
	if got := pdf.CTM(); got != matrix.Identity {
		t.Errorf("ctm after outer end: got=%v", got)
	}

	pdf.TransformEnd()
	if pdf.Ok() {
		t.Error("expected error ending a transformation out of sequence")
	}
}

func TestGraphicsStateRestoresTransformStack(t *testing.T) {
	pdf := newDoc()
	pdf.TransformBegin()
	pdf.TransformTranslate(10, 20)
	saved := pdf.GraphicsState()

	pdf.SetRecording(true)
	pdf.TransformEnd()
	pdf.SetRecording(false)
	pdf.SetGraphicsState(saved)

	if got, want := pdf.CTM(), matrix.Translate(10, -20); got != want {
		t.Errorf("ctm after restore: got=%v, want=%v", got, want)
	}
	pdf.TransformEnd()
	if !pdf.Ok() {
		t.Fatal(pdf.Error())
	}
	if got := pdf.CTM(); got != matrix.Identity {
		t.Errorf("ctm after end: got=%v", got)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Error(err)
	}
}

func TestPathOperators(t *testing.T) {
	pdf := newDoc()
	pdf.SetLineCapStyle("square")
	pdf.SetLineJoinStyle("round")
	pdf.MoveTo(10, 10)
	pdf.LineTo(50, 10)
	pdf.ArcTo(50, 30, 20, 20, 0, 90, -90)
	pdf.CurveBezierCubicTo(40, 60, 20, 60, 10, 50)
	pdf.ClosePath()
	pdf.DrawPath("DF")
	if !pdf.Ok() {
		t.Fatal(pdf.Error())
	}
	if x, y := pdf.GetXY(); x != 10 || y != 50 {
		t.Errorf("position: got=%v,%v, want=10,50", x, y)
	}
	page := string(pdf.Buffer(1))
	for op, want := range map[string]int{" m\n": 1, " l\n": 1, " c\n": 3, "h\n": 1, "B\n": 1, "2 J\n": 1, "1 j\n": 1} {
		if got := strings.Count(page, op); got != want {
			t.Errorf("%q operators: got=%v, want=%v", op, got, want)
		}
	}
}

func TestArcSegments(t *testing.T) {
	pdf := newDoc()
	pdf.Circle(100, 100, 20, "F")
	pdf.Arc(100, 100, 30, 10, 45, 0, 90, "D")
	page := string(pdf.Buffer(1))
	if got := strings.Count(page, " c\n"); got != 5 {
		t.Errorf("curve segments: got=%v, want=5", got)
	}
	if !strings.Contains(page, "f\n") || !strings.Contains(page, "S\n") {
		t.Errorf("missing painting operators in %q", page)
	}
}

func TestTransformOutsideContext(t *testing.T) {
	pdf := newDoc()
	pdf.TransformRotate(45, 0, 0)
	if pdf.Ok() {
		t.Error("expected error transforming without TransformBegin")
	}
}

func TestClipNesting(t *testing.T) {
	pdf := newDoc()
	pdf.ClipRect(0, 0, 10, 10, false)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err == nil {
		t.Error("expected error writing a document with an open clip")
	}

	pdf = newDoc()
	pdf.ClipPolygon([]fpdf.PointType{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 5}}, true)
	pdf.ClipEnd()
	if err := pdf.Output(&buf); err != nil {
		t.Error(err)
	}
}

func TestSetAlphaErrors(t *testing.T) {
	pdf := newDoc()
	pdf.SetAlpha(2, "Normal")
	if pdf.Ok() {
		t.Error("expected error for alpha out of range")
	}
	pdf = newDoc()
	pdf.SetAlpha(0.5, "Sparkle")
	if pdf.Ok() {
		t.Error("expected error for unknown blend mode")
	}
}

func TestFooterCalledOnPageLeave(t *testing.T) {
	pdf := fpdf.New(fpdf.POINT)
	var calls []int
	var last []bool
	pdf.SetFooterFuncLpi(func(lastPage bool) {
		calls = append(calls, pdf.PageNo())
		last = append(last, lastPage)
	})
	pdf.AddPage()
	pdf.AddPage()
	pdf.AddPage()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, calls); diff != "" {
		t.Errorf("footer pages (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, false, true}, last); diff != "" {
		t.Errorf("last page flags (-want +got):\n%s", diff)
	}
}

func TestUnknownFont(t *testing.T) {
	pdf := newDoc()
	pdf.SetFont("comic", "", 10)
	if pdf.Ok() {
		t.Error("expected error for unknown font")
	}
}

func TestTextWithoutFont(t *testing.T) {
	pdf := newDoc()
	pdf.Text(0, 0, "x")
	if pdf.Ok() {
		t.Error("expected error printing without a font")
	}
}

func TestImageTransparentPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 128})
	var data bytes.Buffer
	if err := png.Encode(&data, img); err != nil {
		t.Fatal(err)
	}

	pdf := newDoc()
	info := pdf.RegisterImageReader("dot", "", &data)
	if !pdf.Ok() {
		t.Fatal(pdf.Error())
	}
	if got, want := info.Width(), 4.0; got != want {
		t.Errorf("width: got=%v, want=%v", got, want)
	}
	pdf.Image("dot", 10, 10, 40, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-1.4") {
		t.Error("transparent image should require PDF 1.4")
	}
	for _, want := range []string{"/I1 Do", "/SMask", "/ColorSpace /DeviceGray"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestImageReadFile(t *testing.T) {
	var read string
	readFile := fpdf.ReadFileFunc(func(path string) ([]byte, error) {
		read = path
		var data bytes.Buffer
		err := png.Encode(&data, image.NewGray(image.Rect(0, 0, 1, 1)))
		return data.Bytes(), err
	})
	pdf := fpdf.New(fpdf.POINT, readFile)
	pdf.AddPage()
	pdf.Image("logo.png", 0, 0, 0, 0)
	if !pdf.Ok() {
		t.Fatal(pdf.Error())
	}
	if got, want := read, "logo.png"; got != want {
		t.Errorf("read path: got=%v, want=%v", got, want)
	}
}

func ExampleFpdf_SetRecording() {
	pdf := fpdf.New(fpdf.POINT)
	pdf.AddPage()
	pdf.SetRecording(true)
	pdf.Line(0, 0, 10, 0)
	stamp := pdf.Buffer(0)
	pdf.SetRecording(false)
	pdf.SetBuffer(1, stamp, true)
	// Output:
}
