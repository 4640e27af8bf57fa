package fpdf

import (
	"math"

	. "github.com/tinywasm/fmt"
	"seehuhn.de/go/geom/matrix"
)

// toPDF converts (x, y) from user space, origin top-left with y growing
// downwards, to PDF space in points, origin bottom-left with y growing
// upwards.
func (f *Fpdf) toPDF(x, y float64) (float64, float64) {
	return x * f.k, (f.h - y) * f.k
}

func (f *Fpdf) fromPDF(px, py float64) (float64, float64) {
	return px / f.k, f.h - py/f.k
}

// putCoords writes PDF space coordinates followed by the operator op.
func (f *Fpdf) putCoords(op string, prec int, xy ...float64) {
	for _, v := range xy {
		f.putF64(v, prec)
		f.put(" ")
	}
	f.put(op + "\n")
}

// MoveTo starts a new subpath at (x, y). A path is built with MoveTo,
// LineTo, CurveBezierCubicTo, ArcTo and ClosePath and painted with DrawPath.
func (f *Fpdf) MoveTo(x, y float64) {
	px, py := f.toPDF(x, y)
	f.putCoords("m", 2, px, py)
	f.x, f.y = x, y
}

// LineTo adds a straight segment from the current position to (x, y).
func (f *Fpdf) LineTo(x, y float64) {
	px, py := f.toPDF(x, y)
	f.putCoords("l", 2, px, py)
	f.x, f.y = x, y
}

// CurveBezierCubicTo adds a cubic Bézier segment from the current position
// to (x, y) with the control points (cx0, cy0) and (cx1, cy1).
func (f *Fpdf) CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y float64) {
	ax, ay := f.toPDF(cx0, cy0)
	bx, by := f.toPDF(cx1, cy1)
	px, py := f.toPDF(x, y)
	f.putCoords("c", 5, ax, ay, bx, by, px, py)
	f.x, f.y = x, y
}

// ArcTo adds an elliptical arc centered on (x, y) with radii rx and ry,
// rotated counter-clockwise by degRotate. degStart and degEnd are measured
// counter-clockwise from the 3 o'clock position. A straight segment joins
// the current position to the start of the arc when they differ.
func (f *Fpdf) ArcTo(x, y, rx, ry, degRotate, degStart, degEnd float64) {
	f.arc(x, y, rx, ry, degRotate, degStart, degEnd, true)
}

// ClosePath closes the current subpath with a straight segment back to its
// start.
func (f *Fpdf) ClosePath() {
	f.out("h")
}

var paintOps = map[string]string{
	"":    "S",
	"D":   "S",
	"F":   "f",
	"F*":  "f*",
	"FD":  "B",
	"DF":  "B",
	"FD*": "B*",
	"DF*": "B*",
}

// fillDrawOp maps a style ("D" stroke, "F" fill, "DF" both, with a "*"
// suffix for the even-odd rule) to its painting operator. Unknown styles
// are passed through as operators.
func fillDrawOp(styleStr string) string {
	if op, ok := paintOps[Convert(styleStr).ToUpper().String()]; ok {
		return op
	}
	return styleStr
}

// DrawPath paints the current path; see fillDrawOp for styleStr.
func (f *Fpdf) DrawPath(styleStr string) {
	f.out(fillDrawOp(styleStr))
}

// arc writes an elliptical arc as Bézier segments of at most 90 degrees
// each. Inside a path it continues from the current position; otherwise it
// starts a new subpath.
func (f *Fpdf) arc(x, y, rx, ry, degRotate, degStart, degEnd float64, path bool) {
	cx, cy := f.toPDF(x, y)
	m := matrix.RotateDeg(degRotate).Mul(matrix.Translate(cx, cy))
	rx, ry = rx*f.k, ry*f.k

	t0 := degStart * math.Pi / 180
	sweep := (degEnd - degStart) * math.Pi / 180
	n := max(1, int(math.Ceil(math.Abs(sweep)/(math.Pi/2)-1e-9)))
	dt := sweep / float64(n)
	h := 4.0 / 3 * math.Tan(dt/4)

	// point and tangent of the unrotated ellipse at angle t
	at := func(t float64) (px, py, dx, dy float64) {
		sin, cos := math.Sincos(t)
		return rx * cos, ry * sin, -rx * sin, ry * cos
	}

	x0, y0, dx0, dy0 := at(t0)
	sx, sy := m.Apply(x0, y0)
	if !path {
		f.putCoords("m", 2, sx, sy)
	} else if ux, uy := f.fromPDF(sx, sy); math.Abs(ux-f.x) > 1e-6 || math.Abs(uy-f.y) > 1e-6 {
		f.putCoords("l", 2, sx, sy)
	}
	for i := 1; i <= n; i++ {
		x1, y1, dx1, dy1 := at(t0 + float64(i)*dt)
		ax, ay := m.Apply(x0+h*dx0, y0+h*dy0)
		bx, by := m.Apply(x1-h*dx1, y1-h*dy1)
		ex, ey := m.Apply(x1, y1)
		f.putCoords("c", 5, ax, ay, bx, by, ex, ey)
		x0, y0, dx0, dy0 = x1, y1, dx1, dy1
	}
	if path {
		f.x, f.y = f.fromPDF(m.Apply(x0, y0))
	}
}

// Line draws a line from (x1, y1) to (x2, y2) with the current stroke
// settings. The current position is not changed.
func (f *Fpdf) Line(x1, y1, x2, y2 float64) {
	ax, ay := f.toPDF(x1, y1)
	bx, by := f.toPDF(x2, y2)
	f.putCoords("m", 2, ax, ay)
	f.putCoords("l S", 2, bx, by)
}

// rect writes the rectangle with its upper left corner at (x, y), leaving
// the painting operator to the caller.
func (f *Fpdf) rect(x, y, w, h float64) {
	px, py := f.toPDF(x, y)
	for _, v := range []float64{px, py, w * f.k, -h * f.k} {
		f.putF64(v, 2)
		f.put(" ")
	}
	f.put("re ")
}

// Rect draws the rectangle of width w and height h with its upper left
// corner at (x, y); see fillDrawOp for styleStr.
func (f *Fpdf) Rect(x, y, w, h float64, styleStr string) {
	f.rect(x, y, w, h)
	f.put(fillDrawOp(styleStr) + "\n")
}

// Circle draws the circle of radius r centered on (x, y).
func (f *Fpdf) Circle(x, y, r float64, styleStr string) {
	f.Arc(x, y, r, r, 0, 0, 360, styleStr)
}

// Arc draws an elliptical arc as a path of its own; the arguments are those
// of ArcTo.
func (f *Fpdf) Arc(x, y, rx, ry, degRotate, degStart, degEnd float64, styleStr string) {
	f.arc(x, y, rx, ry, degRotate, degStart, degEnd, false)
	f.DrawPath(styleStr)
}

func (f *Fpdf) polyline(points []PointType) {
	for i, pt := range points {
		px, py := f.toPDF(pt.X, pt.Y)
		f.putCoords(strIf(i == 0, "m", "l"), 5, px, py)
	}
}

// Polygon draws the closed polygon through points. Fewer than three points
// draw nothing.
func (f *Fpdf) Polygon(points []PointType, styleStr string) {
	if len(points) < 3 {
		return
	}
	f.polyline(points)
	f.ClosePath()
	f.DrawPath(styleStr)
}
