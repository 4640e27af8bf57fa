package dompdf

import (
	"strings"

	"github.com/tinywasm/fmt"
	"seehuhn.de/go/geom/matrix"

	"github.com/hkvstore/dompdf/fpdf"
)

// Every drawing call sets the colors and line parameters it uses, so that a
// recorded object does not depend on the state of the page it is placed on.

// scoped runs fn inside a q/Q pair and puts the engine's bookkeeping back
// afterwards.
func (c *Canvas) scoped(fn func()) {
	gs := c.Fpdf.GraphicsState()
	c.Fpdf.TransformBegin()
	fn()
	c.Fpdf.TransformEnd()
	c.Fpdf.SetGraphicsState(gs)
}

// paint runs fn, inside a scope with the color's opacity applied when it is
// translucent.
func (c *Canvas) paint(col Color, fn func()) {
	alpha := col.opacity()
	if alpha >= 1 {
		fn()
		return
	}
	c.scoped(func() {
		current, mode := c.Fpdf.GetAlpha()
		c.Fpdf.SetAlpha(current*alpha, mode)
		fn()
	})
}

// stroke sets the stroke parameters. lineCap is "butt", "round" or "square" and
// join is "miter", "round" or "bevel".
func (c *Canvas) stroke(col Color, width float64, style []float64, lineCap, join string) {
	c.Fpdf.SetDrawColor(col.rgb255())
	c.Fpdf.SetLineWidth(width)
	c.Fpdf.SetLineCapStyle(lineCap)
	c.Fpdf.SetLineJoinStyle(join)
	c.Fpdf.SetDashPattern(style, 0)
}

func (c *Canvas) fill(col Color) {
	c.Fpdf.SetFillColor(col.rgb255())
}

// Line draws a line from (x1, y1) to (x2, y2). style is a dash pattern of
// alternating dash and gap lengths; nil draws a solid line. lineCap is the line
// end style, "butt", "round" or "square"; empty means "butt".
func (c *Canvas) Line(x1, y1, x2, y2 float64, col Color, width float64, style []float64, lineCap string) {
	c.paint(col, func() {
		c.stroke(col, width, style, lineCap, "")
		c.Fpdf.Line(x1, y1, x2, y2)
	})
}

// Curve draws a cubic Bézier curve from (x0, y0) to (x3, y3) with the
// control points (x1, y1) and (x2, y2).
func (c *Canvas) Curve(x0, y0, x1, y1, x2, y2, x3, y3 float64, col Color, width float64, style []float64) {
	c.paint(col, func() {
		c.stroke(col, width, style, "butt", "")
		c.Fpdf.MoveTo(x0, y0)
		c.Fpdf.CurveBezierCubicTo(x1, y1, x2, y2, x3, y3)
		c.Fpdf.DrawPath("D")
	})
}

// Rectangle outlines the rectangle with its upper left corner at (x, y).
func (c *Canvas) Rectangle(x, y, w, h float64, col Color, width float64, style []float64) {
	c.paint(col, func() {
		c.stroke(col, width, style, "square", "miter")
		c.Fpdf.Rect(x, y, w, h, "D")
	})
}

// FilledRectangle fills the rectangle with its upper left corner at (x, y).
func (c *Canvas) FilledRectangle(x, y, w, h float64, col Color) {
	c.paint(col, func() {
		c.fill(col)
		c.Fpdf.Rect(x, y, w, h, "F")
	})
}

// Circle draws a circle of radius r centered on (x, y), filled with col
// when fill is set and outlined otherwise.
func (c *Canvas) Circle(x, y, r float64, col Color, width float64, style []float64, fill bool) {
	c.paint(col, func() {
		if fill {
			c.fill(col)
			c.Fpdf.Circle(x, y, r, "F")
			return
		}
		c.stroke(col, width, style, "round", "round")
		c.Fpdf.Circle(x, y, r, "D")
	})
}

// Arc outlines an elliptical arc centered on (x, y) with radii rx and ry.
// Angles are in degrees, counter-clockwise from the 3 o'clock position.
func (c *Canvas) Arc(x, y, rx, ry, start, end float64, col Color, width float64, style []float64) {
	c.paint(col, func() {
		c.stroke(col, width, style, "butt", "")
		c.Fpdf.Arc(x, y, rx, ry, 0, start, end, "D")
	})
}

// Polygon draws the closed polygon through points, given as x, y pairs.
// join is the corner style, "miter", "round" or "bevel"; empty means
// "miter".
func (c *Canvas) Polygon(points []float64, col Color, width float64, style []float64, fill bool, join string) {
	pts, ok := c.points(points)
	if !ok {
		return
	}
	c.paint(col, func() {
		if fill {
			c.fill(col)
			c.Fpdf.Polygon(pts, "F")
			return
		}
		c.stroke(col, width, style, "square", join)
		c.Fpdf.Polygon(pts, "D")
	})
}

func (c *Canvas) points(coords []float64) ([]fpdf.PointType, bool) {
	if len(coords)%2 != 0 {
		c.Fpdf.SetErrorf("odd number of polygon coordinates: %d", len(coords))
		return nil, false
	}
	pts := make([]fpdf.PointType, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		pts = append(pts, fpdf.PointType{X: coords[i], Y: coords[i+1]})
	}
	return pts, true
}

// Text prints text with its baseline starting at (x, y). font names a core
// font family, "helvetica", "times" or "courier" (or the generic
// "sans-serif", "serif" and "monospace"), optionally followed by "-bold",
// "-italic" or "-bold-italic". size is in points.
func (c *Canvas) Text(x, y float64, text, font string, size float64, col Color) {
	family, style := parseFont(font)
	c.paint(col, func() {
		c.Fpdf.SetFont(family, style, size)
		c.Fpdf.SetTextColor(col.rgb255())
		c.fill(col)
		c.Fpdf.Text(x, y, text)
	})
}

func parseFont(font string) (family, style string) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(font)), "-")
	family = parts[0]
	rest := parts[1:]
	if family == "sans" && len(rest) > 0 && rest[0] == "serif" {
		rest = rest[1:]
		family = "sans-serif"
	}
	switch family {
	case "", "sans-serif", "arial":
		family = "helvetica"
	case "serif":
		family = "times"
	case "monospace":
		family = "courier"
	}
	for _, p := range rest {
		switch p {
		case "bold":
			style += "B"
		case "italic", "oblique":
			style += "I"
		}
	}
	return family, style
}

// SetOpacity sets the opacity (0..1) and blend mode of everything drawn
// afterwards. mode is a PDF blend mode name such as "Multiply"; an empty
// mode is "Normal".
func (c *Canvas) SetOpacity(opacity float64, mode string) {
	c.Fpdf.SetAlpha(opacity, mode)
}

// ClippingRectangle restricts drawing to a rectangle until ClippingEnd.
func (c *Canvas) ClippingRectangle(x, y, w, h float64) {
	c.Fpdf.ClipRect(x, y, w, h, false)
}

// ClippingRoundedRectangle restricts drawing to a rectangle with rounded
// corners until ClippingEnd. The radii are given clockwise from the top
// left corner.
func (c *Canvas) ClippingRoundedRectangle(x, y, w, h, tl, tr, br, bl float64) {
	c.Fpdf.ClipRoundedRect(x, y, w, h, tl, tr, br, bl, false)
}

// ClippingPolygon restricts drawing to a polygon, given as x, y pairs, until
// ClippingEnd.
func (c *Canvas) ClippingPolygon(points []float64) {
	if pts, ok := c.points(points); ok {
		c.Fpdf.ClipPolygon(pts, false)
	}
}

// ClippingEnd ends the innermost clipping region.
func (c *Canvas) ClippingEnd() {
	c.Fpdf.ClipEnd()
}

// Save pushes the graphics state. Transformations apply until the matching
// Restore.
func (c *Canvas) Save() {
	c.Fpdf.TransformBegin()
}

// Restore pops the graphics state pushed by Save.
func (c *Canvas) Restore() {
	c.Fpdf.TransformEnd()
}

// Rotate rotates by angle degrees, clockwise, around (x, y).
func (c *Canvas) Rotate(angle, x, y float64) {
	c.Fpdf.TransformRotate(angle, x, y)
}

// Scale scales by sx and sy around (x, y).
func (c *Canvas) Scale(sx, sy, x, y float64) {
	c.Fpdf.TransformScale(sx, sy, x, y)
}

// Translate moves the origin by tx to the right and ty down.
func (c *Canvas) Translate(tx, ty float64) {
	c.Fpdf.TransformTranslate(tx, ty)
}

// Transform concatenates the matrix [a b c d e f], in PDF space, to the
// current transformation.
func (c *Canvas) Transform(a, b, cc, d, e, f float64) {
	c.Fpdf.Transform(matrix.Matrix{a, b, cc, d, e, f})
}

// expandPageText substitutes the page placeholders of a page text.
func expandPageText(text string, page, count int) string {
	return strings.NewReplacer(
		"{PAGE_NUM}", fmt.Convert(page).String(),
		"{PAGE_COUNT}", fmt.Convert(count).String(),
	).Replace(text)
}
