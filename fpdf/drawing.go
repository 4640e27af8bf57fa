package fpdf

import (
	"bytes"
	"slices"

	. "github.com/tinywasm/fmt"
)

// Names accepted by SetLineCapStyle and SetLineJoinStyle, indexed by their
// PDF operand.
var (
	capStyles  = []string{"butt", "round", "square"}
	joinStyles = []string{"miter", "round", "bevel"}
	blendModes = []string{"Normal", "Multiply", "Screen", "Overlay",
		"Darken", "Lighten", "ColorDodge", "ColorBurn", "HardLight", "SoftLight",
		"Difference", "Exclusion", "Hue", "Saturation", "Color", "Luminosity"}
)

// emit writes a graphics state operator to the live buffer. Before the first
// page, and outside a recording, the value is only remembered; AddPage
// writes it at the start of the page.
func (f *Fpdf) emit(op string) {
	if f.drawable() {
		f.out(op)
	}
}

// GetXY returns the current position.
func (f *Fpdf) GetXY() (float64, float64) {
	return f.x, f.y
}

// SetXY sets the current position.
func (f *Fpdf) SetXY(x, y float64) {
	f.x, f.y = x, y
}

// SetDrawColor sets the stroke color from RGB components (0 - 255).
func (f *Fpdf) SetDrawColor(r, g, b int) {
	f.color.draw = f.rgbColorValue(r, g, b, "G", "RG")
	f.emit(f.color.draw.str)
}

// GetDrawColor returns the stroke color as RGB components (0 - 255).
func (f *Fpdf) GetDrawColor() (int, int, int) {
	return f.color.draw.ir, f.color.draw.ig, f.color.draw.ib
}

// SetFillColor sets the fill color from RGB components (0 - 255).
func (f *Fpdf) SetFillColor(r, g, b int) {
	f.color.fill = f.rgbColorValue(r, g, b, "g", "rg")
	f.colorFlag = f.color.fill.str != f.color.text.str
	f.emit(f.color.fill.str)
}

// GetFillColor returns the fill color as RGB components (0 - 255).
func (f *Fpdf) GetFillColor() (int, int, int) {
	return f.color.fill.ir, f.color.fill.ig, f.color.fill.ib
}

// SetTextColor sets the text color from RGB components (0 - 255). Text
// writes it with each string, so nothing is emitted here.
func (f *Fpdf) SetTextColor(r, g, b int) {
	f.color.text = f.rgbColorValue(r, g, b, "g", "rg")
	f.colorFlag = f.color.fill.str != f.color.text.str
}

// GetTextColor returns the text color as RGB components (0 - 255).
func (f *Fpdf) GetTextColor() (int, int, int) {
	return f.color.text.ir, f.color.text.ig, f.color.text.ib
}

// SetLineWidth sets the stroke width in user units.
func (f *Fpdf) SetLineWidth(width float64) {
	f.lineWidth = width
	f.emit(fmtF64(width*f.k, 2) + " w")
}

// GetLineWidth returns the stroke width in user units.
func (f *Fpdf) GetLineWidth() float64 {
	return f.lineWidth
}

// SetLineCapStyle sets how open line ends are drawn: "butt", "round" or
// "square". Any other name selects "butt".
func (f *Fpdf) SetLineCapStyle(styleStr string) {
	f.capStyle = max(slices.Index(capStyles, styleStr), 0)
	f.emit(fmtInt(f.capStyle) + " J")
}

// SetLineJoinStyle sets how path segments meet: "miter", "round" or
// "bevel". Any other name selects "miter".
func (f *Fpdf) SetLineJoinStyle(styleStr string) {
	f.joinStyle = max(slices.Index(joinStyles, styleStr), 0)
	f.emit(fmtInt(f.joinStyle) + " j")
}

// SetDashPattern sets the dash pattern of strokes: dashArray holds
// alternating dash and gap lengths in user units, and dashPhase is the
// distance into the pattern at which strokes start. An empty dashArray
// draws solid lines.
func (f *Fpdf) SetDashPattern(dashArray []float64, dashPhase float64) {
	f.dashArray = make([]float64, len(dashArray))
	for i, v := range dashArray {
		f.dashArray[i] = v * f.k
	}
	f.dashPhase = dashPhase * f.k
	if f.drawable() {
		f.outputDashPattern()
	}
}

func (f *Fpdf) outputDashPattern() {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range f.dashArray {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(fmtF64(v, 2))
	}
	buf.WriteString("] " + fmtF64(f.dashPhase, 2) + " d")
	f.out(buf.String())
}

// SetAlpha sets the opacity, from 0 (transparent) to 1 (opaque), and the
// blend mode used by text, drawings and images. blendModeStr is one of the
// PDF blend mode names such as "Normal", "Multiply" or "Luminosity"; an empty
// string is "Normal". Using transparency raises the PDF version to 1.4.
func (f *Fpdf) SetAlpha(alpha float64, blendModeStr string) {
	if f.err != nil {
		return
	}
	if blendModeStr == "" {
		blendModeStr = "Normal"
	}
	if !slices.Contains(blendModes, blendModeStr) {
		f.err = Errf("unrecognized blend mode \"%s\"", blendModeStr)
		return
	}
	if alpha < 0 || alpha > 1 {
		f.err = Errf("alpha value (0.0 - 1.0) is out of range: %s", fmtF64(alpha, 3))
		return
	}
	f.alpha = alpha
	f.blendMode = blendModeStr
	f.emit("/GS" + fmtInt(f.blendIndex(alpha, blendModeStr)) + " gs")
}

// blendIndex returns the ExtGState number for alpha and mode, adding it to
// the document on first use.
func (f *Fpdf) blendIndex(alpha float64, mode string) int {
	alphaStr := fmtF64(alpha, 3)
	key := alphaStr + " " + mode
	pos, ok := f.blendMap[key]
	if !ok {
		pos = len(f.blendList)
		f.blendList = append(f.blendList, blendModeType{alphaStr, alphaStr, mode, 0})
		f.blendMap[key] = pos
	}
	f.pdfVersion = max(f.pdfVersion, pdfVers1_4)
	return pos
}

// GetAlpha returns the opacity and blend mode set by SetAlpha.
func (f *Fpdf) GetAlpha() (alpha float64, blendModeStr string) {
	return f.alpha, f.blendMode
}

// ClipRect restricts drawing to the rectangle with its upper left corner at
// (x, y) until ClipEnd. With outline set, the rectangle is also stroked.
func (f *Fpdf) ClipRect(x, y, w, h float64, outline bool) {
	f.clipNest++
	f.put("q ")
	f.rect(x, y, w, h)
	f.put("W " + strIf(outline, "S", "n") + "\n")
}

// ClipPolygon restricts drawing to the polygon through points until ClipEnd.
// With outline set, the polygon is also stroked.
func (f *Fpdf) ClipPolygon(points []PointType, outline bool) {
	f.clipNest++
	f.out("q")
	f.polyline(points)
	f.out("h W " + strIf(outline, "S", "n"))
}

// ClipRoundedRect restricts drawing until ClipEnd to the rectangle with its
// upper left corner at (x, y) whose corners are rounded with the radii tl,
// tr, br and bl, clockwise from the top left. A zero radius leaves that
// corner square.
func (f *Fpdf) ClipRoundedRect(x, y, w, h, tl, tr, br, bl float64, outline bool) {
	f.clipNest++
	f.out("q")
	f.MoveTo(x+tl, y)
	f.LineTo(x+w-tr, y)
	f.corner(x+w-tr, y+tr, tr, 90, 0)
	f.LineTo(x+w, y+h-br)
	f.corner(x+w-br, y+h-br, br, 0, -90)
	f.LineTo(x+bl, y+h)
	f.corner(x+bl, y+h-bl, bl, -90, -180)
	f.LineTo(x, y+tl)
	f.corner(x+tl, y+tl, tl, 180, 90)
	f.ClosePath()
	f.out("W " + strIf(outline, "S", "n"))
}

func (f *Fpdf) corner(cx, cy, r, from, to float64) {
	if r > 0 {
		f.ArcTo(cx, cy, r, r, 0, from, to)
	}
}

// ClipEnd ends the innermost clipping region. A document cannot be written
// while a clipping region is open.
func (f *Fpdf) ClipEnd() {
	if f.err != nil {
		return
	}
	if f.clipNest <= 0 {
		f.err = Errf("error attempting to end clip operation out of sequence")
		return
	}
	f.clipNest--
	f.out("Q")
}
