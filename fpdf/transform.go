package fpdf

import (
	. "github.com/tinywasm/fmt"
	"seehuhn.de/go/geom/matrix"
)

// TransformBegin sets up a transformation context for subsequent text,
// drawings and images. The typical usage is to immediately follow a call to
// this method with a call to one or more of the transformation methods such
// as TransformScale(), TransformRotate() or TransformTranslate(). The
// transformations apply until TransformEnd() is called.
func (f *Fpdf) TransformBegin() {
	f.transformNest++
	f.ctmStack = append(f.ctmStack, f.ctm)
	f.out("q")
}

// Transform concatenates m, given in PDF space (points, origin bottom-left),
// to the current transformation matrix. It must be called between
// TransformBegin() and TransformEnd().
func (f *Fpdf) Transform(m matrix.Matrix) {
	if f.err != nil {
		return
	}
	if f.transformNest <= 0 {
		f.err = Errf("transformation context is not active")
		return
	}
	f.ctm = m.Mul(f.ctm)
	const prec = 5
	for i, v := range m {
		if i > 0 {
			f.put(" ")
		}
		f.putF64(v, prec)
	}
	f.put(" cm\n")
}

// around returns m applied about the PDF-space point (px, py).
func around(m matrix.Matrix, px, py float64) matrix.Matrix {
	return matrix.Translate(-px, -py).Mul(m).Mul(matrix.Translate(px, py))
}

// TransformRotate rotates by angle degrees, clockwise as seen on the page,
// around the point (x, y).
func (f *Fpdf) TransformRotate(angle, x, y float64) {
	px, py := f.toPDF(x, y)
	f.Transform(around(matrix.RotateDeg(-angle), px, py))
}

// TransformScale scales by the factors sx and sy around the point (x, y).
// A zero factor is an error.
func (f *Fpdf) TransformScale(sx, sy, x, y float64) {
	if sx == 0 || sy == 0 {
		f.err = Errf("scale factor cannot be zero")
		return
	}
	px, py := f.toPDF(x, y)
	f.Transform(around(matrix.Scale(sx, sy), px, py))
}

// TransformTranslate moves the drawing origin by tx to the right and ty
// downwards, both in user units.
func (f *Fpdf) TransformTranslate(tx, ty float64) {
	f.Transform(matrix.Translate(tx*f.k, -ty*f.k))
}

// TransformEnd applies a transformation that was begun with a call to
// TransformBegin().
func (f *Fpdf) TransformEnd() {
	if f.err != nil {
		return
	}
	if f.transformNest <= 0 {
		f.err = Errf("error attempting to end transformation operation out of sequence")
		return
	}
	f.transformNest--
	f.ctm = f.ctmStack[len(f.ctmStack)-1]
	f.ctmStack = f.ctmStack[:len(f.ctmStack)-1]
	f.out("Q")
}

// CTM returns the current transformation matrix relative to the page, in PDF
// space.
func (f *Fpdf) CTM() matrix.Matrix {
	return f.ctm
}
