package fpdf

import (
	"bytes"
	"slices"

	. "github.com/tinywasm/fmt"
)

// CurrentPage returns the page drawing operators go to, 0 before the first
// page. It is the same as PageNo().
func (f *Fpdf) CurrentPage() int {
	return f.page
}

// Buffer returns a copy of the content stream of page, or of the live buffer
// for page 0: the scratch buffer while recording, the current page otherwise.
func (f *Fpdf) Buffer(page int) []byte {
	if page == 0 {
		return bytes.Clone(f.sink().Bytes())
	}
	if page < 1 || page >= len(f.pages) {
		return nil
	}
	return bytes.Clone(f.pages[page].Bytes())
}

// SetBuffer replaces the content stream of page, or the live buffer for page
// 0, with content. With appendMode set, content is added at the end instead;
// content appended to a page is enclosed in a q/Q pair so that it cannot
// change the graphics state of what follows.
func (f *Fpdf) SetBuffer(page int, content []byte, appendMode bool) {
	if f.err != nil {
		return
	}
	var b *bytes.Buffer
	switch {
	case page == 0:
		b = f.sink()
	case page >= 1 && page < len(f.pages):
		b = f.pages[page]
	default:
		f.err = Errf("page %d does not exist", page)
		return
	}
	if !appendMode {
		b.Reset()
		b.Write(content)
		return
	}
	if len(content) == 0 {
		return
	}
	if page == 0 {
		b.Write(content)
		return
	}
	b.WriteString("q\n")
	b.Write(content)
	if content[len(content)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString("Q\n")
}

// SetRecording switches the live buffer. While on, drawing operators go to a
// scratch buffer and page buffers are left alone; switching on starts with an
// empty scratch buffer. Pages cannot be added while recording.
func (f *Fpdf) SetRecording(on bool) {
	if on == f.recording {
		return
	}
	f.recording = on
	f.scratch.Reset()
}

// Recording reports whether drawing operators go to the scratch buffer.
func (f *Fpdf) Recording() bool {
	return f.recording
}

// GraphicsState returns a copy of the current drawing parameters.
func (f *Fpdf) GraphicsState() GraphicsState {
	return GraphicsState{
		X:             f.x,
		Y:             f.y,
		LineWidth:     f.lineWidth,
		CapStyle:      f.capStyle,
		JoinStyle:     f.joinStyle,
		DashArray:     slices.Clone(f.dashArray),
		DashPhase:     f.dashPhase,
		DrawColor:     [3]int{f.color.draw.ir, f.color.draw.ig, f.color.draw.ib},
		FillColor:     [3]int{f.color.fill.ir, f.color.fill.ig, f.color.fill.ib},
		TextColor:     [3]int{f.color.text.ir, f.color.text.ig, f.color.text.ib},
		FontFamily:    f.fontFamily,
		FontStyle:     f.fontStyle,
		FontSizePt:    f.fontSizePt,
		Alpha:         f.alpha,
		BlendMode:     f.blendMode,
		CTM:           f.ctm,
		CTMStack:      slices.Clone(f.ctmStack),
		ClipNest:      f.clipNest,
		TransformNest: f.transformNest,
	}
}

// SetGraphicsState puts back parameters captured by GraphicsState. Only the
// bookkeeping changes; no operator is written, since the buffer the state was
// captured with is restored alongside it.
func (f *Fpdf) SetGraphicsState(gs GraphicsState) {
	f.x, f.y = gs.X, gs.Y
	f.lineWidth = gs.LineWidth
	f.capStyle = gs.CapStyle
	f.joinStyle = gs.JoinStyle
	f.dashArray = slices.Clone(gs.DashArray)
	f.dashPhase = gs.DashPhase
	f.color.draw = f.rgbColorValue(gs.DrawColor[0], gs.DrawColor[1], gs.DrawColor[2], "G", "RG")
	f.color.fill = f.rgbColorValue(gs.FillColor[0], gs.FillColor[1], gs.FillColor[2], "g", "rg")
	f.color.text = f.rgbColorValue(gs.TextColor[0], gs.TextColor[1], gs.TextColor[2], "g", "rg")
	f.colorFlag = f.color.fill.str != f.color.text.str
	f.fontFamily = gs.FontFamily
	f.fontStyle = gs.FontStyle
	f.fontSizePt = gs.FontSizePt
	f.fontSize = gs.FontSizePt / f.k
	f.currentFont = f.fonts[gs.FontFamily+gs.FontStyle]
	f.alpha = gs.Alpha
	f.blendMode = gs.BlendMode
	f.ctm = gs.CTM
	f.ctmStack = slices.Clone(gs.CTMStack)
	f.clipNest = gs.ClipNest
	f.transformNest = gs.TransformNest
}
