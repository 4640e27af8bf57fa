package fpdf

import (
	. "github.com/tinywasm/fmt"
)

// coreFamilies maps a family and style to the base font name of the
// standard Type1 fonts.
var coreFamilies = map[string]string{
	"courier":      "Courier",
	"courierB":     "Courier-Bold",
	"courierI":     "Courier-Oblique",
	"courierBI":    "Courier-BoldOblique",
	"helvetica":    "Helvetica",
	"helveticaB":   "Helvetica-Bold",
	"helveticaI":   "Helvetica-Oblique",
	"helveticaBI":  "Helvetica-BoldOblique",
	"times":        "Times-Roman",
	"timesB":       "Times-Bold",
	"timesI":       "Times-Italic",
	"timesBI":      "Times-BoldItalic",
	"symbol":       "Symbol",
	"zapfdingbats": "ZapfDingbats",
}

// SetFont sets the font used to print character strings. It is mandatory to
// call this method at least once before printing text.
//
// familyStr is one of the standard families: "courier", "helvetica" ("arial"
// is a synonym), "times", "symbol" or "zapfdingbats". An empty string keeps
// the current family.
//
// styleStr can be "" (regular), "B" (bold), "I" (italic) or any combination.
// Symbol and ZapfDingbats have no styles.
//
// size is the font size in points. The default value is the current size, 12
// when no size has been specified since the document was created.
func (f *Fpdf) SetFont(familyStr, styleStr string, size float64) {
	if f.err != nil {
		return
	}
	familyStr = Convert(familyStr).ToLower().String()
	if familyStr == "" {
		familyStr = f.fontFamily
	}
	if familyStr == "arial" {
		familyStr = "helvetica"
	}
	styleStr = Convert(styleStr).ToUpper().String()
	if styleStr == "IB" {
		styleStr = "BI"
	}
	if familyStr == "symbol" || familyStr == "zapfdingbats" {
		styleStr = ""
	}
	if size == 0.0 {
		size = f.fontSizePt
	}
	// Test if font is already selected
	if f.fontFamily == familyStr && f.fontStyle == styleStr && f.fontSizePt == size {
		return
	}
	fontkey := familyStr + styleStr
	font, ok := f.fonts[fontkey]
	if !ok {
		base, known := coreFamilies[fontkey]
		if !known {
			f.err = Errf("undefined font: %s %s", familyStr, styleStr)
			return
		}
		font = &coreFontType{
			baseFont: base,
			symbolic: familyStr == "symbol" || familyStr == "zapfdingbats",
			i:        fmtInt(len(f.fonts) + 1),
		}
		f.fonts[fontkey] = font
	}
	f.fontFamily = familyStr
	f.fontStyle = styleStr
	f.currentFont = font
	f.fontSizePt = size
	f.fontSize = size / f.k
	if f.drawable() {
		f.out("BT /F" + font.i + " " + fmtF64(f.fontSizePt, 2) + " Tf ET")
	}
}

// SetFontSize defines the size of the current font in points.
func (f *Fpdf) SetFontSize(size float64) {
	if size <= 0 || (f.fontSizePt == size && f.currentFont != nil) {
		return
	}
	f.fontSizePt = size
	f.fontSize = size / f.k
	if f.currentFont != nil && f.drawable() {
		f.out("BT /F" + f.currentFont.i + " " + fmtF64(f.fontSizePt, 2) + " Tf ET")
	}
}

// GetFontSize returns the size of the current font in both points (pt) and
// the unit of measure specified in New() (u).
func (f *Fpdf) GetFontSize() (pt, u float64) {
	return f.fontSizePt, f.fontSize
}

// GetFont returns the current font family and style.
func (f *Fpdf) GetFont() (familyStr, styleStr string) {
	return f.fontFamily, f.fontStyle
}

// Text prints a character string. The origin (x, y) is on the left of the
// first character, on the baseline. The string is converted from UTF-8 to
// the WinAnsi encoding of the core fonts; characters outside that encoding
// are replaced.
func (f *Fpdf) Text(x, y float64, txtStr string) {
	if f.err != nil {
		return
	}
	if f.currentFont == nil {
		f.err = Errf("font has not been set; unable to render text")
		return
	}
	txt := txtStr
	if !f.currentFont.symbolic {
		enc, err := f.textEncoder.String(txtStr)
		if err != nil {
			f.err = err
			return
		}
		txt = enc
	}
	s := "BT /F" + f.currentFont.i + " " + fmtF64(f.fontSizePt, 2) + " Tf " +
		fmtF64(x*f.k, 2) + " " + fmtF64((f.h-y)*f.k, 2) + " Td " + f.textstring(txt) + " Tj ET"
	if f.colorFlag {
		s = "q " + f.color.text.str + " " + s + " Q"
	}
	f.out(s)
}
