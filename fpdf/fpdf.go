package fpdf

import (
	"bytes"
	"time"

	. "github.com/tinywasm/fmt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/geom/matrix"
)

var gl struct {
	catalogSort  bool
	noCompress   bool // Initial zero value indicates compression
	creationDate time.Time
	modDate      time.Time
}

type fmtBuffer struct {
	bytes.Buffer
}

func (b *fmtBuffer) printf(fmtStr string, args ...any) {
	b.Buffer.WriteString(Sprintf(fmtStr, args...))
}

// New returns a document builder. Options are matched by type:
//
//	unit             POINT, MM, CM or IN (default MM)
//	Orientation  Portrait or Landscape
//	PageSize         default page size in points
//	string           named page size such as "a4" or "letter"
//	WriteFileFunc    used by OutputFileAndClose
//	ReadFileFunc     used by RegisterImage
func New(options ...any) (f *Fpdf) {
	f = new(Fpdf)

	var size PageSize
	var sizeStr string

	f.defOrientation = Portrait
	f.unitType = MM
	f.writeFile = func(filePath string, content []byte) error {
		return Errf("writeFile function not configured for this environment")
	}
	f.readFile = func(filePath string) ([]byte, error) {
		return nil, Errf("readFile function not configured for this environment")
	}

	for _, opt := range options {
		switch v := opt.(type) {
		case unit:
			if v != "" {
				f.unitType = v
			}
		case Orientation:
			if v != "" {
				f.defOrientation = v
			}
		case PageSize:
			size = v
		case string:
			sizeStr = v
		case WriteFileFunc:
			if v != nil {
				f.writeFile = v
			}
		case ReadFileFunc:
			if v != nil {
				f.readFile = v
			}
		}
	}

	f.page = 0
	f.n = 2
	f.pages = make([]*bytes.Buffer, 0, 8)
	f.pages = append(f.pages, bytes.NewBufferString("")) // pages[0] is unused (1-based)
	f.pageSizes = make(map[int]PageSize)
	f.state = 0
	f.fonts = make(map[string]*coreFontType)
	f.images = make(map[string]*ImageInfoType)
	f.textEncoder = encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	f.fontFamily = ""
	f.fontStyle = ""
	f.SetDrawColor(0, 0, 0)
	f.SetFillColor(0, 0, 0)
	f.SetTextColor(0, 0, 0)
	f.colorFlag = false
	f.ctm = matrix.Identity

	// Scale factor
	switch f.unitType {
	case POINT:
		f.k = 1.0
	case MM:
		f.k = 72.0 / 25.4
	case CM:
		f.k = 72.0 / 2.54
	case IN:
		f.k = 72.0
	default:
		f.err = Errf("incorrect unit %s", string(f.unitType))
		return
	}
	f.SetFontSize(12)

	// Default page size, in points
	switch {
	case size.Wd > 0 && size.Ht > 0:
		f.defPageSize = size
	case sizeStr != "":
		f.defPageSize = f.pageSizeByName(sizeStr)
		if f.err != nil {
			return
		}
	default:
		f.defPageSize = A4
	}
	f.curPageSize = f.defPageSize
	switch f.defOrientation {
	case Portrait:
		f.w = f.defPageSize.Wd / f.k
		f.h = f.defPageSize.Ht / f.k
	case Landscape:
		f.w = f.defPageSize.Ht / f.k
		f.h = f.defPageSize.Wd / f.k
	default:
		f.err = Errf("incorrect orientation: %s", string(f.defOrientation))
		return
	}
	f.curOrientation = f.defOrientation
	f.wPt = f.w * f.k
	f.hPt = f.h * f.k
	// Line width (0.2 mm)
	f.lineWidth = 0.567 / f.k
	f.SetCompression(!gl.noCompress)
	f.blendList = make([]blendModeType, 0, 8)
	f.blendList = append(f.blendList, blendModeType{}) // blendList[0] is unused (1-based)
	f.blendMap = make(map[string]int)
	f.blendMode = "Normal"
	f.alpha = 1
	f.pdfVersion = pdfVers1_3
	f.SetProducer("FPDF " + cnFpdfVersion)
	f.catalogSort = gl.catalogSort
	f.creationDate = gl.creationDate
	f.modDate = gl.modDate
	return
}

// Ok returns true if no processing errors have occurred.
func (f *Fpdf) Ok() bool {
	return f.err == nil
}

// Err returns true if a processing error has occurred.
func (f *Fpdf) Err() bool {
	return f.err != nil
}

// SetErrorf sets the internal Fpdf error with formatted text to halt PDF
// generation. If an error condition is already set, this call is ignored.
func (f *Fpdf) SetErrorf(fmtStr string, args ...any) {
	if f.err == nil {
		f.err = Errf(fmtStr, args...)
	}
}

// String satisfies the fmt.Stringer interface and summarizes the Fpdf
// instance.
func (f *Fpdf) String() string {
	return "Fpdf " + cnFpdfVersion
}

// SetError sets an error to halt PDF generation. See also Ok(), Err() and
// Error().
func (f *Fpdf) SetError(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// Error returns the internal Fpdf error; this will be nil if no error has occurred.
func (f *Fpdf) Error() error {
	return f.err
}

// SetDefaultCompression controls the default setting of the internal
// compression flag. See SetCompression() for more details. Compression is on
// by default.
func SetDefaultCompression(compress bool) {
	gl.noCompress = !compress
}

// SetCompression activates or deactivates page compression with zlib. When
// activated, the internal representation of each page is compressed, which
// leads to a compression ratio of about 2 for the resulting document.
// Compression is on by default.
func (f *Fpdf) SetCompression(compress bool) {
	f.compress = compress
}

// SetProducer defines the producer of the document.
func (f *Fpdf) SetProducer(producerStr string) {
	f.producer = producerStr
}

// SetTitle defines the title of the document.
func (f *Fpdf) SetTitle(titleStr string) {
	f.title = titleStr
}

// SetSubject defines the subject of the document.
func (f *Fpdf) SetSubject(subjectStr string) {
	f.subject = subjectStr
}

// SetAuthor defines the author of the document.
func (f *Fpdf) SetAuthor(authorStr string) {
	f.author = authorStr
}

// SetKeywords defines the keywords of the document. keywordStr is a
// space-delimited string, for example "invoice August".
func (f *Fpdf) SetKeywords(keywordsStr string) {
	f.keywords = keywordsStr
}

// SetCreator defines the creator of the document.
func (f *Fpdf) SetCreator(creatorStr string) {
	f.creator = creatorStr
}

// open begins a document
func (f *Fpdf) open() {
	f.state = 1
}

// Close terminates the PDF document. It is not necessary to call this method
// explicitly because Output() does it automatically. If the document contains
// no page, AddPage() is called to prevent the generation of an invalid
// document.
func (f *Fpdf) Close() {
	if f.err != nil {
		return
	}
	if f.state == 3 {
		return
	}
	if f.page == 0 {
		f.AddPage()
		if f.err != nil {
			return
		}
	}
	// Page footer
	if f.footerFncLpi != nil {
		f.footerFncLpi(true)
	}
	switch {
	case f.recording:
		f.err = Errf("object recording must be closed before output")
	case f.clipNest > 0:
		f.err = Errf("clip procedure must be explicitly ended")
	case f.transformNest > 0:
		f.err = Errf("transformation procedure must be explicitly ended")
	}
	if f.err != nil {
		return
	}

	// Close page
	f.endpage()
	// Close document
	f.enddoc()
}

func colorComp(v int) (int, float64) {
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return v, float64(v) / 255.0
}

func (f *Fpdf) rgbColorValue(r, g, b int, grayStr, fullStr string) (clr colorType) {
	clr.ir, clr.r = colorComp(r)
	clr.ig, clr.g = colorComp(g)
	clr.ib, clr.b = colorComp(b)
	clr.gray = clr.ir == clr.ig && clr.ig == clr.ib
	const prec = 3
	f.fmt.col.Reset()
	if clr.gray {
		f.fmt.col.WriteString(fmtF64(clr.r, prec))
		f.fmt.col.WriteString(" ")
		f.fmt.col.WriteString(grayStr)
	} else {
		f.fmt.col.WriteString(fmtF64(clr.r, prec))
		f.fmt.col.WriteString(" ")
		f.fmt.col.WriteString(fmtF64(clr.g, prec))
		f.fmt.col.WriteString(" ")
		f.fmt.col.WriteString(fmtF64(clr.b, prec))
		f.fmt.col.WriteString(" ")
		f.fmt.col.WriteString(fullStr)
	}
	clr.str = f.fmt.col.String()
	return
}

// Escape special characters in strings
func (f *Fpdf) escape(s string) string {
	return Convert(s).Replace("\\", "\\\\").Replace("(", "\\(").Replace(")", "\\)").Replace("\r", "\\r").String()
}

// textstring formats a text string
func (f *Fpdf) textstring(s string) string {
	return "(" + f.escape(s) + ")"
}

// newobj begins a new object
func (f *Fpdf) newobj() {
	f.n++
	for j := len(f.offsets); j <= f.n; j++ {
		f.offsets = append(f.offsets, 0)
	}
	f.offsets[f.n] = f.buffer.Len()
	f.outf("%d 0 obj", f.n)
}

func (f *Fpdf) putstream(b []byte) {
	f.out("stream")
	must(f.buffer.Write(b))
	f.out("")
	f.out("endstream")
}

// sink returns the buffer drawing operators are written to: the scratch
// buffer while recording, the current page while a page is open, the
// document otherwise.
func (f *Fpdf) sink() *bytes.Buffer {
	switch {
	case f.recording:
		return &f.scratch
	case f.state == 2:
		return f.pages[f.page]
	}
	return &f.buffer.Buffer
}

// drawable reports whether graphics operators are emitted. Before the first
// page, parameters are only remembered, unless an object is being recorded.
func (f *Fpdf) drawable() bool {
	return f.page > 0 || f.recording
}

// out; Add a line to the document
func (f *Fpdf) out(s string) {
	b := f.sink()
	must(b.WriteString(s))
	must(b.WriteString("\n"))
}

func (f *Fpdf) put(s string) {
	must(f.sink().WriteString(s))
}

// outf adds a formatted line to the document
func (f *Fpdf) outf(fmtStr string, args ...any) {
	f.out(Sprintf(fmtStr, args...))
}

func (f *Fpdf) putF64(v float64, prec int) {
	f.put(fmtF64(v, prec))
}

// fmtF64 converts the floating-point number v to a string with precision prec.
func fmtF64(v float64, prec int) string {
	return Convert(v).Round(prec).String()
}

func fmtInt(v int) string {
	return Convert(v).String()
}

// SetDefaultCatalogSort makes new documents write their font, image and
// transparency catalogs in sorted order, so that output is reproducible.
func SetDefaultCatalogSort(flag bool) {
	gl.catalogSort = flag
}

func must(n int, err error) {
	if err != nil {
		panic(err)
	}
}

// strIf returns aStr if cnd is true, otherwise bStr
func strIf(cnd bool, aStr, bStr string) string {
	if cnd {
		return aStr
	}
	return bStr
}
