package fpdf

import (
	"bytes"
	"time"

	"golang.org/x/text/encoding"
	"seehuhn.de/go/geom/matrix"
)

// Version of FPDF from which this package is derived
const (
	cnFpdfVersion = "1.7"
)

type blendModeType struct {
	strokeStr, fillStr, modeStr string
	objNum                      int
}

// WriteFileFunc is a function type for writing files, can be customized for WebAssembly
type WriteFileFunc func(filePath string, content []byte) error

// ReadFileFunc is a function type for reading files, can be customized for WebAssembly
type ReadFileFunc func(filePath string) ([]byte, error)

type Orientation string

const (
	// Portrait represents the portrait orientation.
	Portrait Orientation = "p"

	// Landscape represents the landscape orientation.
	Landscape Orientation = "l"
)

type unit string

const (
	// POINT represents the size unit point
	POINT unit = "pt"
	// MM represents the size unit millimeter
	MM unit = "mm"
	// CM represents the size unit centimeter
	CM unit = "cm"
	// IN represents the size unit inch
	IN unit = "inch"
)

// Standard page sizes in points (1/72 inch)
var (
	A3      = PageSize{Wd: 841.89, Ht: 1190.55}
	A4      = PageSize{Wd: 595.28, Ht: 841.89}
	A5      = PageSize{Wd: 420.94, Ht: 595.28}
	A6      = PageSize{Wd: 297.64, Ht: 420.94}
	Letter  = PageSize{Wd: 612, Ht: 792}
	Legal   = PageSize{Wd: 612, Ht: 1008}
	Tabloid = PageSize{Wd: 792, Ht: 1224}
)

var stdPageSizes = map[string]PageSize{
	"a3":      A3,
	"a4":      A4,
	"a5":      A5,
	"a6":      A6,
	"letter":  Letter,
	"legal":   Legal,
	"tabloid": Tabloid,
}

type colorType struct {
	r, g, b    float64
	ir, ig, ib int
	gray       bool
	str        string
}

// PageSize specifies the dimensions of a page in points.
type PageSize struct {
	Wd, Ht float64
}

// PointType fields X and Y specify the horizontal and vertical coordinates of
// a point, typically used in drawing.
type PointType struct {
	X, Y float64
}

// ImageInfoType contains size, color and other information about an image.
type ImageInfoType struct {
	data  []byte  // Raw or DCT-encoded image data
	smask []byte  // Soft Mask, an 8bit per-pixel transparency mask
	n     int     // Image object number
	w     float64 // Width in pixels
	h     float64 // Height in pixels
	cs    string  // Color space
	bpc   int     // Bits Per Component
	f     string  // Image filter
	i     string  // Resource name suffix
}

// Width returns the width of the image in pixels.
func (info *ImageInfoType) Width() float64 {
	return info.w
}

// Height returns the height of the image in pixels.
func (info *ImageInfoType) Height() float64 {
	return info.h
}

// coreFontType is one of the standard Type1 fonts every PDF viewer carries.
type coreFontType struct {
	baseFont string // "Helvetica-Bold", ...
	symbolic bool   // no WinAnsiEncoding for Symbol and ZapfDingbats
	i        string // 1-based position in font list
	n        int    // object number
}

// GraphicsState is a copy of the drawing parameters tracked by Fpdf. It is
// what a recording session saves and puts back; see Fpdf.GraphicsState.
type GraphicsState struct {
	X, Y          float64
	LineWidth     float64
	CapStyle      int
	JoinStyle     int
	DashArray     []float64
	DashPhase     float64
	DrawColor     [3]int
	FillColor     [3]int
	TextColor     [3]int
	FontFamily    string
	FontStyle     string
	FontSizePt    float64
	Alpha         float64
	BlendMode     string
	CTM           matrix.Matrix
	CTMStack      []matrix.Matrix
	ClipNest      int
	TransformNest int
}

// Fpdf is the principal structure for creating a single PDF document
type Fpdf struct {
	page           int                       // current page number
	n              int                       // current object number
	offsets        []int                     // array of object offsets
	buffer         fmtBuffer                 // buffer holding in-memory PDF
	pages          []*bytes.Buffer           // slice[page] of page content; 1-based
	scratch        bytes.Buffer              // live buffer while recording
	recording      bool                      // drawing goes to scratch instead of the page
	state          int                       // current document state
	compress       bool                      // compression flag
	k              float64                   // scale factor (number of points in user unit)
	defOrientation Orientation               // default orientation
	curOrientation Orientation               // current orientation
	defPageSize    PageSize                  // default page size
	curPageSize    PageSize                  // current page size
	pageSizes      map[int]PageSize          // used for pages with non default sizes or orientations
	unitType       unit                      // unit of measure for all rendered objects except fonts
	wPt, hPt       float64                   // dimensions of current page in points
	w, h           float64                   // dimensions of current page in user unit
	x, y           float64                   // current position in user unit
	lineWidth      float64                   // line width in user unit
	writeFile      WriteFileFunc             // function to write files, can be customized for WebAssembly
	readFile       ReadFileFunc              // function to read files, can be customized for WebAssembly
	fonts          map[string]*coreFontType  // used fonts by key (family + style)
	fontFamily     string                    // current font family
	fontStyle      string                    // current font style
	currentFont    *coreFontType             // current font info
	fontSizePt     float64                   // current font size in points
	fontSize       float64                   // current font size in user unit
	textEncoder    *encoding.Encoder         // UTF-8 to cp1252 for core fonts
	images         map[string]*ImageInfoType // array of used images
	footerFncLpi   func(bool)                // called when a page is left, with last page flag
	producer       string                    // producer
	title          string                    // title
	subject        string                    // subject
	author         string                    // author
	keywords       string                    // keywords
	creator        string                    // creator
	creationDate   time.Time                 // override for document CreationDate value
	modDate        time.Time                 // override for document ModDate value
	pdfVersion     pdfVersion                // PDF version number
	capStyle       int                       // line cap style: butt 0, round 1, square 2
	joinStyle      int                       // line segment join style: miter 0, round 1, bevel 2
	dashArray      []float64                 // dash array
	dashPhase      float64                   // dash phase
	blendList      []blendModeType           // slice[idx] of alpha transparency modes, 1-based
	blendMap       map[string]int            // map into blendList
	blendMode      string                    // current blend mode
	alpha          float64                   // current transparency
	clipNest       int                       // Number of active clipping contexts
	transformNest  int                       // Number of active transformation contexts
	ctm            matrix.Matrix             // current transformation matrix, PDF space
	ctmStack       []matrix.Matrix           // saved by TransformBegin
	err            error                     // Set if error occurs during life cycle of instance
	catalogSort    bool                      // sort resource catalogs in document
	colorFlag      bool                      // indicates whether fill and text colors are different
	color          struct {
		// Composite values of colors
		draw, fill, text colorType
	}

	fmt struct {
		col bytes.Buffer // buffer used to build color strings.
	}
}

const (
	pdfVers1_3 = pdfVersion(uint16(1)<<8 | uint16(3))
	pdfVers1_4 = pdfVersion(uint16(1)<<8 | uint16(4))
)

type pdfVersion uint16

func (v pdfVersion) String() string {
	return fmtInt(int(byte(v>>8))) + "." + fmtInt(int(byte(v)))
}
