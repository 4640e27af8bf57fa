package fpdf

import (
	"bytes"
	"io"
	"sort"
	"time"

	. "github.com/tinywasm/fmt"
	"seehuhn.de/go/geom/matrix"
)

// AddPageFormat adds a new page with non-default orientation or size. See
// AddPage() for more details. size is in points.
func (f *Fpdf) AddPageFormat(orientationStr Orientation, size PageSize) {
	if f.err != nil {
		return
	}
	if f.recording {
		f.err = Errf("cannot add a page while an object is being recorded")
		return
	}
	if f.page != len(f.pages)-1 {
		f.page = len(f.pages) - 1
	}
	if f.state == 0 {
		f.open()
	}
	familyStr := f.fontFamily
	style := f.fontStyle
	fontsize := f.fontSizePt
	lw := f.lineWidth
	dc := f.color.draw
	fc := f.color.fill
	tc := f.color.text
	cf := f.colorFlag

	if f.page > 0 {
		if f.footerFncLpi != nil {
			f.footerFncLpi(false) // not last page.
		}
		// Close page
		f.endpage()
	}
	// Start new page
	f.beginpage(orientationStr, size)
	// Set line cap style to current value
	f.outf("%d J", f.capStyle)
	// Set line join style to current value
	f.outf("%d j", f.joinStyle)
	// Set line width
	f.lineWidth = lw
	f.out(fmtF64(lw*f.k, 2) + " w")
	// Set dash pattern
	if len(f.dashArray) > 0 {
		f.outputDashPattern()
	}
	// Set font
	if familyStr != "" {
		f.SetFont(familyStr, style, fontsize)
		if f.err != nil {
			return
		}
	}
	// Set colors
	f.color.draw = dc
	if dc.str != "0 G" {
		f.out(dc.str)
	}
	f.color.fill = fc
	if fc.str != "0 g" {
		f.out(fc.str)
	}
	f.color.text = tc
	f.colorFlag = cf
}

// AddPage adds a new page to the document. If a page is already present, the
// footer function is called first with the page being left still current.
// Then the page is added with the default size and orientation.
//
// The font, colors, line width and dash pattern which were set before calling
// are carried over to the new page.
//
// The origin of the coordinate system is at the top-left corner and increasing
// ordinates go downwards.
func (f *Fpdf) AddPage() {
	if f.err != nil {
		return
	}
	f.AddPageFormat(f.defOrientation, f.defPageSize)
}

// PageNo returns the current page number.
func (f *Fpdf) PageNo() int {
	return f.page
}

// SetPage sets the current page to that of a valid page in the PDF document.
// pageNum is one-based.
func (f *Fpdf) SetPage(pageNum int) {
	if (pageNum > 0) && (pageNum < len(f.pages)) {
		f.page = pageNum
	}
}

// PageCount returns the number of pages currently in the document. Since page
// numbers are one-based, the page count is the same as the page number of the
// current last page.
func (f *Fpdf) PageCount() int {
	return len(f.pages) - 1
}

// GetPageSize returns the current page's width and height in user units.
func (f *Fpdf) GetPageSize() (width, height float64) {
	return f.w, f.h
}

// SetFooterFuncLpi sets the function called whenever a page is left: by
// AddPage(), with lastPage false and the page being left still current, and by
// Close(), with lastPage true, before the last page is closed.
func (f *Fpdf) SetFooterFuncLpi(fnc func(lastPage bool)) {
	f.footerFncLpi = fnc
}

// Output sends the PDF document to the writer specified by w. No output will
// take place if an error has occurred in the document generation process. w
// remains open after this function returns.
func (f *Fpdf) Output(w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	if f.state < 3 {
		f.Close()
	}
	if f.err != nil {
		return f.err
	}
	_, err := f.buffer.WriteTo(w)
	if err != nil {
		f.err = err
	}
	return f.err
}

// OutputFileAndClose creates or truncates the file specified by fileStr and
// writes the PDF document to it through the configured WriteFileFunc.
func (f *Fpdf) OutputFileAndClose(fileStr string) error {
	if f.err != nil {
		return f.err
	}
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return err
	}
	f.err = f.writeFile(fileStr, buf.Bytes())
	return f.err
}

func (f *Fpdf) pageSizeByName(sizeStr string) (size PageSize) {
	size, ok := stdPageSizes[Convert(sizeStr).ToLower().String()]
	if !ok {
		f.err = Errf("unknown page size %s", sizeStr)
	}
	return
}

func (f *Fpdf) beginpage(newPageOrientation Orientation, size PageSize) {
	if f.err != nil {
		return
	}
	f.page++
	f.pages = append(f.pages, bytes.NewBufferString(""))
	f.state = 2
	f.x = 0
	f.y = 0
	f.fontFamily = ""
	f.ctm = matrix.Identity
	if newPageOrientation != f.curOrientation || size.Wd != f.curPageSize.Wd || size.Ht != f.curPageSize.Ht {
		// New size or orientation
		if newPageOrientation == Portrait {
			f.w = size.Wd / f.k
			f.h = size.Ht / f.k
		} else {
			f.w = size.Ht / f.k
			f.h = size.Wd / f.k
		}
		f.wPt = f.w * f.k
		f.hPt = f.h * f.k
		f.curOrientation = newPageOrientation
		f.curPageSize = size
	}
	if newPageOrientation != f.defOrientation || size.Wd != f.defPageSize.Wd || size.Ht != f.defPageSize.Ht {
		f.pageSizes[f.page] = PageSize{Wd: f.wPt, Ht: f.hPt}
	}
}

func (f *Fpdf) endpage() {
	f.state = 1
}

func (f *Fpdf) putpages() {
	var wPt, hPt float64
	nb := f.PageCount()
	if f.defOrientation == Portrait {
		wPt = f.defPageSize.Wd
		hPt = f.defPageSize.Ht
	} else {
		wPt = f.defPageSize.Ht
		hPt = f.defPageSize.Wd
	}
	pagesObjectNumbers := make([]int, nb+1) // 1-based
	for n := 1; n <= nb; n++ {
		// Page
		f.newobj()
		pagesObjectNumbers[n] = f.n // save for /Kids
		f.out("<</Type /Page")
		f.out("/Parent 1 0 R")
		if pageSize, ok := f.pageSizes[n]; ok {
			f.out("/MediaBox [0 0 " + fmtF64(pageSize.Wd, 2) + " " + fmtF64(pageSize.Ht, 2) + "]")
		}
		f.out("/Resources 2 0 R")
		if f.pdfVersion > pdfVers1_3 {
			f.out("/Group <</Type /Group /S /Transparency /CS /DeviceRGB>>")
		}
		f.outf("/Contents %d 0 R>>", f.n+1)
		f.out("endobj")
		// Page content
		f.newobj()
		if f.compress {
			mem := zpool.deflate(f.pages[n].Bytes())
			data := mem.bytes()
			f.outf("<</Filter /FlateDecode /Length %d>>", len(data))
			f.putstream(data)
			mem.release()
		} else {
			f.outf("<</Length %d>>", f.pages[n].Len())
			f.putstream(f.pages[n].Bytes())
		}
		f.out("endobj")
	}
	// Pages root
	f.offsets[1] = f.buffer.Len()
	f.out("1 0 obj")
	f.out("<</Type /Pages")
	var kids fmtBuffer
	kids.printf("/Kids [")
	for i := 1; i <= nb; i++ {
		kids.printf("%d 0 R ", pagesObjectNumbers[i])
	}
	kids.printf("]")
	f.out(kids.String())
	f.outf("/Count %d", nb)
	f.out("/MediaBox [0 0 " + fmtF64(wPt, 2) + " " + fmtF64(hPt, 2) + "]")
	f.out(">>")
	f.out("endobj")
}

func (f *Fpdf) imageKeys() []string {
	keyList := make([]string, 0, len(f.images))
	for key := range f.images {
		keyList = append(keyList, key)
	}
	if f.catalogSort {
		sort.Strings(keyList)
	}
	return keyList
}

func (f *Fpdf) putimages() {
	for _, key := range f.imageKeys() {
		f.putimage(f.images[key])
	}
}

func (f *Fpdf) putimage(info *ImageInfoType) {
	f.newobj()
	info.n = f.n
	f.out("<</Type /XObject")
	f.out("/Subtype /Image")
	f.outf("/Width %d", int(info.w))
	f.outf("/Height %d", int(info.h))
	f.outf("/ColorSpace /%s", info.cs)
	if info.cs == "DeviceCMYK" {
		f.out("/Decode [1 0 1 0 1 0 1 0]")
	}
	f.outf("/BitsPerComponent %d", info.bpc)
	if len(info.f) > 0 {
		f.outf("/Filter /%s", info.f)
	}
	if info.smask != nil {
		f.outf("/SMask %d 0 R", f.n+1)
	}
	f.outf("/Length %d>>", len(info.data))
	f.putstream(info.data)
	f.out("endobj")
	// Soft mask
	if len(info.smask) > 0 {
		smask := &ImageInfoType{
			w:    info.w,
			h:    info.h,
			cs:   "DeviceGray",
			bpc:  8,
			f:    "FlateDecode",
			data: info.smask,
		}
		f.putimage(smask)
	}
}

func (f *Fpdf) fontKeys() []string {
	keyList := make([]string, 0, len(f.fonts))
	for key := range f.fonts {
		keyList = append(keyList, key)
	}
	if f.catalogSort {
		sort.SliceStable(keyList, func(i, j int) bool { return f.fonts[keyList[i]].i < f.fonts[keyList[j]].i })
	}
	return keyList
}

func (f *Fpdf) putfonts() {
	for _, key := range f.fontKeys() {
		font := f.fonts[key]
		f.newobj()
		font.n = f.n
		f.out("<</Type /Font")
		f.out("/BaseFont /" + font.baseFont)
		f.out("/Subtype /Type1")
		if !font.symbolic {
			f.out("/Encoding /WinAnsiEncoding")
		}
		f.out(">>")
		f.out("endobj")
	}
}

func (f *Fpdf) putresourcedict() {
	f.out("/ProcSet [/PDF /Text /ImageB /ImageC /ImageI]")
	f.out("/Font <<")
	for _, key := range f.fontKeys() {
		font := f.fonts[key]
		f.outf("/F%s %d 0 R", font.i, font.n)
	}
	f.out(">>")
	f.out("/XObject <<")
	for _, key := range f.imageKeys() {
		image := f.images[key]
		f.outf("/I%s %d 0 R", image.i, image.n)
	}
	f.out(">>")
	count := len(f.blendList)
	if count > 1 {
		f.out("/ExtGState <<")
		for j := 1; j < count; j++ {
			f.outf("/GS%d %d 0 R", j, f.blendList[j].objNum)
		}
		f.out(">>")
	}
}

func (f *Fpdf) putBlendModes() {
	count := len(f.blendList)
	for j := 1; j < count; j++ {
		bl := f.blendList[j]
		f.newobj()
		f.blendList[j].objNum = f.n
		f.outf("<</Type /ExtGState /ca %s /CA %s /BM /%s>>",
			bl.fillStr, bl.strokeStr, bl.modeStr)
		f.out("endobj")
	}
}

func (f *Fpdf) putresources() {
	if f.err != nil {
		return
	}
	f.putBlendModes()
	f.putfonts()
	f.putimages()
	// Resource dictionary
	f.offsets[2] = f.buffer.Len()
	f.out("2 0 obj")
	f.out("<<")
	f.putresourcedict()
	f.out(">>")
	f.out("endobj")
}

func (f *Fpdf) putinfo() {
	if len(f.producer) > 0 {
		f.outf("/Producer %s", f.textstring(f.producer))
	}
	if len(f.title) > 0 {
		f.outf("/Title %s", f.textstring(f.title))
	}
	if len(f.subject) > 0 {
		f.outf("/Subject %s", f.textstring(f.subject))
	}
	if len(f.author) > 0 {
		f.outf("/Author %s", f.textstring(f.author))
	}
	if len(f.keywords) > 0 {
		f.outf("/Keywords %s", f.textstring(f.keywords))
	}
	if len(f.creator) > 0 {
		f.outf("/Creator %s", f.textstring(f.creator))
	}
	creation := timeOrNow(f.creationDate)
	f.outf("/CreationDate %s", f.textstring("D:"+creation.Format("20060102150405")))
	mod := timeOrNow(f.modDate)
	f.outf("/ModDate %s", f.textstring("D:"+mod.Format("20060102150405")))
}

func (f *Fpdf) putcatalog() {
	f.out("/Type /Catalog")
	f.out("/Pages 1 0 R")
}

func (f *Fpdf) putheader() {
	f.out("%PDF-" + f.pdfVersion.String())
	f.out("%µ¶")
}

func (f *Fpdf) puttrailer() {
	f.outf("/Size %d", f.n+1)
	f.outf("/Root %d 0 R", f.n)
	f.outf("/Info %d 0 R", f.n-1)
}

func (f *Fpdf) enddoc() {
	if f.err != nil {
		return
	}
	f.putheader()
	f.putpages()
	f.putresources()
	if f.err != nil {
		return
	}
	// Info
	f.newobj()
	f.out("<<")
	f.putinfo()
	f.out(">>")
	f.out("endobj")
	// Catalog
	f.newobj()
	f.out("<<")
	f.putcatalog()
	f.out(">>")
	f.out("endobj")
	// Cross-ref
	o := f.buffer.Len()
	f.out("xref")
	f.outf("0 %d", f.n+1)
	f.out("0000000000 65535 f ")
	for j := 1; j <= f.n; j++ {
		f.out(zeroPad(f.offsets[j], 10) + " 00000 n ")
	}
	// Trailer
	f.out("trailer")
	f.out("<<")
	f.puttrailer()
	f.out(">>")
	f.out("startxref")
	f.out(fmtInt(o))
	f.out("%EOF")
	f.state = 3
}

// zeroPad formats v with leading zeros up to width digits.
func zeroPad(v, width int) string {
	s := fmtInt(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// SetDefaultCreationDate sets the default value of the document creation date
// that will be used when initializing a new Fpdf instance.
func SetDefaultCreationDate(tm time.Time) {
	gl.creationDate = tm
}

// SetDefaultModificationDate sets the default value of the document
// modification date that will be used when initializing a new Fpdf instance.
func SetDefaultModificationDate(tm time.Time) {
	gl.modDate = tm
}

// SetCreationDate fixes the document's internal CreationDate value. By
// default, the time when the document is generated is used for this value.
// Specify a zero-value time to revert to the default behavior.
func (f *Fpdf) SetCreationDate(tm time.Time) {
	f.creationDate = tm
}

// SetModificationDate fixes the document's internal ModDate value.
func (f *Fpdf) SetModificationDate(tm time.Time) {
	f.modDate = tm
}

// returns Now() if tm is zero
func timeOrNow(tm time.Time) time.Time {
	if tm.IsZero() {
		return time.Now()
	}
	return tm
}
