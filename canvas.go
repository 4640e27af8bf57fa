package dompdf

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/hkvstore/dompdf/fpdf"
	"github.com/hkvstore/dompdf/objects"
)

// Paper selects the default page size by name: "a3", "a4", "a5", "a6",
// "letter", "legal" or "tabloid".
type Paper string

// Compression turns page stream compression on or off. It is on by default.
type Compression bool

// Canvas is the drawing surface of a PDF document. Coordinates and sizes are
// in points with the origin at the top-left corner of the page.
//
// Drawing errors are latched: once an operation fails the remaining ones are
// ignored, and the error is reported by Err and by the output methods.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	Fpdf    *fpdf.Fpdf
	objects *objects.Manager
	log     *slog.Logger
	logger  func(message ...any)

	writeFile fpdf.WriteFileFunc
	readFile  fpdf.ReadFileFunc

	pageTexts   []pageText
	pageScripts []func(pageNumber, pageCount int, c *Canvas)
}

type pageText struct {
	x, y  float64
	text  string
	font  string
	size  float64
	color Color
}

// New returns a canvas for a new document. Options are matched by type:
//
//	Paper               default page size name (default "a4")
//	fpdf.PageSize       default page size in points
//	fpdf.Orientation    fpdf.Portrait or fpdf.Landscape
//	Compression         page stream compression
//	*slog.Logger        diagnostics for object sessions and placements
//	fpdf.ReadFileFunc   loads images
//	fpdf.WriteFileFunc  used by Stream
func New(options ...any) *Canvas {
	c := &Canvas{log: slog.New(slog.DiscardHandler)}

	c.initIO()

	compress := true
	engine := []any{fpdf.POINT}
	for _, opt := range options {
		switch v := opt.(type) {
		case Paper:
			engine = append(engine, string(v))
		case fpdf.Orientation:
			engine = append(engine, v)
		case fpdf.PageSize:
			engine = append(engine, v)
		case Compression:
			compress = bool(v)
		case *slog.Logger:
			if v != nil {
				c.log = v
			}
		case fpdf.ReadFileFunc:
			if v != nil {
				c.readFile = v
			}
		case fpdf.WriteFileFunc:
			if v != nil {
				c.writeFile = v
			}
		}
	}
	engine = append(engine, c.readFile, c.writeFile)

	c.Fpdf = fpdf.New(engine...)
	c.Fpdf.SetCompression(compress)
	c.Fpdf.SetCreator("dompdf")
	c.objects = objects.NewManager(surface{c.Fpdf}, objects.WithLogger(c.log))
	c.Fpdf.SetFooterFuncLpi(c.pageLeft)
	return c
}

// Log writes message to the environment's console.
func (c *Canvas) Log(message ...any) {
	if c.logger != nil {
		c.logger(message...)
	}
}

// Err returns the first error that occurred while drawing, if any.
func (c *Canvas) Err() error {
	return c.Fpdf.Error()
}

// pageLeft runs when the engine leaves a page. For the last page it also
// draws the page decorations onto every page.
func (c *Canvas) pageLeft(lastPage bool) {
	if !lastPage {
		c.objects.OnNewPage()
		return
	}
	if err := c.objects.OnFinalize(); err != nil {
		c.warnUnclosed(err)
	}
	c.decorate()
}

func (c *Canvas) warnUnclosed(err error) {
	c.log.LogAttrs(context.Background(), slog.LevelWarn, "document finalized with open objects",
		slog.String("error", err.Error()))
}

func (c *Canvas) decorate() {
	if len(c.pageTexts) == 0 && len(c.pageScripts) == 0 {
		return
	}
	last := c.Fpdf.PageNo()
	count := c.Fpdf.PageCount()
	for n := 1; n <= count; n++ {
		c.Fpdf.SetPage(n)
		for _, pt := range c.pageTexts {
			c.scoped(func() {
				c.Text(pt.x, pt.y, expandPageText(pt.text, n, count), pt.font, pt.size, pt.color)
			})
		}
		for _, script := range c.pageScripts {
			c.scoped(func() {
				script(n, count, c)
			})
		}
	}
	c.Fpdf.SetPage(last)
}

// Output writes the document to w. Open object sessions are closed first
// and reported through the logger.
func (c *Canvas) Output(w io.Writer) error {
	if err := c.objects.CloseOpen(); err != nil {
		c.warnUnclosed(err)
	}
	return c.Fpdf.Output(w)
}

// OutputBytes returns the document.
func (c *Canvas) OutputBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stream writes the document to filePath through the environment's
// WriteFileFunc.
func (c *Canvas) Stream(filePath string) error {
	if err := c.objects.CloseOpen(); err != nil {
		c.warnUnclosed(err)
	}
	return c.Fpdf.OutputFileAndClose(filePath)
}

// AddInfo sets an entry of the document information dictionary. label is one
// of "Title", "Author", "Subject", "Keywords", "Creator", "Producer",
// "CreationDate" or "ModDate". Dates are given as RFC 3339 timestamps or in
// the PDF form "D:YYYYMMDDHHmmSS".
func (c *Canvas) AddInfo(label, value string) {
	switch label {
	case "Title":
		c.Fpdf.SetTitle(value)
	case "Author":
		c.Fpdf.SetAuthor(value)
	case "Subject":
		c.Fpdf.SetSubject(value)
	case "Keywords":
		c.Fpdf.SetKeywords(value)
	case "Creator":
		c.Fpdf.SetCreator(value)
	case "Producer":
		c.Fpdf.SetProducer(value)
	case "CreationDate", "ModDate":
		tm, err := parseInfoDate(value)
		if err != nil {
			c.Fpdf.SetErrorf("info %s: invalid date \"%s\"", label, value)
			return
		}
		if label == "CreationDate" {
			c.Fpdf.SetCreationDate(tm)
		} else {
			c.Fpdf.SetModificationDate(tm)
		}
	default:
		c.Fpdf.SetErrorf("unknown document info entry \"%s\"", label)
	}
}

func parseInfoDate(value string) (time.Time, error) {
	tm, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return tm, nil
	}
	return time.Parse("D:20060102150405", value)
}
