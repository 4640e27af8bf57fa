// Package demo builds the sample report written by the dompdf-demo command.
package demo

import (
	"github.com/tinywasm/fmt"

	"github.com/hkvstore/dompdf"
)

var (
	accent = dompdf.RGB(0x1f, 0x4e, 0x79)
	muted  = dompdf.RGB(0x80, 0x80, 0x80)
	stamp  = dompdf.Color{R: 0.8, Alpha: 0.35}
)

// Report fills c with pages of body text under a running header, footers
// that alternate between odd and even pages and a one-off stamp on the
// second page.
func Report(c *dompdf.Canvas, title string, pages int) error {
	if pages < 1 {
		return fmt.Errf("demo: need at least one page, got %d", pages)
	}
	c.AddInfo("Title", title)
	c.AddInfo("Subject", "dompdf page objects")
	if err := c.NewPage(); err != nil {
		return err
	}
	w, h := c.Fpdf.GetPageSize()

	header := c.OpenObject()
	c.FilledRectangle(0, 0, w, 40, accent)
	c.Text(36, 26, title, "helvetica-bold", 14, dompdf.RGB(0xff, 0xff, 0xff))
	if err := c.CloseObject(); err != nil {
		return err
	}

	odd := c.OpenObject()
	c.Line(36, h-40, w-36, h-40, muted, 0.5, nil, "butt")
	c.Text(w-120, h-24, "dompdf demo", "helvetica-italic", 9, muted)
	if err := c.CloseObject(); err != nil {
		return err
	}

	even := c.OpenObject()
	c.Line(36, h-40, w-36, h-40, muted, 0.5, []float64{3, 2}, "round")
	c.Text(36, h-24, "dompdf demo", "helvetica-italic", 9, muted)
	if err := c.CloseObject(); err != nil {
		return err
	}

	draft := c.OpenObject()
	c.Save()
	c.Rotate(-30, w/2, h/2)
	c.Text(w/2-120, h/2, "DRAFT", "helvetica-bold", 72, stamp)
	c.Restore()
	if err := c.CloseObject(); err != nil {
		return err
	}

	for id, placement := range map[int]string{header: "all", odd: "odd", even: "even", draft: "next"} {
		if err := c.AddObject(id, placement); err != nil {
			return err
		}
	}
	c.PageText(w/2-30, h-24, "{PAGE_NUM} / {PAGE_COUNT}", "helvetica", 9, dompdf.Black)

	for p := 1; p <= pages; p++ {
		if p > 1 {
			if err := c.NewPage(); err != nil {
				return err
			}
		}
		for line := 0; line < 30; line++ {
			y := 80 + float64(line)*20
			if y > h-60 {
				break
			}
			c.Text(36, y, fmt.Sprintf("Page %d, line %d", p, line+1), "times", 11, dompdf.Black)
		}
	}
	return c.Err()
}
