// Command dompdf-demo writes a sample document with running headers and
// alternating footers.
package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/hkvstore/dompdf"
	"github.com/hkvstore/dompdf/fpdf"
	"github.com/hkvstore/dompdf/internal/demo"
)

func main() {
	out := flag.String("out", "demo.pdf", "output file, - for standard output")
	pages := flag.Int("pages", 3, "number of pages")
	paper := flag.String("paper", "a4", "paper size: a3, a4, a5, a6, letter, legal or tabloid")
	landscape := flag.Bool("landscape", false, "landscape orientation")
	title := flag.String("title", "Quarterly report", "header title")
	flag.Parse()

	if *out == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("refusing to write PDF data to a terminal; redirect standard output or use -out")
	}

	orientation := fpdf.Portrait
	if *landscape {
		orientation = fpdf.Landscape
	}
	c := dompdf.New(dompdf.Paper(*paper), orientation)
	if err := demo.Report(c, *title, *pages); err != nil {
		log.Fatal(err)
	}

	var err error
	if *out == "-" {
		err = c.Output(os.Stdout)
	} else {
		err = c.Stream(*out)
	}
	if err != nil {
		log.Fatal(err)
	}
	if *out != "-" {
		c.Log("wrote", *out)
	}
}
