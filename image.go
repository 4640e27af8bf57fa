package dompdf

import (
	"bytes"
	"image"
	"image/png"

	"github.com/tinywasm/fmt"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image draws the image file path with its upper left corner at (x, y),
// loading it through the environment's ReadFileFunc on first use. If w or h
// is zero it follows from the other to keep the aspect ratio; if both are
// zero the image is drawn at 72 dpi.
//
// PNG, JPEG and GIF files are embedded directly; BMP, TIFF and WebP files
// are converted to PNG first.
func (c *Canvas) Image(path string, x, y, w, h float64) {
	if !c.Fpdf.Ok() {
		return
	}
	if c.Fpdf.GetImageInfo(path) == nil {
		data, err := c.readFile(path)
		if err != nil {
			c.Fpdf.SetError(err)
			return
		}
		if err := c.RegisterImage(path, data); err != nil {
			return
		}
	}
	c.Fpdf.Image(path, x, y, w, h)
}

// RegisterImage makes image data available to Image under name. It returns
// an error when the data is not an image in one of the supported formats.
func (c *Canvas) RegisterImage(name string, data []byte) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		c.Fpdf.SetError(fmt.Errf("image %s: %s", name, err.Error()))
		return c.Fpdf.Error()
	}
	switch format {
	case "png", "jpeg", "gif":
	default:
		if data, err = transcode(data); err != nil {
			c.Fpdf.SetError(fmt.Errf("image %s: %s", name, err.Error()))
			return c.Fpdf.Error()
		}
		format = "png"
	}
	c.Fpdf.RegisterImageReader(name, format, bytes.NewReader(data))
	return c.Fpdf.Error()
}

// transcode re-encodes an image in any registered format as PNG.
func transcode(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
