package fpdf

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	. "github.com/tinywasm/fmt"
)

// RegisterImageReader registers an image, reading it from Reader r, adding it
// to the PDF file but not adding it to the page. Use Image() with the same
// name to add the image to the page.
//
// tp is "jpg", "jpeg", "png" or "gif"; an empty tp is inferred from the
// image data. The image is embedded once however often it is drawn.
func (f *Fpdf) RegisterImageReader(imgName, tp string, r io.Reader) (info *ImageInfoType) {
	if f.err != nil {
		return
	}
	if info, ok := f.images[imgName]; ok {
		return info
	}
	data, err := io.ReadAll(r)
	if err != nil {
		f.err = err
		return
	}
	tp = Convert(tp).ToLower().String()
	if tp == "" {
		_, tp, err = image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			f.err = Errf("unable to determine type of image %s: %s", imgName, err.Error())
			return
		}
	}
	switch tp {
	case "jpg", "jpeg":
		info = f.parsejpg(data)
	case "png", "gif":
		info = f.parseraster(data)
	default:
		f.err = Errf("unsupported image type: %s", tp)
	}
	if f.err != nil {
		return nil
	}
	info.i = fmtInt(len(f.images) + 1)
	f.images[imgName] = info
	return info
}

// RegisterImage registers an image, loading it through the ReadFileFunc
// passed to New(). See RegisterImageReader for tp.
func (f *Fpdf) RegisterImage(fileStr, tp string) (info *ImageInfoType) {
	if f.err != nil {
		return
	}
	if info, ok := f.images[fileStr]; ok {
		return info
	}
	data, err := f.readFile(fileStr)
	if err != nil {
		f.err = err
		return
	}
	return f.RegisterImageReader(fileStr, tp, bytes.NewReader(data))
}

// GetImageInfo returns information about the registered image specified by
// imageStr. If the image has not been registered, nil is returned.
func (f *Fpdf) GetImageInfo(imageStr string) (info *ImageInfoType) {
	return f.images[imageStr]
}

// Image puts a registered image, or a file loaded through RegisterImage, in
// the live buffer with its upper left corner at (x, y). If w or h is zero it
// is computed from the other dimension to keep the aspect ratio; if both are
// zero the image is drawn at 72 dpi.
func (f *Fpdf) Image(imageNameStr string, x, y, w, h float64) {
	if f.err != nil {
		return
	}
	info := f.images[imageNameStr]
	if info == nil {
		info = f.RegisterImage(imageNameStr, "")
		if f.err != nil {
			return
		}
	}
	switch {
	case w == 0 && h == 0:
		w = info.w / f.k
		h = info.h / f.k
	case w == 0:
		w = h * info.w / info.h
	case h == 0:
		h = w * info.h / info.w
	}
	const prec = 5
	f.put("q ")
	f.putF64(w*f.k, prec)
	f.put(" 0 0 ")
	f.putF64(h*f.k, prec)
	f.put(" ")
	f.putF64(x*f.k, prec)
	f.put(" ")
	f.putF64((f.h-(y+h))*f.k, prec)
	f.put(" cm /I" + info.i + " Do Q\n")
}

// parsejpg embeds a JPEG file as is.
func (f *Fpdf) parsejpg(data []byte) *ImageInfoType {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		f.err = err
		return nil
	}
	info := &ImageInfoType{
		data: data,
		w:    float64(cfg.Width),
		h:    float64(cfg.Height),
		bpc:  8,
		f:    "DCTDecode",
	}
	switch cfg.ColorModel {
	case color.GrayModel:
		info.cs = "DeviceGray"
	case color.CMYKModel:
		info.cs = "DeviceCMYK"
	default:
		info.cs = "DeviceRGB"
	}
	return info
}

// parseraster decodes a PNG or GIF into deflated RGB samples with an alpha
// channel soft mask when the image is not opaque.
func (f *Fpdf) parseraster(data []byte) *ImageInfoType {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		f.err = err
		return nil
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgb := make([]byte, 0, w*h*3)
	alpha := make([]byte, 0, w*h)
	opaque := true
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgb = append(rgb, c.R, c.G, c.B)
			alpha = append(alpha, c.A)
			if c.A != 0xff {
				opaque = false
			}
		}
	}
	info := &ImageInfoType{
		data: zpool.deflate(rgb).detach(),
		w:    float64(w),
		h:    float64(h),
		cs:   "DeviceRGB",
		bpc:  8,
		f:    "FlateDecode",
	}
	if !opaque {
		info.smask = zpool.deflate(alpha).detach()
		if f.pdfVersion < pdfVers1_4 {
			f.pdfVersion = pdfVers1_4
		}
	}
	return info
}
