// Package imaging prepares whiteboard canvas snapshots for OCR.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
)

const (
	// InkThreshold separates ink from background: brighter pixels become
	// background.
	InkThreshold = 200
	// BlankMean is the mean intensity above which a canvas counts as empty.
	BlankMean = 250
)

// Decode reads a PNG or JPEG snapshot into an RGBA raster.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as *image.RGBA with its origin moved to (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// MeanIntensity averages every R, G, B and A sample of the raster.
func MeanIntensity(img *image.RGBA) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy() * 4
	if n == 0 {
		return 0
	}
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y) : img.PixOffset(b.Min.X, y)+b.Dx()*4]
		for _, v := range row {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(n)
}

// IsBlank reports whether the canvas is essentially empty.
func IsBlank(img *image.RGBA) bool {
	return MeanIntensity(img) > BlankMean
}

// Grayscale converts with the BT.601 luma weights. Alpha is ignored.
func Grayscale(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			l := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			gray.SetGray(x, y, color.Gray{Y: uint8(l + 0.5)})
		}
	}
	return gray
}

// Threshold applies an inverted binary threshold: pixels brighter than
// cutoff become 0, the rest 255.
func Threshold(gray *image.Gray, cutoff uint8) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y > cutoff {
				out.SetGray(x, y, color.Gray{Y: 0})
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// Dilate grows bright regions with a w×h rectangular kernel anchored at its
// centre (for a 2×2 kernel the window covers the pixel and its up/left
// neighbours). Pixels outside the raster are ignored.
func Dilate(src *image.Gray, w, h, iterations int) *image.Gray {
	ax, ay := w/2, h/2
	cur := src
	for it := 0; it < iterations; it++ {
		b := cur.Bounds()
		out := image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				var m uint8
				for ky := 0; ky < h; ky++ {
					sy := y + ky - ay
					if sy < b.Min.Y || sy >= b.Max.Y {
						continue
					}
					for kx := 0; kx < w; kx++ {
						sx := x + kx - ax
						if sx < b.Min.X || sx >= b.Max.X {
							continue
						}
						if v := cur.GrayAt(sx, sy).Y; v > m {
							m = v
						}
					}
				}
				out.SetGray(x, y, color.Gray{Y: m})
			}
		}
		cur = out
	}
	return cur
}

// Preprocess turns a canvas snapshot into a binary ink mask ready for OCR:
// grayscale, inverted threshold at InkThreshold, one 2×2 dilation.
func Preprocess(img *image.RGBA) *image.Gray {
	return Dilate(Threshold(Grayscale(img), InkThreshold), 2, 2, 1)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI wraps PNG bytes for inline display.
func DataURI(pngBytes []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}
