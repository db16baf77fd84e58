// Package image provides the float pixel buffers layers are composited in.
//
// A Buffer stores non-premultiplied RGBA as float32 quadruples in [0, 1],
// gamma-encoded sRGB, row after row with no padding. Rows are handed to the
// blend kernels directly.
package image

import (
	"errors"
	"image"
	"image/color"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// Channels is the number of float32 values per pixel.
const Channels = 4

// Buffer is a float RGBA image.
//
// Thread safety: Buffer is safe for concurrent reads. Concurrent writes to
// distinct rows are safe; anything else requires external synchronization.
type Buffer struct {
	width  int
	height int
	pix    []float32
}

// NewBuffer creates a transparent buffer with the given dimensions.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*Channels),
	}, nil
}

// Width returns the image width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Bounds returns the image dimensions as (width, height).
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

// Pix returns the raw pixel slice.
func (b *Buffer) Pix() []float32 {
	return b.pix
}

// Row returns the pixels of row y, or nil if y is out of bounds.
func (b *Buffer) Row(y int) []float32 {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.width * Channels
	return b.pix[start : start+b.width*Channels : start+b.width*Channels]
}

// offset returns the index of pixel (x, y), or -1 if out of bounds.
func (b *Buffer) offset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * Channels
}

// At returns the pixel at (x, y). Out of bounds pixels are transparent black.
func (b *Buffer) At(x, y int) (r, g, bl, a float32) {
	o := b.offset(x, y)
	if o < 0 {
		return 0, 0, 0, 0
	}
	return b.pix[o], b.pix[o+1], b.pix[o+2], b.pix[o+3]
}

// Set sets the pixel at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *Buffer) Set(x, y int, r, g, bl, a float32) error {
	o := b.offset(x, y)
	if o < 0 {
		return ErrOutOfBounds
	}
	b.pix[o], b.pix[o+1], b.pix[o+2], b.pix[o+3] = r, g, bl, a
	return nil
}

// Fill sets every pixel to the given colour.
func (b *Buffer) Fill(r, g, bl, a float32) {
	for o := 0; o < len(b.pix); o += Channels {
		b.pix[o], b.pix[o+1], b.pix[o+2], b.pix[o+3] = r, g, bl, a
	}
}

// Clear sets every pixel to transparent black.
func (b *Buffer) Clear() {
	clear(b.pix)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]float32, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix}
}

// FromImage converts a standard library image to a Buffer.
// Returns ErrInvalidDimensions for an empty image.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	width, height := buf.width, buf.height

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
			dst := buf.Row(y)
			for i, v := range src {
				dst[i] = float32(v) / 255
			}
		}
		return buf, nil
	}

	// Generic path: convert through the non-premultiplied 16-bit model.
	for y := range height {
		dst := buf.Row(y)
		for x := range width {
			c := color.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			o := x * Channels
			dst[o] = float32(c.R) / 0xffff
			dst[o+1] = float32(c.G) / 0xffff
			dst[o+2] = float32(c.B) / 0xffff
			dst[o+3] = float32(c.A) / 0xffff
		}
	}
	return buf, nil
}

// ToNRGBA converts the buffer to an 8-bit non-premultiplied image.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, v := range b.pix {
		img.Pix[i] = toByte(v)
	}
	return img
}

// toByte clamps v to [0, 1] and scales it to a rounded byte.
func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
