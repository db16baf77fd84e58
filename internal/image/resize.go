package image

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Resize returns a copy of b scaled to width x height with Catmull-Rom
// resampling. The source is scaled at 16 bits per channel.
func Resize(b *Buffer, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if width == b.width && height == b.height {
		return b.Clone(), nil
	}

	src := b.toNRGBA64()
	dst := image.NewNRGBA64(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return FromImage(dst)
}

// toNRGBA64 converts the buffer to a 16-bit non-premultiplied image.
func (b *Buffer) toNRGBA64() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, b.width, b.height))
	for i, v := range b.pix {
		u := toUint16(v)
		img.Pix[i*2] = uint8(u >> 8)
		img.Pix[i*2+1] = uint8(u)
	}
	return img
}

// toUint16 clamps v to [0, 1] and scales it to a rounded uint16.
func toUint16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}
