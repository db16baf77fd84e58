package compose

import (
	goimage "image"
	"io"

	"github.com/gogpu/layermode/internal/image"
)

// Buffer is a float RGBA image: non-premultiplied, gamma-encoded sRGB,
// four float32 values per pixel in [0, 1].
type Buffer = image.Buffer

// Pool reuses buffers of the same size across Push/Pop cycles.
type Pool = image.Pool

// Channels is the number of float32 values per pixel.
const Channels = image.Channels

// NewBuffer creates a transparent buffer.
func NewBuffer(width, height int) (*Buffer, error) {
	return image.NewBuffer(width, height)
}

// NewPool creates a buffer pool holding at most maxPerBucket buffers of
// each size. 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return image.NewPool(maxPerBucket)
}

// FromImage converts a standard library image to a Buffer.
func FromImage(img goimage.Image) (*Buffer, error) {
	return image.FromImage(img)
}

// Load reads a PNG, JPEG, BMP, TIFF or WebP file.
func Load(path string) (*Buffer, error) {
	return image.Load(path)
}

// LoadFromBytes decodes an encoded image held in memory.
func LoadFromBytes(data []byte) (*Buffer, error) {
	return image.LoadFromBytes(data)
}

// Decode reads an encoded image from r.
func Decode(r io.Reader) (*Buffer, error) {
	return image.Decode(r)
}

// Resize returns a copy of b scaled with Catmull-Rom resampling.
func Resize(b *Buffer, width, height int) (*Buffer, error) {
	return image.Resize(b, width, height)
}
