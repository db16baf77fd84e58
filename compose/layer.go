package compose

import (
	"fmt"
	"sync"

	"github.com/gogpu/layermode"
	"github.com/gogpu/layermode/internal/image"
)

// Layer is a buffer composited onto a destination with a mode, opacity and
// optional mask, placed at an offset in destination coordinates.
//
// Layer caches the kernel for its mode and linear flag; the cache is
// invalidated only by SetMode and SetLinear, so steady-state compositing
// never consults the resolver.
//
// Thread safety: the setters are not safe for concurrent use with
// compositing. Compositing the same layer onto different destinations
// concurrently is safe, including through compositors with different
// resolvers.
type Layer struct {
	buffer  *image.Buffer
	mask    []float32
	mode    layermode.Mode
	linear  bool
	opacity float32
	x, y    int

	mu       sync.Mutex // guards kernel, resolver and resolves
	kernel   *layermode.Kernel
	resolver *layermode.Resolver
	resolves int
}

// NewLayer creates a fully opaque layer at offset (0, 0).
func NewLayer(buf *image.Buffer, mode layermode.Mode) (*Layer, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	return &Layer{
		buffer:  buf,
		mode:    mode,
		opacity: 1,
	}, nil
}

// Buffer returns the layer's pixels.
func (l *Layer) Buffer() *image.Buffer {
	return l.buffer
}

// Mode returns the layer's mode.
func (l *Layer) Mode() layermode.Mode {
	return l.mode
}

// SetMode changes the layer's mode.
func (l *Layer) SetMode(mode layermode.Mode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if mode != l.mode {
		l.mode = mode
		l.kernel = nil
	}
}

// Linear reports whether the layer composites in linear light.
func (l *Layer) Linear() bool {
	return l.linear
}

// SetLinear selects linear-light (true) or gamma-encoded (false) compositing.
func (l *Layer) SetLinear(linear bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if linear != l.linear {
		l.linear = linear
		l.kernel = nil
	}
}

// Opacity returns the layer's opacity (0.0 to 1.0).
func (l *Layer) Opacity() float32 {
	return l.opacity
}

// SetOpacity sets the layer's opacity, clamped to [0.0, 1.0].
func (l *Layer) SetOpacity(opacity float32) {
	l.opacity = min(max(opacity, 0), 1)
}

// Mask returns the layer's coverage mask, or nil.
func (l *Layer) Mask() []float32 {
	return l.mask
}

// SetMask sets a coverage mask holding one value per layer pixel, row-major.
// A nil mask means full coverage.
func (l *Layer) SetMask(mask []float32) error {
	if mask == nil {
		l.mask = nil
		return nil
	}
	w, h := l.buffer.Bounds()
	if len(mask) != w*h {
		return fmt.Errorf("%w: got %d values, want %dx%d", ErrMaskSize, len(mask), w, h)
	}
	l.mask = mask
	return nil
}

// Offset returns the position of the layer's top-left pixel in destination
// coordinates.
func (l *Layer) Offset() (x, y int) {
	return l.x, l.y
}

// SetOffset moves the layer. Offsets may be negative or extend past the
// destination; compositing clips to the overlap.
func (l *Layer) SetOffset(x, y int) {
	l.x, l.y = x, y
}

// Kernel returns the cached kernel for the layer's mode and linear flag.
func (l *Layer) Kernel() *layermode.Kernel {
	l.mu.Lock()
	r := l.resolver
	l.mu.Unlock()
	return l.kernelFor(r)
}

// kernelFor returns the kernel resolved by r, resolving again only when the
// mode, the linear flag or the resolver changed.
func (l *Layer) kernelFor(r *layermode.Resolver) *layermode.Kernel {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.kernel == nil || l.resolver != r {
		l.resolver = r
		l.kernel = r.Resolve(l.mode, l.linear)
		l.resolves++
	}
	return l.kernel
}
