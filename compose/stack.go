package compose

import (
	"github.com/gogpu/layermode"
	"github.com/gogpu/layermode/internal/image"
)

// Bounds represents a rectangular region in pixel coordinates.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Stack manages a stack of layers for nested compositing.
//
// Push creates a temporary drawing surface; Pop composites it back onto the
// layer below, or onto the base when it is the last one. The base is the
// final output surface.
//
// Thread safety: Stack is not safe for concurrent access.
type Stack struct {
	layers []*Layer
	base   *image.Buffer
	pool   *image.Pool
	comp   *Compositor
}

// NewStack creates a stack over base. Without WithPool a private pool of
// eight buffers per size is used.
func NewStack(base *image.Buffer, opts ...Option) *Stack {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.pool == nil {
		o.pool = image.NewPool(8)
	}

	return &Stack{
		layers: make([]*Layer, 0, 4),
		base:   base,
		pool:   o.pool,
		comp:   NewCompositor(opts...),
	}
}

// Push allocates a transparent layer with the given mode, opacity and
// bounds and makes it the current drawing target. Bounds with zero or
// negative size cover the whole base. A stack without a base returns
// ErrNilBuffer.
func (s *Stack) Push(mode layermode.Mode, opacity float32, bounds Bounds) (*Layer, error) {
	if s.base == nil {
		return nil, ErrNilBuffer
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		w, h := s.base.Bounds()
		bounds = Bounds{Width: w, Height: h}
	}

	buf, err := s.pool.Get(bounds.Width, bounds.Height)
	if err != nil {
		return nil, err
	}

	layer, err := NewLayer(buf, mode)
	if err != nil {
		return nil, err
	}
	layer.SetOpacity(opacity)
	layer.SetOffset(bounds.X, bounds.Y)

	s.layers = append(s.layers, layer)
	return layer, nil
}

// Pop composites the top layer onto the layer below it (or the base) and
// returns that destination. The popped layer's buffer goes back to the pool.
func (s *Stack) Pop() (*image.Buffer, error) {
	if len(s.layers) == 0 {
		return nil, ErrEmptyStack
	}

	layer := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]

	dst := s.base
	ox, oy := layer.x, layer.y
	if len(s.layers) > 0 {
		parent := s.layers[len(s.layers)-1]
		dst = parent.buffer
		ox -= parent.x
		oy -= parent.y
	}

	err := s.comp.compositeAt(dst, layer, ox, oy)
	s.pool.Put(layer.buffer)
	if err != nil {
		return nil, err
	}

	w, h := layer.buffer.Bounds()
	layermode.Logger().Debug("popped layer",
		"depth", len(s.layers),
		"pooled", s.pool.Len(w, h))
	return dst, nil
}

// Flatten pops every layer, compositing each onto the one below, and
// returns the base.
func (s *Stack) Flatten() (*image.Buffer, error) {
	for len(s.layers) > 0 {
		if _, err := s.Pop(); err != nil {
			return nil, err
		}
	}
	return s.base, nil
}

// Current returns the current drawing target (top layer or base).
func (s *Stack) Current() *image.Buffer {
	if len(s.layers) == 0 {
		return s.base
	}
	return s.layers[len(s.layers)-1].buffer
}

// CurrentMode returns the mode of the top layer, or ModeNormal when the
// stack is empty.
func (s *Stack) CurrentMode() layermode.Mode {
	if len(s.layers) == 0 {
		return layermode.ModeNormal
	}
	return s.layers[len(s.layers)-1].mode
}

// Depth returns the number of layers in the stack (not including base).
func (s *Stack) Depth() int {
	return len(s.layers)
}

// Clear discards all layers without compositing them and returns their
// buffers to the pool.
func (s *Stack) Clear() {
	for len(s.layers) > 0 {
		layer := s.layers[len(s.layers)-1]
		s.layers = s.layers[:len(s.layers)-1]
		s.pool.Put(layer.buffer)
	}
}

// Close clears the stack and stops its compositing workers.
func (s *Stack) Close() {
	s.Clear()
	s.comp.Close()
}
