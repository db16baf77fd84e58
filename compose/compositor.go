package compose

import (
	goimage "image"

	"github.com/gogpu/layermode"
	"github.com/gogpu/layermode/internal/color"
	"github.com/gogpu/layermode/internal/image"
	"github.com/gogpu/layermode/internal/parallel"
)

// minParallelRows is the clipped height below which bands are not worth
// dispatching to the pool.
const minParallelRows = 64

// Compositor runs layer kernels over destination rows.
//
// Thread safety: Compositor is safe for concurrent use on distinct
// destinations.
type Compositor struct {
	resolver *layermode.Resolver
	pool     *parallel.WorkerPool
}

// NewCompositor creates a compositor. With WithWorkers other than 1 it
// starts a worker pool; call Close to stop it.
func NewCompositor(opts ...Option) *Compositor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Compositor{resolver: o.resolver}
	if o.workers != 1 {
		c.pool = parallel.NewWorkerPool(o.workers)
	}
	return c
}

// Workers returns the number of goroutines compositing row bands.
func (c *Compositor) Workers() int {
	if c.pool == nil {
		return 1
	}
	return c.pool.Workers()
}

// Close stops the compositor's workers. It is safe to call more than once;
// a closed compositor keeps working on the calling goroutine.
func (c *Compositor) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Composite blends l onto dst at the layer's offset.
func (c *Compositor) Composite(dst *image.Buffer, l *Layer) error {
	if l == nil {
		return ErrNilBuffer
	}
	return c.compositeAt(dst, l, l.x, l.y)
}

// compositeAt blends l onto dst with its top-left pixel at (ox, oy).
func (c *Compositor) compositeAt(dst *image.Buffer, l *Layer, ox, oy int) error {
	if dst == nil || l.buffer == nil {
		return ErrNilBuffer
	}

	dw, dh := dst.Bounds()
	lw, lh := l.buffer.Bounds()
	area := goimage.Rect(ox, oy, ox+lw, oy+lh).Intersect(goimage.Rect(0, 0, dw, dh))
	if area.Empty() {
		return nil
	}

	k := l.kernelFor(c.resolver)
	job := rowJob{
		dst:    dst,
		layer:  l,
		kernel: k,
		space:  color.SpaceSRGB,
		area:   area,
		ox:     ox,
		oy:     oy,
	}
	if l.linear {
		job.space = color.SpaceLinear
	}

	rows := area.Dy()
	if c.pool == nil || !c.pool.IsRunning() || rows < minParallelRows {
		job.run(0, rows)
	} else {
		c.pool.Rows(rows, job.run)
	}

	layermode.Logger().Debug("composited layer",
		"mode", l.mode,
		"kernel", k.Name(),
		"space", job.space,
		"rows", rows,
		"workers", c.Workers())
	return nil
}

// rowJob composites a rectangle of destination rows.
type rowJob struct {
	dst    *image.Buffer
	layer  *Layer
	kernel *layermode.Kernel
	space  color.Space       // space the kernel runs in
	area   goimage.Rectangle // destination coordinates
	ox, oy int               // layer origin in destination coordinates
}

// run composites rows [y0, y1) of the job's area, counted from its top.
// Each call owns its scratch, so bands may run concurrently.
func (j rowJob) run(y0, y1 int) {
	l := j.layer
	lw, _ := l.buffer.Bounds()
	width := j.area.Dx()
	sx := j.area.Min.X - j.ox

	var scratch []float32
	if j.space != color.SpaceSRGB {
		scratch = make([]float32, width*image.Channels)
	}

	for y := y0; y < y1; y++ {
		dy := j.area.Min.Y + y
		sy := dy - j.oy

		in := j.dst.Row(dy)[j.area.Min.X*image.Channels : j.area.Max.X*image.Channels]
		src := l.buffer.Row(sy)[sx*image.Channels : (sx+width)*image.Channels]

		var mask []float32
		if l.mask != nil {
			m := sy*lw + sx
			mask = l.mask[m : m+width]
		}

		params := layermode.KernelParams{
			Opacity: l.opacity,
			Samples: width,
			ROI:     goimage.Rect(sx, sy, sx+width, sy+1),
		}

		if scratch == nil {
			j.kernel.Process(in, src, mask, in, params)
			continue
		}

		copy(scratch, src)
		color.Convert(scratch, color.SpaceSRGB, j.space)
		color.Convert(in, color.SpaceSRGB, j.space)
		j.kernel.Process(in, scratch, mask, in, params)
		color.Convert(in, j.space, color.SpaceSRGB)
	}
}
