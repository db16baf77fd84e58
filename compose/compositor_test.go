package compose

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/layermode"
	"github.com/gogpu/layermode/internal/image"
)

var (
	red  = [4]float32{1, 0, 0, 1}
	blue = [4]float32{0, 0, 1, 1}
)

func filled(t testing.TB, w, h int, c [4]float32) *image.Buffer {
	t.Helper()
	buf := mustBuffer(t, w, h)
	buf.Fill(c[0], c[1], c[2], c[3])
	return buf
}

func newTestLayer(t testing.TB, buf *image.Buffer, mode layermode.Mode) *Layer {
	t.Helper()
	l, err := NewLayer(buf, mode)
	if err != nil {
		t.Fatalf("NewLayer() error = %v", err)
	}
	return l
}

func TestCompositeOffset(t *testing.T) {
	dst := filled(t, 4, 4, blue)
	l := newTestLayer(t, filled(t, 2, 2, red), layermode.ModeNormal)
	l.SetOffset(1, 1)

	c := NewCompositor()
	defer c.Close()
	if err := c.Composite(dst, l); err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	assertPixel(t, dst, 0, 0, blue)
	assertPixel(t, dst, 1, 1, red)
	assertPixel(t, dst, 2, 2, red)
	assertPixel(t, dst, 3, 3, blue)
	assertPixel(t, dst, 3, 1, blue)
}

func TestCompositeClipping(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		covered [][2]int
		clear   [][2]int
	}{
		{"negative offset", -1, -1, [][2]int{{0, 0}}, [][2]int{{1, 0}, {0, 1}, {1, 1}}},
		{"past right edge", 2, 0, [][2]int{{2, 0}, {2, 1}}, [][2]int{{1, 0}, {1, 1}, {2, 2}}},
		{"fully outside", 10, 10, nil, [][2]int{{0, 0}, {2, 2}}},
		{"fully outside negative", -5, 0, nil, [][2]int{{0, 0}, {0, 1}}},
	}

	c := NewCompositor()
	defer c.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filled(t, 3, 3, blue)
			l := newTestLayer(t, filled(t, 2, 2, red), layermode.ModeNormal)
			l.SetOffset(tt.x, tt.y)

			if err := c.Composite(dst, l); err != nil {
				t.Fatalf("Composite() error = %v", err)
			}
			for _, p := range tt.covered {
				assertPixel(t, dst, p[0], p[1], red)
			}
			for _, p := range tt.clear {
				assertPixel(t, dst, p[0], p[1], blue)
			}
		})
	}
}

func TestCompositeNil(t *testing.T) {
	c := NewCompositor()
	defer c.Close()

	if err := c.Composite(mustBuffer(t, 1, 1), nil); !errors.Is(err, ErrNilBuffer) {
		t.Errorf("Composite(nil layer) error = %v, want ErrNilBuffer", err)
	}
	l := newTestLayer(t, mustBuffer(t, 1, 1), layermode.ModeNormal)
	if err := c.Composite(nil, l); !errors.Is(err, ErrNilBuffer) {
		t.Errorf("Composite(nil dst) error = %v, want ErrNilBuffer", err)
	}
}

func TestCompositeOpacity(t *testing.T) {
	dst := filled(t, 1, 1, [4]float32{0, 0, 0, 1})
	l := newTestLayer(t, filled(t, 1, 1, [4]float32{1, 1, 1, 1}), layermode.ModeNormal)
	l.SetOpacity(0.5)

	c := NewCompositor()
	defer c.Close()
	if err := c.Composite(dst, l); err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	assertPixel(t, dst, 0, 0, [4]float32{0.5, 0.5, 0.5, 1})
}

func TestCompositeMask(t *testing.T) {
	dst := filled(t, 2, 1, blue)
	l := newTestLayer(t, filled(t, 2, 1, red), layermode.ModeNormal)
	if err := l.SetMask([]float32{0, 1}); err != nil {
		t.Fatalf("SetMask() error = %v", err)
	}

	c := NewCompositor()
	defer c.Close()
	if err := c.Composite(dst, l); err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	assertPixel(t, dst, 0, 0, blue)
	assertPixel(t, dst, 1, 0, red)
}

func TestCompositeMaskWithOffset(t *testing.T) {
	dst := filled(t, 2, 2, blue)
	l := newTestLayer(t, filled(t, 2, 2, red), layermode.ModeNormal)
	// Only layer pixel (1, 1) is covered; at offset (-1, -1) it lands on (0, 0).
	if err := l.SetMask([]float32{0, 0, 0, 1}); err != nil {
		t.Fatalf("SetMask() error = %v", err)
	}
	l.SetOffset(-1, -1)

	c := NewCompositor()
	defer c.Close()
	if err := c.Composite(dst, l); err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	assertPixel(t, dst, 0, 0, red)
	assertPixel(t, dst, 1, 1, blue)
}

func TestCompositeLinear(t *testing.T) {
	c := NewCompositor()
	defer c.Close()

	composite := func(linear bool) float32 {
		dst := filled(t, 1, 1, [4]float32{0, 0, 0, 1})
		l := newTestLayer(t, filled(t, 1, 1, [4]float32{1, 1, 1, 1}), layermode.ModeNormal)
		l.SetOpacity(0.5)
		l.SetLinear(linear)
		if err := c.Composite(dst, l); err != nil {
			t.Fatalf("Composite() error = %v", err)
		}
		r, _, _, a := dst.At(0, 0)
		if a != 1 {
			t.Errorf("alpha = %v, want 1", a)
		}
		return r
	}

	if got := composite(false); !floatNear(got, 0.5, 1e-4) {
		t.Errorf("gamma half mix = %v, want 0.5", got)
	}
	// Half of linear white is 0.5, which encodes to about 0.735 in sRGB.
	if got := composite(true); !floatNear(got, 0.7354, 1e-3) {
		t.Errorf("linear half mix = %v, want 0.7354", got)
	}
}

func TestCompositeLinearLeavesLayerUntouched(t *testing.T) {
	src := filled(t, 2, 2, [4]float32{0.5, 0.25, 0.75, 1})
	l := newTestLayer(t, src, layermode.ModeLCHColor)
	l.SetLinear(true)

	c := NewCompositor()
	defer c.Close()
	if err := c.Composite(filled(t, 2, 2, blue), l); err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	assertPixel(t, src, 1, 1, [4]float32{0.5, 0.25, 0.75, 1})
}

// gradient fills buf with a deterministic, position-dependent pattern.
func gradient(buf *image.Buffer, seed int) {
	w, h := buf.Bounds()
	for y := range h {
		for x := range w {
			_ = buf.Set(x, y,
				float32((x*7+seed)%256)/255,
				float32((y*13+seed)%256)/255,
				float32((x*y+seed)%256)/255,
				float32((x+y+seed)%101)/100)
		}
	}
}

func TestCompositeParallelMatchesSerial(t *testing.T) {
	const w, h = 97, 150

	cases := []struct {
		mode   layermode.Mode
		linear bool
	}{
		{layermode.ModeDissolve, false},
		{layermode.ModeLCHColor, true},
		{layermode.ModeHSVHueLegacy, false},
		{layermode.ModeColorErase, false},
	}

	serial := NewCompositor()
	defer serial.Close()
	parallel := NewCompositor(WithWorkers(4))
	defer parallel.Close()

	if parallel.Workers() != 4 {
		t.Fatalf("Workers() = %d, want 4", parallel.Workers())
	}

	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			src := mustBuffer(t, w, h)
			gradient(src, 3)

			want := mustBuffer(t, w, h)
			gradient(want, 11)
			got := want.Clone()

			for _, c := range []struct {
				comp *Compositor
				dst  *image.Buffer
			}{{serial, want}, {parallel, got}} {
				l := newTestLayer(t, src, tc.mode)
				l.SetLinear(tc.linear)
				l.SetOpacity(0.6)
				l.SetOffset(-3, 5)
				if err := c.comp.Composite(c.dst, l); err != nil {
					t.Fatalf("Composite() error = %v", err)
				}
			}

			wp, gp := want.Pix(), got.Pix()
			for i := range wp {
				if wp[i] != gp[i] {
					t.Fatalf("pix[%d] = %v in parallel, %v serially", i, gp[i], wp[i])
				}
			}
		})
	}
}

func TestCompositeAfterClose(t *testing.T) {
	c := NewCompositor(WithWorkers(2))
	c.Close()
	c.Close()

	dst := filled(t, 8, 100, blue)
	l := newTestLayer(t, filled(t, 8, 100, red), layermode.ModeNormal)
	if err := c.Composite(dst, l); err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	assertPixel(t, dst, 7, 99, red)
}

func TestCompositeUnknownModeWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	c := NewCompositor(WithResolver(layermode.NewResolver(layermode.WithLogger(logger))))
	defer c.Close()

	l := newTestLayer(t, filled(t, 2, 2, red), layermode.Mode(9999))
	for range 3 {
		dst := filled(t, 2, 2, blue)
		if err := c.Composite(dst, l); err != nil {
			t.Fatalf("Composite() error = %v", err)
		}
		assertPixel(t, dst, 1, 1, red)
	}

	out := buf.String()
	if n := strings.Count(out, "mode=9999"); n != 1 {
		t.Errorf("got %d warnings for mode 9999, want 1:\n%s", n, out)
	}
}

func BenchmarkComposite(b *testing.B) {
	for _, workers := range []int{1, 0} {
		name := "serial"
		if workers != 1 {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			c := NewCompositor(WithWorkers(workers))
			defer c.Close()

			dst := mustBuffer(b, 512, 512)
			gradient(dst, 1)
			src := mustBuffer(b, 512, 512)
			gradient(src, 2)
			l := newTestLayer(b, src, layermode.ModeLCHHue)

			for b.Loop() {
				_ = c.Composite(dst, l)
			}
		})
	}
}

func TestCompositeLogsSpace(t *testing.T) {
	orig := layermode.Logger()
	t.Cleanup(func() { layermode.SetLogger(orig) })

	var buf bytes.Buffer
	layermode.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	c := NewCompositor()
	defer c.Close()

	l := newTestLayer(t, filled(t, 1, 1, red), layermode.ModeLCHHue)
	for _, linear := range []bool{false, true} {
		l.SetLinear(linear)
		if err := c.Composite(filled(t, 1, 1, blue), l); err != nil {
			t.Fatalf("Composite() error = %v", err)
		}
	}

	out := buf.String()
	for _, want := range []string{"space=sRGB", "space=linear", "kernel=lch-hue-linear"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestCompositeSharedLayerConcurrent(t *testing.T) {
	src := filled(t, 8, 80, red)
	l := newTestLayer(t, src, layermode.ModeLCHColor)
	l.SetLinear(true)

	silent := layermode.NewResolver(layermode.WithLogger(nil))
	comps := []*Compositor{
		NewCompositor(),
		NewCompositor(WithResolver(silent), WithWorkers(2)),
	}
	for _, c := range comps {
		defer c.Close()
	}

	want := filled(t, 8, 80, blue)
	if err := comps[0].Composite(want, l); err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	const goroutines = 8
	dsts := make([]*image.Buffer, goroutines)
	errs := make([]error, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		dsts[i] = filled(t, 8, 80, blue)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				dsts[i].Fill(blue[0], blue[1], blue[2], blue[3])
				if err := comps[i%2].Composite(dsts[i], l); err != nil {
					errs[i] = err
					return
				}
			}
		}()
	}
	wg.Wait()

	for i, dst := range dsts {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: Composite() error = %v", i, errs[i])
		}
		wp, gp := want.Pix(), dst.Pix()
		for j := range wp {
			if wp[j] != gp[j] {
				t.Fatalf("goroutine %d: pix[%d] = %v, want %v", i, j, gp[j], wp[j])
			}
		}
	}
}
