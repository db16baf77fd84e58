// Command layermode composites one image onto another with a layer mode.
//
// Usage:
//
//	layermode [flags] base.png layer.png
//
// The layer is placed at (x, y) on the base and the result is written
// as PNG. Run with -list to print every mode.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/gogpu/layermode"
	"github.com/gogpu/layermode/compose"
	"github.com/gogpu/layermode/internal/image"
)

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage error")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "layermode:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("layermode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		modeName = fs.String("mode", "normal", "layer mode name or numeric value")
		linear   = fs.Bool("linear", false, "composite in linear light")
		opacity  = fs.Float64("opacity", 1, "layer opacity in [0, 1]")
		x        = fs.Int("x", 0, "layer x offset on the base")
		y        = fs.Int("y", 0, "layer y offset on the base")
		fit      = fs.Bool("fit", false, "resize the layer to the base size")
		maskPath = fs.String("mask", "", "optional mask image; luminance is coverage")
		output   = fs.String("o", "out.png", "output file")
		workers  = fs.Int("workers", 1, "compositing goroutines (0 = GOMAXPROCS)")
		verbose  = fs.Bool("v", false, "enable debug logging")
		list     = fs.Bool("list", false, "list layer modes and exit")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: layermode [flags] base layer")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	layermode.SetLogger(logger)

	if *list {
		return listModes(stdout)
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("%w: want 2 images, got %d", errUsage, fs.NArg())
	}
	mode, err := layermode.ParseMode(*modeName)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	base, err := image.Load(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("load base: %w", err)
	}
	src, err := image.Load(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("load layer: %w", err)
	}
	if *fit {
		src, err = image.Resize(src, base.Width(), base.Height())
		if err != nil {
			return fmt.Errorf("fit layer: %w", err)
		}
	}

	layer, err := compose.NewLayer(src, mode)
	if err != nil {
		return err
	}
	layer.SetLinear(*linear)
	layer.SetOpacity(float32(*opacity))
	layer.SetOffset(*x, *y)

	if *maskPath != "" {
		mask, err := loadMask(*maskPath)
		if err != nil {
			return fmt.Errorf("load mask: %w", err)
		}
		if err := layer.SetMask(mask); err != nil {
			return err
		}
	}

	c := compose.NewCompositor(compose.WithWorkers(*workers))
	defer c.Close()

	if err := c.Composite(base, layer); err != nil {
		return fmt.Errorf("composite: %w", err)
	}
	if err := base.SavePNG(*output); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	logger.Info("wrote image",
		"path", *output,
		"mode", mode,
		"kernel", layer.Kernel().Name(),
		"width", base.Width(),
		"height", base.Height())
	return nil
}

// listModes prints every mode with its value and class.
func listModes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VALUE\tNAME\tCLASS\tKERNEL")
	for _, m := range layermode.Modes() {
		kernel := layermode.Resolve(m, false).Name()
		if m.IsLCH() {
			kernel += ", " + layermode.Resolve(m, true).Name()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", int32(m), m, modeClass(m), kernel)
	}
	return tw.Flush()
}

func modeClass(m layermode.Mode) string {
	switch {
	case m.IsLegacy():
		return "legacy"
	case m.IsLCH():
		return "lch"
	case m.IsInternal():
		return "internal"
	default:
		return "current"
	}
}

// loadMask reads an image and returns its alpha-weighted Rec. 709 luminance
// as one coverage value per pixel.
func loadMask(path string) ([]float32, error) {
	buf, err := image.Load(path)
	if err != nil {
		return nil, err
	}
	pix := buf.Pix()
	mask := make([]float32, len(pix)/image.Channels)
	for i := range mask {
		o := i * image.Channels
		luma := 0.2126*pix[o] + 0.7152*pix[o+1] + 0.0722*pix[o+2]
		mask[i] = luma * pix[o+3]
	}
	return mask, nil
}
