// Copyright 2024 The quilt Authors. All rights reserved.

// Command quiltxform applies linear transformations to a BMP image and
// writes each result as a BMP raster and an SVG quilt.
//
// Without -job it runs seven examples: identity, translating, scaling,
// rotating, reflecting, a negative color transform and stretching.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	quilt "github.com/duncpro/linear-image-transformer"
	"github.com/duncpro/linear-image-transformer/raster"
)

type cliOpts struct {
	input   string
	output  string
	jobFile string
	only    string
	preview bool
	caption bool
	doLog   bool
}

func parseCLIOpts(args []string) (cliOpts, error) {
	var opt cliOpts
	fs := flag.NewFlagSet("quiltxform", flag.ContinueOnError)
	fs.StringVar(&opt.input, "in", "", "Input BMP file (overrides the job file)")
	fs.StringVar(&opt.output, "out", "", "Output directory (overrides the job file)")
	fs.StringVar(&opt.jobFile, "job", "", "TOML job file; the built-in examples run if empty")
	fs.StringVar(&opt.only, "only", "", "Run only the named step")
	fs.BoolVar(&opt.preview, "preview", false, "Also write an anti-aliased PNG of each SVG")
	fs.BoolVar(&opt.caption, "caption", false, "Label each preview with its step name unless the step sets a caption")
	fs.BoolVar(&opt.doLog, "log", false, "Print debugging output to stderr")
	err := fs.Parse(args)
	return opt, err
}

func main() {
	opt, err := parseCLIOpts(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "quiltxform: %v\n", err)
		os.Exit(1)
	}
}

func run(opt cliOpts) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if opt.doLog {
		quilt.SetLogger(logger)
	} else {
		logger = quilt.Logger()
	}

	j := defaultJob()
	if opt.jobFile != "" {
		var err error
		if j, err = loadJob(opt.jobFile); err != nil {
			return err
		}
	}
	if opt.input != "" {
		j.Input = opt.input
	}
	if opt.output != "" {
		j.Output = opt.output
	}
	plans, err := j.plans()
	if err != nil {
		return err
	}

	src, err := raster.ReadFile(j.Input)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(j.Output, 0o755); err != nil {
		return err
	}

	ran := 0
	for _, p := range plans {
		if opt.only != "" && p.name != opt.only {
			continue
		}
		logger.Info("running step", "name", p.name)
		if opt.caption && p.caption.Text == "" {
			p.caption.Text = p.name
		}
		if err := p.run(src, j.Output, opt.preview); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
		ran++
	}
	if ran == 0 {
		return fmt.Errorf("no step named %q", opt.only)
	}
	return nil
}

// frame returns the view box a step renders into. A fixed origin frame
// fails when the quilt was moved to negative coordinates.
func (p plan) frame(q *quilt.Quilt) (quilt.ViewBox, error) {
	vb := quilt.FitViewBox(q)
	if p.fixedOrigin {
		// keep (0, 0) as the physical origin so a translation stays visible
		vb = quilt.ViewBox{
			Width:  vb.MinX + vb.Width + 1,
			Height: vb.MinY + vb.Height + 1,
		}
	}
	w, h := vb.Width*p.density, vb.Height*p.density
	if !(w >= 0) || !(h >= 0) || w > math.MaxInt32 || h > math.MaxInt32 {
		return vb, fmt.Errorf("%w: %gx%g", errFrame, vb.Width, vb.Height)
	}
	return vb, nil
}

func (p plan) run(src *raster.Raster, outDir string, preview bool) error {
	q := quilt.Knit(src)
	if p.vertices != nil {
		q.Transform(p.vertices)
	}
	if p.colors != nil {
		if err := q.TryTransformColors(p.colors); err != nil {
			return err
		}
	}
	vb, err := p.frame(q)
	if err != nil {
		return err
	}

	svgName := filepath.Join(outDir, p.name+".svg")
	if err := writeSVG(svgName, q, vb); err != nil {
		return err
	}
	img := quilt.Rasterize(q, vb, p.background, p.scan, p.density)
	if err := raster.WriteFile(filepath.Join(outDir, p.name+".bmp"), img); err != nil {
		return err
	}
	if preview {
		return writePreview(svgName, filepath.Join(outDir, p.name+".png"), p.density, p.caption)
	}
	return nil
}

func writeSVG(name string, q *quilt.Quilt, vb quilt.ViewBox) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = quilt.RenderSVG(f, q, vb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writePreview reads the SVG back and fills its polygons into a PNG. A
// caption with text is drawn along the bottom edge.
func writePreview(svgName, pngName string, density float64, caption quilt.Caption) error {
	fin, err := os.Open(svgName)
	if err != nil {
		return err
	}
	doc, err := quilt.ReadSVG(fin, quilt.WarnErrorMode)
	fin.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", svgName, err)
	}
	img := quilt.NewCanvas(doc.ViewBox, density, raster.Black())
	quilt.DrawDocument(img, doc, density)
	if caption.Text != "" {
		caption.X, caption.Y = 4, float64(img.Bounds().Dy()-4)
		if err := quilt.DrawCaption(img, caption); err != nil {
			return err
		}
	}

	f, err := os.Create(pngName)
	if err != nil {
		return err
	}
	b := bufio.NewWriter(f)
	if err = png.Encode(b, img); err == nil {
		err = b.Flush()
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
