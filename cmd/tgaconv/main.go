package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"tinyrender/internal/imageio"
)

func main() {
	width := flag.Int("width", 0, "Scale to this width (nearest neighbour)")
	height := flag.Int("height", 0, "Scale to this height (nearest neighbour)")
	smooth := flag.Bool("smooth", false, "Use Catmull-Rom resampling instead of nearest neighbour")
	flipV := flag.Bool("flipv", false, "Flip vertically")
	flipH := flag.Bool("fliph", false, "Flip horizontally")
	rle := flag.Bool("rle", true, "Run-length encode TGA output")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tgaconv [flags] input output")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	img, err := imageio.Load(in)
	if err != nil {
		fatal(err)
	}

	if *width > 0 || *height > 0 {
		w, h := *width, *height
		if w <= 0 {
			w = img.Width() * h / img.Height()
		}
		if h <= 0 {
			h = img.Height() * w / img.Width()
		}
		if *smooth {
			img, err = imageio.Resample(img, w, h)
		} else {
			err = img.Scale(w, h)
		}
		if err != nil {
			fatal(err)
		}
	}
	if *flipV {
		img.FlipVertically()
	}
	if *flipH {
		img.FlipHorizontally()
	}

	if err := imageio.Save(out, img, imageio.SaveOptions{RLE: *rle}); err != nil {
		fatal(err)
	}
	color.New(color.FgGreen).Printf("%s → %s (%dx%d, %d bytes/pixel)\n",
		in, out, img.Width(), img.Height(), img.BytesPerPixel())
}

func fatal(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
