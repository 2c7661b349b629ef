package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"tinyrender/internal/tga"
)

func main() {
	decode := flag.Bool("decode", false, "Also decode the pixel data")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: tgainfo [-decode] file.tga ...")
		os.Exit(2)
	}

	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	failed := 0
	for _, path := range flag.Args() {
		if err := inspect(path, *decode); err != nil {
			bad.Printf("  FAIL %v\n", err)
			failed++
			continue
		}
		ok.Println("  OK")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func inspect(path string, decode bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	color.New(color.FgCyan, color.Bold).Println(path)
	if info, err := f.Stat(); err == nil {
		fmt.Printf("  File: %s\n", humanize.Bytes(uint64(info.Size())))
	}
	h, err := tga.DecodeHeader(bufio.NewReader(f))
	if err != nil {
		return err
	}
	fmt.Printf("  Size: %dx%d, %d bits/pixel, type %d (rle=%v)\n",
		h.Width, h.Height, h.BitsPerPixel, h.DataTypeCode, h.RLE())
	fmt.Printf("  Descriptor: 0x%02x (top-down=%v, right-to-left=%v)\n", h.ImageDescriptor,
		h.ImageDescriptor&tga.DescriptorTopToBottom != 0,
		h.ImageDescriptor&tga.DescriptorRightToLeft != 0)
	fmt.Printf("  ID length: %d, color map type %d (%d entries, %d bits)\n",
		h.IDLength, h.ColorMapType, h.ColorMapLength, h.ColorMapDepth)
	if footer, err := hasFooter(f); err == nil {
		fmt.Printf("  Footer: %v\n", footer)
	}
	if err := h.Validate(); err != nil {
		return err
	}
	if !decode {
		return nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	m, err := tga.Decode(f)
	if err != nil {
		return err
	}
	fmt.Printf("  Decoded: %d bytes of pixel data\n", len(m.Pix()))
	return nil
}

func hasFooter(f *os.File) (bool, error) {
	const sig = "TRUEVISION-XFILE.\x00"
	info, err := f.Stat()
	if err != nil || info.Size() < int64(tga.HeaderSize+len(sig)) {
		return false, err
	}
	buf := make([]byte, len(sig))
	if _, err := f.ReadAt(buf, info.Size()-int64(len(sig))); err != nil {
		return false, err
	}
	return bytes.Equal(buf, []byte(sig)), nil
}
