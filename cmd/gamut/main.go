package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kovidgoyal/colortest"
	"github.com/kovidgoyal/colortest/chroma"
	"github.com/kovidgoyal/colortest/cmm"
)

var _ = fmt.Print

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	colortest.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if len(os.Args) < 2 || len(os.Args) > 4 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/gamut primaries [output-file] [size]")
		fmt.Fprintln(os.Stderr, "primaries is one of:", strings.Join(cmm.PrimariesNames(), ", "))
		os.Exit(1)
	}
	p, err := cmm.NamedPrimaries(os.Args[1])
	if err != nil {
		return
	}
	output_file := os.Args[1] + "-gamut.png"
	if len(os.Args) > 2 {
		output_file = os.Args[2]
	}
	size := 1024
	if len(os.Args) > 3 {
		if size, err = strconv.Atoi(os.Args[3]); err != nil {
			return
		}
		if size < 2 {
			err = fmt.Errorf("the size must be at least two pixels, not %d", size)
			return
		}
	}
	fb := colortest.NewFramebuffer(size, size)
	tri := chroma.TriangleFromPrimaries(p)
	if err = colortest.DrawAll(fb, chroma.Horseshoe{}, &tri); err != nil {
		return
	}
	if err = colortest.Save(fb, output_file); err == nil {
		fmt.Println("Gamut of", os.Args[1], "saved to:", output_file)
	}
}
