package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kovidgoyal/colortest"
	"github.com/kovidgoyal/colortest/scene"
)

var _ = fmt.Print

const usage = `usage: go run ./cmd/colortest [-v] scene-file [output-file]
       go run ./cmd/colortest -defaults

Renders the test scene described by scene-file, a TOML file, as a 16-bit
PNG or TIFF. Scene files that list several frames are written as an
animated PNG. -defaults prints a scene file with every setting at its
default value.`

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	args := os.Args[1:]
	level := slog.LevelInfo
	if len(args) > 0 && args[0] == "-v" {
		level = slog.LevelDebug
		args = args[1:]
	}
	colortest.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if len(args) == 1 && args[0] == "-defaults" {
		_, err = scene.Default().WriteTo(os.Stdout)
		return
	}
	if len(args) == 0 || len(args) > 2 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	cfg, err := scene.Load(args[0])
	if err != nil {
		return
	}
	ext := ".png"
	if len(cfg.Frames) > 1 {
		ext = ".apng"
	}
	output_file := strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ext
	if len(args) == 2 {
		output_file = args[1]
	}
	format, err := colortest.FormatFromFilename(output_file)
	if err != nil {
		return
	}
	seq, err := cfg.Sequence()
	if err != nil {
		return
	}
	switch {
	case len(seq.Frames) == 1:
		err = colortest.Save(seq.Frames[0].Image, output_file)
	case format != colortest.PNG:
		err = fmt.Errorf("%d frames can only be saved as an animated PNG, not as %s", len(seq.Frames), format)
	default:
		err = seq.Save(output_file)
	}
	if err == nil {
		fmt.Println("Scene saved to:", output_file)
	}
}
