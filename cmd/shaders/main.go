package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kovidgoyal/colortest"
	"github.com/kovidgoyal/colortest/shaders"
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
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/shaders [output-dir]")
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	colortest.SetLogger(logger)
	output_dir := "."
	if len(os.Args) == 2 {
		output_dir = os.Args[1]
	}
	if err = os.MkdirAll(output_dir, 0o755); err != nil {
		return
	}
	failed := 0
	for _, name := range shaders.Names() {
		words, cerr := shaders.Compile(name)
		if cerr != nil {
			logger.Error("compile failed", "shader", name, "error", cerr)
			failed++
			continue
		}
		output_file := filepath.Join(output_dir, name+".spv")
		if err = os.WriteFile(output_file, shaders.Bytes(words), 0o666); err != nil {
			return
		}
		logger.Info("compiled", "shader", name, "words", len(words), "path", output_file)
	}
	if failed > 0 {
		err = fmt.Errorf("%d of %d shaders failed to compile", failed, len(shaders.Names()))
		return
	}
	fmt.Printf("Shaders compiled to %s/*.spv\n", output_dir)
}
