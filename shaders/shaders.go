// Package shaders holds the WGSL versions of the color kernels and compiles
// them to SPIR-V. Each kernel module has a vs_main and an fs_main entry
// point drawing a four vertex triangle strip. The parameter blocks are the
// ones produced by the fill and chroma packages.
package shaders

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/naga"
)

var _ = fmt.Print

//go:embed wgsl/*.wgsl
var sources embed.FS

var ErrUnknownShader = errors.New("unknown shader")

// the kernels and the shared sources each of them is built from, in order
var modules = map[string][]string{
	"fill_encode": {"transfer", "fill", "fill_encode"},
	"fill_decode": {"transfer", "fill", "fill_decode"},
	"horseshoe":   {"plane", "horseshoe"},
	"triangle":    {"plane", "triangle"},
}

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203

// Names returns the kernel names in sorted order.
func Names() []string {
	ans := make([]string, 0, len(modules))
	for k := range modules {
		ans = append(ans, k)
	}
	slices.Sort(ans)
	return ans
}

// Source returns the complete WGSL source of the named kernel.
func Source(name string) (string, error) {
	parts, found := modules[name]
	if !found {
		return "", fmt.Errorf("%w: %q", ErrUnknownShader, name)
	}
	b := strings.Builder{}
	for _, p := range parts {
		data, err := sources.ReadFile("wgsl/" + p + ".wgsl")
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.Write(data)
	}
	return b.String(), nil
}

// Compile compiles the named kernel to SPIR-V words.
func Compile(name string) ([]uint32, error) {
	src, err := Source(name)
	if err != nil {
		return nil, err
	}
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile the %s shader: %w", name, err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("the %s shader compiled to %d bytes, not a whole number of words", name, len(spirv))
	}
	// SPIR-V is little-endian 32-bit words
	ans := make([]uint32, len(spirv)/4)
	for i := range ans {
		ans[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return ans, nil
}

// Bytes serializes SPIR-V words the way .spv files store them.
func Bytes(words []uint32) []byte {
	ans := make([]byte, 0, len(words)*4)
	for _, w := range words {
		ans = append(ans, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return ans
}
