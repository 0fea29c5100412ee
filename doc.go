/*
Package colortest renders calibrated color test patterns on the CPU with the
same kernels the GPU pipeline runs: perceptual gradient fills and the
chromaticity diagram overlays.

Kernels from the fill and chroma packages are drawn into a float32
[Framebuffer] with [Draw], which blends them the way the GPU blend state
does. The result can be written as a 16-bit PNG or TIFF with [Save], or as
an animated PNG with [Sequence].
*/
package colortest

import "fmt"

type ColortestVersion struct {
	Major, Minor, Patch uint
}

func (v ColortestVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v ColortestVersion) Equal(o ColortestVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v ColortestVersion) After(o ColortestVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v ColortestVersion) Before(o ColortestVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = ColortestVersion{0, 3, 0}
