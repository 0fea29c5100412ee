package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/kovidgoyal/colortest/cmm"
	"github.com/kovidgoyal/colortest/transfer"
)

var _ = fmt.Print

var ErrInvalidConfig = errors.New("invalid scene configuration")

// Description is the color description of the output surface. It decides
// the matrix from LMS to the output primaries and the transfer function
// the fill kernels are drawn with.
type Description struct {
	Type DescriptionType `toml:"type"`
	// Named primaries, see cmm.PrimariesNames(). Empty means sRGB.
	Primaries string `toml:"primaries,omitempty"`
	// Overrides Primaries when set
	CustomPrimaries *cmm.Primaries `toml:"custom_primaries,omitempty"`
	Transfer        transfer.Kind  `toml:"transfer"`
	// EOTF exponent for the pow transfer function
	Exponent  float64        `toml:"exponent,omitempty"`
	Luminance *cmm.Luminance `toml:"luminance,omitempty"`
}

const DefaultOverlaySize = 40

// Overlay draws a chromaticity diagram with the gamut triangle of the
// named primaries into the bottom right corner of the output.
type Overlay struct {
	Primaries string `toml:"primaries"`
	// Edge length of the square diagram in percent of the output height
	Size float32 `toml:"size"`
}

// Config is a scene file. Every scene keeps its own colors so that a single
// file can render all of them, Scene selects the one rendered by default
// and Frames, when not empty, lists the scenes of an animated sequence.
type Config struct {
	Width       int         `toml:"width"`
	Height      int         `toml:"height"`
	Scene       Kind        `toml:"scene"`
	Frames      []Kind      `toml:"frames,omitempty"`
	FrameDelay  float64     `toml:"frame_delay"` // seconds
	Description Description `toml:"description"`
	Overlay     *Overlay    `toml:"overlay,omitempty"`

	Fill          Color    `toml:"fill"`
	LeftRight     [2]Color `toml:"left_right"`
	TopBottom     [2]Color `toml:"top_bottom"`
	FourCorners   [4]Color `toml:"four_corners"`
	CenterBox     [2]Color `toml:"center_box"`
	CenterBoxSize float32  `toml:"center_box_size"` // percent
	Grid          [2]Color `toml:"grid"`
	GridRows      uint32   `toml:"grid_rows"`
	GridCols      uint32   `toml:"grid_cols"`
	Blend         [2]Color `toml:"blend"`
	BlendAlpha    float32  `toml:"blend_alpha"`
}

// Default returns the configuration used for everything a scene file
// leaves out.
func Default() *Config {
	const lumen, lightness, chroma = ReferenceWhite, 0.7, 0.2
	c := func(hue float32) Color { return Color{Lumen: lumen, Lightness: lightness, Chroma: chroma, Hue: hue} }
	white := Color{Lumen: lumen, Lightness: 1}
	return &Config{
		Width:      1024,
		Height:     768,
		Scene:      Four,
		FrameDelay: 2,
		Description: Description{
			Type:      None,
			Primaries: "srgb",
			Transfer:  transfer.Gamma22,
			Exponent:  2.2,
		},
		Fill:          white,
		LeftRight:     [2]Color{c(0), c(180)},
		TopBottom:     [2]Color{c(90), c(270)},
		FourCorners:   [4]Color{c(0), c(90), c(270), c(180)},
		CenterBox:     [2]Color{{}, white},
		CenterBoxSize: 50,
		Grid:          [2]Color{{}, white},
		GridRows:      4,
		GridCols:      4,
		Blend:         [2]Color{c(40), c(140)},
		BlendAlpha:    0.5,
	}
}

// Parse decodes a TOML scene file on top of the defaults. Unknown keys
// are an error.
func Parse(data []byte) (*Config, error) {
	ans := Default()
	d := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := d.Decode(ans); err != nil {
		var sme *toml.StrictMissingError
		var de *toml.DecodeError
		switch {
		case errors.As(err, &sme):
			return nil, fmt.Errorf("%w: unknown keys:\n%s", ErrInvalidConfig, sme.String())
		case errors.As(err, &de):
			row, col := de.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", ErrInvalidConfig, row, col, de.Error())
		}
		return nil, err
	}
	if ans.Overlay != nil && ans.Overlay.Size == 0 {
		ans.Overlay.Size = DefaultOverlaySize
	}
	if err := ans.Validate(); err != nil {
		return nil, err
	}
	return ans, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ans, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ans, nil
}

// WriteTo writes c as a TOML scene file.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return invalid("output size %dx%d is too small", c.Width, c.Height)
	}
	for _, k := range append([]Kind{c.Scene}, c.Frames...) {
		if _, err := k.MarshalText(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.FrameDelay < 0 {
		return invalid("negative frame delay: %g", c.FrameDelay)
	}
	if c.CenterBoxSize < 0 || c.CenterBoxSize > 100 {
		return invalid("center box size must be between 0 and 100, not %g", c.CenterBoxSize)
	}
	if c.GridRows == 0 || c.GridCols == 0 {
		return invalid("grid of %dx%d cells", c.GridRows, c.GridCols)
	}
	if c.BlendAlpha < 0 || c.BlendAlpha > 1 {
		return invalid("blend alpha must be between 0 and 1, not %g", c.BlendAlpha)
	}
	if c.Overlay != nil {
		if _, err := cmm.NamedPrimaries(c.Overlay.Primaries); err != nil {
			return fmt.Errorf("%w: overlay: %w", ErrInvalidConfig, err)
		}
		if c.Overlay.Size <= 0 || c.Overlay.Size > 100 {
			return invalid("overlay size must be between 0 and 100, not %g", c.Overlay.Size)
		}
	}
	if _, err := c.Description.Resolve(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
