package scene

import (
	"errors"
	"fmt"
	"strings"
)

var _ = fmt.Print

// Kind selects one of the test scenes.
type Kind int

const (
	Fill Kind = iota
	LeftRight
	TopBottom
	Four
	CenterBox
	Grid
	Blend
)

var ErrUnknownScene = errors.New("unknown scene")

var kind_names = [...]string{
	Fill:      "fill",
	LeftRight: "left-right",
	TopBottom: "top-bottom",
	Four:      "four",
	CenterBox: "center-box",
	Grid:      "grid",
	Blend:     "blend",
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Kinds returns all scenes in the order they are listed in help output.
func Kinds() []Kind {
	return []Kind{Fill, LeftRight, TopBottom, Four, CenterBox, Grid, Blend}
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kind_names) {
		return kind_names[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(name string) (Kind, error) {
	q := normalize(name)
	for i, n := range kind_names {
		if n == q {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kind_names) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScene, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseKind(string(text))
	return
}

// DescriptionType is how the output surface describes its colors.
type DescriptionType int

const (
	// No description, the surface is plain sRGB
	None DescriptionType = iota
	// Linear sRGB primaries with 1.0 at 80 cd/m², as Windows does it
	ScRGB
	// Explicit primaries, transfer function and optionally luminance
	Parametric
)

var ErrUnknownDescription = errors.New("unknown color description")

var description_names = [...]string{
	None:       "none",
	ScRGB:      "scrgb",
	Parametric: "parametric",
}

func (t DescriptionType) String() string {
	if t >= 0 && int(t) < len(description_names) {
		return description_names[t]
	}
	return fmt.Sprintf("DescriptionType(%d)", int(t))
}

func (t DescriptionType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(description_names) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDescription, int(t))
	}
	return []byte(t.String()), nil
}

func (t *DescriptionType) UnmarshalText(text []byte) error {
	q := normalize(string(text))
	for i, n := range description_names {
		if n == q {
			*t = DescriptionType(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownDescription, string(text))
}
