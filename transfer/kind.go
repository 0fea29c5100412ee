package transfer

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/image/math/f32"
)

var _ = fmt.Print

type Vec3 = f32.Vec3

// Kind selects a transfer function. The numeric values are part of the
// parameter block layout shared with the GPU kernels and must not change.
type Kind uint32

const (
	SRGB Kind = iota
	Linear
	ST2084PQ
	BT1886
	Gamma22
	Gamma28
	ST240
	ExtSRGB
	Log100
	Log316
	ST428
	Pow
)

// Args are the auxiliary parameters of a transfer function. BT1886 uses
// all four as linearization coefficients, Pow uses Args[0] as the exponent.
type Args [4]float32

// Spec is a transfer function together with its arguments.
type Spec struct {
	Kind Kind
	Args Args
}

var ErrUnknownKind = errors.New("unknown transfer function")

var kind_names = [...]string{
	SRGB:     "srgb",
	Linear:   "linear",
	ST2084PQ: "st2084-pq",
	BT1886:   "bt1886",
	Gamma22:  "gamma22",
	Gamma28:  "gamma28",
	ST240:    "st240",
	ExtSRGB:  "ext-srgb",
	Log100:   "log100",
	Log316:   "log316",
	ST428:    "st428",
	Pow:      "pow",
}

func (k Kind) String() string {
	if int(k) < len(kind_names) {
		return kind_names[k]
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// Known reports whether k is one of the defined transfer functions.
func (k Kind) Known() bool { return int(k) < len(kind_names) }

func ParseKind(name string) (Kind, error) {
	q := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch q {
	case "pq", "st2084":
		return ST2084PQ, nil
	case "scrgb":
		return Linear, nil
	}
	for i, n := range kind_names {
		if n == q {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Known() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint32(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseKind(string(text))
	return
}
