package fill

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/kovidgoyal/colortest/transfer"
)

var _ = fmt.Print

// Sizes of the parameter blocks as seen by the GPU kernels
const (
	EncodeBlockSize = 148
	DecodeBlockSize = 164
)

var ErrBlockSize = errors.New("parameter block has the wrong size")

var le = binary.LittleEndian

func put_floats(b []byte, vals ...float32) []byte {
	for _, v := range vals {
		b = le.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

func get_floats(b []byte, dest ...*float32) []byte {
	for _, d := range dest {
		*d = math.Float32frombits(le.Uint32(b))
		b = b[4:]
	}
	return b
}

func append_common(b []byte, m *[16]float32, bounds Bounds, colors *Corners, kind transfer.Kind) []byte {
	b = put_floats(b, m[:]...)
	b = put_floats(b, bounds.X1, bounds.Y1, bounds.X2, bounds.Y2)
	for _, c := range colors {
		b = put_floats(b, c[:]...)
	}
	return le.AppendUint32(b, uint32(kind))
}

func read_common(b []byte, m *[16]float32, bounds *Bounds, colors *Corners, kind *transfer.Kind) []byte {
	for i := range m {
		b = get_floats(b, &m[i])
	}
	b = get_floats(b, &bounds.X1, &bounds.Y1, &bounds.X2, &bounds.Y2)
	for i := range colors {
		c := &colors[i]
		b = get_floats(b, &c[0], &c[1], &c[2], &c[3])
	}
	*kind = transfer.Kind(le.Uint32(b))
	return b[4:]
}

func (p *EncodeParams) AppendBinary(b []byte) ([]byte, error) {
	return append_common(b, (*[16]float32)(&p.Matrix), p.Bounds, &p.Colors, p.Transfer), nil
}

func (p *EncodeParams) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, EncodeBlockSize))
}

func (p *EncodeParams) UnmarshalBinary(data []byte) error {
	if len(data) != EncodeBlockSize {
		return fmt.Errorf("%w: encode block is %d bytes, expected %d", ErrBlockSize, len(data), EncodeBlockSize)
	}
	read_common(data, (*[16]float32)(&p.Matrix), &p.Bounds, &p.Colors, &p.Transfer)
	return nil
}

func (p *DecodeParams) AppendBinary(b []byte) ([]byte, error) {
	b = append_common(b, (*[16]float32)(&p.Matrix), p.Bounds, &p.Colors, p.Transfer)
	return put_floats(b, p.Args[:]...), nil
}

func (p *DecodeParams) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, DecodeBlockSize))
}

func (p *DecodeParams) UnmarshalBinary(data []byte) error {
	if len(data) != DecodeBlockSize {
		return fmt.Errorf("%w: decode block is %d bytes, expected %d", ErrBlockSize, len(data), DecodeBlockSize)
	}
	rest := read_common(data, (*[16]float32)(&p.Matrix), &p.Bounds, &p.Colors, &p.Transfer)
	get_floats(rest, &p.Args[0], &p.Args[1], &p.Args[2], &p.Args[3])
	return nil
}
