package types

import (
	"fmt"
)

var _ = fmt.Print

// Format is an output image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	PNG
	TIFF
)

var FormatExts = map[string]Format{
	"png":  PNG,
	"apng": PNG,
	"tif":  TIFF,
	"tiff": TIFF,
}

var formatNames = map[Format]string{
	PNG:  "PNG",
	TIFF: "TIFF",
}

func (f Format) String() string {
	if ans, ok := formatNames[f]; ok {
		return ans
	}
	return "UNKNOWN"
}
