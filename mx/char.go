package mx

import (
	"fmt"
	"unicode/utf16"

	"github.com/wippyai/mex-bridge/errors"
)

// The foreign runtime stores character data as UTF-16 code units.

func encodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// NewCharUTF16 creates a char array from raw UTF-16 code units in
// column-major order.
func NewCharUTF16(rows, cols int, units []uint16) (*Array, error) {
	if err := checkDims(rows, cols); err != nil {
		return nil, err
	}
	if len(units) != rows*cols {
		return nil, errors.InvalidInput(errors.PhaseEncode,
			fmt.Sprintf("%d code units for a %dx%d char array", len(units), rows, cols))
	}
	return &Array{
		class: ClassChar,
		rows:  rows,
		cols:  cols,
		chars: append([]uint16(nil), units...),
	}, nil
}

func decodeUTF16(units []uint16) string {
	return string(utf16.Decode(units))
}
