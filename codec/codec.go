// Package codec serializes foreign values to canonical CBOR, used for
// persisted results and binary fixture arguments.
package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// wireArray is the CBOR form of a foreign value. Numeric data travels in
// width-64 slices per storage family; the class restores the exact element
// type on decode.
type wireArray struct {
	Class   uint8          `cbor:"1,keyasint"`
	Rows    int            `cbor:"2,keyasint"`
	Cols    int            `cbor:"3,keyasint"`
	Floats  []float64      `cbor:"4,keyasint,omitempty"`
	Ints    []int64        `cbor:"5,keyasint,omitempty"`
	Uints   []uint64       `cbor:"6,keyasint,omitempty"`
	Imag    []float64      `cbor:"7,keyasint,omitempty"`
	Bools   []bool         `cbor:"8,keyasint,omitempty"`
	Chars   []uint16       `cbor:"9,keyasint,omitempty"`
	Cells   []*wireArray   `cbor:"10,keyasint,omitempty"`
	Fields  []string       `cbor:"11,keyasint,omitempty"`
	Records [][]*wireArray `cbor:"12,keyasint,omitempty"`
}

// Marshal serializes a foreign value to canonical CBOR bytes.
func Marshal(a *mx.Array) ([]byte, error) {
	w, err := encode(a)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(w)
}

// Unmarshal deserializes a foreign value from CBOR bytes.
func Unmarshal(data []byte) (*mx.Array, error) {
	var w wireArray
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "decode value")
	}
	return decode(&w)
}

func signedClass(c mx.ClassID) bool {
	switch c {
	case mx.ClassInt8, mx.ClassInt16, mx.ClassInt32, mx.ClassInt64:
		return true
	}
	return false
}

func unsignedClass(c mx.ClassID) bool {
	switch c {
	case mx.ClassUint8, mx.ClassUint16, mx.ClassUint32, mx.ClassUint64:
		return true
	}
	return false
}

func encode(a *mx.Array) (*wireArray, error) {
	if a == nil {
		return nil, nil
	}

	w := &wireArray{
		Class: uint8(a.Class()),
		Rows:  a.Rows(),
		Cols:  a.Cols(),
	}

	switch {
	case a.IsNumeric():
		var err error
		switch {
		case signedClass(a.Class()):
			w.Ints, err = convert.ToSlice[int64](a)
		case unsignedClass(a.Class()):
			w.Uints, err = convert.ToSlice[uint64](a)
		default:
			w.Floats, err = convert.ToSlice[float64](a)
		}
		if err != nil {
			return nil, err
		}
		if a.IsComplex() {
			w.Imag = make([]float64, a.NumElements())
			for i := range w.Imag {
				v, err := a.ImagAt(i)
				if err != nil {
					return nil, err
				}
				w.Imag[i] = v
			}
		}

	case a.IsLogical():
		w.Bools = append([]bool(nil), a.Logicals()...)

	case a.IsChar():
		w.Chars = append([]uint16(nil), a.Chars()...)

	case a.IsCell():
		cells := a.Cells()
		w.Cells = make([]*wireArray, len(cells))
		for i, el := range cells {
			we, err := encode(el)
			if err != nil {
				return nil, err
			}
			w.Cells[i] = we
		}

	case a.IsStruct():
		w.Fields = a.FieldNames()
		n := a.NumElements()
		w.Records = make([][]*wireArray, n)
		for rec := 0; rec < n; rec++ {
			w.Records[rec] = make([]*wireArray, len(w.Fields))
			for fi, f := range w.Fields {
				v, err := a.FieldIndexed(f, rec)
				if err != nil {
					return nil, err
				}
				wv, err := encode(v)
				if err != nil {
					return nil, err
				}
				w.Records[rec][fi] = wv
			}
		}

	default:
		return nil, errors.InvalidData(errors.PhaseLoad, nil,
			"unencodable class "+a.Class().String())
	}

	return w, nil
}

func decode(w *wireArray) (*mx.Array, error) {
	if w == nil {
		return nil, nil
	}

	class := mx.ClassID(w.Class)
	n := w.Rows * w.Cols

	switch {
	case class.IsNumeric():
		var a *mx.Array
		var err error
		if w.Imag != nil {
			a, err = mx.NewComplex(class, w.Rows, w.Cols)
		} else {
			a, err = mx.NewNumeric(class, w.Rows, w.Cols)
		}
		if err != nil {
			return nil, err
		}
		switch {
		case signedClass(class):
			if len(w.Ints) != n {
				return nil, lengthMismatch(class, len(w.Ints), n)
			}
			for i, v := range w.Ints {
				if err := convert.ElemFrom(a, i, v); err != nil {
					return nil, err
				}
			}
		case unsignedClass(class):
			if len(w.Uints) != n {
				return nil, lengthMismatch(class, len(w.Uints), n)
			}
			for i, v := range w.Uints {
				if err := convert.ElemFrom(a, i, v); err != nil {
					return nil, err
				}
			}
		default:
			if len(w.Floats) != n {
				return nil, lengthMismatch(class, len(w.Floats), n)
			}
			for i, v := range w.Floats {
				if err := convert.ElemFrom(a, i, v); err != nil {
					return nil, err
				}
			}
		}
		if w.Imag != nil {
			if len(w.Imag) != n {
				return nil, lengthMismatch(class, len(w.Imag), n)
			}
			for i, v := range w.Imag {
				if err := a.SetImagAt(i, v); err != nil {
					return nil, err
				}
			}
		}
		return a, nil

	case class == mx.ClassLogical:
		if len(w.Bools) != n {
			return nil, lengthMismatch(class, len(w.Bools), n)
		}
		a, err := mx.NewLogical(w.Rows, w.Cols)
		if err != nil {
			return nil, err
		}
		copy(a.Logicals(), w.Bools)
		return a, nil

	case class == mx.ClassChar:
		if len(w.Chars) != n {
			return nil, lengthMismatch(class, len(w.Chars), n)
		}
		return mx.NewCharUTF16(w.Rows, w.Cols, w.Chars)

	case class == mx.ClassCell:
		if len(w.Cells) != n {
			return nil, lengthMismatch(class, len(w.Cells), n)
		}
		a, err := mx.NewCell(w.Rows, w.Cols)
		if err != nil {
			return nil, err
		}
		for i, we := range w.Cells {
			el, err := decode(we)
			if err != nil {
				return nil, err
			}
			if el != nil {
				if err := a.SetCell(i, el); err != nil {
					return nil, err
				}
			}
		}
		return a, nil

	case class == mx.ClassStruct:
		if len(w.Records) != n {
			return nil, lengthMismatch(class, len(w.Records), n)
		}
		a, err := mx.NewStructMatrix(w.Rows, w.Cols, w.Fields...)
		if err != nil {
			return nil, err
		}
		for rec, fields := range w.Records {
			if len(fields) != len(w.Fields) {
				return nil, errors.InvalidData(errors.PhaseLoad, nil,
					fmt.Sprintf("record %d has %d fields, want %d", rec, len(fields), len(w.Fields)))
			}
			for fi, wv := range fields {
				v, err := decode(wv)
				if err != nil {
					return nil, err
				}
				if v != nil {
					if err := a.SetFieldIndexed(w.Fields[fi], rec, v); err != nil {
						return nil, err
					}
				}
			}
		}
		return a, nil
	}

	return nil, errors.InvalidData(errors.PhaseLoad, nil,
		fmt.Sprintf("unknown class tag %d", w.Class))
}

func lengthMismatch(class mx.ClassID, got, want int) error {
	return errors.InvalidData(errors.PhaseLoad, nil,
		fmt.Sprintf("%s data has %d elements, shape needs %d", class, got, want))
}
