package mx

import (
	"github.com/wippyai/mex-bridge/errors"
)

func (a *Array) checkCellIndex(phase errors.Phase, i int) error {
	if a == nil || a.class != ClassCell {
		return errors.Conversion(phase, nil, "cell element", a.Class().String())
	}
	if i < 0 || i >= len(a.cells) {
		return errors.Index(phase, nil, i, len(a.cells))
	}
	return nil
}

// Cell returns the element at linear index i of a cell array.
// A nil result is an empty element.
func (a *Array) Cell(i int) (*Array, error) {
	if err := a.checkCellIndex(errors.PhaseDecode, i); err != nil {
		return nil, err
	}
	return a.cells[i], nil
}

// CellRC returns the element at (row, col) of a cell array.
func (a *Array) CellRC(row, col int) (*Array, error) {
	if a == nil || a.class != ClassCell {
		return nil, errors.Conversion(errors.PhaseDecode, nil, "cell element", a.Class().String())
	}
	i, err := a.Index(row, col)
	if err != nil {
		return nil, err
	}
	return a.cells[i], nil
}

// SetCell replaces the element at linear index i. The cell array takes
// ownership of v; the previous element is discarded.
func (a *Array) SetCell(i int, v *Array) error {
	if err := a.checkCellIndex(errors.PhaseEncode, i); err != nil {
		return err
	}
	a.cells[i] = v
	return nil
}

// SetCellRC replaces the element at (row, col).
func (a *Array) SetCellRC(row, col int, v *Array) error {
	if a == nil || a.class != ClassCell {
		return errors.Conversion(errors.PhaseEncode, nil, "cell element", a.Class().String())
	}
	i, err := a.Index(row, col)
	if err != nil {
		return err
	}
	a.cells[i] = v
	return nil
}

// Cells returns the backing element slice of a cell array.
func (a *Array) Cells() []*Array {
	if a == nil {
		return nil
	}
	return a.cells
}
