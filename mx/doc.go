// Package mx implements the foreign array value exchanged with the numeric
// runtime: a shape-carrying tagged union over five variants.
//
//   - dense numeric matrices (ten element classes, column-major, optional
//     imaginary component on the float classes)
//   - logical matrices
//   - character arrays (UTF-16 code units)
//   - cell arrays (ordered sequences of arbitrary values)
//   - struct arrays (records mapping field names to values, insertion order
//     preserved)
//
// Shape is fixed at construction. Setters replace element contents only;
// nothing reshapes an existing array.
//
// This package is the raw value layer. Typed conversion lives in convert,
// ownership-tracked access in wrap.
package mx
