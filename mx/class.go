package mx

// ClassID identifies the variant of a foreign array value.
type ClassID uint8

const (
	ClassUnknown ClassID = iota
	ClassDouble
	ClassSingle
	ClassInt8
	ClassUint8
	ClassInt16
	ClassUint16
	ClassInt32
	ClassUint32
	ClassInt64
	ClassUint64
	ClassLogical
	ClassChar
	ClassCell
	ClassStruct
)

var classNames = [...]string{
	ClassUnknown: "unknown",
	ClassDouble:  "double",
	ClassSingle:  "single",
	ClassInt8:    "int8",
	ClassUint8:   "uint8",
	ClassInt16:   "int16",
	ClassUint16:  "uint16",
	ClassInt32:   "int32",
	ClassUint32:  "uint32",
	ClassInt64:   "int64",
	ClassUint64:  "uint64",
	ClassLogical: "logical",
	ClassChar:    "char",
	ClassCell:    "cell",
	ClassStruct:  "struct",
}

func (c ClassID) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// IsNumeric reports whether the class is one of the dense numeric kinds.
func (c ClassID) IsNumeric() bool {
	return c >= ClassDouble && c <= ClassUint64
}

// IsFloat reports whether the class stores floating-point elements.
// Only float classes may carry an imaginary component.
func (c ClassID) IsFloat() bool {
	return c == ClassDouble || c == ClassSingle
}
