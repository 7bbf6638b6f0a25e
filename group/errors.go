package group

import "errors"

var (
	// ErrPointNotInSubgroup is returned when a point fails subgroup validation.
	ErrPointNotInSubgroup = errors.New("group: point not in subgroup")
	// ErrGroupMismatch is returned when an element of a foreign group is used.
	ErrGroupMismatch = errors.New("group: element belongs to a different group")
	// ErrInvalidEncoding is returned when bytes do not decode to an element.
	ErrInvalidEncoding = errors.New("group: invalid encoding")
	// ErrZeroInverse is returned when inverting the zero scalar.
	ErrZeroInverse = errors.New("group: cannot invert zero scalar")
	// ErrNotEqual is returned by AssertEqual for distinct points.
	ErrNotEqual = errors.New("group: points are not equal")
	// ErrLengthMismatch is returned when paired slices differ in length.
	ErrLengthMismatch = errors.New("group: scalars and points differ in length")
)
