package splitbregman

import "errors"

var (
	ErrEmptyInput       = errors.New("empty input")
	ErrShapeMismatch    = errors.New("image and edge map shapes differ")
	ErrInvalidParameter = errors.New("invalid parameter")
)
