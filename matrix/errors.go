package matrix

import "errors"

var (
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
	ErrUnderflow       = errors.New("matrix: count decremented below zero")
)
