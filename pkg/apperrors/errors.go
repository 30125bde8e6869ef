package apperrors

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown snapshot format")
	ErrEmptySnapshot = errors.New("empty snapshot")
)
