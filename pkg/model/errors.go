package model

import "errors"

var (
	// ErrDataIntegrity marks snapshot data that contradicts itself, such as a
	// task whose project is not in the snapshot.
	ErrDataIntegrity = errors.New("data integrity violation")
	ErrInvalidArgs   = errors.New("invalid argument")
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("upstream unavailable")
)
