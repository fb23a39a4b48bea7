package dataset

import "errors"

var (
	ErrNotFound     = errors.New("dataset not found")
	ErrForbidden    = errors.New("requester does not own this dataset")
	ErrInvalidInput = errors.New("invalid input")
)
