package account

import "errors"

var (
	ErrNotFound     = errors.New("account not found")
	ErrForbidden    = errors.New("requester does not own this account")
	ErrDuplicate    = errors.New("username already taken")
	ErrInvalidAuth  = errors.New("invalid credentials")
	ErrInvalidInput = errors.New("invalid input")
)
