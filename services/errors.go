package services

import "errors"

// Error kinds the handlers translate into response codes. Every service
// failure is either one of these (wrapped with a user-facing message) or an
// unexpected storage error.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// wrapped carries a user-facing message while staying errors.Is-matchable
// against its kind.
type wrapped struct {
	kind error
	msg  string
}

func (e *wrapped) Error() string { return e.msg }

func (e *wrapped) Unwrap() error { return e.kind }

func notFound(what string) error {
	return &wrapped{kind: ErrNotFound, msg: what + " not found"}
}

func invalid(msg string) error {
	return &wrapped{kind: ErrInvalidInput, msg: msg}
}
