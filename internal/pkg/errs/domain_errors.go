package errs

import "errors"

// Error kinds. Domain sentinels are marked with one of these so the
// transport layer can classify them without knowing every sentinel.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotOwner   = errors.New("not owner")
)

// Operation errors
var (
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

func NotFound(msg string) error   { return Mark(New(msg), ErrNotFound) }
func Validation(msg string) error { return Mark(New(msg), ErrValidation) }
func Conflict(msg string) error   { return Mark(New(msg), ErrConflict) }
func NotOwner(msg string) error   { return Mark(New(msg), ErrNotOwner) }

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindNotOwner
)

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case Is(err, ErrNotFound):
		return KindNotFound
	case Is(err, ErrValidation):
		return KindValidation
	case Is(err, ErrConflict):
		return KindConflict
	case Is(err, ErrNotOwner):
		return KindNotOwner
	default:
		return KindUnknown
	}
}
