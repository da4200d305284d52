package usecase

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrIntegrity             = errors.New("data integrity violation")
	ErrConfiguration         = errors.New("configuration error")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// integrityErrorf builds an integrity failure that carries enough detail to
// locate the offending row (match id, event id) while still matching
// errors.Is(err, ErrIntegrity).
func integrityErrorf(format string, args ...any) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrIntegrity)
}

// configurationErrorf builds a fail-closed ruleset error that matches
// errors.Is(err, ErrConfiguration).
func configurationErrorf(format string, args ...any) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrConfiguration)
}

func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
