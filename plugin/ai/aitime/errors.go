package aitime

import (
	"errors"
	"fmt"
)

// Resolution errors. None of them escape Parser.Parse: ErrInvalidNumeral,
// ErrNoTimeMatch and ErrPastDate abort the pattern path and hand the text to
// the fallback delegate, ErrNoDateMarker resolves to the reference day, and
// ErrFallbackExhausted becomes a result without a date.
var (
	ErrInvalidNumeral    = errors.New("invalid numeral")
	ErrNoTimeMatch       = errors.New("no time expression found")
	ErrNoDateMarker      = errors.New("no relative date marker found")
	ErrPastDate          = errors.New("date points to the past")
	ErrFallbackExhausted = errors.New("fallback could not resolve a date")
)

// NumeralError describes a numeral token that could not be converted.
type NumeralError struct {
	Token    string
	Language Language
	Reason   string
}

func (e *NumeralError) Error() string {
	return fmt.Sprintf("invalid %s numeral %q: %s", e.Language, e.Token, e.Reason)
}

// Is reports whether target is ErrInvalidNumeral.
func (e *NumeralError) Is(target error) bool {
	return target == ErrInvalidNumeral
}

func invalidNumeral(token string, lang Language, reason string) error {
	return &NumeralError{Token: token, Language: lang, Reason: reason}
}
