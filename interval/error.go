package interval

import (
	"errors"
	"fmt"
)

// ErrInvalidRange indicates a malformed code-point range.
var ErrInvalidRange = errors.New("invalid code point range")

// InvalidRangeError reports a range with Lo > Hi or a bound outside
// [0, MaxRune]. It matches ErrInvalidRange via errors.Is.
type InvalidRangeError struct {
	Lo rune
	Hi rune
}

// Error implements the error interface
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%v: [%#x, %#x]", ErrInvalidRange, e.Lo, e.Hi)
}

// Is implements error comparison for errors.Is
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

func validate(lo, hi rune) error {
	if lo > hi || lo < 0 || hi > MaxRune {
		return &InvalidRangeError{Lo: lo, Hi: hi}
	}
	return nil
}
