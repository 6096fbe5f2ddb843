package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotANumber  = errors.New("not a number")
	ErrOutOfRange  = errors.New("out of range")
	ErrInputClosed = errors.New("input closed")

	ErrTooManyAttempts = errors.New("too many invalid attempts")
)

// LevelError is returned by ParseLevel and carries the accepted bounds.
type LevelError struct {
	Kind  error
	Input string
	Min   int
	Max   int
}

func (e *LevelError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%v: %q (want %d-%d)", e.Kind, e.Input, e.Min, e.Max)
}

func (e *LevelError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// ParseLevel parses raw as a base-10 integer and checks it against [min, max].
func ParseLevel(raw string, min, max int) (int, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &LevelError{Kind: ErrNotANumber, Input: s, Min: min, Max: max}
	}
	if v < min || v > max {
		return 0, &LevelError{Kind: ErrOutOfRange, Input: s, Min: min, Max: max}
	}
	return v, nil
}
