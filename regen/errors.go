package regen

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNumericDomain = errors.New("numeric domain violation")
	ErrProvider      = errors.New("coolant property provider failure")
)

type Kind uint8

const (
	InvalidConfig Kind = iota + 1
	NumericDomain
	ProviderFailure
)

func (k Kind) sentinel() error {
	switch k {
	case InvalidConfig:
		return ErrInvalidConfig
	case NumericDomain:
		return ErrNumericDomain
	case ProviderFailure:
		return ErrProvider
	}
	return nil
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is returned for every failed run. Station and Iteration are -1 and 0
// when the failure is not tied to a station or happened before iterating.
type Error struct {
	Kind      Kind
	Station   int
	Iteration int
	Err       error
}

func (e *Error) Error() string {
	switch {
	case e.Iteration > 0 && e.Station >= 0:
		return fmt.Sprintf("%v at station %d, iteration %d: %v", e.Kind, e.Station, e.Iteration, e.Err)
	case e.Iteration > 0:
		return fmt.Sprintf("%v at iteration %d: %v", e.Kind, e.Iteration, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

func configError(format string, args ...any) *Error {
	return &Error{Kind: InvalidConfig, Station: -1, Err: fmt.Errorf(format, args...)}
}
