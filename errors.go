package calldata

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrMalformedSignature indicates a function declaration could not be parsed.
	ErrMalformedSignature = errors.New("calldata: malformed signature")

	// ErrTypeMismatch indicates a value's shape doesn't match its declared type.
	ErrTypeMismatch = errors.New("calldata: type mismatch")

	// ErrNumericOverflow indicates an integer doesn't fit its declared width or sign.
	ErrNumericOverflow = errors.New("calldata: numeric overflow")

	// ErrInvalidScalar indicates a literal can't be parsed as its declared scalar kind.
	ErrInvalidScalar = errors.New("calldata: invalid scalar")

	// ErrCorruptLayout indicates the byte string is inconsistent with the argument types.
	ErrCorruptLayout = errors.New("calldata: corrupt layout")
)

// SignatureError reports where parsing of a declaration or type failed.
type SignatureError struct {
	Input  string
	Pos    int
	Reason string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("calldata: malformed signature %q at position %d: %s", e.Input, e.Pos, e.Reason)
}

func (e *SignatureError) Unwrap() error {
	return ErrMalformedSignature
}

// ArgumentError indicates an issue encoding a single argument.
type ArgumentError struct {
	Index int
	Name  string
	Path  string
	Err   error
}

func (e *ArgumentError) Error() string {
	if e.Path != "" && e.Path != e.Name {
		return fmt.Sprintf("calldata: argument %d (%s) at %s: %v", e.Index, e.Name, e.Path, e.Err)
	}
	return fmt.Sprintf("calldata: argument %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// LayoutError reports the first inconsistency found while decomposing.
// Offset is absolute within the decomposed byte string.
type LayoutError struct {
	Offset int
	Path   string
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("calldata: corrupt layout at offset %d (%s): %s", e.Offset, e.Path, e.Reason)
	}
	return fmt.Sprintf("calldata: corrupt layout at offset %d: %s", e.Offset, e.Reason)
}

func (e *LayoutError) Unwrap() error {
	return ErrCorruptLayout
}

// scalarErr wraps a sentinel with detail about the rejected value.
func scalarErr(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// MethodNotFoundError indicates a JSON ABI doesn't declare the requested method.
type MethodNotFoundError struct {
	Method string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("calldata: method %q not found in ABI", e.Method)
}
