package calldata

import (
	"fmt"
)

// Call binds a signature to a matching list of argument values.
// Call is immutable once created.
type Call struct {
	sig  *Signature
	args []Value
}

// NewCall creates a Call after checking the argument count.
// Value shapes are checked when the call is encoded.
func NewCall(sig *Signature, args ...Value) (*Call, error) {
	if len(args) != len(sig.Inputs) {
		return nil, &ArgumentError{
			Index: len(args),
			Name:  sig.Name,
			Err:   scalarErr(ErrTypeMismatch, "%s takes %d arguments, got %d", sig.Canonical(), len(sig.Inputs), len(args)),
		}
	}
	cp := make([]Value, len(args))
	copy(cp, args)
	return &Call{sig: sig, args: cp}, nil
}

// MustCall is like NewCall but panics on error.
func MustCall(sig *Signature, args ...Value) *Call {
	c, err := NewCall(sig, args...)
	if err != nil {
		panic(err)
	}
	return c
}

// Signature returns the call's signature.
func (c *Call) Signature() *Signature {
	return c.sig
}

// Args returns a copy of the argument values.
func (c *Call) Args() []Value {
	cp := make([]Value, len(c.args))
	copy(cp, c.args)
	return cp
}

// Selector returns the 4-byte function selector.
func (c *Call) Selector() Selector {
	return c.sig.Selector()
}

// Encode serializes the call.
func (c *Call) Encode(opts ...Option) (*Encoded, error) {
	return Encode(c.sig, c.args, opts...)
}

// Breakdown encodes the call and decomposes the result.
func (c *Call) Breakdown(opts ...Option) (*Result, error) {
	enc, err := c.Encode(opts...)
	if err != nil {
		return nil, err
	}
	parts, err := Decompose(c.sig, enc.Data, opts...)
	if err != nil {
		// Decomposing our own output must never fail.
		return nil, fmt.Errorf("decompose %s: %w", c.sig.Canonical(), err)
	}
	return &Result{
		Signature: c.sig,
		Canonical: c.sig.Canonical(),
		Selector:  enc.Selector,
		Data:      enc.Data,
		Regions:   enc.Regions,
		Parts:     parts,
	}, nil
}

// Result is the output of the full parse, encode and decompose pipeline.
type Result struct {
	Signature *Signature
	Canonical string
	Selector  Selector
	Data      []byte
	Regions   []Region
	Parts     []Part
}

// Words splits the encoded arguments into 32-byte rows, selector excluded.
func (r *Result) Words() [][]byte {
	args := r.Data[SelectorSize:]
	words := make([][]byte, 0, len(args)/WordSize)
	for i := 0; i+WordSize <= len(args); i += WordSize {
		words = append(words, args[i:i+WordSize])
	}
	return words
}

// Breakdown parses signature, encodes values for it and decomposes the
// resulting bytes.
func Breakdown(signature string, values []Value, opts ...Option) (*Result, error) {
	sig, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	call, err := NewCall(sig, values...)
	if err != nil {
		return nil, err
	}
	return call.Breakdown(opts...)
}
