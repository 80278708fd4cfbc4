package calldata

import (
	"errors"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "signature",
			err:  &SignatureError{Input: "f(uint7)", Pos: 2, Reason: `unknown type "uint7"`},
			want: `calldata: malformed signature "f(uint7)" at position 2: unknown type "uint7"`,
		},
		{
			name: "top-level argument",
			err:  &ArgumentError{Index: 1, Name: "amount", Path: "amount", Err: ErrNumericOverflow},
			want: "calldata: argument 1 (amount): calldata: numeric overflow",
		},
		{
			name: "nested argument",
			err:  &ArgumentError{Index: 0, Name: "orders", Path: "orders[2].to", Err: ErrInvalidScalar},
			want: "calldata: argument 0 (orders) at orders[2].to: calldata: invalid scalar",
		},
		{
			name: "layout",
			err:  &LayoutError{Offset: 36, Path: "memo", Reason: "non-zero padding"},
			want: "calldata: corrupt layout at offset 36 (memo): non-zero padding",
		},
		{
			name: "layout without path",
			err:  &LayoutError{Offset: 68, Reason: "32 unexpected trailing bytes"},
			want: "calldata: corrupt layout at offset 68: 32 unexpected trailing bytes",
		},
		{
			name: "method",
			err:  &MethodNotFoundError{Method: "mint"},
			want: `calldata: method "mint" not found in ABI`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	if !errors.Is(&SignatureError{}, ErrMalformedSignature) {
		t.Error("SignatureError should unwrap to ErrMalformedSignature")
	}
	if !errors.Is(&LayoutError{}, ErrCorruptLayout) {
		t.Error("LayoutError should unwrap to ErrCorruptLayout")
	}
	wrapped := &ArgumentError{Err: scalarErr(ErrTypeMismatch, "expected list")}
	if !errors.Is(wrapped, ErrTypeMismatch) {
		t.Error("ArgumentError should unwrap to its cause")
	}
	if errors.Is(wrapped, ErrNumericOverflow) {
		t.Error("ArgumentError should not match unrelated sentinels")
	}
}
