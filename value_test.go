package calldata

import (
	"errors"
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  List
	}{
		{"empty", "", List{}},
		{"whitespace", "  \t", List{}},
		{"scalars", "0x11, 7, true", lits("0x11", "7", "true")},
		{"nested", "[1, 2], (a, [b])", Items(lits("1", "2"), Items(Literal("a"), lits("b")))},
		{"empty list", "[]", Items(List{})},
		{"quoted separators", `"a, b", "[x]"`, lits("a, b", "[x]")},
		{"escaped quote", `"say \"hi\""`, lits(`say "hi"`)},
		{"empty items", "1,,2", lits("1", "", "2")},
		{"inner spaces kept", "hello world , x", lits("hello world", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValues(tt.input)
			if err != nil {
				t.Fatalf("ParseValues(%q) failed: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestParseValuesErrors(t *testing.T) {
	inputs := []string{
		"[1, 2",
		"(a",
		`"open`,
		"1]",
		"[1] x",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseValues(input); !errors.Is(err, ErrInvalidScalar) {
				t.Errorf("Expected ErrInvalidScalar, got %v", err)
			}
		})
	}
}

func TestFromAny(t *testing.T) {
	addr := common.HexToAddress(addr1)

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"string", "hi", Literal("hi")},
		{"bool", true, Literal("true")},
		{"int", -5, Literal("-5")},
		{"uint64", uint64(1 << 40), Literal("1099511627776")},
		{"float", float64(42), Literal("42")},
		{"big", new(big.Int).Lsh(big.NewInt(1), 100), Literal("1267650600228229401496703205376")},
		{"bytes", []byte{0xde, 0xad}, Literal("0xdead")},
		{"address", addr, Literal(addr.Hex())},
		{"strings", []string{"a", "b"}, lits("a", "b")},
		{"nested", []any{1, []any{"x", false}}, Items(Literal("1"), lits("x", "false"))},
		{"value", lits("z"), lits("z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.in)
			if err != nil {
				t.Fatalf("FromAny(%v) failed: %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestFromAnyErrors(t *testing.T) {
	if _, err := FromAny(1.5); !errors.Is(err, ErrInvalidScalar) {
		t.Errorf("Expected ErrInvalidScalar for fractional number, got %v", err)
	}
	if _, err := FromAny(float64(1 << 60)); !errors.Is(err, ErrInvalidScalar) {
		t.Errorf("Expected ErrInvalidScalar for imprecise number, got %v", err)
	}
	if _, err := FromAny(map[string]any{"a": 1}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Expected ErrTypeMismatch for map, got %v", err)
	}
	if _, err := FromAny([]any{"ok", struct{}{}}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Expected nested ErrTypeMismatch, got %v", err)
	}
}
