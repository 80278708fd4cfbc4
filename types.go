package calldata

import (
	"fmt"
	"strconv"
	"strings"
)

// WordSize is the width of every head slot and the padding unit of the tail.
const WordSize = 32

// MaxHeadSize is the largest head a static type may occupy. HeadSize
// saturates at this value, and the parsers reject types that reach it.
const MaxHeadSize = 1 << 32

// MaxArrayLength is the largest k accepted for a fixed-length array T[k].
const MaxArrayLength = MaxHeadSize / WordSize

// Kind identifies the variant of a Type.
type Kind uint8

const (
	// UintKind is an unsigned integer of Size bits.
	UintKind Kind = iota

	// IntKind is a two's complement signed integer of Size bits.
	IntKind

	// BoolKind is encoded as the integer 0 or 1.
	BoolKind

	// AddressKind is a 20-byte account address.
	AddressKind

	// FixedBytesKind is a byte array of Size bytes, left-aligned in its word.
	FixedBytesKind

	// BytesKind is a variable-length byte string.
	BytesKind

	// StringKind is variable-length UTF-8 text.
	StringKind

	// SliceKind is a variable-length array of Elem (T[]).
	SliceKind

	// ArrayKind is a fixed-length array of Size elements of Elem (T[k]).
	ArrayKind

	// TupleKind is an ordered record of named Fields.
	TupleKind
)

var kindNames = [...]string{
	UintKind:       "uint",
	IntKind:        "int",
	BoolKind:       "bool",
	AddressKind:    "address",
	FixedBytesKind: "bytesN",
	BytesKind:      "bytes",
	StringKind:     "string",
	SliceKind:      "slice",
	ArrayKind:      "array",
	TupleKind:      "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is a node of the parameter type tree.
//
// Size holds the bit width for integers, the byte width for fixed bytes and
// the element count for fixed-length arrays. Elem is set for arrays, Fields
// for tuples.
type Type struct {
	Kind   Kind
	Size   int
	Elem   *Type
	Fields []Field
}

// Field is a named component of a tuple type.
type Field struct {
	Name string
	Type *Type
}

// SliceOf returns the variable-length array type elem[].
func SliceOf(elem *Type) *Type {
	return &Type{Kind: SliceKind, Elem: elem}
}

// ArrayOf returns the fixed-length array type elem[length].
func ArrayOf(elem *Type, length int) *Type {
	return &Type{Kind: ArrayKind, Elem: elem, Size: length}
}

// TupleOf returns a record type with the given fields.
func TupleOf(fields ...Field) *Type {
	return &Type{Kind: TupleKind, Fields: fields}
}

// IsDynamic reports whether the type is encoded through an offset into the tail.
func (t *Type) IsDynamic() bool {
	switch t.Kind {
	case BytesKind, StringKind, SliceKind:
		return true
	case ArrayKind:
		return t.Elem.IsDynamic()
	case TupleKind:
		for _, f := range t.Fields {
			if f.Type.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HeadSize returns the number of bytes the type occupies in its enclosing head.
// Dynamic types always take one offset word. The result never exceeds
// MaxHeadSize.
func (t *Type) HeadSize() int {
	if t.IsDynamic() {
		return WordSize
	}
	switch t.Kind {
	case ArrayKind:
		elem := t.Elem.HeadSize()
		if t.Size <= 0 || elem == 0 {
			return 0
		}
		if t.Size > MaxHeadSize/elem {
			return MaxHeadSize
		}
		return t.Size * elem
	case TupleKind:
		size := 0
		for _, f := range t.Fields {
			size += f.Type.HeadSize()
			if size >= MaxHeadSize {
				return MaxHeadSize
			}
		}
		return size
	default:
		return WordSize
	}
}

// checkSize rejects array lengths and static layouts the engine cannot address.
func (t *Type) checkSize() error {
	if t.Kind == ArrayKind && (t.Size < 1 || t.Size > MaxArrayLength) {
		return fmt.Errorf("array length %d outside [1, %d]", t.Size, MaxArrayLength)
	}
	if t.Kind == TupleKind && len(t.Fields) == 0 {
		return fmt.Errorf("empty record")
	}
	if !t.IsDynamic() && t.HeadSize() >= MaxHeadSize {
		return fmt.Errorf("static size of %s reaches %d bytes", t, MaxHeadSize)
	}
	return nil
}

// String returns the canonical type token, e.g. "uint256" or "(address,bytes)[]".
func (t *Type) String() string {
	var sb strings.Builder
	t.writeCanonical(&sb)
	return sb.String()
}

func (t *Type) writeCanonical(sb *strings.Builder) {
	switch t.Kind {
	case UintKind:
		sb.WriteString("uint")
		sb.WriteString(strconv.Itoa(t.Size))
	case IntKind:
		sb.WriteString("int")
		sb.WriteString(strconv.Itoa(t.Size))
	case FixedBytesKind:
		sb.WriteString("bytes")
		sb.WriteString(strconv.Itoa(t.Size))
	case BoolKind, AddressKind, BytesKind, StringKind:
		sb.WriteString(t.Kind.String())
	case SliceKind:
		t.Elem.writeCanonical(sb)
		sb.WriteString("[]")
	case ArrayKind:
		t.Elem.writeCanonical(sb)
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(t.Size))
		sb.WriteByte(']')
	case TupleKind:
		sb.WriteByte('(')
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			f.Type.writeCanonical(sb)
		}
		sb.WriteByte(')')
	}
}

// elementTypes returns the component list a composite is encoded as:
// N copies of the element for arrays, the field types for tuples.
func (t *Type) elementTypes(n int, path string) []Argument {
	if t.Kind == TupleKind {
		args := make([]Argument, len(t.Fields))
		for i, f := range t.Fields {
			args[i] = Argument{Name: f.Name, Type: f.Type, path: path + "." + f.Name}
		}
		return args
	}
	args := make([]Argument, n)
	for i := range args {
		name := "[" + strconv.Itoa(i) + "]"
		args[i] = Argument{Name: name, Type: t.Elem, path: path + name}
	}
	return args
}
