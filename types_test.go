package calldata

import "testing"

func TestTypeIsDynamic(t *testing.T) {
	tests := []struct {
		typ     string
		dynamic bool
		head    int
	}{
		{"uint256", false, 32},
		{"bool", false, 32},
		{"bytes32", false, 32},
		{"bytes", true, 32},
		{"string", true, 32},
		{"uint256[]", true, 32},
		{"uint256[3]", false, 96},
		{"string[2]", true, 32},
		{"(address,uint256)", false, 64},
		{"(address,bytes)", true, 32},
		{"(uint8,bytes32[2])[2]", false, 192},
		{"((uint8,bool),int16)", false, 96},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			typ := MustParseType(tt.typ)
			if typ.IsDynamic() != tt.dynamic {
				t.Errorf("Expected IsDynamic %v, got %v", tt.dynamic, typ.IsDynamic())
			}
			if typ.HeadSize() != tt.head {
				t.Errorf("Expected head size %d, got %d", tt.head, typ.HeadSize())
			}
		})
	}
}

func TestTypeConstructors(t *testing.T) {
	addr := &Type{Kind: AddressKind}
	u := &Type{Kind: UintKind, Size: 256}

	tests := []struct {
		typ  *Type
		want string
	}{
		{SliceOf(addr), "address[]"},
		{ArrayOf(u, 4), "uint256[4]"},
		{TupleOf(Field{"to", addr}, Field{"amount", u}), "(address,uint256)"},
		{SliceOf(ArrayOf(&Type{Kind: FixedBytesKind, Size: 4}, 2)), "bytes4[2][]"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestKindString(t *testing.T) {
	if TupleKind.String() != "tuple" {
		t.Errorf("Expected tuple, got %s", TupleKind)
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("Expected kind(99), got %s", Kind(99))
	}
}

func TestElementTypes(t *testing.T) {
	tuple := MustParseType("(address to, uint256 amount)")
	fields := tuple.elementTypes(0, "orders[1]")
	if len(fields) != 2 || fields[1].Path() != "orders[1].amount" {
		t.Errorf("Unexpected tuple components %+v", fields)
	}

	slice := MustParseType("string[]")
	elems := slice.elementTypes(3, "tags")
	if len(elems) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(elems))
	}
	if elems[2].Name != "[2]" || elems[2].Path() != "tags[2]" || elems[2].Type.Kind != StringKind {
		t.Errorf("Unexpected element %+v", elems[2])
	}
}

func TestTypeHeadSizeSaturates(t *testing.T) {
	u := &Type{Kind: UintKind, Size: 256}

	tests := []struct {
		name string
		typ  *Type
	}{
		{"long array", ArrayOf(u, 288230376151711744)},
		{"nested arrays", ArrayOf(ArrayOf(u, 1<<20), 1<<20)},
		{"wide tuple", TupleOf(Field{"a", ArrayOf(u, 1<<26)}, Field{"b", ArrayOf(u, 1<<26)})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.HeadSize(); got != MaxHeadSize {
				t.Errorf("Expected head size %d, got %d", MaxHeadSize, got)
			}
			if err := tt.typ.checkSize(); err == nil {
				t.Error("Expected checkSize to reject the type")
			}
		})
	}
}
