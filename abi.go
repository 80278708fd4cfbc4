package calldata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ParseABI parses a JSON contract ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}

// SignatureFromABI returns the signature of the named method, keeping the
// argument and tuple component names declared in the ABI.
// Overloaded methods use the names go-ethereum assigns (e.g. "transfer0").
func SignatureFromABI(contractABI abi.ABI, method string) (*Signature, error) {
	m, ok := contractABI.Methods[method]
	if !ok {
		return nil, &MethodNotFoundError{Method: method}
	}
	return SignatureFromMethod(m)
}

// SignatureFromMethod converts a parsed ABI method.
func SignatureFromMethod(m abi.Method) (*Signature, error) {
	inputs := make([]Argument, len(m.Inputs))
	for i, in := range m.Inputs {
		t, err := TypeFromABI(in.Type)
		if err != nil {
			return nil, fmt.Errorf("calldata: method %s input %d: %w", m.RawName, i, err)
		}
		name := in.Name
		if name == "" {
			name = "arg" + strconv.Itoa(i)
		}
		inputs[i] = Argument{Name: name, Type: t}
	}
	return &Signature{Name: m.RawName, Inputs: inputs}, nil
}

// TypeFromABI converts a go-ethereum ABI type into a Type.
func TypeFromABI(t abi.Type) (*Type, error) {
	switch t.T {
	case abi.UintTy:
		return &Type{Kind: UintKind, Size: t.Size}, nil
	case abi.IntTy:
		return &Type{Kind: IntKind, Size: t.Size}, nil
	case abi.BoolTy:
		return &Type{Kind: BoolKind}, nil
	case abi.AddressTy:
		return &Type{Kind: AddressKind}, nil
	case abi.FixedBytesTy:
		return &Type{Kind: FixedBytesKind, Size: t.Size}, nil
	case abi.HashTy:
		return &Type{Kind: FixedBytesKind, Size: 32}, nil
	case abi.BytesTy:
		return &Type{Kind: BytesKind}, nil
	case abi.StringTy:
		return &Type{Kind: StringKind}, nil
	case abi.SliceTy, abi.ArrayTy:
		elem, err := TypeFromABI(*t.Elem)
		if err != nil {
			return nil, err
		}
		if t.T == abi.SliceTy {
			return SliceOf(elem), nil
		}
		arr := ArrayOf(elem, t.Size)
		if err := arr.checkSize(); err != nil {
			return nil, scalarErr(ErrMalformedSignature, "%v", err)
		}
		return arr, nil
	case abi.TupleTy:
		fields := make([]Field, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			ft, err := TypeFromABI(*elem)
			if err != nil {
				return nil, err
			}
			name := ""
			if i < len(t.TupleRawNames) {
				name = t.TupleRawNames[i]
			}
			if name == "" {
				name = "field" + strconv.Itoa(i)
			}
			fields[i] = Field{Name: name, Type: ft}
		}
		tuple := TupleOf(fields...)
		if err := tuple.checkSize(); err != nil {
			return nil, scalarErr(ErrMalformedSignature, "%v", err)
		}
		return tuple, nil
	default:
		return nil, scalarErr(ErrMalformedSignature, "unsupported ABI type %s", t.String())
	}
}

// MethodNames returns the method names declared in the ABI, sorted.
func MethodNames(contractABI abi.ABI) []string {
	names := make([]string, 0, len(contractABI.Methods))
	for name := range contractABI.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
