package calldata

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Encoded is a complete call: selector followed by the encoded arguments.
type Encoded struct {
	Selector Selector
	Data     []byte
	Regions  []Region
}

// Hex returns the call data as a 0x-prefixed hex string.
func (e *Encoded) Hex() string {
	return hexutil.Encode(e.Data)
}

// Arguments returns the encoded arguments without the selector.
func (e *Encoded) Arguments() []byte {
	return e.Data[SelectorSize:]
}

// Encode serializes values for sig and prefixes the selector.
// Region offsets are absolute within Data.
func Encode(sig *Signature, values []Value, opts ...Option) (*Encoded, error) {
	cfg := newConfig(opts)
	sel := sig.Selector()

	args, regions, err := encodeArguments(sig.Inputs, values)
	if err != nil {
		cfg.logger.Debug("encode failed", zap.String("signature", sig.Canonical()), zap.Error(err))
		return nil, err
	}

	data := make([]byte, 0, SelectorSize+len(args))
	data = append(data, sel[:]...)
	data = append(data, args...)

	all := make([]Region, 0, len(regions)+1)
	all = append(all, Region{Offset: 0, Length: SelectorSize, Kind: RegionSelector, Path: sig.Name, Type: sig.Canonical()})
	for _, r := range regions {
		r.Offset += SelectorSize
		all = append(all, r)
	}

	cfg.logger.Debug("encoded call",
		zap.String("signature", sig.Canonical()),
		zap.String("selector", sel.Hex()),
		zap.Int("bytes", len(data)),
		zap.Int("regions", len(all)),
	)

	return &Encoded{Selector: sel, Data: data, Regions: all}, nil
}

// EncodeArguments serializes values for args without a selector.
// Region offsets are relative to the start of the returned bytes.
func EncodeArguments(args []Argument, values []Value) ([]byte, []Region, error) {
	return encodeArguments(args, values)
}

func encodeArguments(args []Argument, values []Value) ([]byte, []Region, error) {
	if len(values) != len(args) {
		return nil, nil, scalarErr(ErrTypeMismatch, "expected %d arguments, got %d", len(args), len(values))
	}
	enc := &encoder{}
	b, err := enc.encodeList(args, values, 0)
	if err != nil {
		return nil, nil, err
	}
	return b.data, b.regions, nil
}

// block is an encoded byte run with regions relative to its start.
type block struct {
	data    []byte
	regions []Region
}

func (b *block) appendBlock(o block) {
	base := len(b.data)
	b.data = append(b.data, o.data...)
	for _, r := range o.regions {
		r.Offset += base
		b.regions = append(b.regions, r)
	}
}

func (b *block) appendRegion(data []byte, kind RegionKind, a Argument, depth int) {
	if len(data) == 0 {
		return
	}
	b.regions = append(b.regions, Region{
		Offset: len(b.data),
		Length: len(data),
		Kind:   kind,
		Path:   a.Path(),
		Type:   a.Type.String(),
		Depth:  depth,
	})
	b.data = append(b.data, data...)
}

// encoder tracks which top-level argument is being encoded for error reports.
type encoder struct {
	index int
	name  string
}

func (e *encoder) fail(a Argument, err error) error {
	return &ArgumentError{Index: e.index, Name: e.name, Path: a.Path(), Err: err}
}

// encodeList applies the head/tail rule to a component list. Every
// component is encoded first; the block is then assembled in one pass with
// offsets computed from the known head size and tail lengths.
func (e *encoder) encodeList(args []Argument, values []Value, depth int) (block, error) {
	heads := make([]block, len(args))
	tails := make([]block, len(args))
	headSize := 0

	for i, a := range args {
		if a.path == "" {
			e.index, e.name = i, a.Name
		}
		headSize += a.Type.HeadSize()

		var err error
		if a.Type.IsDynamic() {
			tails[i], err = e.encodeDynamic(a, values[i], depth+1)
		} else {
			heads[i], err = e.encodeStatic(a, values[i], depth)
		}
		if err != nil {
			return block{}, err
		}
	}

	out := block{data: make([]byte, 0, headSize)}
	cursor := headSize
	for i, a := range args {
		if !a.Type.IsDynamic() {
			out.appendBlock(heads[i])
			continue
		}
		word := uint256.NewInt(uint64(cursor)).Bytes32()
		out.appendRegion(word[:], RegionHeadSlot, a, depth)
		cursor += len(tails[i].data)
	}
	for i, a := range args {
		if a.Type.IsDynamic() {
			out.appendBlock(tails[i])
		}
	}
	return out, nil
}

func (e *encoder) encodeStatic(a Argument, v Value, depth int) (block, error) {
	switch a.Type.Kind {
	case ArrayKind, TupleKind:
		list, err := e.components(a, v)
		if err != nil {
			return block{}, err
		}
		return e.encodeList(a.Type.elementTypes(len(list), a.Path()), list, depth)
	}

	lit, ok := v.(Literal)
	if !ok {
		return block{}, e.fail(a, scalarErr(ErrTypeMismatch, "expected %s literal, got list", a.Type))
	}
	word, err := scalarWord(a.Type, string(lit))
	if err != nil {
		return block{}, e.fail(a, err)
	}
	var b block
	b.appendRegion(word, RegionHeadSlot, a, depth)
	return b, nil
}

// encodeDynamic encodes the tail content of a dynamic argument.
// depth is the nesting level of the content itself.
func (e *encoder) encodeDynamic(a Argument, v Value, depth int) (block, error) {
	switch a.Type.Kind {
	case StringKind, BytesKind:
		lit, ok := v.(Literal)
		if !ok {
			return block{}, e.fail(a, scalarErr(ErrTypeMismatch, "expected %s literal, got list", a.Type))
		}
		raw := []byte(lit)
		if a.Type.Kind == BytesKind {
			var err error
			if raw, err = decodeHex(string(lit)); err != nil {
				return block{}, e.fail(a, err)
			}
		}
		var b block
		length := uint256.NewInt(uint64(len(raw))).Bytes32()
		b.appendRegion(length[:], RegionTailLength, a, depth)
		b.appendRegion(raw, RegionTailContent, a, depth)
		b.appendRegion(make([]byte, padLen(len(raw))), RegionTailPadding, a, depth)
		return b, nil

	case SliceKind:
		list, err := e.components(a, v)
		if err != nil {
			return block{}, err
		}
		var b block
		count := uint256.NewInt(uint64(len(list))).Bytes32()
		b.appendRegion(count[:], RegionTailLength, a, depth)
		elems, err := e.encodeList(a.Type.elementTypes(len(list), a.Path()), list, depth)
		if err != nil {
			return block{}, err
		}
		b.appendBlock(elems)
		return b, nil

	default: // dynamic fixed-length array or tuple
		list, err := e.components(a, v)
		if err != nil {
			return block{}, err
		}
		return e.encodeList(a.Type.elementTypes(len(list), a.Path()), list, depth)
	}
}

// components checks that v is a list of the right length for composite a.
func (e *encoder) components(a Argument, v Value) (List, error) {
	list, ok := v.(List)
	if !ok {
		return nil, e.fail(a, scalarErr(ErrTypeMismatch, "expected list for %s, got literal", a.Type))
	}
	want := -1
	switch a.Type.Kind {
	case ArrayKind:
		want = a.Type.Size
	case TupleKind:
		want = len(a.Type.Fields)
	}
	if want >= 0 && len(list) != want {
		return nil, e.fail(a, scalarErr(ErrTypeMismatch, "expected %d values for %s, got %d", want, a.Type, len(list)))
	}
	return list, nil
}

// scalarWord encodes one static scalar into a 32-byte word. Integers, bools
// and addresses are left-padded; fixed bytes are right-padded.
func scalarWord(t *Type, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	switch t.Kind {
	case UintKind:
		n, err := parseInteger(s)
		if err != nil {
			return nil, err
		}
		if n.Sign() < 0 {
			return nil, scalarErr(ErrNumericOverflow, "negative value %s for %s", n, t)
		}
		if n.BitLen() > t.Size {
			return nil, scalarErr(ErrNumericOverflow, "%s exceeds %s", n, t)
		}
		return common.LeftPadBytes(n.Bytes(), WordSize), nil

	case IntKind:
		n, err := parseInteger(s)
		if err != nil {
			return nil, err
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, scalarErr(ErrNumericOverflow, "%s out of range for %s", n, t)
		}
		return math.U256Bytes(n), nil

	case BoolKind:
		switch strings.ToLower(s) {
		case "true", "1":
			return common.LeftPadBytes([]byte{1}, WordSize), nil
		case "false", "0":
			return make([]byte, WordSize), nil
		}
		return nil, scalarErr(ErrInvalidScalar, "%q is not a bool", s)

	case AddressKind:
		if !common.IsHexAddress(s) {
			return nil, scalarErr(ErrInvalidScalar, "%q is not an address", s)
		}
		return common.LeftPadBytes(common.HexToAddress(s).Bytes(), WordSize), nil

	case FixedBytesKind:
		raw, err := decodeHex(s)
		if err != nil {
			return nil, err
		}
		if len(raw) != t.Size {
			return nil, scalarErr(ErrInvalidScalar, "%s needs exactly %d bytes, got %d", t, t.Size, len(raw))
		}
		return common.RightPadBytes(raw, WordSize), nil
	}
	return nil, scalarErr(ErrTypeMismatch, "%s is not a scalar type", t)
}

// parseInteger accepts an optionally signed decimal or 0x-prefixed hex integer.
func parseInteger(s string) (*big.Int, error) {
	digits, neg := s, false
	switch {
	case strings.HasPrefix(digits, "-"):
		digits, neg = digits[1:], true
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits, base = digits[2:], 16
	}
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return nil, scalarErr(ErrInvalidScalar, "%q is not an integer", s)
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, scalarErr(ErrInvalidScalar, "%q is not an integer", s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// decodeHex decodes a hex string with or without its 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	raw, err := hexutil.Decode(s)
	if err != nil {
		return nil, scalarErr(ErrInvalidScalar, "%q: %v", s, err)
	}
	return raw, nil
}

// padLen returns the zero bytes needed to reach the next word boundary.
func padLen(n int) int {
	if r := n % WordSize; r != 0 {
		return WordSize - r
	}
	return 0
}
