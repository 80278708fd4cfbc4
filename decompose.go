package calldata

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Decompose splits call data produced for sig into labeled parts: the
// selector, one part per head slot in declaration order, then one part per
// dynamic argument in offset order, each with nested children.
//
// Decomposition works from the bytes and the argument types alone. It stops
// at the first inconsistency and returns the parts emitted so far together
// with a *LayoutError wrapping ErrCorruptLayout.
func Decompose(sig *Signature, data []byte, opts ...Option) ([]Part, error) {
	cfg := newConfig(opts)

	if len(data) < SelectorSize {
		return nil, &LayoutError{Offset: 0, Reason: fmt.Sprintf("need %d selector bytes, have %d", SelectorSize, len(data))}
	}
	sel := sig.Selector()
	if !bytes.Equal(data[:SelectorSize], sel[:]) {
		return nil, &LayoutError{
			Offset: 0,
			Path:   sig.Name,
			Reason: fmt.Sprintf("selector %s does not match %s (%s)", hexutil.Encode(data[:SelectorSize]), sel, sig.Canonical()),
		}
	}

	parts := []Part{{
		Name:        sig.Name,
		Path:        sig.Name,
		Type:        sig.Canonical(),
		Kind:        PartSelector,
		Offset:      0,
		Length:      SelectorSize,
		Value:       sel.String(),
		Description: "keccak256(\"" + sig.Canonical() + "\")[:4]",
	}}

	d := &decomposer{cfg: cfg, data: data}
	args, err := d.decodeList(sig.Inputs, SelectorSize, len(data), 0)
	parts = append(parts, args...)
	if err != nil {
		cfg.logger.Debug("decompose failed", zap.String("signature", sig.Canonical()), zap.Error(err))
		return parts, err
	}

	cfg.logger.Debug("decomposed call",
		zap.String("signature", sig.Canonical()),
		zap.Int("bytes", len(data)),
		zap.Int("parts", len(parts)),
	)
	return parts, nil
}

// DecomposeArguments is like Decompose for encoded arguments without a selector.
func DecomposeArguments(args []Argument, data []byte, opts ...Option) ([]Part, error) {
	d := &decomposer{cfg: newConfig(opts), data: data}
	return d.decodeList(args, 0, len(data), 0)
}

type decomposer struct {
	cfg  *config
	data []byte
}

// pendingTail is a dynamic argument whose head slot has been read.
type pendingTail struct {
	arg    Argument
	offset int // relative to the enclosing window
	slot   int // absolute offset of the head slot
}

func (d *decomposer) fail(at int, a Argument, format string, args ...any) error {
	return &LayoutError{Offset: at, Path: a.Path(), Reason: fmt.Sprintf(format, args...)}
}

// decodeList decomposes args laid out head-then-tail in data[start:end].
// The window must be consumed exactly.
func (d *decomposer) decodeList(args []Argument, start, end, depth int) ([]Part, error) {
	headSize := 0
	for _, a := range args {
		headSize += a.Type.HeadSize()
	}
	if start+headSize > end {
		return nil, &LayoutError{Offset: start, Reason: fmt.Sprintf("head needs %d bytes, window has %d", headSize, end-start)}
	}

	parts := make([]Part, 0, len(args))
	var tails []pendingTail

	cursor := start
	for _, a := range args {
		if !a.Type.IsDynamic() {
			part, err := d.decodeStatic(a, cursor, depth)
			if err != nil {
				return parts, err
			}
			parts = append(parts, part)
			cursor += a.Type.HeadSize()
			continue
		}

		off, ok := d.readUint(cursor)
		if !ok || off > end-start {
			return parts, d.fail(cursor, a, "offset outside window of %d bytes", end-start)
		}
		if off < headSize {
			return parts, d.fail(cursor, a, "offset %d points into the head", off)
		}
		parts = append(parts, Part{
			Name:        a.Name,
			Path:        a.Path(),
			Type:        a.Type.String(),
			Kind:        PartOffset,
			Offset:      cursor,
			Length:      WordSize,
			Depth:       depth,
			Value:       hexutil.Encode(d.data[cursor : cursor+WordSize]),
			Description: fmt.Sprintf("offset %d (byte %d)", off, start+off),
		})
		tails = append(tails, pendingTail{arg: a, offset: off, slot: cursor})
		cursor += WordSize
	}

	// Offsets may appear in any order; content is delimited by the next one.
	sort.SliceStable(tails, func(i, j int) bool {
		return tails[i].offset < tails[j].offset
	})

	if len(tails) == 0 {
		if cursor != end {
			return parts, &LayoutError{Offset: cursor, Reason: fmt.Sprintf("%d unexpected trailing bytes", end-cursor)}
		}
		return parts, nil
	}
	if tails[0].offset != headSize {
		return parts, d.fail(tails[0].slot, tails[0].arg, "gap of %d bytes between head and tail", tails[0].offset-headSize)
	}

	for i, t := range tails {
		contentEnd := end
		if i+1 < len(tails) {
			next := tails[i+1]
			if next.offset <= t.offset {
				return parts, d.fail(next.slot, next.arg, "offset %d overlaps %s", next.offset, t.arg.Path())
			}
			contentEnd = start + next.offset
		}
		part, err := d.decodeDynamic(t.arg, start+t.offset, contentEnd, depth+1)
		if err != nil {
			return parts, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// decodeStatic reads a static argument from the head at the given offset.
func (d *decomposer) decodeStatic(a Argument, at, depth int) (Part, error) {
	size := a.Type.HeadSize()
	part := Part{
		Name:   a.Name,
		Path:   a.Path(),
		Type:   a.Type.String(),
		Offset: at,
		Length: size,
		Depth:  depth,
		Value:  hexutil.Encode(d.data[at : at+size]),
	}

	switch a.Type.Kind {
	case ArrayKind, TupleKind:
		children, err := d.decodeList(a.Type.elementTypes(a.Type.Size, a.Path()), at, at+size, depth)
		if err != nil {
			return Part{}, err
		}
		part.Kind = PartInline
		part.Description = fmt.Sprintf("%d inline words", size/WordSize)
		part.Children = children
		return part, nil
	}

	desc, err := describeWord(a.Type, d.data[at:at+WordSize])
	if err != nil {
		return Part{}, d.fail(at, a, "%v", err)
	}
	part.Kind = PartValue
	part.Description = desc
	return part, nil
}

// decodeDynamic decomposes the content of a dynamic argument in data[start:end].
func (d *decomposer) decodeDynamic(a Argument, start, end, depth int) (Part, error) {
	part := Part{
		Name:   a.Name,
		Path:   a.Path(),
		Type:   a.Type.String(),
		Kind:   PartTail,
		Offset: start,
		Length: end - start,
		Depth:  depth,
		Value:  hexutil.Encode(d.data[start:end]),
	}

	switch a.Type.Kind {
	case StringKind, BytesKind:
		children, n, err := d.decodeBlob(a, start, end, depth)
		if err != nil {
			return Part{}, err
		}
		part.Description = strconv.Itoa(n) + " bytes"
		part.Children = children
		return part, nil

	case SliceKind:
		if end-start < WordSize {
			return Part{}, d.fail(start, a, "missing element count")
		}
		count, ok := d.readUint(start)
		if !ok || count > d.maxCount(a.Type.Elem, end-start-WordSize) {
			return Part{}, d.fail(start, a, "element count does not fit %d bytes", end-start-WordSize)
		}
		length := d.word(a, start, PartLength, depth)
		length.Name = "length"
		length.Description = strconv.Itoa(count) + " elements"

		elems, err := d.decodeList(a.Type.elementTypes(count, a.Path()), start+WordSize, end, depth)
		if err != nil {
			return Part{}, err
		}
		part.Description = strconv.Itoa(count) + " elements"
		part.Children = append([]Part{length}, elems...)
		return part, nil

	default: // dynamic fixed-length array or tuple
		if a.Type.Kind == ArrayKind && a.Type.Size > (end-start)/WordSize {
			return Part{}, d.fail(start, a, "%d elements do not fit %d bytes", a.Type.Size, end-start)
		}
		children, err := d.decodeList(a.Type.elementTypes(a.Type.Size, a.Path()), start, end, depth)
		if err != nil {
			return Part{}, err
		}
		part.Description = fmt.Sprintf("%d components", len(children))
		part.Children = children
		return part, nil
	}
}

// decodeBlob splits string or bytes content into length, data and padding
// parts and returns the data length.
func (d *decomposer) decodeBlob(a Argument, start, end, depth int) ([]Part, int, error) {
	if end-start < WordSize {
		return nil, 0, d.fail(start, a, "missing length word")
	}
	n, ok := d.readUint(start)
	if !ok || n > end-start-WordSize {
		return nil, 0, d.fail(start, a, "length exceeds %d available bytes", end-start-WordSize)
	}
	pad := padLen(n)
	if used := WordSize + n + pad; used != end-start {
		return nil, 0, d.fail(start, a, "content of %d bytes does not fill %d-byte window", used, end-start)
	}

	length := d.word(a, start, PartLength, depth)
	length.Name = "length"
	length.Description = strconv.Itoa(n) + " bytes"
	parts := []Part{length}

	dataAt := start + WordSize
	if n > 0 {
		raw := d.data[dataAt : dataAt+n]
		desc := strconv.Quote(string(raw))
		if a.Type.Kind == BytesKind {
			desc = strconv.Itoa(n) + " raw bytes"
		}
		parts = append(parts, Part{
			Name:        "content",
			Path:        a.Path(),
			Type:        a.Type.String(),
			Kind:        PartContent,
			Offset:      dataAt,
			Length:      n,
			Depth:       depth,
			Value:       hexutil.Encode(raw),
			Description: desc,
		})
	}
	if pad > 0 {
		padAt := dataAt + n
		fill := d.data[padAt : padAt+pad]
		if !d.cfg.lenientPadding && !allZero(fill) {
			return nil, 0, d.fail(padAt, a, "non-zero padding")
		}
		parts = append(parts, Part{
			Name:        "padding",
			Path:        a.Path(),
			Type:        a.Type.String(),
			Kind:        PartPadding,
			Offset:      padAt,
			Length:      pad,
			Depth:       depth,
			Value:       hexutil.Encode(fill),
			Description: strconv.Itoa(pad) + " padding bytes",
		})
	}
	return parts, n, nil
}

// word builds a one-word leaf part at the given offset.
func (d *decomposer) word(a Argument, at int, kind PartKind, depth int) Part {
	return Part{
		Name:   a.Name,
		Path:   a.Path(),
		Type:   a.Type.String(),
		Kind:   kind,
		Offset: at,
		Length: WordSize,
		Depth:  depth,
		Value:  hexutil.Encode(d.data[at : at+WordSize]),
	}
}

// maxCount bounds an element count by the bytes available for the elements.
// Counts of zero-size elements are bounded by the data length.
func (d *decomposer) maxCount(elem *Type, avail int) int {
	limit := len(d.data)
	if size := elem.HeadSize(); size > 0 {
		limit = avail / size
	}
	if d.cfg.maxElements > 0 && d.cfg.maxElements < limit {
		limit = d.cfg.maxElements
	}
	return limit
}

// readUint reads a big-endian word as an int no larger than the data length.
func (d *decomposer) readUint(at int) (int, bool) {
	v := new(uint256.Int).SetBytes(d.data[at : at+WordSize])
	if !v.IsUint64() || v.Uint64() > uint64(len(d.data)) {
		return 0, false
	}
	return int(v.Uint64()), true
}

// describeWord renders a static scalar word, rejecting non-canonical encodings.
func describeWord(t *Type, word []byte) (string, error) {
	switch t.Kind {
	case UintKind:
		n := new(big.Int).SetBytes(word)
		if n.BitLen() > t.Size {
			return "", fmt.Errorf("value does not fit %s", t)
		}
		return n.String(), nil

	case IntKind:
		v := new(uint256.Int).SetBytes(word)
		n := v.ToBig()
		if v.Sign() < 0 {
			n = new(uint256.Int).Neg(v).ToBig()
			n.Neg(n)
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return "", fmt.Errorf("value is not a sign-extended %s", t)
		}
		return n.String(), nil

	case BoolKind:
		if !allZero(word[:WordSize-1]) || word[WordSize-1] > 1 {
			return "", fmt.Errorf("value is not a bool")
		}
		return strconv.FormatBool(word[WordSize-1] == 1), nil

	case AddressKind:
		if !allZero(word[:WordSize-common.AddressLength]) {
			return "", fmt.Errorf("address has non-zero high bytes")
		}
		return common.BytesToAddress(word[WordSize-common.AddressLength:]).Hex(), nil

	case FixedBytesKind:
		if !allZero(word[t.Size:]) {
			return "", fmt.Errorf("%s has non-zero padding", t)
		}
		return hexutil.Encode(word[:t.Size]), nil
	}
	return "", fmt.Errorf("%s is not a scalar type", t)
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
