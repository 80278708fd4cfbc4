package calldata

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Value is a node of an argument value tree, shaped like its Type.
// This is a sealed interface - only Literal and List implement it.
type Value interface {
	// isValue is unexported to seal the interface.
	isValue()
}

// Literal is the text of a scalar value: a decimal or 0x-prefixed integer,
// "true"/"false", a hex address or byte string, or raw string content.
type Literal string

func (Literal) isValue() {}

// List holds the elements of an array or the fields of a record.
type List []Value

func (List) isValue() {}

// Items builds a List from its arguments.
func Items(vs ...Value) List {
	return List(vs)
}

// FromAny converts a decoded YAML or JSON tree into a Value.
// Strings, numbers and booleans become literals; slices become lists.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case string:
		return Literal(x), nil
	case bool:
		return Literal(strconv.FormatBool(x)), nil
	case int:
		return Literal(strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return Literal(strconv.FormatInt(x, 10)), nil
	case int32:
		return Literal(strconv.FormatInt(int64(x), 10)), nil
	case uint:
		return Literal(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return Literal(strconv.FormatUint(x, 10)), nil
	case uint32:
		return Literal(strconv.FormatUint(uint64(x), 10)), nil
	case float64:
		// Only integral floats within the exactly representable range.
		if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
			return nil, scalarErr(ErrInvalidScalar, "non-integral or imprecise number %v; quote large integers", x)
		}
		return Literal(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case *big.Int:
		return Literal(x.String()), nil
	case []byte:
		return Literal(hexutil.Encode(x)), nil
	case common.Address:
		return Literal(x.Hex()), nil
	case []string:
		list := make(List, len(x))
		for i, s := range x {
			list[i] = Literal(s)
		}
		return list, nil
	case []any:
		list := make(List, len(x))
		for i, item := range x {
			val, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			list[i] = val
		}
		return list, nil
	default:
		return nil, scalarErr(ErrTypeMismatch, "unsupported value %T", v)
	}
}

// ParseValues parses a comma-separated argument list such as
// `0x11..11, 7, [1,2,3], ("hi", [true,false])`.
//
// Brackets and parentheses both open a nested list. Double-quoted items may
// contain separators and \" escapes; bare items are trimmed of surrounding
// whitespace. An empty or all-whitespace input yields an empty list.
func ParseValues(text string) (List, error) {
	p := &valueParser{input: text}
	p.skipSpace()
	if p.done() {
		return List{}, nil
	}
	items, err := p.parseItems(0)
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.fail("unexpected %q", p.input[p.pos])
	}
	return items, nil
}

type valueParser struct {
	input string
	pos   int
}

func (p *valueParser) done() bool {
	return p.pos >= len(p.input)
}

func (p *valueParser) skipSpace() {
	for !p.done() && strings.IndexByte(" \t\r\n", p.input[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *valueParser) fail(format string, args ...any) error {
	return scalarErr(ErrInvalidScalar, "value list at position %d: %s", p.pos, fmt.Sprintf(format, args...))
}

// parseItems reads items until the closing delimiter (or end of input when close is 0).
func (p *valueParser) parseItems(close byte) (List, error) {
	list := List{}
	p.skipSpace()
	if close != 0 && !p.done() && p.input[p.pos] == close {
		p.pos++
		return list, nil
	}
	for {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		list = append(list, item)

		p.skipSpace()
		if p.done() {
			if close != 0 {
				return nil, p.fail("missing %q", close)
			}
			return list, nil
		}
		switch c := p.input[p.pos]; {
		case c == ',':
			p.pos++
		case close != 0 && c == close:
			p.pos++
			return list, nil
		default:
			return nil, p.fail("unexpected %q", c)
		}
	}
}

func (p *valueParser) parseItem() (Value, error) {
	p.skipSpace()
	if p.done() {
		return Literal(""), nil
	}
	switch p.input[p.pos] {
	case '[':
		p.pos++
		return p.parseItems(']')
	case '(':
		p.pos++
		return p.parseItems(')')
	case '"':
		return p.parseQuoted()
	}
	start := p.pos
	for !p.done() && strings.IndexByte(",[]()", p.input[p.pos]) < 0 {
		p.pos++
	}
	return Literal(strings.TrimSpace(p.input[start:p.pos])), nil
}

func (p *valueParser) parseQuoted() (Value, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for !p.done() {
		c := p.input[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.input):
			sb.WriteByte(p.input[p.pos+1])
			p.pos += 2
		case c == '"':
			p.pos++
			return Literal(sb.String()), nil
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return nil, p.fail("unterminated string")
}
