package calldata

import (
	"strconv"
	"strings"
)

// Argument is a named parameter of a signature or a component of a composite.
type Argument struct {
	Name string
	Type *Type

	path string // dotted location used in errors and parts
}

// Path returns the argument's location within the call, e.g. "order.items[2]".
func (a Argument) Path() string {
	if a.path != "" {
		return a.path
	}
	return a.Name
}

// Signature is a parsed function declaration.
type Signature struct {
	Name   string
	Inputs []Argument
}

// Canonical returns the name-free signature used for hashing.
func (s *Signature) Canonical() string {
	return CanonicalSignature(s.Name, s.Inputs)
}

// Selector returns the 4-byte call selector for the signature.
func (s *Signature) Selector() Selector {
	return SelectorOf(s.Canonical())
}

// Types returns the argument types in declaration order.
func (s *Signature) Types() []*Type {
	types := make([]*Type, len(s.Inputs))
	for i, in := range s.Inputs {
		types[i] = in.Type
	}
	return types
}

// String renders the declaration with argument names, e.g.
// "transfer(address to, uint256 amount)".
func (s *Signature) String() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	writeDisplayList(&sb, s.Inputs)
	return sb.String()
}

func writeDisplayList(sb *strings.Builder, args []Argument) {
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeDisplayType(sb, a.Type)
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
	}
	sb.WriteByte(')')
}

func writeDisplayType(sb *strings.Builder, t *Type) {
	switch t.Kind {
	case TupleKind:
		args := make([]Argument, len(t.Fields))
		for i, f := range t.Fields {
			args[i] = Argument{Name: f.Name, Type: f.Type}
		}
		writeDisplayList(sb, args)
	case SliceKind:
		writeDisplayType(sb, t.Elem)
		sb.WriteString("[]")
	case ArrayKind:
		writeDisplayType(sb, t.Elem)
		sb.WriteString("[" + strconv.Itoa(t.Size) + "]")
	default:
		sb.WriteString(t.String())
	}
}

// ParseSignature parses a declaration shaped like
// "transfer(address to, uint256 amount)".
//
// Argument names are optional and default to argK by position. Record types
// are written as parenthesized lists, optionally prefixed with "tuple", and
// may carry their own field names. Solidity data-location keywords are
// accepted and ignored.
func ParseSignature(text string) (*Signature, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return nil, &SignatureError{Input: text, Pos: len(text), Reason: "missing opening parenthesis"}
	}

	name := strings.TrimSpace(text[:open])
	name = strings.TrimSpace(strings.TrimPrefix(name, "function "))
	if !isIdentifier(name) {
		return nil, &SignatureError{Input: text, Pos: 0, Reason: "invalid function name " + strconv.Quote(name)}
	}

	p := &sigParser{input: text, pos: open}
	inputs, err := p.parseList("arg")
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.fail("unexpected trailing input")
	}

	return &Signature{Name: name, Inputs: inputs}, nil
}

// MustParseSignature is like ParseSignature but panics on error.
func MustParseSignature(text string) *Signature {
	sig, err := ParseSignature(text)
	if err != nil {
		panic(err)
	}
	return sig
}

// ParseType parses a single type token such as "uint256", "bytes32[2]" or
// "(address,uint256)[]".
func ParseType(text string) (*Type, error) {
	p := &sigParser{input: text}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.fail("unexpected trailing input")
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(text string) *Type {
	t, err := ParseType(text)
	if err != nil {
		panic(err)
	}
	return t
}

// ignoredKeywords may follow a type in Solidity-style declarations.
var ignoredKeywords = map[string]bool{
	"memory":   true,
	"calldata": true,
	"storage":  true,
	"indexed":  true,
	"payable":  true,
}

type sigParser struct {
	input string
	pos   int
}

func (p *sigParser) done() bool {
	return p.pos >= len(p.input)
}

func (p *sigParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.input[p.pos]
}

func (p *sigParser) skipSpace() {
	for !p.done() {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *sigParser) fail(reason string) error {
	return &SignatureError{Input: p.input, Pos: p.pos, Reason: reason}
}

func (p *sigParser) ident() string {
	start := p.pos
	for !p.done() && isIdentByte(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// parseList parses "(param, param, ...)". Unnamed params are named
// prefix+index.
func (p *sigParser) parseList(prefix string) ([]Argument, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return nil, p.fail("expected '('")
	}
	p.pos++

	args := make([]Argument, 0, 4)
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return args, nil
	}

	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = prefix + strconv.Itoa(len(args))
		}
		args = append(args, Argument{Name: name, Type: t})

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return args, nil
		case 0:
			return nil, p.fail("missing closing parenthesis")
		default:
			return nil, p.fail("expected ',' or ')'")
		}
	}
}

// parseName consumes an optional argument name, skipping data-location keywords.
func (p *sigParser) parseName() (string, error) {
	name := ""
	for {
		p.skipSpace()
		if p.done() || !isIdentByte(p.peek()) {
			return name, nil
		}
		start := p.pos
		tok := p.ident()
		if ignoredKeywords[tok] {
			continue
		}
		if name != "" || !isIdentifier(tok) {
			p.pos = start
			return "", p.fail("unexpected token " + strconv.Quote(tok))
		}
		name = tok
	}
}

func (p *sigParser) parseType() (*Type, error) {
	p.skipSpace()

	var t *Type
	switch {
	case p.peek() == '(':
		fields, err := p.parseFields()
		if err != nil {
			return nil, err
		}
		t = TupleOf(fields...)
	case isIdentByte(p.peek()):
		start := p.pos
		tok := p.ident()
		if tok == "tuple" {
			fields, err := p.parseFields()
			if err != nil {
				return nil, err
			}
			t = TupleOf(fields...)
			break
		}
		var ok bool
		if t, ok = elementaryType(tok); !ok {
			p.pos = start
			return nil, p.fail("unknown type " + strconv.Quote(tok))
		}
	default:
		return nil, p.fail("expected type")
	}

	for {
		p.skipSpace()
		if p.peek() != '[' {
			return t, nil
		}
		p.pos++
		p.skipSpace()
		start := p.pos
		for !p.done() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		digits := p.input[start:p.pos]
		p.skipSpace()
		if p.peek() != ']' {
			return nil, p.fail("expected ']'")
		}
		p.pos++
		if digits == "" {
			t = SliceOf(t)
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			p.pos = start
			return nil, p.fail("invalid array length " + strconv.Quote(digits))
		}
		t = ArrayOf(t, n)
		if err := t.checkSize(); err != nil {
			p.pos = start
			return nil, p.fail(err.Error())
		}
	}
}

func (p *sigParser) parseFields() ([]Field, error) {
	start := p.pos
	args, err := p.parseList("field")
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		p.pos = start
		return nil, p.fail("empty record")
	}
	fields := make([]Field, len(args))
	for i, a := range args {
		fields[i] = Field{Name: a.Name, Type: a.Type}
	}
	return fields, nil
}

// elementaryType resolves a scalar type token, applying the uint/int/byte aliases.
func elementaryType(tok string) (*Type, bool) {
	switch tok {
	case "address":
		return &Type{Kind: AddressKind}, true
	case "bool":
		return &Type{Kind: BoolKind}, true
	case "string":
		return &Type{Kind: StringKind}, true
	case "bytes":
		return &Type{Kind: BytesKind}, true
	case "byte":
		return &Type{Kind: FixedBytesKind, Size: 1}, true
	case "uint":
		return &Type{Kind: UintKind, Size: 256}, true
	case "int":
		return &Type{Kind: IntKind, Size: 256}, true
	}

	var kind Kind
	var digits string
	switch {
	case strings.HasPrefix(tok, "uint"):
		kind, digits = UintKind, tok[4:]
	case strings.HasPrefix(tok, "int"):
		kind, digits = IntKind, tok[3:]
	case strings.HasPrefix(tok, "bytes"):
		kind, digits = FixedBytesKind, tok[5:]
	default:
		return nil, false
	}
	if digits == "" || digits[0] == '0' {
		return nil, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil, false
	}
	if kind == FixedBytesKind {
		if n > 32 {
			return nil, false
		}
	} else if n%8 != 0 || n > 256 {
		return nil, false
	}
	return &Type{Kind: kind, Size: n}, true
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentifier(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}
