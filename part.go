package calldata

import (
	"sort"
)

// RegionKind classifies a byte range of the encoded call.
type RegionKind uint8

const (
	// RegionSelector is the 4-byte selector at offset 0.
	RegionSelector RegionKind = iota

	// RegionHeadSlot is one word of a head: a static value or an offset.
	RegionHeadSlot

	// RegionTailLength is the length or element count word of dynamic content.
	RegionTailLength

	// RegionTailContent is raw string or bytes data.
	RegionTailContent

	// RegionTailPadding is the zero fill after string or bytes data.
	RegionTailPadding
)

func (k RegionKind) String() string {
	switch k {
	case RegionSelector:
		return "selector"
	case RegionHeadSlot:
		return "head"
	case RegionTailLength:
		return "length"
	case RegionTailContent:
		return "content"
	case RegionTailPadding:
		return "padding"
	default:
		return "unknown"
	}
}

// Region is a typed byte range of the encoded call with its provenance.
// Depth is 0 for the top-level head and grows by one per dynamic indirection.
type Region struct {
	Offset int
	Length int
	Kind   RegionKind
	Path   string
	Type   string
	Depth  int
}

// End returns the offset just past the region.
func (r Region) End() int {
	return r.Offset + r.Length
}

// PartKind classifies a breakdown node.
type PartKind uint8

const (
	// PartSelector is the call selector.
	PartSelector PartKind = iota

	// PartValue is a head word holding a static scalar.
	PartValue

	// PartOffset is a head word pointing at dynamic content.
	PartOffset

	// PartInline groups the head words of a static tuple or fixed-length array.
	PartInline

	// PartTail groups the content of one dynamic argument.
	PartTail

	// PartLength is a length or element count word.
	PartLength

	// PartContent is raw string or bytes data.
	PartContent

	// PartPadding is the zero fill after string or bytes data.
	PartPadding
)

var partKindNames = [...]string{
	PartSelector: "selector",
	PartValue:    "value",
	PartOffset:   "offset",
	PartInline:   "inline",
	PartTail:     "tail",
	PartLength:   "length",
	PartContent:  "content",
	PartPadding:  "padding",
}

func (k PartKind) String() string {
	if int(k) < len(partKindNames) {
		return partKindNames[k]
	}
	return "unknown"
}

// Region maps a leaf part kind to the region kind it covers.
// Group kinds report false.
func (k PartKind) Region() (RegionKind, bool) {
	switch k {
	case PartSelector:
		return RegionSelector, true
	case PartValue, PartOffset:
		return RegionHeadSlot, true
	case PartLength:
		return RegionTailLength, true
	case PartContent:
		return RegionTailContent, true
	case PartPadding:
		return RegionTailPadding, true
	default:
		return 0, false
	}
}

// Part is one labeled node of a decomposed call.
//
// Offset is absolute within the decomposed byte string. Value is the 0x-prefixed
// hex of the bytes the part covers; Description is a human-readable reading of
// them.
type Part struct {
	Name        string
	Path        string
	Type        string
	Kind        PartKind
	Offset      int
	Length      int
	Depth       int
	Value       string
	Description string
	Children    []Part
}

// IsGroup reports whether the part only groups other parts.
func (p Part) IsGroup() bool {
	_, leaf := p.Kind.Region()
	return !leaf
}

// Walk visits the part and its descendants depth-first.
// Returning false from fn skips the part's children.
func (p Part) Walk(fn func(Part) bool) {
	if !fn(p) {
		return
	}
	for _, c := range p.Children {
		c.Walk(fn)
	}
}

// Regions flattens the leaf parts into regions ordered by offset.
func Regions(parts []Part) []Region {
	var regions []Region
	for _, part := range parts {
		part.Walk(func(p Part) bool {
			if kind, ok := p.Kind.Region(); ok {
				regions = append(regions, Region{
					Offset: p.Offset,
					Length: p.Length,
					Kind:   kind,
					Path:   p.Path,
					Type:   p.Type,
					Depth:  p.Depth,
				})
			}
			return true
		})
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Offset < regions[j].Offset
	})
	return regions
}
