package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/branched-services/go-calldata"
)

// renderer formats a breakdown as a word dump followed by a part tree.
type renderer struct {
	title  lipgloss.Style
	kind   lipgloss.Style
	path   lipgloss.Style
	typ    lipgloss.Style
	value  lipgloss.Style
	offset lipgloss.Style
}

func newRenderer(plain bool) *renderer {
	if plain {
		s := lipgloss.NewStyle()
		return &renderer{title: s, kind: s, path: s, typ: s, value: s, offset: s}
	}
	return &renderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		path:   lipgloss.NewStyle().Bold(true),
		typ:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		offset: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
	}
}

func (r *renderer) render(res *calldata.Result) string {
	var sb strings.Builder

	sb.WriteString(r.title.Render(res.Signature.String()))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "canonical %s\n", res.Canonical)
	fmt.Fprintf(&sb, "selector  %s\n", res.Selector)
	fmt.Fprintf(&sb, "length    %d bytes\n\n", len(res.Data))

	for i, w := range res.Words() {
		at := calldata.SelectorSize + i*calldata.WordSize
		fmt.Fprintf(&sb, "%s %s\n", r.offset.Render(fmt.Sprintf("0x%04x", at)), hex.EncodeToString(w))
	}
	sb.WriteString("\n")

	t := tree.Root(res.Canonical).Enumerator(tree.RoundedEnumerator)
	for _, p := range res.Parts {
		t.Child(r.node(p))
	}
	sb.WriteString(t.String())
	sb.WriteString("\n")
	return sb.String()
}

func (r *renderer) node(p calldata.Part) any {
	label := r.label(p)
	if len(p.Children) == 0 {
		return label
	}
	sub := tree.Root(label)
	for _, c := range p.Children {
		sub.Child(r.node(c))
	}
	return sub
}

func (r *renderer) label(p calldata.Part) string {
	parts := []string{
		r.offset.Render(fmt.Sprintf("[0x%04x+%d]", p.Offset, p.Length)),
		r.kind.Render(p.Kind.String()),
		r.path.Render(p.Path),
		r.typ.Render(p.Type),
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if !p.IsGroup() && p.Kind != calldata.PartContent {
		parts = append(parts, r.value.Render(p.Value))
	}
	return strings.Join(parts, " ")
}
