package codegen

import (
	"fmt"
	"strings"
)

const indent = "    "

// Render returns the source text of item. It is deterministic and has no side
// effects; a nil item renders as the empty string.
func Render(item Item) string {
	var b strings.Builder
	render(&b, item)
	return b.String()
}

func render(b *strings.Builder, item Item) {
	switch it := item.(type) {
	case nil:
	case *Module:
		renderModule(b, it)
	case *SimpleEnum:
		renderEnum(b, it)
	default:
		panic(fmt.Sprintf("codegen: unknown item type %T", item))
	}
}

// renderModule writes a newline before every member, so an empty module
// produces nothing.
func renderModule(b *strings.Builder, m *Module) {
	if m == nil {
		return
	}
	for _, member := range m.Members {
		b.WriteByte('\n')
		render(b, member)
	}
}

// renderEnum writes the derive attribute (omitted when there are no derives),
// the declaration and one indented line per variant. There is no trailing
// newline after the closing brace.
func renderEnum(b *strings.Builder, e *SimpleEnum) {
	if e == nil {
		return
	}
	if len(e.Derives) > 0 {
		b.WriteString("#[derive(")
		b.WriteString(strings.Join(e.Derives, ", "))
		b.WriteString(")]\n")
	}
	b.WriteString("pub enum ")
	b.WriteString(e.Name)
	b.WriteString(" {\n")
	for _, v := range e.Variants {
		b.WriteString(indent)
		b.WriteString(v)
		b.WriteString(",\n")
	}
	b.WriteByte('}')
}
