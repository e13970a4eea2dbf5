package codegen

import (
	"strings"
	"testing"
)

func TestRenderIconEnum(t *testing.T) {
	icon := &SimpleEnum{
		Name:     "Icon",
		Variants: []string{"Angle", "Coincident", "Colinear", "Distance"},
		Derives:  []string{"Hash", "Clone", "FromStr", "PartialEq", "Eq", "Debug", "Default"},
	}

	expected := `#[derive(Hash, Clone, FromStr, PartialEq, Eq, Debug, Default)]
pub enum Icon {
    Angle,
    Coincident,
    Colinear,
    Distance,
}`

	if got := Render(icon); got != expected {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, expected)
	}
	if got := icon.String(); got != expected {
		t.Errorf("String() =\n%s\nwant:\n%s", got, expected)
	}
}

func TestRenderEnumDerives(t *testing.T) {
	tests := []struct {
		name    string
		derives []string
		want    string
	}{
		{
			name:    "no derives omits attribute",
			derives: nil,
			want:    "pub enum Key {\n    A,\n}",
		},
		{
			name:    "single derive",
			derives: []string{"Debug"},
			want:    "#[derive(Debug)]\npub enum Key {\n    A,\n}",
		},
		{
			name:    "two derives",
			derives: []string{"Clone", "Copy"},
			want:    "#[derive(Clone, Copy)]\npub enum Key {\n    A,\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &SimpleEnum{Name: "Key", Variants: []string{"A"}, Derives: tt.derives}
			if got := Render(e); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderVariantLines(t *testing.T) {
	variants := []string{"Zeta", "Alpha", "Mid", "Beta", "Omega"}
	e := &SimpleEnum{Name: "Ordered", Variants: variants, Derives: DefaultDerives}

	var lines []string
	for _, l := range strings.Split(Render(e), "\n") {
		if strings.HasPrefix(l, indent) {
			lines = append(lines, l)
		}
	}

	if len(lines) != len(variants) {
		t.Fatalf("got %d variant lines, want %d", len(lines), len(variants))
	}
	for i, l := range lines {
		if want := indent + variants[i] + ","; l != want {
			t.Errorf("line %d = %q, want %q", i, l, want)
		}
	}
}

func TestRenderModule(t *testing.T) {
	a := &SimpleEnum{Name: "A", Variants: []string{"X"}}
	b := &SimpleEnum{Name: "B", Variants: []string{"Y", "Z"}, Derives: []string{"Debug"}}

	if got := Render(&Module{}); got != "" {
		t.Errorf("empty module = %q, want empty string", got)
	}

	want := "\n" + Render(a) + "\n" + Render(b)
	if got := Render(&Module{Members: []Item{a, b}}); got != want {
		t.Errorf("Render(module) = %q, want %q", got, want)
	}

	nested := &Module{Members: []Item{&Module{Members: []Item{a}}}}
	if got, want := Render(nested), "\n\n"+Render(a); got != want {
		t.Errorf("Render(nested) = %q, want %q", got, want)
	}
}

func TestRenderNil(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}
	var m *Module
	if got := Render(m); got != "" {
		t.Errorf("Render(nil module) = %q, want empty", got)
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	m := &Module{Members: []Item{
		&SimpleEnum{Name: "Icon", Variants: []string{"Angle", "Distance"}, Derives: DefaultDerives},
	}}
	first := Render(m)
	second := Render(m)
	if first != second {
		t.Errorf("Render() not repeatable:\n%q\n%q", first, second)
	}
}
