package codegen

// DefaultEnumName is the enum name used for generated icon keys.
const DefaultEnumName = "Icon"

// DefaultDerives are the traits the frontend's sprite atlas requires of its key
// type (it must be hashable, clonable, comparable and parseable from the
// manifest's name column).
var DefaultDerives = []string{"Hash", "Clone", "FromStr", "PartialEq", "Eq", "Debug", "Default"}

// Item is a node of generated source. The only implementations are [*Module]
// and [*SimpleEnum].
type Item interface {
	item()
}

// Module is an ordered container of items rendered one after another.
type Module struct {
	Members []Item
}

// SimpleEnum is a fieldless enum declaration.
type SimpleEnum struct {
	Name     string   // enum identifier, e.g. "Icon"
	Variants []string // variant identifiers in declaration order
	Derives  []string // derive macro names, may be empty
}

func (*Module) item()     {}
func (*SimpleEnum) item() {}

// String renders the module.
func (m *Module) String() string { return Render(m) }

// String renders the enum declaration.
func (e *SimpleEnum) String() string { return Render(e) }
