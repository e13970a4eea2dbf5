// Package codegen emits Rust source for the frontend's icon keys.
//
// # Overview
//
// The model is a tiny tree of [Item] values. An [Item] is either a [Module],
// which holds an ordered list of child items, or a [SimpleEnum], a fieldless
// tagged enumeration with a derive list. The set of item kinds is closed:
// [Render] switches over it exhaustively, and no other package can add one.
//
//	icons, err := codegen.NewSimpleEnum("Icon", []string{"Angle", "Distance"}, codegen.DefaultDerives)
//	if err != nil {
//	    return err
//	}
//	src := codegen.Render(&codegen.Module{Members: []codegen.Item{icons}})
//
// # Output Format
//
// Formatting is part of the contract because downstream tooling diffs the
// generated file: four-space indentation, a trailing comma after every
// variant, and derives joined by ", ".
//
//	#[derive(Hash, Clone, FromStr, PartialEq, Eq, Debug, Default)]
//	pub enum Icon {
//	    Angle,
//	    Distance,
//	}
//
// # Validation
//
// [Render] never fails. Names that would produce unusable Rust (duplicate
// variants, keywords, non-identifiers) are rejected earlier by [NewSimpleEnum]
// and [Validate].
package codegen
