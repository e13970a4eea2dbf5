package codegen

import (
	"strings"
	"unicode"

	"github.com/matzehuels/spritekit/pkg/errors"
)

// rustKeywords are the strict and reserved keywords of Rust 2021, none of
// which may be used as a plain identifier.
var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true,
	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "try": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true,
}

// NewSimpleEnum builds an enum after checking that the result will compile:
// the name, every variant and every derive must be an ASCII Rust identifier,
// there must be at least one variant, and variants must be unique.
func NewSimpleEnum(name string, variants, derives []string) (*SimpleEnum, error) {
	e := &SimpleEnum{
		Name:     name,
		Variants: append([]string(nil), variants...),
		Derives:  append([]string(nil), derives...),
	}
	if err := validateEnum(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks every enum reachable from item.
func Validate(item Item) error {
	switch it := item.(type) {
	case nil:
		return nil
	case *Module:
		if it == nil {
			return nil
		}
		for _, m := range it.Members {
			if err := Validate(m); err != nil {
				return err
			}
		}
		return nil
	case *SimpleEnum:
		return validateEnum(it)
	default:
		return errors.New(errors.ErrCodeInternal, "unknown item type %T", item)
	}
}

func validateEnum(e *SimpleEnum) error {
	if e == nil {
		return errors.New(errors.ErrCodeInvalidEnum, "enum is nil")
	}
	if err := ValidateIdentifier(e.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidIdentifier, err, "enum name")
	}
	if len(e.Variants) == 0 {
		return errors.New(errors.ErrCodeInvalidEnum, "enum %s has no variants", e.Name)
	}

	seen := make(map[string]bool, len(e.Variants))
	for _, v := range e.Variants {
		if err := ValidateIdentifier(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidIdentifier, err, "enum %s variant", e.Name)
		}
		if seen[v] {
			return errors.New(errors.ErrCodeDuplicateVariant, "enum %s has duplicate variant %q", e.Name, v)
		}
		seen[v] = true
	}

	for _, d := range e.Derives {
		if err := ValidateDerive(d); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidIdentifier, err, "enum %s derive", e.Name)
		}
	}
	return nil
}

// ValidateIdentifier reports whether s is usable as a Rust identifier.
// Only ASCII identifiers are accepted.
func ValidateIdentifier(s string) error {
	if s == "" {
		return errors.New(errors.ErrCodeInvalidIdentifier, "identifier cannot be empty")
	}
	if s == "_" {
		return errors.New(errors.ErrCodeInvalidIdentifier, "%q is not a valid identifier", s)
	}
	for i, r := range s {
		switch {
		case r == '_', r < unicode.MaxASCII && unicode.IsLetter(r):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return errors.New(errors.ErrCodeInvalidIdentifier, "%q is not a valid identifier", s)
		}
	}
	if rustKeywords[s] {
		return errors.New(errors.ErrCodeInvalidIdentifier, "%q is a reserved keyword", s)
	}
	return nil
}

// pathRoots may start a path but are not identifiers on their own.
var pathRoots = map[string]bool{"crate": true, "self": true, "super": true}

// ValidateDerive reports whether s names a derive macro: a plain identifier
// or a path such as "strum::EnumString" or "::serde::Serialize".
func ValidateDerive(s string) error {
	segments := strings.Split(strings.TrimPrefix(s, "::"), "::")
	for i, seg := range segments {
		if i == 0 && len(segments) > 1 && pathRoots[seg] {
			continue
		}
		if err := ValidateIdentifier(seg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidIdentifier, err, "%q is not a valid derive path", s)
		}
	}
	return nil
}

// Identifier converts a file stem like "line-length" or "snap_to grid" into a
// PascalCase identifier ("LineLength", "SnapToGrid"). Characters other than
// ASCII letters and digits separate words. A leading digit gets an underscore
// prefix. The result is not guaranteed to be valid (it may be empty or a
// keyword); pass it through [ValidateIdentifier].
func Identifier(stem string) string {
	words := strings.FieldsFunc(stem, func(r rune) bool {
		return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})

	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}

	out := b.String()
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}
