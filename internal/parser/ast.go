// Package parser provides a line-by-line parser for the indented Sass syntax
// that produces a flat list of rulesets and their property entries.
package parser

import (
	"errors"
	"fmt"
)

// RuleSetKind classifies a parsed block.
type RuleSetKind int

const (
	// KindSelector is a style selector block (.foo, &:hover, a, #id).
	KindSelector RuleSetKind = iota
	// KindFunction is an at-rule, function or mixin definition (@media, =mixin).
	KindFunction
	// KindPlaceholder is a placeholder selector block (%base).
	KindPlaceholder
)

func (k RuleSetKind) String() string {
	switch k {
	case KindSelector:
		return "selector"
	case KindFunction:
		return "function"
	case KindPlaceholder:
		return "placeholder selector"
	}
	return fmt.Sprintf("RuleSetKind(%d)", int(k))
}

// EntryKind classifies a line item inside a ruleset.
type EntryKind int

const (
	// EntryDeclaration is a "name: value" property declaration.
	EntryDeclaration EntryKind = iota
	// EntryMixin is a mixin inclusion (@include foo, +foo).
	EntryMixin
	// EntryExtend is an inheritance directive (@extend %foo).
	EntryExtend
)

// String returns the lowercase label used in lint messages.
func (k EntryKind) String() string {
	switch k {
	case EntryDeclaration:
		return "property"
	case EntryMixin:
		return "mixin"
	case EntryExtend:
		return "extend"
	}
	return fmt.Sprintf("EntryKind(%d)", int(k))
}

// Position is a location in the source. Line is 1-indexed; Column is the raw
// length of the line's leading whitespace.
type Position struct {
	Line   int
	Column int
}

// RuleSet is one parsed block together with the entries declared directly
// inside it. Nested blocks are separate RuleSets that point back to their
// enclosing block through Parent.
type RuleSet struct {
	Kind RuleSetKind
	// Name is the resolved selector for selector blocks and the raw text
	// after the leading sigil for functions and placeholders.
	Name string
	// Selector is the selector context inherited by nested blocks.
	Selector   string
	Pos        Position
	Parent     *RuleSet // Enclosing block; not owned.
	Properties []*Property
}

// Property is a single entry of a RuleSet.
type Property struct {
	Kind  EntryKind
	Pos   Position
	Name  string // Declarations only.
	Value string // Declaration value, or the mixin/extend target.
}

// ErrNoRuleSet is the cause of a ParseError for a declaration that appears
// outside of any block.
var ErrNoRuleSet = errors.New("property declared outside of a ruleset")

// ParseError reports a malformed structural line. Parsing stops at the first
// ParseError and no partial result is returned.
type ParseError struct {
	Line int // 1-indexed.
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
