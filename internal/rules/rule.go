// Package rules defines property ordering tables and the registry of named
// tables available to the linter.
package rules

import (
	"regexp"

	"github.com/donaldgifford/sasslint/internal/parser"
)

// Rule matches the properties that share one canonical rank.
type Rule interface {
	Match(p *parser.Property) bool
	String() string
}

// Literal matches a declaration whose name equals the string exactly.
type Literal string

// Match reports whether p is a declaration named l.
func (l Literal) Match(p *parser.Property) bool {
	return p.Kind == parser.EntryDeclaration && p.Name == string(l)
}

func (l Literal) String() string { return string(l) }

// Pattern matches a declaration whose name matches the regular expression
// anywhere.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr into a Pattern.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{re: re}, nil
}

// MustPattern is like NewPattern but panics on an invalid expression.
func MustPattern(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}

// Match reports whether p is a declaration whose name matches.
func (r Pattern) Match(p *parser.Property) bool {
	return p.Kind == parser.EntryDeclaration && r.re.MatchString(p.Name)
}

func (r Pattern) String() string { return "/" + r.re.String() + "/" }

// Predicate matches entries for which Fn returns true.
type Predicate struct {
	Name string
	Fn   func(p *parser.Property) bool
}

// Match calls the predicate.
func (f Predicate) Match(p *parser.Property) bool { return f.Fn(p) }

func (f Predicate) String() string { return f.Name }

// Inclusion matches inheritance and mixin inclusion entries, which belong
// at the top of a ruleset.
var Inclusion = Predicate{
	Name: "@inclusion",
	Fn: func(p *parser.Property) bool {
		return p.Kind == parser.EntryExtend || p.Kind == parser.EntryMixin
	},
}

// Extend matches inheritance directives only.
var Extend = Predicate{
	Name: "@extend",
	Fn: func(p *parser.Property) bool {
		return p.Kind == parser.EntryExtend
	},
}

// Mixin matches mixin inclusions only.
var Mixin = Predicate{
	Name: "@include",
	Fn: func(p *parser.Property) bool {
		return p.Kind == parser.EntryMixin
	},
}
