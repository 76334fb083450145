package linter

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/sasslint/internal/parser"
	"github.com/donaldgifford/sasslint/internal/rules"
)

// Linter checks rulesets against one order table.
type Linter struct {
	table *rules.Table
}

// New returns a Linter using table for ranking.
func New(table *rules.Table) *Linter {
	return &Linter{table: table}
}

// Table returns the order table in use.
func (l *Linter) Table() *rules.Table {
	return l.table
}

// Lint parses the file and checks every ruleset. A parse error aborts the
// whole file.
func (l *Linter) Lint(f *File) ([]Violation, error) {
	sets, err := parser.Parse(f.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	return l.Check(f.Name, sets), nil
}

// Check returns the violations of all rulesets, in ruleset order and, within
// a ruleset, in property order.
func (l *Linter) Check(file string, sets []*parser.RuleSet) []Violation {
	var report []Violation
	for _, rs := range sets {
		report = append(report, l.checkRuleSet(file, rs)...)
	}
	return report
}

func (l *Linter) checkRuleSet(file string, rs *parser.RuleSet) []Violation {
	var report []Violation

	floor := 0
	for _, prop := range rs.Properties {
		rank, ok := l.table.Rank(prop)
		if !ok {
			// Unranked properties are exempt and leave the floor untouched.
			continue
		}

		if rank >= floor {
			floor = rank
			continue
		}

		target := l.firstAtOrAbove(rs, rank)
		report = append(report, Violation{
			File:       file,
			Pos:        prop.Pos,
			TargetLine: target.Pos.Line,
			Message: fmt.Sprintf("%s should be defined before %s in line %d",
				identifier(prop, true), identifier(target, false), target.Pos.Line),
		})
	}

	return report
}

// firstAtOrAbove returns the first property of rs, scanning from the top,
// whose rank is at least rank. A violation guarantees such a property
// precedes the offending one.
func (l *Linter) firstAtOrAbove(rs *parser.RuleSet, rank int) *parser.Property {
	for _, prop := range rs.Properties {
		if r, ok := l.table.Rank(prop); ok && r >= rank {
			return prop
		}
	}
	return nil
}

// identifier renders a property for messages: "Property `name`" for
// declarations, the entry kind ("Mixin") otherwise.
func identifier(p *parser.Property, capitalized bool) string {
	if p.Kind == parser.EntryDeclaration {
		if capitalized {
			return "Property `" + p.Name + "`"
		}
		return "property `" + p.Name + "`"
	}

	label := p.Kind.String()
	if capitalized {
		return strings.ToUpper(label[:1]) + label[1:]
	}
	return label
}
