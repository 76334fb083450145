package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/donaldgifford/sasslint/internal/parser"
)

// Table is an ordered list of rules. A rule's index in the table is the
// canonical rank of the properties it matches. Tables are immutable once
// built and safe for concurrent use.
type Table struct {
	name  string
	rules []Rule
}

// NewTable returns a table with the given rules in rank order.
func NewTable(name string, rules ...Rule) *Table {
	return &Table{
		name:  name,
		rules: append([]Rule(nil), rules...),
	}
}

// Name returns the registry key of the table.
func (t *Table) Name() string { return t.name }

// Len returns the number of rules in the table.
func (t *Table) Len() int { return len(t.rules) }

// Rule returns the rule with rank i.
func (t *Table) Rule(i int) Rule { return t.rules[i] }

// Rank returns the index of the first rule matching p. The boolean is false
// when no rule matches and the property is unranked.
func (t *Table) Rank(p *parser.Property) (int, bool) {
	for i, r := range t.rules {
		if r.Match(p) {
			return i, true
		}
	}
	return 0, false
}

// ParseTable builds a table from configuration entries. Each entry is one of:
//
//	name          literal property name
//	/expr/        regular expression tested against the property name
//	@extend       inheritance directives
//	@include      mixin inclusions
//	@inclusion    both of the above
func ParseTable(name string, entries []string) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.New("empty order table")
	}

	rules := make([]Rule, 0, len(entries))
	for i, entry := range entries {
		r, err := parseEntry(strings.TrimSpace(entry))
		if err != nil {
			return nil, fmt.Errorf("order entry %d (%q): %w", i+1, entry, err)
		}
		rules = append(rules, r)
	}
	return NewTable(name, rules...), nil
}

func parseEntry(entry string) (Rule, error) {
	switch {
	case entry == "":
		return nil, errors.New("empty entry")
	case entry == Extend.Name:
		return Extend, nil
	case entry == Mixin.Name:
		return Mixin, nil
	case entry == Inclusion.Name:
		return Inclusion, nil
	case len(entry) > 2 && strings.HasPrefix(entry, "/") && strings.HasSuffix(entry, "/"):
		return NewPattern(entry[1 : len(entry)-1])
	case strings.HasPrefix(entry, "@"):
		return nil, fmt.Errorf("unknown predicate %s", entry)
	}
	return Literal(entry), nil
}
