package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Line classification patterns, tested against the trimmed line. A single
// line may match several of them (e.g. "+button" is both a selector-like
// line and a mixin inclusion) and every match takes effect.
var (
	selectorRe    = regexp.MustCompile(`^[&\-.*#\[>+].*$|^[\w ,.#]+$`)
	mixinRe       = regexp.MustCompile(`^(?:@include\b\s*(.*)|\+([a-zA-Z-].*))$`)
	extendRe      = regexp.MustCompile(`^@extend\s+(.+)$`)
	functionRe    = regexp.MustCompile(`^[@=](.*)$`)
	placeholderRe = regexp.MustCompile(`^%(.*)$`)
	declarationRe = regexp.MustCompile(`^([a-zA-Z-]+):\s+(.*)$`)
)

// Lint directives. Inside a block comment the bare directive text is enough.
var (
	disableRe     = regexp.MustCompile(`(?i)(//|/\*)\s*9e-sass-lint-disable`)
	enableRe      = regexp.MustCompile(`(?i)(//|/\*)\s*9e-sass-lint-enable`)
	bareDisableRe = regexp.MustCompile(`(?i)9e-sass-lint-disable`)
	bareEnableRe  = regexp.MustCompile(`(?i)9e-sass-lint-enable`)
)

// Parse converts indented Sass source into the list of all rulesets in
// source order. Empty input yields no rulesets and no error.
//
// The first malformed line aborts parsing with a *ParseError.
func Parse(src string) ([]*RuleSet, error) {
	if src == "" {
		return nil, nil
	}
	p := &state{}
	return p.parse(src)
}

// state tracks parser state across lines.
type state struct {
	sets []*RuleSet

	current *RuleSet // Block whose body we are in.
	pending *RuleSet // Block opened on the previous structural line.
	prefix  string   // Selector context for new selector lines.

	indent int // Indentation of the previous structural line.
	unit   int // Width of one indentation level; fixed once seen.

	inComment bool
	disabled  bool
}

func (p *state) parse(src string) ([]*RuleSet, error) {
	for i, line := range strings.Split(src, "\n") {
		if err := p.parseLine(i+1, line); err != nil {
			return nil, err
		}
	}
	return p.sets, nil
}

func (p *state) parseLine(num int, line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ParseError{Line: num, Raw: line, Err: fmt.Errorf("unexpected failure: %v", r)}
		}
	}()

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if p.skip(trimmed) {
		return nil
	}

	indent := leadingWhitespace(line)
	p.track(indent)

	return p.classify(num, indent, line, trimmed)
}

// skip updates comment and directive state and reports whether the line
// must be excluded from structural parsing.
func (p *state) skip(trimmed string) bool {
	wasInComment := p.inComment
	marker := false

	if strings.HasPrefix(trimmed, "/*") {
		p.inComment = true
		marker = true
	}

	closes := strings.HasSuffix(trimmed, "*/")
	if closes && p.inComment {
		p.inComment = false
		marker = true
	}

	inside := wasInComment || p.inComment
	if disableRe.MatchString(trimmed) || inside && bareDisableRe.MatchString(trimmed) {
		p.disabled = true
		marker = true
	}
	if enableRe.MatchString(trimmed) || inside && bareEnableRe.MatchString(trimmed) {
		p.disabled = false
		marker = true
	}

	if strings.HasPrefix(trimmed, "//") {
		marker = true
	}

	return closes || marker || p.inComment || p.disabled
}

// track moves the open block up or down the nesting chain according to the
// line's indentation.
func (p *state) track(indent int) {
	if indent != 0 && p.unit == 0 {
		p.unit = indent
	}

	switch {
	case indent < p.indent:
		steps := (p.indent - indent) / p.unit
		if steps == 0 {
			steps = 1
		}
		// Stop early once the open block starts left of this line; its body
		// is where we are, whatever the step count says.
		for ; steps > 0 && p.current != nil && p.current.Pos.Column >= indent; steps-- {
			p.current = p.current.Parent
		}
		p.prefix = selectorOf(p.current)

	case indent > p.indent && p.pending != nil:
		p.current = p.pending
		p.prefix = p.current.Selector
	}

	p.pending = nil
	p.indent = indent
}

func (p *state) classify(num, indent int, raw, trimmed string) error {
	pos := Position{Line: num, Column: indent}

	isDeclaration := declarationRe.MatchString(trimmed)

	// Vendor-prefixed declarations start with "-" but are not selectors.
	if selectorRe.MatchString(trimmed) && !isDeclaration {
		p.open(KindSelector, p.resolve(trimmed), pos)
	}

	if m := mixinRe.FindStringSubmatch(trimmed); m != nil {
		p.add(&Property{Kind: EntryMixin, Pos: pos, Value: m[1] + m[2]})
	}

	if m := extendRe.FindStringSubmatch(trimmed); m != nil {
		p.add(&Property{Kind: EntryExtend, Pos: pos, Value: m[1]})
	}

	if m := functionRe.FindStringSubmatch(trimmed); m != nil {
		p.open(KindFunction, m[1], pos)
	}

	if m := placeholderRe.FindStringSubmatch(trimmed); m != nil {
		p.open(KindPlaceholder, m[1], pos)
	}

	if isDeclaration {
		if p.current == nil {
			return &ParseError{Line: num, Raw: raw, Err: ErrNoRuleSet}
		}
		m := declarationRe.FindStringSubmatch(trimmed)
		p.add(&Property{
			Kind:  EntryDeclaration,
			Pos:   pos,
			Name:  m[1],
			Value: strings.TrimSpace(m[2]),
		})
	}

	return nil
}

// open registers a new block nested in the current one. It becomes the
// current block once a deeper-indented line follows.
func (p *state) open(kind RuleSetKind, name string, pos Position) {
	rs := &RuleSet{
		Kind:   kind,
		Name:   name,
		Pos:    pos,
		Parent: p.current,
	}

	switch kind {
	case KindSelector:
		rs.Selector = name
	case KindPlaceholder:
		rs.Selector = "%" + name
	default:
		rs.Selector = p.prefix
	}

	p.sets = append(p.sets, rs)
	p.pending = rs
}

// add appends an entry to the current block. Entries outside of any block
// are dropped.
func (p *state) add(prop *Property) {
	if p.current == nil {
		return
	}
	p.current.Properties = append(p.current.Properties, prop)
}

// resolve joins a nested selector with the enclosing selector context.
func (p *state) resolve(sel string) string {
	switch {
	case p.prefix == "":
		return sel
	case strings.Contains(sel, "&"):
		return strings.ReplaceAll(sel, "&", p.prefix)
	default:
		return p.prefix + " " + sel
	}
}

func selectorOf(rs *RuleSet) string {
	if rs == nil {
		return ""
	}
	return rs.Selector
}

// leadingWhitespace returns the number of leading space and tab characters.
func leadingWhitespace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
