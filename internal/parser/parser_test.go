package parser

import (
	"errors"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	sets, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("expected 0 rulesets for empty input, got %d", len(sets))
	}
}

func TestParseBlankOnly(t *testing.T) {
	sets, err := Parse("\n\n   \n\t\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("expected 0 rulesets, got %d", len(sets))
	}
}

func TestParseSimpleRuleset(t *testing.T) {
	src := ".foo\n" +
		"  color: red\n" +
		"  top: 0\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("expected 1 ruleset, got %d", len(sets))
	}

	rs := sets[0]
	if rs.Kind != KindSelector {
		t.Errorf("kind: want %v, got %v", KindSelector, rs.Kind)
	}
	if rs.Name != ".foo" {
		t.Errorf("name: want %q, got %q", ".foo", rs.Name)
	}
	if rs.Pos != (Position{Line: 1, Column: 0}) {
		t.Errorf("pos: want 1:0, got %d:%d", rs.Pos.Line, rs.Pos.Column)
	}
	if len(rs.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(rs.Properties))
	}

	want := []struct {
		name  string
		value string
		line  int
	}{
		{"color", "red", 2},
		{"top", "0", 3},
	}
	for i, w := range want {
		p := rs.Properties[i]
		if p.Kind != EntryDeclaration {
			t.Errorf("property %d kind: want declaration, got %v", i, p.Kind)
		}
		if p.Name != w.name || p.Value != w.value {
			t.Errorf("property %d: want %s=%s, got %s=%s", i, w.name, w.value, p.Name, p.Value)
		}
		if p.Pos.Line != w.line || p.Pos.Column != 2 {
			t.Errorf("property %d pos: want %d:2, got %d:%d", i, w.line, p.Pos.Line, p.Pos.Column)
		}
	}
}

func TestClassifySelectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"class", ".foo"},
		{"id", "#main"},
		{"universal", "*"},
		{"attribute", "[disabled]"},
		{"child combinator", "> li"},
		{"sibling combinator", "+ p"},
		{"element list", "h1, h2, h3"},
		{"element", "body"},
		{"parent reference", "&.active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, err := Parse(tt.input + "\n")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sets) != 1 {
				t.Fatalf("expected 1 ruleset, got %d", len(sets))
			}
			if sets[0].Kind != KindSelector {
				t.Errorf("kind: want selector, got %v", sets[0].Kind)
			}
			if sets[0].Name != tt.input {
				t.Errorf("name: want %q, got %q", tt.input, sets[0].Name)
			}
		})
	}
}

func TestClassifyFunctionsAndPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     RuleSetKind
		wantName string
	}{
		{"media query", "@media screen", KindFunction, "media screen"},
		{"mixin definition", "=button($size)", KindFunction, "button($size)"},
		{"control directive", "@if $a == b", KindFunction, "if $a == b"},
		{"placeholder", "%base", KindPlaceholder, "base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, err := Parse(tt.input + "\n")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sets) != 1 {
				t.Fatalf("expected 1 ruleset, got %d", len(sets))
			}
			if sets[0].Kind != tt.kind {
				t.Errorf("kind: want %v, got %v", tt.kind, sets[0].Kind)
			}
			if sets[0].Name != tt.wantName {
				t.Errorf("name: want %q, got %q", tt.wantName, sets[0].Name)
			}
		})
	}
}

func TestNestedSelectorNames(t *testing.T) {
	src := ".nav\n" +
		"  width: 10px\n" +
		"  &.open\n" +
		"    height: 0\n" +
		"  li\n" +
		"    margin: 0\n" +
		"    a\n" +
		"      color: red\n" +
		"  padding: 0\n" +
		".other\n" +
		"  top: 0\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		name   string
		parent string
		props  []string
	}{
		{".nav", "", []string{"width", "padding"}},
		{".nav.open", ".nav", []string{"height"}},
		{".nav li", ".nav", []string{"margin"}},
		{".nav li a", ".nav li", []string{"color"}},
		{".other", "", []string{"top"}},
	}

	if len(sets) != len(want) {
		t.Fatalf("expected %d rulesets, got %d", len(want), len(sets))
	}

	for i, w := range want {
		rs := sets[i]
		if rs.Name != w.name {
			t.Errorf("ruleset %d name: want %q, got %q", i, w.name, rs.Name)
		}
		parent := ""
		if rs.Parent != nil {
			parent = rs.Parent.Name
		}
		if parent != w.parent {
			t.Errorf("ruleset %q parent: want %q, got %q", rs.Name, w.parent, parent)
		}
		if len(rs.Properties) != len(w.props) {
			t.Errorf("ruleset %q: want %d properties, got %d", rs.Name, len(w.props), len(rs.Properties))
			continue
		}
		for j, name := range w.props {
			if rs.Properties[j].Name != name {
				t.Errorf("ruleset %q property %d: want %q, got %q", rs.Name, j, name, rs.Properties[j].Name)
			}
		}
	}
}

func TestFunctionInheritsSelectorContext(t *testing.T) {
	src := ".card\n" +
		"  @media print\n" +
		"    &.wide\n" +
		"      width: 100%\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("expected 3 rulesets, got %d", len(sets))
	}
	if sets[1].Kind != KindFunction || sets[1].Selector != ".card" {
		t.Errorf("media block: want function with selector .card, got %v %q", sets[1].Kind, sets[1].Selector)
	}
	if sets[2].Name != ".card.wide" {
		t.Errorf("nested selector: want %q, got %q", ".card.wide", sets[2].Name)
	}
	if sets[2].Parent != sets[1] {
		t.Error("nested selector should be parented to the media block")
	}
}

func TestParseMixinAndExtend(t *testing.T) {
	src := ".btn\n" +
		"  @extend %base\n" +
		"  +rounded(4px)\n" +
		"  @include shadow\n" +
		"  color: red\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	btn := sets[0]
	wantKinds := []EntryKind{EntryExtend, EntryMixin, EntryMixin, EntryDeclaration}
	if len(btn.Properties) != len(wantKinds) {
		t.Fatalf("expected %d entries, got %d", len(wantKinds), len(btn.Properties))
	}
	for i, k := range wantKinds {
		if btn.Properties[i].Kind != k {
			t.Errorf("entry %d: want %v, got %v", i, k, btn.Properties[i].Kind)
		}
	}
	if btn.Properties[0].Value != "%base" {
		t.Errorf("extend target: want %%base, got %q", btn.Properties[0].Value)
	}
	if btn.Properties[1].Value != "rounded(4px)" {
		t.Errorf("mixin value: want %q, got %q", "rounded(4px)", btn.Properties[1].Value)
	}
	if btn.Properties[2].Value != "shadow" {
		t.Errorf("mixin value: want %q, got %q", "shadow", btn.Properties[2].Value)
	}
}

func TestMultipleClassification(t *testing.T) {
	// "@include" is both a mixin entry and a function block; "+name" is both
	// a mixin entry and a selector block.
	src := ".a\n" +
		"  @include foo\n" +
		"  +bar\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("expected 3 rulesets, got %d", len(sets))
	}
	if sets[1].Kind != KindFunction || sets[1].Name != "include foo" {
		t.Errorf("want function %q, got %v %q", "include foo", sets[1].Kind, sets[1].Name)
	}
	if sets[2].Kind != KindSelector || sets[2].Name != ".a +bar" {
		t.Errorf("want selector %q, got %v %q", ".a +bar", sets[2].Kind, sets[2].Name)
	}
	if len(sets[0].Properties) != 2 {
		t.Errorf("expected 2 mixin entries on .a, got %d", len(sets[0].Properties))
	}
}

func TestVendorPrefixedDeclaration(t *testing.T) {
	src := ".a\n" +
		"  -webkit-transition: all 1s\n" +
		"  transition: all 1s\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("vendor declarations must not open a ruleset, got %d rulesets", len(sets))
	}
	if got := sets[0].Properties[0].Name; got != "-webkit-transition" {
		t.Errorf("want -webkit-transition, got %q", got)
	}
}

func TestContentBlockAttachesToInclusion(t *testing.T) {
	src := ".a\n" +
		"  color: red\n" +
		"  +breakpoint(md)\n" +
		"    top: 0\n" +
		"  left: 0\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := sets[0]
	names := []string{}
	for _, p := range a.Properties {
		if p.Kind == EntryDeclaration {
			names = append(names, p.Name)
		}
	}
	if len(names) != 2 || names[0] != "color" || names[1] != "left" {
		t.Errorf(".a declarations: want [color left], got %v", names)
	}
}

func TestBlockComments(t *testing.T) {
	src := "/*\n" +
		".ignored\n" +
		"  color: red\n" +
		"*/\n" +
		".kept\n" +
		"  /* inline */\n" +
		"  top: 0\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("expected 1 ruleset, got %d", len(sets))
	}
	if sets[0].Name != ".kept" {
		t.Errorf("want .kept, got %q", sets[0].Name)
	}
	if len(sets[0].Properties) != 1 {
		t.Errorf("expected 1 property, got %d", len(sets[0].Properties))
	}
}

func TestLineCommentsDoNotDedent(t *testing.T) {
	src := ".a\n" +
		"  color: red\n" +
		"// section\n" +
		"  top: 0\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets[0].Properties) != 2 {
		t.Errorf("expected 2 properties on .a, got %d", len(sets[0].Properties))
	}
}

func TestDisableEnableDirectives(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantProps int
	}{
		{
			name: "line comment directives",
			input: ".a\n" +
				"  // 9e-sass-lint-disable\n" +
				"  color: red\n" +
				"  // 9e-sass-lint-enable\n" +
				"  top: 0\n",
			wantProps: 1,
		},
		{
			name: "block comment directive",
			input: ".a\n" +
				"  /* 9E-SASS-LINT-DISABLE */\n" +
				"  color: red\n" +
				"  top: 0\n",
			wantProps: 0,
		},
		{
			name: "line comment directive without space",
			input: ".a\n" +
				"  //9e-sass-lint-disable\n" +
				"  color: red\n" +
				"  //9e-sass-lint-enable\n" +
				"  top: 0\n",
			wantProps: 1,
		},
		{
			name: "bare directive inside block comment",
			input: ".a\n" +
				"  /*\n" +
				"   9e-sass-lint-disable\n" +
				"  */\n" +
				"  color: red\n" +
				"  // 9e-sass-lint-enable\n" +
				"  top: 0\n" +
				"  left: 0\n",
			wantProps: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sets) != 1 {
				t.Fatalf("expected 1 ruleset, got %d", len(sets))
			}
			if got := len(sets[0].Properties); got != tt.wantProps {
				t.Errorf("want %d properties, got %d", tt.wantProps, got)
			}
		})
	}
}

func TestIndentationUnitFromFirstIndent(t *testing.T) {
	// Four-space indentation: dedenting eight columns closes two blocks.
	src := ".a\n" +
		"    .b\n" +
		"        color: red\n" +
		".c\n" +
		"    top: 0\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("expected 3 rulesets, got %d", len(sets))
	}
	if sets[2].Parent != nil {
		t.Errorf(".c should be top-level, got parent %q", sets[2].Parent.Name)
	}
	if sets[2].Name != ".c" {
		t.Errorf("want .c, got %q", sets[2].Name)
	}
}

func TestTabIndentation(t *testing.T) {
	src := ".a\n\t.b\n\t\tcolor: red\n\ttop: 0\n"

	sets, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("expected 2 rulesets, got %d", len(sets))
	}
	if len(sets[0].Properties) != 1 || sets[0].Properties[0].Name != "top" {
		t.Errorf(".a: want [top], got %d properties", len(sets[0].Properties))
	}
	if len(sets[1].Properties) != 1 || sets[1].Properties[0].Name != "color" {
		t.Errorf(".a .b: want [color], got %d properties", len(sets[1].Properties))
	}
}

func TestCRLFLineEndings(t *testing.T) {
	sets, err := Parse(".a\r\n  color: red\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 1 || len(sets[0].Properties) != 1 {
		t.Fatalf("expected 1 ruleset with 1 property")
	}
	if sets[0].Properties[0].Value != "red" {
		t.Errorf("value: want %q, got %q", "red", sets[0].Properties[0].Value)
	}
}

func TestParseErrorOutsideRuleset(t *testing.T) {
	src := "// header\n" +
		"\n" +
		"color: red\n" +
		".a\n" +
		"  top: 0\n"

	sets, err := Parse(src)
	if err == nil {
		t.Fatal("expected error for top-level declaration")
	}
	if sets != nil {
		t.Errorf("expected no partial result, got %d rulesets", len(sets))
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 3 {
		t.Errorf("line: want 3, got %d", perr.Line)
	}
	if perr.Raw != "color: red" {
		t.Errorf("raw: want %q, got %q", "color: red", perr.Raw)
	}
	if !errors.Is(err, ErrNoRuleSet) {
		t.Error("expected error to wrap ErrNoRuleSet")
	}
}

func TestMixinOutsideRulesetIsIgnored(t *testing.T) {
	sets, err := Parse("+reset\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rs := range sets {
		if len(rs.Properties) != 0 {
			t.Errorf("ruleset %q: expected no entries, got %d", rs.Name, len(rs.Properties))
		}
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{KindSelector.String(), "selector"},
		{KindFunction.String(), "function"},
		{KindPlaceholder.String(), "placeholder selector"},
		{EntryDeclaration.String(), "property"},
		{EntryMixin.String(), "mixin"},
		{EntryExtend.String(), "extend"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("want %q, got %q", tt.want, tt.got)
		}
	}
}
