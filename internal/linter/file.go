// Package linter checks the property order of parsed Sass rulesets.
package linter

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/sasslint/internal/parser"
)

// File is one lint unit. Content is rewritten in place by the fixer.
type File struct {
	Name    string
	Content string
}

// Lines splits the content into lines without their terminators.
func (f *File) Lines() []string {
	return strings.Split(f.Content, "\n")
}

// Violation is a property that appears after a property of higher rank in
// the same ruleset.
type Violation struct {
	File string
	// Pos is the position of the misplaced property.
	Pos parser.Position
	// TargetLine is the line of the first property in the ruleset that the
	// misplaced property should precede.
	TargetLine int
	Message    string
}

// String formats v as "file:line:column: message".
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", v.File, v.Pos.Line, v.Pos.Column, v.Message)
}
