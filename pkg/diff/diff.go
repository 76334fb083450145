// Package diff renders line-based unified diffs between two texts.
package diff

import (
	"fmt"
	"io"
	"strings"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

const noNewline = "\\ No newline at end of file\n"

// Unified returns a unified diff turning oldText into newText, labelled with
// name. Identical inputs yield an empty string.
func Unified(name, oldText, newText string) string {
	var b strings.Builder
	// strings.Builder never fails.
	_, _ = Write(&b, name, oldText, newText)
	return b.String()
}

// Write writes the unified diff of oldText and newText to w and reports
// whether the texts differ.
func Write(w io.Writer, name, oldText, newText string) (bool, error) {
	if oldText == newText {
		return false, nil
	}

	a, b := splitLines(oldText), splitLines(newText)
	groups := group(script(a, b), Context)
	if len(groups) == 0 {
		return false, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)
	for _, ops := range groups {
		writeHunk(&sb, ops, a, b)
	}

	_, err := io.WriteString(w, sb.String())
	return true, err
}

// splitLines splits s after each newline. An empty string has no lines; a
// final line without a newline is kept as is.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// op is one line of an edit script. ai and bi are the positions in the old
// and new text at which the op applies; for a kept line both name it.
type op struct {
	kind   byte // ' ', '-' or '+'.
	ai, bi int
}

// script computes a minimal edit script via the longest common subsequence
// of the lines between the common prefix and suffix.
func script(a, b []string) []op {
	pre := 0
	for pre < len(a) && pre < len(b) && a[pre] == b[pre] {
		pre++
	}
	suf := 0
	for suf < len(a)-pre && suf < len(b)-pre && a[len(a)-1-suf] == b[len(b)-1-suf] {
		suf++
	}

	ops := make([]op, 0, len(a)+len(b))
	for i := 0; i < pre; i++ {
		ops = append(ops, op{kind: ' ', ai: i, bi: i})
	}

	ma, mb := a[pre:len(a)-suf], b[pre:len(b)-suf]
	n, m := len(ma), len(mb)

	// lcs[i][j] is the LCS length of ma[i:] and mb[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if ma[i] == mb[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && ma[i] == mb[j]:
			ops = append(ops, op{kind: ' ', ai: pre + i, bi: pre + j})
			i++
			j++
		case j == m || i < n && lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, op{kind: '-', ai: pre + i, bi: pre + j})
			i++
		default:
			ops = append(ops, op{kind: '+', ai: pre + i, bi: pre + j})
			j++
		}
	}

	for k := 0; k < suf; k++ {
		ops = append(ops, op{kind: ' ', ai: len(a) - suf + k, bi: len(b) - suf + k})
	}
	return ops
}

// group splits the script into hunks of changes, each padded with up to ctx
// kept lines. Changes separated by at most 2*ctx kept lines share a hunk.
func group(ops []op, ctx int) [][]op {
	var groups [][]op
	start, end := -1, -1 // Current hunk span over ops, end exclusive.

	for i, o := range ops {
		if o.kind == ' ' {
			continue
		}
		lo := max(i-ctx, 0)
		if start >= 0 && lo > end {
			groups = append(groups, ops[start:end])
			start = -1
		}
		if start < 0 {
			start = lo
		}
		end = min(i+ctx+1, len(ops))
	}
	if start >= 0 {
		groups = append(groups, ops[start:end])
	}
	return groups
}

func writeHunk(sb *strings.Builder, ops []op, a, b []string) {
	oldCount, newCount := 0, 0
	for _, o := range ops {
		if o.kind != '+' {
			oldCount++
		}
		if o.kind != '-' {
			newCount++
		}
	}

	fmt.Fprintf(sb, "@@ -%s +%s @@\n",
		span(ops[0].ai, oldCount), span(ops[0].bi, newCount))

	for _, o := range ops {
		// An insertion's ai may point one past the end of a.
		var line string
		if o.kind == '+' {
			line = b[o.bi]
		} else {
			line = a[o.ai]
		}
		sb.WriteByte(o.kind)
		sb.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			sb.WriteString("\n" + noNewline)
		}
	}
}

// span formats a hunk range. An empty range points at the line before it.
func span(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	if count == 1 {
		return fmt.Sprintf("%d", start+1)
	}
	return fmt.Sprintf("%d,%d", start+1, count)
}
