// Package codefilter post-processes phenotypes produced from grammars that
// carry embedded code fragments. Such grammars emit flat terminal text with
// `{:` and `:}` block markers; Filter rewrites the markers into newline plus
// indentation so the phenotype becomes correctly indented source text.
package codefilter

import "strings"

const indentUnit = "  "

// Filter converts block markers in raw phenotype text into indentation.
// Each `{:` opens a block one level deeper and each `:}` closes it; both
// markers are replaced by a newline at the resulting indent level. Blank
// lines are dropped from the output.
func Filter(text string) string {
	var b strings.Builder
	level := 0
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "{:"):
			level++
			b.WriteString("\n" + strings.Repeat(indentUnit, level))
			i += 2
		case strings.HasPrefix(text[i:], ":}"):
			if level > 0 {
				level--
			}
			b.WriteString("\n" + strings.Repeat(indentUnit, level))
			i += 2
		default:
			b.WriteByte(text[i])
			i++
		}
	}

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimRight(line, " \t"))
		}
	}
	return strings.Join(out, "\n")
}
