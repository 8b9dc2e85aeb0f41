package rendering

import "strings"

// latexEscaper replaces the characters LaTeX treats specially: \ { } $ & % # ^ _ ~
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexEscaper.Replace(text)
}

// escapeAll escapes every non-empty string, dropping empty ones
func escapeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, EscapeLaTeX(item))
		}
	}
	return out
}
