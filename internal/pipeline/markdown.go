package pipeline

import (
	"context"
	"fmt"
	"regexp"
)

// documentShell wraps the converted fragment in a standalone HTML5 document.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; margin: 40px; }
h1, h2, h3 { color: #333; }
code { background-color: #f4f4f4; padding: 2px 4px; border-radius: 3px; }
</style>
</head>
<body>
%s
</body>
</html>`

// substitution is one global rewrite pass.
type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// inLine matches any character except a line terminator. A carriage
// return ends a line too, so CRLF input keeps its "\r" outside the tags.
const inLine = `[^\r\n\x{2028}\x{2029}]`

// Passes run in slice order. Longer heading markers go first so "###" is
// never read as "#" followed by text, and bold runs before italic so "**"
// pairs are consumed before single asterisks are matched. Heading captures
// are greedy up to the line terminator, so they need no "$" anchor.
var passes = []substitution{
	{regexp.MustCompile(`(?m)^### (` + inLine + `*)`), "<h3>${1}</h3>"},
	{regexp.MustCompile(`(?m)^## (` + inLine + `*)`), "<h2>${1}</h2>"},
	{regexp.MustCompile(`(?m)^# (` + inLine + `*)`), "<h1>${1}</h1>"},
	{regexp.MustCompile(`\*\*(` + inLine + `*?)\*\*`), "<strong>${1}</strong>"},
	{regexp.MustCompile(`\*(` + inLine + `*?)\*`), "<em>${1}</em>"},
	{regexp.MustCompile("`(" + inLine + "*?)`"), "<code>${1}</code>"},
	{regexp.MustCompile(`\n`), "<br>"},
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// MarkdownLite converts the supported Markdown subset to HTML.
type MarkdownLite struct{}

// ToHTML converts content to a full HTML document.
// The conversion itself cannot fail; only context cancellation is reported.
func (MarkdownLite) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return ToHTML(content), nil
}

// ToHTML converts markdown to a full HTML document.
func ToHTML(markdown string) string {
	return fmt.Sprintf(documentShell, ConvertFragment(markdown))
}

// ConvertFragment applies every substitution pass and returns the bare
// HTML fragment, without the document shell.
func ConvertFragment(markdown string) string {
	out := markdown
	for _, p := range passes {
		out = p.pattern.ReplaceAllString(out, p.replacement)
	}
	return out
}
