// Package normalize cleans extracted text so it can be embedded in Markdown.
//
// Text is used for free-flowing unit bodies (page text, slide text, notes).
// TableCell is used for values that end up inside a single Markdown table row.
package normalize

import "strings"

// maxBlankRun is the longest run of consecutive blank lines Text keeps.
const maxBlankRun = 2

// lineBreaks splits on every line-ending convention, CRLF first.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// cellReplacer escapes the characters that would break a table row.
var cellReplacer = strings.NewReplacer(
	"|", `\|`,
	"\r\n", "<br>",
	"\r", "<br>",
	"\n", "<br>",
)

// Text normalizes free text line by line. Every line is trimmed and its
// interior whitespace runs are collapsed to a single space. Line positions are
// kept, except that runs of more than two blank lines are cut down to two.
//
// Text is idempotent: Text(Text(s)) == Text(s).
func Text(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(lineBreaks.Replace(raw), "\n")
	out := make([]string, 0, len(lines))
	blanks := 0

	for _, line := range lines {
		line = collapse(line)
		if line == "" {
			blanks++
			if blanks > maxBlankRun {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// TableCell makes a value safe for a Markdown table cell: surrounding
// whitespace is trimmed, pipes are escaped and line breaks become <br> so a
// multi-line value stays on one row.
func TableCell(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return cellReplacer.Replace(raw)
}

// collapse trims a line and squeezes interior whitespace runs to one space.
func collapse(line string) string {
	return strings.Join(strings.Fields(line), " ")
}
