package position

import (
	"strings"
)

// CaretLine returns the padding that places a caret under the given
// 1-based column of line. Tabs in the line are copied so the caret stays
// aligned however the terminal expands them.
func CaretLine(line string, column int) string {
	var result strings.Builder

	runes := []rune(line)
	for i := 1; i < column; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			result.WriteString("\t")
		} else {
			result.WriteString(" ")
		}
	}
	result.WriteString("^")

	return result.String()
}
