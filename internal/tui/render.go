package tui

import (
	"strings"

	"github.com/torusk/Dvorak-Typing/internal/engine"
)

// renderLine styles each character of the current line from its mark.
// Wrong spaces display as a dot so the miss stays visible.
func renderLine(line string, marks []engine.Mark, cursor int) string {
	runes := []rune(line)
	var b strings.Builder
	for i, r := range runes {
		displayed := r
		style := pendingStyle
		if i < len(marks) {
			switch marks[i] {
			case engine.MarkCorrect:
				style = correctStyle
			case engine.MarkWrong:
				style = incorrectStyle
				if r == ' ' {
					displayed = '·'
				}
			}
		}
		if i == cursor {
			style = style.Underline(true)
		}
		b.WriteString(style.Render(string(displayed)))
	}
	return b.String()
}
