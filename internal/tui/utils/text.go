package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// WrapText wraps text at word boundaries to fit within maxWidth.
// Paragraph breaks (blank lines) are kept; words wider than maxWidth are
// hard-broken.
func WrapText(text string, maxWidth int) []string {
	if maxWidth < 1 {
		maxWidth = 1
	}

	var lines []string
	for i, para := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, wrapParagraph(para, maxWidth)...)
	}
	return lines
}

func wrapParagraph(text string, maxWidth int) []string {
	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	flush := func() {
		lines = append(lines, currentLine.String())
		currentLine.Reset()
		currentWidth = 0
	}

	for _, word := range strings.Fields(text) {
		for runewidth.StringWidth(word) > maxWidth {
			if currentWidth > 0 {
				flush()
			}
			head := runewidth.Truncate(word, maxWidth, "")
			if head == "" {
				// A single rune wider than the line
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}

		wordWidth := runewidth.StringWidth(word)
		switch {
		case currentWidth == 0:
			currentLine.WriteString(word)
			currentWidth = wordWidth
		case currentWidth+1+wordWidth <= maxWidth:
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
			currentWidth += 1 + wordWidth
		default:
			flush()
			currentLine.WriteString(word)
			currentWidth = wordWidth
		}
	}

	if currentLine.Len() > 0 {
		flush()
	}

	return lines
}

// TruncateWithWidth truncates text to fit within maxWidth, accounting for
// Unicode character widths. Adds "…" if the text is truncated.
func TruncateWithWidth(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxWidth, "…")
}

// FitCenter truncates text to width and pads it with spaces on both sides
// so the result is exactly width cells wide
func FitCenter(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = TruncateWithWidth(text, width)
	gap := width - runewidth.StringWidth(text)
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}
