package document

import "strings"

// wrapText breaks text into lines of at most width characters, splitting on
// whitespace and hard-breaking words longer than the budget. The width is a
// fixed character count tuned to the physical column, matching the legacy
// layout rather than font metrics. Widths are measured in runes so that
// multi-byte text wraps at the same points as ASCII.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	currentLen := 0
	for _, word := range words {
		runes := []rune(word)
		for len(runes) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
				currentLen = 0
			}
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		if len(runes) == 0 {
			continue
		}
		word = string(runes)
		switch {
		case current == "":
			current = word
			currentLen = len(runes)
		case currentLen+1+len(runes) <= width:
			current += " " + word
			currentLen += 1 + len(runes)
		default:
			lines = append(lines, current)
			current = word
			currentLen = len(runes)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
