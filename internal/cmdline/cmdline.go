// Package cmdline splits user-configured command strings.
package cmdline

// Split parses a command string into executable parts, respecting single
// and double quotes. Unterminated quotes run to the end of the string.
func Split(command string) []string {
	var parts []string
	var current []rune
	var inQuotes bool
	var quoteChar rune
	// started tracks "" so an explicit empty argument survives
	started := false

	for _, char := range command {
		switch {
		case (char == '\'' || char == '"') && !inQuotes:
			inQuotes = true
			quoteChar = char
			started = true
		case inQuotes && char == quoteChar:
			inQuotes = false
		case (char == ' ' || char == '\t') && !inQuotes:
			if started {
				parts = append(parts, string(current))
				current = current[:0]
				started = false
			}
		default:
			current = append(current, char)
			started = true
		}
	}

	if started {
		parts = append(parts, string(current))
	}

	return parts
}
