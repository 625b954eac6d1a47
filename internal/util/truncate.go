package util

import (
	"strings"
)

// TruncateBytes trims a string to maxBytes if needed.
func TruncateBytes(input string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(input) <= maxBytes {
		return input, false
	}
	return input[:maxBytes], true
}

// Preview returns at most maxLines lines and maxBytes bytes of text.
// The second return value reports whether anything was cut.
func Preview(text string, maxLines int, maxBytes int) (string, bool) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return "", false
	}
	lines := strings.Split(text, "\n")
	var out []string
	used := 0
	truncated := false
	for _, line := range lines {
		if maxLines > 0 && len(out) >= maxLines {
			truncated = true
			break
		}
		sep := 0
		if len(out) > 0 {
			sep = 1
		}
		if maxBytes > 0 && used+sep+len(line) > maxBytes {
			if len(out) == 0 {
				cut, _ := TruncateBytes(line, maxBytes)
				out = append(out, cut)
			}
			truncated = true
			break
		}
		used += sep + len(line)
		out = append(out, line)
	}
	return strings.Join(out, "\n"), truncated
}

// CountLines counts newline-terminated lines, treating a trailing partial line as one.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
