package utils

import "strings"

// SplitLines splits text on CR/LF line breaks, trims each line and drops
// empty ones. Both the address textarea content and uploaded files go
// through this.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// DedupeStrings removes duplicates preserving first-seen order.
func DedupeStrings(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
