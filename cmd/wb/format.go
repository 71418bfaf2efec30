package main

import "time"

// formatTime renders a timestamp for table output.
func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// orDash returns the pointed-to string, or "-" when it is nil or empty.
func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
