package utils

import "strings"

// MaskPrefix leads every value produced by MaskSecret.
const MaskPrefix = "********"

// MaskSecret keeps the last four characters of a credential for display.
// Short values are fully masked.
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return MaskPrefix
	}
	return MaskPrefix + value[len(value)-4:]
}

// IsMasked reports whether value has the shape MaskSecret returns, as when a
// client echoes a displayed credential back unchanged.
func IsMasked(value string) bool {
	return strings.HasPrefix(value, MaskPrefix)
}

// TruncateForLog shortens s to maxLen bytes, marking the cut with "...".
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
