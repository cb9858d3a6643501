package client

import "strings"

// SplitName breaks a display name into the first/last pair the profile
// API stores. Everything after the first word lands in the last name,
// so multi-part surnames survive a save round trip.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// CombineName is the inverse of SplitName.
func CombineName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
