package utils

import "strings"

// JoinURL appends a slash-separated relative path to base.
// Exactly one "/" separates the two parts.
func JoinURL(base, rel string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rel, "/")
}
