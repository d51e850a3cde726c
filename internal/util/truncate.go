package util

import "fmt"

// MaxErrorBodyLen bounds how much of a vendor response body ends up in an
// error message or report.
const MaxErrorBodyLen = 512

// Truncate shortens s to maxLen bytes, noting the original size.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [%d bytes total]", len(s))
}

// TruncateBody applies MaxErrorBodyLen to a response body.
func TruncateBody(body string) string {
	return Truncate(body, MaxErrorBodyLen)
}
