package recon

import (
	"regexp"
	"strings"
)

// trailingDigits captures the last contiguous run of decimal digits anchored
// at the end of the string, tolerating trailing whitespace.
var trailingDigits = regexp.MustCompile(`(\d+)\s*$`)

// NormalizeID extracts the canonical numeric ATM identifier from a free-text
// identifier such as "ATM0042", "Terminal 42" or "042". The result is the
// trailing digit run with leading zeros stripped; an all-zero run yields "0".
// Text with no trailing digits yields "", which by construction matches no
// ticket.
func NormalizeID(raw string) string {
	m := trailingDigits.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ""
	}
	id := strings.TrimLeft(m[1], "0")
	if id == "" {
		return "0"
	}
	return id
}
