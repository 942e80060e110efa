// Package slug derives URL-safe identifiers for generated posts.
package slug

import (
	"strconv"
	"strings"
	"time"
)

const (
	maxBaseLen  = 80
	maxDatedLen = 96
)

// Slugify lowercases text, collapses every run of characters outside
// [a-z0-9] into a single hyphen, trims leading/trailing hyphens, and
// caps the result at 80 characters. Already-normalized input is a
// fixed point.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastHyphen := false
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	s := strings.Trim(b.String(), "-")
	if len(s) > maxBaseLen {
		// Trim again so a cut mid-word never leaves a trailing hyphen.
		s = strings.TrimRight(s[:maxBaseLen], "-")
	}
	return s
}

// Dated appends the millisecond timestamp to a base slug and caps the
// combined string at 96 characters. Uniqueness rests on the timestamp
// granularity; two runs within the same millisecond can collide.
func Dated(base string, now time.Time) string {
	s := base + "-" + strconv.FormatInt(now.UnixMilli(), 10)
	if len(s) > maxDatedLen {
		s = s[:maxDatedLen]
	}
	return s
}
