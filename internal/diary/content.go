package diary

import (
	"strings"
	"time"
)

// The stored content field concatenates title and body with a single newline.
// Display logic parses it back apart, so both directions live here.

// builds the canonical on-disk content string
func JoinContent(title, body string) string {
	return title + "\n" + body
}

// recovers title and body from a stored content string. Title is the first
// line and body the remainder; legacy rows without a newline are split on the
// first ']' bracket instead, keeping the bracket with the title. Content with
// neither separator is all title, empty body.
func SplitContent(content string) (title, body string) {
	if idx := strings.Index(content, "\n"); idx >= 0 {
		return content[:idx], content[idx+1:]
	}

	if idx := strings.Index(content, "]"); idx >= 0 {
		return content[:idx+1], content[idx+1:]
	}

	return content, ""
}

// returns the inclusive bounds of the UTC day containing at, i.e.
// [00:00:00.000Z, 23:59:59.999Z]
func UTCDayRange(at time.Time) (start, end time.Time) {
	utc := at.UTC()
	start = time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	end = start.Add(24*time.Hour - time.Millisecond)

	return start, end
}
