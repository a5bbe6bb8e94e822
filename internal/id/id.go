package id

import (
	"fmt"
	"strconv"
	"time"
)

// FromTime returns the id for a record created at t: Unix milliseconds as
// decimal text, e.g. "1735898400000".
func FromTime(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Next returns the first timestamp id at or after t that taken reports as free.
// Records created within the same millisecond get consecutive ids.
func Next(t time.Time, taken func(string) bool) string {
	ms := t.UnixMilli()
	for {
		candidate := strconv.FormatInt(ms, 10)
		if taken == nil || !taken(candidate) {
			return candidate
		}
		ms++
	}
}

// Parse recovers the creation time encoded in an id.
func Parse(id string) (time.Time, error) {
	if id == "" {
		return time.Time{}, fmt.Errorf("invalid id: empty")
	}
	ms, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid id %q: %w", id, err)
	}
	if ms < 0 {
		return time.Time{}, fmt.Errorf("invalid id %q: negative timestamp", id)
	}
	return time.UnixMilli(ms).UTC(), nil
}
