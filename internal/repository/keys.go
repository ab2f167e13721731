package repository

import (
	"fmt"
	"strings"
	"time"
)

// DeriveDocumentKey builds the document key of an occurrence or MES event:
// line + equipment-without-spaces + date + time, concatenated with no
// delimiter. The scheme is shared with the data already in the store, so it
// must stay byte-exact. It is not injective: distinct inputs can collide,
// collisions are not detected, and last write wins. A known limitation kept
// for compatibility.
func DeriveDocumentKey(line, equipment, date, timeOfDay string) string {
	return line + strings.ReplaceAll(equipment, " ", "") + date + timeOfDay
}

// DerivePendencyKey builds a pendency key. Unlike occurrence keys it is
// dash-separated and timestamp-based, which makes it collision-free in
// practice.
func DerivePendencyKey(line, equipment string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", line, strings.ReplaceAll(equipment, " ", ""), now.Unix())
}
