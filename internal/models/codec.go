package models

import (
	"strconv"
	"strings"
)

// NotInformed is the sentinel written in place of empty submitted fields.
// It is queried against by the dashboard, so the exact spelling matters.
const NotInformed = "Não informado"

// EncodeTagList renders a tag sequence in the list-literal form the legacy
// store uses, e.g. ["a", "b"] -> "['a', 'b']". An empty or nil slice
// becomes "[]", which normalization later maps to the sentinel.
func EncodeTagList(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, t := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(t)
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

// DecodeTagList parses the stored list literal back into tags. Mirrors the
// legacy read path: strip brackets and quotes, split on comma. The sentinel
// decodes to no tags.
func DecodeTagList(s string) []string {
	if s == "" || s == "[]" || s == NotInformed {
		return nil
	}
	s = strings.NewReplacer("[", "", "]", "", "'", "").Replace(s)
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func itoa(v int) string { return strconv.Itoa(v) }

// atoi tolerates the sentinel and junk left by hand-edited documents.
func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
