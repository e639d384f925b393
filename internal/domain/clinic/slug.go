package clinic

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func NormalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidSlug aceita apenas minúsculas, dígitos e hífens simples ("clinica-sorriso").
func IsValidSlug(slug string) bool {
	return len(slug) >= 3 && len(slug) <= 100 && slugPattern.MatchString(slug)
}
