package utils

import "strings"

// Slugify turns a display name into a URL slug: lowercase, quotes stripped,
// runs of non-alphanumerics collapsed to a single dash, leading/trailing
// dashes trimmed. Slugs are not checked for uniqueness anywhere.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "\"", "")

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
