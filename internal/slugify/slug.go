// internal/slugify/slug.go
//
// Slug and canonical-path helpers.
//
// • Make(title) ─ converts arbitrary text into a URL-safe slug restricted
//   to ASCII a-z, 0-9 and “-”.
// • CanonicalPath(lang, siteKey, slug) ─ assembles the public path for a
//   resolved identity, used when issuing redirects to the canonical URL.
//
// Rules (Make)
// ------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one “-”.  That strips
//    spaces, punctuation, emoji, and non-ASCII.
// 3. Collapse consecutive “-” to a single “-”.
// 4. Trim leading / trailing “-”.
// 5. If the result is empty, return "item".
//
// Notes
// -----
// • No Unicode transliteration; non-ASCII titles should be localized
//   before slugging.
// • Slugs are max 100 runes; callers may truncate earlier if they prefer.

package slugify

import (
	"strings"
)

// Make converts title → lower-kebab ASCII.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			// any non-ASCII or punctuation becomes a single dash
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "item"
	}
	if len(slug) > 100 {
		slug = slug[:100]
		// trim trailing dash if the cut landed on one
		slug = strings.TrimRightFunc(slug, func(r rune) bool { return r == '-' })
	}
	return slug
}

// CanonicalPath joins lang, site key, and slug into the public path with
// exactly one leading slash and no duplicate separators.  An empty site
// key (default site) yields the two-segment form.
func CanonicalPath(lang, siteKey, slug string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{lang, siteKey, slug} {
		p = strings.Trim(p, "/")
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}
