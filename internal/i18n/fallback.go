// internal/i18n/fallback.go
//
// Language fallback, implemented once.
//
// Context
// -------
// The same rule appears in site-key resolution and in every translated-text
// lookup: try the requested language, then each configured fallback in
// order, then whatever is available.  Centralising it here keeps the chain
// injectable (it comes from `languages.fallbacks` in config) and stops the
// rule being re-implemented per entity type.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package i18n

import "sort"

// Chain returns the ordered, de-duplicated candidate list for a lookup:
// the requested language first, then each fallback that is not already
// present.  The requested language may be empty, in which case the chain
// is just the fallbacks.
func Chain(requested string, fallbacks []string) []string {
	out := make([]string, 0, len(fallbacks)+1)
	seen := make(map[string]struct{}, len(fallbacks)+1)

	add := func(l string) {
		if l == "" {
			return
		}
		if _, dup := seen[l]; dup {
			return
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}

	add(requested)
	for _, l := range fallbacks {
		add(l)
	}
	return out
}

// Resolve picks the language to serve from `available`: the first chain
// entry that is available wins; when none matches, the lexically smallest
// available language is returned so the choice stays deterministic.  ok is
// false only when `available` is empty.
func Resolve(requested string, fallbacks []string, available []string) (lang string, ok bool) {
	if len(available) == 0 {
		return "", false
	}

	set := make(map[string]struct{}, len(available))
	for _, l := range available {
		set[l] = struct{}{}
	}

	for _, l := range Chain(requested, fallbacks) {
		if _, hit := set[l]; hit {
			return l, true
		}
	}

	rest := append([]string(nil), available...)
	sort.Strings(rest)
	return rest[0], true
}
