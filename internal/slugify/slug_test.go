// internal/slugify/slug_test.go

package slugify

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Café Central", "caf-central"},
		{"Wine   Tours!", "wine-tours"},
		{"--Already--Kebab--", "already-kebab"},
		{"", "item"},
		{"!!!", "item"},
		{"MiXeD Case 42", "mixed-case-42"},
	}
	for _, c := range cases {
		if got := Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalPath(t *testing.T) {
	cases := []struct {
		lang, site, slug, want string
	}{
		{"en", "winery-co", "wine-tours", "/en/winery-co/wine-tours"},
		{"en", "", "wine-tours", "/en/wine-tours"}, // default site
		{"", "", "", "/"},
		{"en/", "/winery-co/", "wine-tours", "/en/winery-co/wine-tours"},
	}
	for _, c := range cases {
		if got := CanonicalPath(c.lang, c.site, c.slug); got != c.want {
			t.Errorf("CanonicalPath(%q, %q, %q) = %q, want %q",
				c.lang, c.site, c.slug, got, c.want)
		}
	}
}
