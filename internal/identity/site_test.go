// internal/identity/site_test.go
//
// Unit-tests for site-key resolution: canonical hit, one redirect hop,
// dangling redirect, anomaly fallback, language fallback, default site,
// and the unresolved error.

package identity

import (
	"context"
	"errors"
	"testing"
)

func TestSiteResolve_CanonicalAsIs(t *testing.T) {
	st := newFakeStore()
	st.addAlias(&AliasRecord{
		ID: 1, SiteID: 10, Lang: "en", Alias: "winery-co",
		IsActive: true, IsCanonical: true,
	})

	r := NewSiteResolver(st, []string{"en"})
	got, err := r.Resolve(context.Background(), "en", "winery-co")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.SiteID != 10 || got.SiteKey != "winery-co" || got.Redirected {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSiteResolve_RedirectHop(t *testing.T) {
	st := newFakeStore()
	target := &AliasRecord{
		ID: 2, SiteID: 10, Lang: "en", Alias: "winery-co",
		IsActive: true, IsCanonical: true,
	}
	st.addAlias(target)
	st.addAlias(&AliasRecord{
		ID: 1, SiteID: 10, Lang: "en", Alias: "old-winery",
		IsActive: true, RedirectTo: "winery-co", Target: target,
	})

	r := NewSiteResolver(st, []string{"en"})
	got, err := r.Resolve(context.Background(), "en", "old-winery")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.Redirected || got.SiteKey != "winery-co" || got.SiteID != 10 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSiteResolve_DanglingRedirectKeepsCallerKey(t *testing.T) {
	// Redirect pointer to an inactive alias is treated as no redirect.
	st := newFakeStore()
	st.addAlias(&AliasRecord{
		ID: 1, SiteID: 10, Lang: "en", Alias: "old-winery",
		IsActive: true, RedirectTo: "gone",
		Target: &AliasRecord{ID: 3, SiteID: 10, Lang: "en", Alias: "gone", IsActive: false},
	})

	r := NewSiteResolver(st, []string{"en"})
	got, err := r.Resolve(context.Background(), "en", "old-winery")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Redirected || got.SiteKey != "old-winery" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSiteResolve_AnomalyFallback(t *testing.T) {
	// Non-canonical alias with no redirect pointer: availability wins, the
	// caller's key is reported as canonical.
	st := newFakeStore()
	st.addAlias(&AliasRecord{
		ID: 1, SiteID: 10, Lang: "en", Alias: "orphan-key", IsActive: true,
	})

	r := NewSiteResolver(st, []string{"en"})
	got, err := r.Resolve(context.Background(), "en", "orphan-key")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Redirected || got.SiteKey != "orphan-key" || got.SiteID != 10 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSiteResolve_LanguageFallback(t *testing.T) {
	// No Italian alias exists; the configured chain finds the English one,
	// and the resolved language is the one that matched.
	st := newFakeStore()
	st.addAlias(&AliasRecord{
		ID: 1, SiteID: 10, Lang: "en", Alias: "winery-co",
		IsActive: true, IsCanonical: true,
	})

	r := NewSiteResolver(st, []string{"de", "en"})
	got, err := r.Resolve(context.Background(), "it", "winery-co")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Lang != "en" || got.SiteID != 10 {
		t.Fatalf("unexpected result: %+v", got)
	}
	// A fallback-chain match is a serving decision, not a redirect signal.
	if got.Redirected {
		t.Fatalf("fallback match flagged for redirect: %+v", got)
	}
}

func TestSiteResolve_EmptyKeyDefaultSite(t *testing.T) {
	st := newFakeStore()
	st.addDefault("en", &AliasRecord{
		ID: 1, SiteID: 7, Lang: "en", Alias: "main",
		IsActive: true, IsCanonical: true,
	})

	r := NewSiteResolver(st, []string{"en"})
	got, err := r.Resolve(context.Background(), "en", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.SiteID != 7 || got.SiteKey != "main" || got.Redirected {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSiteResolve_Unresolved(t *testing.T) {
	st := newFakeStore()
	// Inactive alias must present identically to a missing one.
	st.addAlias(&AliasRecord{ID: 1, SiteID: 10, Lang: "en", Alias: "dark", IsActive: false})

	r := NewSiteResolver(st, []string{"en"})
	for _, key := range []string{"does-not-exist", "dark"} {
		if _, err := r.Resolve(context.Background(), "en", key); !errors.Is(err, ErrSiteUnresolved) {
			t.Fatalf("Resolve(%q) err = %v, want ErrSiteUnresolved", key, err)
		}
	}
}

func TestSiteResolve_StoreErrorPropagates(t *testing.T) {
	st := newFakeStore()
	st.err = errors.New("connection reset")

	r := NewSiteResolver(st, []string{"en"})
	if _, err := r.Resolve(context.Background(), "en", "winery-co"); err == nil || IsNotFound(err) {
		t.Fatalf("err = %v, want store error", err)
	}
}
