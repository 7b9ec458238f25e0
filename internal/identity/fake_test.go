// internal/identity/fake_test.go
//
// In-memory Store used by the resolver tests.  The SQL layer is covered
// separately in store_test.go with sqlmock; these fakes let the resolution
// rules be exercised without a database.

package identity

import (
	"context"
	"fmt"
)

type fakeStore struct {
	aliases   map[string]*AliasRecord // "lang|alias"
	defaults  map[string]*AliasRecord // lang
	slugs     map[string]*SlugRecord  // "siteID|lang|slug"
	primaries map[string]*SlugRecord  // "siteID|lang|entityType|entityID"

	err error // returned by every method when set
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		aliases:   map[string]*AliasRecord{},
		defaults:  map[string]*AliasRecord{},
		slugs:     map[string]*SlugRecord{},
		primaries: map[string]*SlugRecord{},
	}
}

func (f *fakeStore) addAlias(a *AliasRecord) *AliasRecord {
	f.aliases[a.Lang+"|"+a.Alias] = a
	return a
}

func (f *fakeStore) addDefault(lang string, a *AliasRecord) {
	f.defaults[lang] = a
}

func (f *fakeStore) addSlug(s *SlugRecord) *SlugRecord {
	f.slugs[slugKey(s.SiteID, s.Lang, s.Slug)] = s
	if s.IsPrimary && s.IsActive && s.RedirectTo == 0 {
		f.primaries[entityKey(s.SiteID, s.Lang, s.EntityType, s.EntityID)] = s
	}
	return s
}

func slugKey(siteID uint64, lang, slug string) string {
	return fmt.Sprintf("%d|%s|%s", siteID, lang, slug)
}

func entityKey(siteID uint64, lang string, et EntityType, id uint64) string {
	return fmt.Sprintf("%d|%s|%s|%d", siteID, lang, et, id)
}

func (f *fakeStore) SiteAlias(_ context.Context, lang, key string) (*AliasRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.aliases[lang+"|"+key], nil
}

func (f *fakeStore) DefaultSiteAlias(_ context.Context, lang string) (*AliasRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.defaults[lang], nil
}

func (f *fakeStore) Slug(_ context.Context, siteID uint64, lang, slug string) (*SlugRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slugs[slugKey(siteID, lang, slug)], nil
}

func (f *fakeStore) PrimarySlug(_ context.Context, siteID uint64, lang string,
	et EntityType, id uint64) (*SlugRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.primaries[entityKey(siteID, lang, et, id)], nil
}
