// internal/content/handler.go
//
// Public read path: canonical-URL decision, then content.
//
// Context
// -------
// Every public request carries (lang, siteKey, slug) in its path; the
// default site omits the site segment.  The handler runs one combined
// resolution and acts on the outcome:
//
//   • unresolved           → 404 (both failure kinds present identically),
//   • needs redirect       → 301 to the canonical path,
//   • canonical            → JSON body assembled from the site aggregate
//                            and the entity's translations.
//
// Interfaces—not concrete types—are accepted for the resolver, site
// cache, and translation source so tests can swap in fakes without a
// database, mirroring the minimal-contract pattern used elsewhere.
//
// Notes
// -----
// • 301 over 302: renames are permanent, and crawlers should re-index.
// • Oxford commas, two spaces after periods.
package content

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/atlas/internal/i18n"
	"github.com/yanizio/atlas/internal/identity"
	"github.com/yanizio/atlas/internal/metrics"
	"github.com/yanizio/atlas/internal/site"
	"github.com/yanizio/atlas/internal/slugify"
	"github.com/yanizio/atlas/internal/ua"
)

// Resolver is the slice of the identity engine the handler needs.
type Resolver interface {
	Resolve(ctx context.Context, lang, siteKey, slug string) (*identity.Resolution, error)
}

// SiteProvider yields the cached site aggregate for a resolved site id.
type SiteProvider interface {
	Get(ctx context.Context, id uint64) (*site.Site, error)
}

// TranslationSource yields all translations of one entity keyed by lang.
type TranslationSource interface {
	ByEntity(ctx context.Context, et identity.EntityType, id uint64) (map[string]Translation, error)
}

// Handler serves the public content routes.
type Handler struct {
	resolver  Resolver
	sites     SiteProvider
	texts     TranslationSource
	fallbacks []string
}

// NewHandler wires the handler; fallbacks is the configured language
// chain shared with the resolvers.
func NewHandler(r Resolver, s SiteProvider, t TranslationSource, fallbacks []string) *Handler {
	return &Handler{resolver: r, sites: s, texts: t, fallbacks: fallbacks}
}

// Routes mounts the two public URL forms.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(ua.Middleware)
	r.Get("/{lang}/{slug}", h.serveDefault)     // default site
	r.Get("/{lang}/{site}/{slug}", h.serveSite) // keyed site
	return r
}

func (h *Handler) serveDefault(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, chi.URLParam(r, "lang"), "", chi.URLParam(r, "slug"))
}

func (h *Handler) serveSite(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, chi.URLParam(r, "lang"), chi.URLParam(r, "site"), chi.URLParam(r, "slug"))
}

// response is the JSON body for a canonical hit.
type response struct {
	EntityType string `json:"entity_type"`
	EntityID   uint64 `json:"entity_id"`
	Site       string `json:"site"`
	Lang       string `json:"lang"` // language of the served text
	Title      string `json:"title"`
	Summary    string `json:"summary,omitempty"`
	Body       string `json:"body,omitempty"`
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, lang, siteKey, slug string) {
	ctx := r.Context()

	res, err := h.resolver.Resolve(ctx, lang, siteKey, slug)
	switch {
	case identity.IsNotFound(err):
		if err == identity.ErrSiteUnresolved {
			metrics.ResolveTotal.WithLabelValues("site_unresolved").Inc()
		} else {
			metrics.ResolveTotal.WithLabelValues("slug_unresolved").Inc()
		}
		notFound(w)
		return
	case err != nil:
		metrics.ResolveTotal.WithLabelValues("error").Inc()
		zap.L().Error("resolution failed", zap.Error(err), zap.String("path", r.URL.Path))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if res.NeedsRedirect {
		metrics.ResolveTotal.WithLabelValues("redirect").Inc()
		target := slugify.CanonicalPath(
			res.Canonical.Lang, res.Canonical.SiteKey, res.Canonical.Slug)
		zap.L().Debug("canonical redirect",
			zap.String("from", r.URL.Path), zap.String("to", target))
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}
	metrics.ResolveTotal.WithLabelValues("ok").Inc()

	agg, err := h.sites.Get(ctx, res.SiteID)
	if err != nil {
		zap.L().Error("site aggregate load failed",
			zap.Uint64("site_id", res.SiteID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	texts, err := h.texts.ByEntity(ctx, res.EntityType, res.EntityID)
	if err != nil {
		zap.L().Error("translation load failed",
			zap.String("entity_type", string(res.EntityType)),
			zap.Uint64("entity_id", res.EntityID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	available := make([]string, 0, len(texts))
	for l := range texts {
		available = append(available, l)
	}
	pick, ok := i18n.Resolve(res.Lang, h.fallbacks, available)
	if !ok {
		// Entity resolved but has no text in any language yet.
		notFound(w)
		return
	}
	text := texts[pick]

	zap.L().Debug("content served",
		zap.String("path", r.URL.Path),
		zap.String("lang", pick),
		zap.Bool("bot", ua.FromContext(ctx).IsBot))

	writeJSON(w, http.StatusOK, response{
		EntityType: string(res.EntityType),
		EntityID:   res.EntityID,
		Site:       agg.Meta.Name,
		Lang:       pick,
		Title:      text.Title,
		Summary:    text.Summary,
		Body:       text.Body,
	})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
