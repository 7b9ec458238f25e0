// internal/site/cache.go
//
// Lazy site-aggregate cache.
//
// Context
// -------
// The public read path resolves a site id on every request; the site's row
// and config map change rarely.  The cache loads both on first hit
// (singleflight collapses concurrent misses into one query pair), stores
// the aggregate in a sync.Map, and evicts on idle TTL or LRU pressure.
// Resolution results are never cached here — only the site aggregate —
// so identity lookups always see current store contents.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package site

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/atlas/internal/metrics"
)

// Static defaults.  Override via the Cache constructor if desired.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 100
	EvictInterval = 5 * time.Minute
)

// ErrNotFound is returned when a site id has no active row.
var ErrNotFound = errors.New("site not found")

// Site aggregates what the read path needs per tenant: the `site` row and
// the key-value config map.  Immutable after load.
type Site struct {
	Meta   Record
	Config map[string]string
}

type entry struct {
	site     *Site
	lastSeen int64 // UnixNano
}

// Cache lazily loads site aggregates, stores them in a sync.Map, and
// evicts them on idle TTL or LRU pressure.
type Cache struct {
	db          *sqlx.DB
	sfg         singleflight.Group
	m           sync.Map
	evictTicker *time.Ticker
	idleTTL     time.Duration
	maxEntries  int
}

// New constructs a Cache and starts the background evictor.
func New(db *sqlx.DB, idleTTL time.Duration, maxEntries int) *Cache {
	c := &Cache{
		db:         db,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// Get returns the Site for id, loading it on demand.
func (c *Cache) Get(ctx context.Context, id uint64) (*Site, error) {
	if v, ok := c.m.Load(id); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.site, nil
	}

	v, err, _ := c.sfg.Do(strconv.FormatUint(id, 10), func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(id); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.site, nil
		}
		s, err := load(ctx, c.db, id)
		if err != nil {
			metrics.SiteLoadErrorsTotal.Inc()
			return nil, err
		}
		ent := &entry{
			site:     s,
			lastSeen: time.Now().UnixNano(),
		}
		c.m.Store(id, ent)
		metrics.SiteLoadTotal.Inc()
		metrics.ActiveSites.Inc()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Site), nil
}

// Invalidate drops one site from the cache; called by admin tooling after
// a site or site_config write.
func (c *Cache) Invalidate(id uint64) {
	if _, ok := c.m.LoadAndDelete(id); ok {
		metrics.ActiveSites.Dec()
	}
}

// load turns id → *Site: the site row plus its config map.
func load(ctx context.Context, db *sqlx.DB, id uint64) (*Site, error) {
	rec, err := ByID(ctx, db, id)
	if err != nil {
		return nil, ErrNotFound
	}

	cfg, err := ConfigByID(ctx, db, rec.ID)
	if err != nil {
		return nil, err
	}

	return &Site{Meta: *rec, Config: cfg}, nil
}
