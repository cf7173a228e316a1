package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/glabrego/arcade-cli/internal/bookmarks"
	"github.com/glabrego/arcade-cli/internal/catalog"
)

// ErrLoadSuperseded is returned by a Load whose result was dropped because
// a newer Load started while it was in flight.
var ErrLoadSuperseded = errors.New("load superseded by a newer request")

type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

type BookmarkStore interface {
	IsBookmarked(title string) bool
	Snapshot() bookmarks.Set
	Toggle(ctx context.Context, title string) (bookmarks.Set, error)
}

type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// Snapshot is a read-only view of the controller for the presentation
// layer. Bookmarks is a private copy.
type Snapshot struct {
	Items      []catalog.Item
	Total      int
	Categories []string
	Query      string
	Selectors  []string
	Bookmarks  bookmarks.Set
	State      LoadState
	LastError  error
}

func (s Snapshot) IsBookmarked(title string) bool {
	return s.Bookmarks.Has(title)
}

func (s Snapshot) IsLoading() bool {
	return s.State == StateLoading
}

// Controller owns the loaded items and the filter state and re-runs the
// filter whenever one of its inputs changes.
type Controller struct {
	fetcher Fetcher
	store   BookmarkStore
	logger  *zap.Logger

	mu         sync.Mutex
	items      []catalog.Item
	categories []string
	filtered   []catalog.Item
	query      string
	selectors  []string
	state      LoadState
	lastErr    error
	loadGen    uint64
	cancelLoad context.CancelFunc
}

func NewController(fetcher Fetcher, store BookmarkStore, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		fetcher:   fetcher,
		store:     store,
		logger:    logger,
		items:     []catalog.Item{},
		selectors: []string{catalog.SelectorAll},
		state:     StateIdle,
	}
	c.refilterLocked()
	return c
}

// Load fetches and parses the feed. A Load started while another is in
// flight cancels the older one; the older call then returns
// ErrLoadSuperseded without touching state. On failure the previously
// loaded items are kept.
func (c *Controller) Load(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.loadGen++
	gen := c.loadGen
	c.cancelLoad = cancel
	c.state = StateLoading
	c.mu.Unlock()
	defer cancel()

	start := time.Now()
	c.logger.Info("feed load started", zap.Uint64("generation", gen))
	raw, err := c.fetcher.Fetch(loadCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.loadGen {
		c.logger.Debug("feed load superseded", zap.Uint64("generation", gen))
		return c.snapshotLocked(), ErrLoadSuperseded
	}
	c.cancelLoad = nil

	if err != nil {
		c.state = StateFailed
		c.lastErr = err
		c.logger.Warn("feed load failed",
			zap.Duration("duration", time.Since(start)),
			zap.Int("retained_items", len(c.items)),
			zap.Error(err))
		return c.snapshotLocked(), err
	}

	items := catalog.Parse(raw)
	for _, bad := range catalog.Malformed(items) {
		c.logger.Debug("malformed feed line", zap.Int("line", bad.Line), zap.Int("fields", bad.Fields))
	}
	c.items = items
	c.categories = catalog.Categories(items)
	c.state = StateReady
	c.lastErr = nil
	c.refilterLocked()
	c.logger.Info("feed load finished",
		zap.Duration("duration", time.Since(start)),
		zap.Int("items", len(items)),
		zap.Int("shown", len(c.filtered)))
	return c.snapshotLocked(), nil
}

func (c *Controller) SetQuery(query string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	c.refilterLocked()
	return c.snapshotLocked()
}

// SetActiveCategories replaces the selector list. An empty list is kept
// as is and matches nothing.
func (c *Controller) SetActiveCategories(selectors []string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectors = append([]string(nil), selectors...)
	c.refilterLocked()
	return c.snapshotLocked()
}

// ToggleBookmark flips title in the bookmark store and re-filters. A
// non-nil error is a persistence warning; the snapshot already reflects
// the toggle.
func (c *Controller) ToggleBookmark(ctx context.Context, title string) (Snapshot, error) {
	_, err := c.store.Toggle(ctx, title)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.refilterLocked()
	return c.snapshotLocked(), err
}

func (c *Controller) IsBookmarked(title string) bool {
	return c.store.IsBookmarked(title)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) refilterLocked() {
	c.filtered = catalog.Filter(c.items, c.query, c.selectors, c.store.Snapshot())
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Items:      append([]catalog.Item(nil), c.filtered...),
		Total:      len(c.items),
		Categories: append([]string(nil), c.categories...),
		Query:      c.query,
		Selectors:  append([]string(nil), c.selectors...),
		Bookmarks:  c.store.Snapshot(),
		State:      c.state,
		LastError:  c.lastErr,
	}
}
