package application

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPageSize    = 10
	DefaultSearchLimit = 50
)

type CollectionConfig struct {
	// Path is the list endpoint, e.g. "/dishes".
	Path string
	// Entity is the singular display name used in notifications, e.g. "Dish".
	Entity string
	// Plural names the collection in error messages, e.g. "dishes".
	Plural string
	// Searchable collections expose GET {Path}/search.
	Searchable  bool
	PageSize    int
	SearchLimit int
}

type CollectionState[T any] struct {
	Items       []T
	Total       int
	CurrentPage int
	PageSize    int
	Loading     bool
}

func (s CollectionState[T]) HasMore() bool {
	return len(s.Items) < s.Total
}

// Collection caches one page-addressed list of server entities. Fetch and
// Search replace the items; LoadMore appends the next page. Concurrent Fetch
// calls are not serialized and the last response to arrive wins.
type Collection[T any] struct {
	cfg       CollectionConfig
	requester ports.Requester
	notifier  ports.Notifier
	log       logrus.FieldLogger

	mu      sync.Mutex
	state   CollectionState[T]
	filters url.Values

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]func(CollectionState[T])
}

func NewCollection[T any](cfg CollectionConfig, requester ports.Requester, notifier ports.Notifier, log logrus.FieldLogger) *Collection[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}

	return &Collection[T]{
		cfg:       cfg,
		requester: requester,
		notifier:  notifierOrNop(notifier),
		log:       loggerOrDiscard(log).WithField("collection", cfg.Plural),
		state: CollectionState[T]{
			CurrentPage: 1,
			PageSize:    cfg.PageSize,
		},
		subscribers: map[int]func(CollectionState[T]){},
	}
}

// Fetch replaces the items with the current page. filters are sent alongside
// limit and offset and override them on key collision. A successful fetch
// remembers them for LoadMore; on failure only Loading changes.
func (c *Collection[T]) Fetch(ctx context.Context, filters url.Values) (domain.Page[T], error) {
	c.mu.Lock()
	c.state.Loading = true
	filters = cloneValues(filters)
	query := c.pageQuery(c.state.CurrentPage, c.state.PageSize, filters)
	c.mu.Unlock()
	c.publish()

	var page domain.Page[T]
	err := c.requester.Request(ctx, http.MethodGet, c.cfg.Path, nil, query, &page)

	c.mu.Lock()
	c.state.Loading = false
	if err == nil {
		c.state.Items = append([]T{}, page.Data...)
		c.state.Total = page.Total
		c.filters = filters
	}
	c.mu.Unlock()
	c.publish()

	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("fetch %s: %w", c.cfg.Plural, err)
	}
	return page, nil
}

// LoadMore appends the next page. It reports false without any request when a
// fetch is in flight or every item is already loaded.
func (c *Collection[T]) LoadMore(ctx context.Context) (domain.Page[T], bool, error) {
	c.mu.Lock()
	if c.state.Loading || !c.state.HasMore() {
		c.mu.Unlock()
		return domain.Page[T]{}, false, nil
	}
	c.state.Loading = true
	nextPage := c.state.CurrentPage + 1
	query := c.pageQuery(nextPage, c.state.PageSize, c.filters)
	c.mu.Unlock()
	c.publish()

	var page domain.Page[T]
	err := c.requester.Request(ctx, http.MethodGet, c.cfg.Path, nil, query, &page)

	c.mu.Lock()
	c.state.Loading = false
	if err == nil {
		c.state.CurrentPage = nextPage
		c.state.Items = append(c.state.Items, page.Data...)
		c.state.Total = page.Total
	}
	c.mu.Unlock()
	c.publish()

	if err != nil {
		return domain.Page[T]{}, true, fmt.Errorf("load more %s: %w", c.cfg.Plural, err)
	}

	c.log.WithFields(logrus.Fields{"page": nextPage, "count": len(page.Data)}).Debug("loaded next page")
	return page, true, nil
}

// Search replaces the items with up to SearchLimit matches for keyword.
// LoadMore is undefined on a search result; call Fetch to page again.
func (c *Collection[T]) Search(ctx context.Context, keyword string) (domain.Page[T], error) {
	if !c.cfg.Searchable {
		return domain.Page[T]{}, fmt.Errorf("search %s: %w", c.cfg.Plural, domain.ErrSearchUnsupported)
	}

	query := url.Values{}
	query.Set("q", keyword)
	query.Set("offset", "0")
	query.Set("limit", strconv.Itoa(c.cfg.SearchLimit))

	c.mu.Lock()
	c.state.Loading = true
	c.mu.Unlock()
	c.publish()

	var page domain.Page[T]
	err := c.requester.Request(ctx, http.MethodGet, c.cfg.Path+"/search", nil, query, &page)

	c.mu.Lock()
	c.state.Loading = false
	if err == nil {
		c.state.Items = append([]T{}, page.Data...)
		c.state.Total = page.Total
		c.state.CurrentPage = 1
		c.filters = nil
	}
	c.mu.Unlock()
	c.publish()

	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("search %s: %w", c.cfg.Plural, err)
	}
	return page, nil
}

// Get reads one entity without touching the cached list.
func (c *Collection[T]) Get(ctx context.Context, id uint) (T, error) {
	var entity T
	if err := c.requester.Request(ctx, http.MethodGet, c.itemPath(id), nil, nil, &entity); err != nil {
		var zero T
		return zero, fmt.Errorf("get %s %d: %w", c.cfg.Plural, id, err)
	}
	return entity, nil
}

func (c *Collection[T]) Create(ctx context.Context, input any) (T, error) {
	var created T
	if err := c.requester.Request(ctx, http.MethodPost, c.cfg.Path, input, nil, &created); err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", c.cfg.Plural, err)
	}

	return created, c.afterMutation(ctx, "created")
}

func (c *Collection[T]) Update(ctx context.Context, id uint, input any) (T, error) {
	var updated T
	if err := c.requester.Request(ctx, http.MethodPut, c.itemPath(id), input, nil, &updated); err != nil {
		var zero T
		return zero, fmt.Errorf("update %s %d: %w", c.cfg.Plural, id, err)
	}

	return updated, c.afterMutation(ctx, "updated")
}

func (c *Collection[T]) Delete(ctx context.Context, id uint) error {
	if err := c.requester.Request(ctx, http.MethodDelete, c.itemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete %s %d: %w", c.cfg.Plural, id, err)
	}

	return c.afterMutation(ctx, "deleted")
}

// afterMutation announces the change and re-reads the current page without
// filters, dropping any load-more progress.
func (c *Collection[T]) afterMutation(ctx context.Context, verb string) error {
	c.notifier.Notify(domain.Notification{
		Level:   domain.NotificationSuccess,
		Message: fmt.Sprintf("%s %s", c.cfg.Entity, verb),
	})

	if _, err := c.Fetch(ctx, nil); err != nil {
		return fmt.Errorf("refresh %s after %s: %w", c.cfg.Plural, verb, err)
	}
	return nil
}

// SetPage moves the cursor. It does not fetch.
func (c *Collection[T]) SetPage(page int) error {
	if page < 1 {
		return domain.ErrInvalidPage
	}

	c.mu.Lock()
	c.state.CurrentPage = page
	c.mu.Unlock()
	c.publish()

	return nil
}

// SetPageSize changes the page size and resets the cursor to page 1.
func (c *Collection[T]) SetPageSize(size int) error {
	if size < 1 {
		return domain.ErrInvalidPageSize
	}

	c.mu.Lock()
	c.state.PageSize = size
	c.state.CurrentPage = 1
	c.mu.Unlock()
	c.publish()

	return nil
}

func (c *Collection[T]) State() CollectionState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Collection[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.HasMore()
}

// Subscribe registers fn to receive a state snapshot after every transition.
func (c *Collection[T]) Subscribe(fn func(CollectionState[T])) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Collection[T]) publish() {
	c.subMu.Lock()
	if len(c.subscribers) == 0 {
		c.subMu.Unlock()
		return
	}
	handlers := make([]func(CollectionState[T]), 0, len(c.subscribers))
	for id := 0; id < c.nextSubID; id++ {
		if fn, ok := c.subscribers[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	c.subMu.Unlock()

	snapshot := c.State()
	for _, fn := range handlers {
		fn(snapshot)
	}
}

func (c *Collection[T]) snapshotLocked() CollectionState[T] {
	snapshot := c.state
	snapshot.Items = append([]T(nil), c.state.Items...)
	return snapshot
}

func (c *Collection[T]) pageQuery(page int, size int, filters url.Values) url.Values {
	query := url.Values{}
	query.Set("offset", strconv.Itoa((page-1)*size))
	query.Set("limit", strconv.Itoa(size))
	for key, values := range filters {
		query[key] = append([]string(nil), values...)
	}
	return query
}

func (c *Collection[T]) itemPath(id uint) string {
	return c.cfg.Path + "/" + strconv.FormatUint(uint64(id), 10)
}

func cloneValues(values url.Values) url.Values {
	if len(values) == 0 {
		return nil
	}
	cloned := make(url.Values, len(values))
	for key, v := range values {
		cloned[key] = append([]string(nil), v...)
	}
	return cloned
}
