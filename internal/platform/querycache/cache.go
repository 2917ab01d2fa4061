// Package querycache memoizes asynchronous reads with stale-while-revalidate
// semantics, retry on transient failure and request deduplication.
package querycache

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"learnify/internal/platform/clock"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/logger"
)

type Options struct {
	StaleTime     time.Duration
	GCTime        time.Duration
	MaxEntries    int
	Retries       int
	RetryInterval time.Duration
}

func DefaultOptions() Options {
	return Options{
		StaleTime:     5 * time.Minute,
		GCTime:        10 * time.Minute,
		MaxEntries:    512,
		Retries:       3,
		RetryInterval: 200 * time.Millisecond,
	}
}

// Query describes one cached read. A zero StaleTime uses the client default.
type Query[T any] struct {
	Key       []any
	StaleTime time.Duration
	Fetch     func(ctx context.Context) (T, error)
}

type entry struct {
	value       any
	fetchedAt   time.Time
	staleTime   time.Duration
	invalidated bool
}

type Client struct {
	opts  Options
	clock clock.Clock
	log   *logger.Logger

	mu         sync.Mutex
	entries    *expirable.LRU[string, *entry]
	refreshing map[string]bool
	// generations counts invalidations of keys that have a fetch in flight;
	// a fetch only stores its result when the count is unchanged.
	generations map[string]uint64
	inflight    map[string]int
	group       singleflight.Group
	background sync.WaitGroup
}

func New(opts Options, clk clock.Clock, log *logger.Logger) *Client {
	defaults := DefaultOptions()
	if opts.StaleTime <= 0 {
		opts.StaleTime = defaults.StaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = defaults.GCTime
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = defaults.MaxEntries
	}
	if opts.Retries <= 0 {
		opts.Retries = 1
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		opts:       opts,
		clock:      clk,
		log:        log,
		entries:    expirable.NewLRU[string, *entry](opts.MaxEntries, nil, opts.GCTime),
		refreshing:  map[string]bool{},
		generations: map[string]uint64{},
		inflight:    map[string]int{},
	}
}

// Fetch returns the cached value for q.Key when present. Fresh entries are
// returned as is; stale entries are returned immediately while one background
// refetch runs; invalidated entries and misses are fetched synchronously.
func Fetch[T any](ctx context.Context, c *Client, q Query[T]) (T, error) {
	key := Key(q.Key...)
	staleTime := q.StaleTime
	if staleTime <= 0 {
		staleTime = c.opts.StaleTime
	}
	fetch := func(ctx context.Context) (any, error) {
		return q.Fetch(ctx)
	}

	if e, ok := c.lookup(key); ok && !e.invalidated {
		if v, typed := e.value.(T); typed {
			if c.clock.Now().Sub(e.fetchedAt) >= e.staleTime {
				c.refreshInBackground(ctx, key, staleTime, fetch)
			}
			return v, nil
		}
	}

	v, err := c.load(ctx, key, staleTime, fetch)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, apperrors.ErrInvalidInput
	}
	return typed, nil
}

// GetQueryData reads a cached value without fetching.
func GetQueryData[T any](c *Client, parts ...any) (T, bool) {
	var zero T
	e, ok := c.lookup(Key(parts...))
	if !ok {
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

// SetQueryData primes the entry for the key as freshly fetched.
func (c *Client) SetQueryData(value any, parts ...any) {
	key := Key(parts...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersede(key)
	c.entries.Add(key, &entry{value: value, fetchedAt: c.clock.Now(), staleTime: c.opts.StaleTime})
}

// Invalidate marks every entry whose key starts with the given parts. The
// next read of such an entry fetches synchronously.
func (c *Client) Invalidate(parts ...any) int {
	prefix := Key(parts...)
	c.mu.Lock()
	defer c.mu.Unlock()
	marked := 0
	for _, key := range c.entries.Keys() {
		if !hasPrefix(key, prefix) {
			continue
		}
		if e, ok := c.entries.Peek(key); ok {
			e.invalidated = true
			marked++
		}
	}
	for key := range c.inflight {
		if hasPrefix(key, prefix) {
			c.supersede(key)
		}
	}
	c.log.Debug("cache invalidated", "prefix", prefix, "entries", marked)
	return marked
}

func (c *Client) Remove(parts ...any) {
	key := Key(parts...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersede(key)
	c.entries.Remove(key)
}

func (c *Client) Len() int {
	return c.entries.Len()
}

// Wait blocks until background refetches have finished.
func (c *Client) Wait() {
	c.background.Wait()
}

func (c *Client) lookup(key string) (*entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	// re-adding extends the gc window for entries that are still read
	c.entries.Add(key, e)
	snapshot := *e
	return &snapshot, true
}

// supersede makes fetches already running for key unable to store their
// result and detaches them from later callers. c.mu must be held.
func (c *Client) supersede(key string) {
	if c.inflight[key] > 0 {
		c.generations[key]++
	}
	c.group.Forget(key)
}

func (c *Client) beginFetch(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key]++
	return c.generations[key]
}

func (c *Client) endFetch(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key]--
	if c.inflight[key] <= 0 {
		delete(c.inflight, key)
		delete(c.generations, key)
	}
}

// storeIfCurrent writes the entry unless key was invalidated or primed
// after the fetch began.
func (c *Client) storeIfCurrent(key string, generation uint64, value any, staleTime time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != generation {
		return false
	}
	c.entries.Add(key, &entry{value: value, fetchedAt: c.clock.Now(), staleTime: staleTime})
	return true
}

func (c *Client) fetchAndStore(ctx context.Context, key string, staleTime time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	generation := c.beginFetch(key)
	defer c.endFetch(key)
	v, err := c.retry(ctx, key, fetch)
	if err != nil {
		return nil, err
	}
	if !c.storeIfCurrent(key, generation, v, staleTime) {
		c.log.Debug("discarded superseded fetch", "key", key)
	}
	return v, nil
}

// load runs one shared fetch per key. The fetch is detached from the
// caller's cancellation so a caller that gives up only stops waiting; the
// other callers still receive the result.
func (c *Client) load(ctx context.Context, key string, staleTime time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if e, ok := c.lookup(key); ok && !e.invalidated && c.clock.Now().Sub(e.fetchedAt) < e.staleTime {
			return e.value, nil
		}
		return c.fetchAndStore(shared, key, staleTime, fetch)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) refreshInBackground(ctx context.Context, key string, staleTime time.Duration, fetch func(context.Context) (any, error)) {
	c.mu.Lock()
	if c.refreshing[key] {
		c.mu.Unlock()
		return
	}
	c.refreshing[key] = true
	c.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	c.background.Add(1)
	go func() {
		defer c.background.Done()
		defer func() {
			c.mu.Lock()
			delete(c.refreshing, key)
			c.mu.Unlock()
		}()
		_, err, _ := c.group.Do(key, func() (any, error) {
			return c.fetchAndStore(bg, key, staleTime, fetch)
		})
		if err != nil {
			c.log.Warn("background refetch failed", "key", key, "error", err)
		}
	}()
}

func (c *Client) retry(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.opts.RetryInterval
	attempt := 0
	op := func() (any, error) {
		attempt++
		v, err := fetch(ctx)
		if err == nil {
			return v, nil
		}
		if apperrors.IsTerminal(err) {
			return nil, backoff.Permanent(err)
		}
		c.log.Debug("query attempt failed", "key", key, "attempt", attempt, "error", err)
		return nil, err
	}
	return backoff.Retry(ctx, op, backoff.WithBackOff(policy), backoff.WithMaxTries(uint(c.opts.Retries)))
}
