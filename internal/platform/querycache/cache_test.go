package querycache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"learnify/internal/platform/clock"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/querycache"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (m *manualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func newClient(clk clock.Clock) *querycache.Client {
	return querycache.New(querycache.Options{
		StaleTime:     time.Minute,
		GCTime:        time.Hour,
		Retries:       3,
		RetryInterval: time.Millisecond,
	}, clk, nil)
}

func counting(values ...string) (func(context.Context) (string, error), *atomic.Int32) {
	calls := &atomic.Int32{}
	return func(context.Context) (string, error) {
		n := int(calls.Add(1))
		if n > len(values) {
			n = len(values)
		}
		return values[n-1], nil
	}, calls
}

func TestKeyIsStable(t *testing.T) {
	t.Parallel()
	type criteria struct {
		Category string `json:"category"`
		Level    string `json:"level"`
	}
	a := querycache.Key("filteredCourses", criteria{Category: "dev", Level: "all"})
	b := querycache.Key("filteredCourses", criteria{Category: "dev", Level: "all"})
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if got := querycache.Key("course", "c1"); got != "course/c1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestFreshHitDoesNotRefetch(t *testing.T) {
	t.Parallel()
	clk := &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newClient(clk)
	fetch, calls := counting("v1", "v2")
	q := querycache.Query[string]{Key: []any{"courses"}, Fetch: fetch}

	for i := 0; i < 3; i++ {
		v, err := querycache.Fetch(context.Background(), c, q)
		if err != nil || v != "v1" {
			t.Fatalf("fetch %d: got %q err=%v", i, v, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one fetch, got %d", calls.Load())
	}
}

func TestStaleHitReturnsCachedAndRefetchesInBackground(t *testing.T) {
	t.Parallel()
	clk := &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newClient(clk)
	fetch, calls := counting("v1", "v2")
	q := querycache.Query[string]{Key: []any{"currentUser"}, StaleTime: 10 * time.Second, Fetch: fetch}

	if _, err := querycache.Fetch(context.Background(), c, q); err != nil {
		t.Fatalf("initial fetch: %v", err)
	}
	clk.Advance(11 * time.Second)
	v, err := querycache.Fetch(context.Background(), c, q)
	if err != nil || v != "v1" {
		t.Fatalf("stale read must return cached value, got %q err=%v", v, err)
	}
	c.Wait()
	if calls.Load() != 2 {
		t.Fatalf("expected background refetch, got %d calls", calls.Load())
	}
	v, _ = querycache.Fetch(context.Background(), c, q)
	if v != "v2" {
		t.Fatalf("expected refreshed value v2, got %q", v)
	}
}

func TestInvalidateForcesSynchronousRefetchByPrefix(t *testing.T) {
	t.Parallel()
	clk := &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newClient(clk)
	courseFetch, courseCalls := counting("c1-old", "c1-new")
	listFetch, listCalls := counting("list")

	course := querycache.Query[string]{Key: []any{"course", "c1"}, Fetch: courseFetch}
	courses := querycache.Query[string]{Key: []any{"courses"}, Fetch: listFetch}
	_, _ = querycache.Fetch(context.Background(), c, course)
	_, _ = querycache.Fetch(context.Background(), c, courses)

	if marked := c.Invalidate("course"); marked != 1 {
		t.Fatalf("expected one invalidated entry, got %d", marked)
	}
	v, err := querycache.Fetch(context.Background(), c, course)
	if err != nil || v != "c1-new" {
		t.Fatalf("expected synchronous refetch after invalidate, got %q err=%v", v, err)
	}
	_, _ = querycache.Fetch(context.Background(), c, courses)
	if courseCalls.Load() != 2 || listCalls.Load() != 1 {
		t.Fatalf("unexpected fetch counts course=%d list=%d", courseCalls.Load(), listCalls.Load())
	}
}

func TestConcurrentFetchesAreDeduplicated(t *testing.T) {
	t.Parallel()
	c := newClient(clock.SystemClock{})
	release := make(chan struct{})
	var calls atomic.Int32
	q := querycache.Query[string]{Key: []any{"courses"}, Fetch: func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}}

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := querycache.Fetch(context.Background(), c, q)
			if err != nil {
				t.Errorf("fetch: %v", err)
			}
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected one underlying fetch, got %d", calls.Load())
	}
	for i, v := range results {
		if v != "shared" {
			t.Fatalf("caller %d got %q", i, v)
		}
	}
}

func TestTransientErrorsAreRetried(t *testing.T) {
	t.Parallel()
	c := newClient(clock.SystemClock{})
	var calls atomic.Int32
	q := querycache.Query[int]{Key: []any{"progress"}, Fetch: func(context.Context) (int, error) {
		if calls.Add(1) < 3 {
			return 0, errors.New("flaky")
		}
		return 42, nil
	}}
	v, err := querycache.Fetch(context.Background(), c, q)
	if err != nil || v != 42 {
		t.Fatalf("expected success on third attempt, got %d err=%v", v, err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected three attempts, got %d", calls.Load())
	}
}

func TestRetriesAreBounded(t *testing.T) {
	t.Parallel()
	c := newClient(clock.SystemClock{})
	var calls atomic.Int32
	q := querycache.Query[int]{Key: []any{"broken"}, Fetch: func(context.Context) (int, error) {
		calls.Add(1)
		return 0, errors.New("down")
	}}
	if _, err := querycache.Fetch(context.Background(), c, q); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected three attempts, got %d", calls.Load())
	}
}

func TestNotFoundIsNotRetried(t *testing.T) {
	t.Parallel()
	c := newClient(clock.SystemClock{})
	var calls atomic.Int32
	q := querycache.Query[string]{Key: []any{"course", "nope"}, Fetch: func(context.Context) (string, error) {
		calls.Add(1)
		return "", apperrors.ErrNotFound
	}}
	_, err := querycache.Fetch(context.Background(), c, q)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("not found must not be retried, got %d attempts", calls.Load())
	}
}

func TestCancelledContextIsNotRetried(t *testing.T) {
	t.Parallel()
	c := newClient(clock.SystemClock{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	q := querycache.Query[string]{Key: []any{"user"}, Fetch: func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", ctx.Err()
	}}
	_, err := querycache.Fetch(ctx, c, q)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if calls.Load() > 1 {
		t.Fatalf("cancelled fetch must not be retried, got %d attempts", calls.Load())
	}
}

func TestSetQueryDataPrimesEntry(t *testing.T) {
	t.Parallel()
	c := newClient(clock.SystemClock{})
	c.SetQueryData("primed", "currentUser")
	q := querycache.Query[string]{Key: []any{"currentUser"}, Fetch: func(context.Context) (string, error) {
		t.Fatalf("primed entry must not be fetched")
		return "", nil
	}}
	v, err := querycache.Fetch(context.Background(), c, q)
	if err != nil || v != "primed" {
		t.Fatalf("expected primed value, got %q err=%v", v, err)
	}
	if got, ok := querycache.GetQueryData[string](c, "currentUser"); !ok || got != "primed" {
		t.Fatalf("expected cached data, got %q ok=%t", got, ok)
	}
}

func TestUnreadEntriesAreCollected(t *testing.T) {
	t.Parallel()
	c := querycache.New(querycache.Options{GCTime: 20 * time.Millisecond, Retries: 1}, clock.SystemClock{}, nil)
	c.SetQueryData("v", "courses")
	time.Sleep(80 * time.Millisecond)
	if _, ok := querycache.GetQueryData[string](c, "courses"); ok {
		t.Fatalf("expected entry to be evicted after gc window")
	}
}

func TestKeyPartsCannotCollide(t *testing.T) {
	t.Parallel()
	joined := querycache.Key("searchCourses", "ui/ux")
	split := querycache.Key("searchCourses", "ui", "ux")
	if joined == split {
		t.Fatalf("expected distinct keys, both are %q", joined)
	}

	c := newClient(clock.SystemClock{})
	c.SetQueryData("design", "searchCourses", "ui/ux")
	c.SetQueryData("other", "searchCourses", "ui", "ux")
	if marked := c.Invalidate("searchCourses", "ui"); marked != 1 {
		t.Fatalf("expected only the two part key to match, got %d", marked)
	}
}

func TestInvalidateDuringBackgroundRefetchKeepsReadAfterWrite(t *testing.T) {
	t.Parallel()
	clk := &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newClient(clk)

	var backend atomic.Value
	backend.Store("v1")
	var calls atomic.Int32
	refetching := make(chan struct{})
	release := make(chan struct{})
	q := querycache.Query[string]{Key: []any{"enrolledCourses"}, Fetch: func(context.Context) (string, error) {
		n := calls.Add(1)
		v := backend.Load().(string)
		if n == 2 {
			close(refetching)
			<-release
		}
		return v, nil
	}}

	if _, err := querycache.Fetch(context.Background(), c, q); err != nil {
		t.Fatalf("initial fetch: %v", err)
	}
	clk.Advance(2 * time.Minute)
	if v, _ := querycache.Fetch(context.Background(), c, q); v != "v1" {
		t.Fatalf("stale read must return cached value, got %q", v)
	}
	<-refetching

	backend.Store("v2")
	c.Invalidate("enrolledCourses")
	v, err := querycache.Fetch(context.Background(), c, q)
	if err != nil || v != "v2" {
		t.Fatalf("read after invalidate must see the write, got %q err=%v", v, err)
	}

	close(release)
	c.Wait()
	if v, _ := querycache.Fetch(context.Background(), c, q); v != "v2" {
		t.Fatalf("superseded refetch overwrote the entry, got %q", v)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected three fetches, got %d", calls.Load())
	}
}

func TestSetQueryDataWinsOverFetchInFlight(t *testing.T) {
	t.Parallel()
	c := newClient(clock.SystemClock{})
	started := make(chan struct{})
	release := make(chan struct{})
	q := querycache.Query[string]{Key: []any{"currentUser"}, Fetch: func(context.Context) (string, error) {
		close(started)
		<-release
		return "before update", nil
	}}

	done := make(chan string)
	go func() {
		v, _ := querycache.Fetch(context.Background(), c, q)
		done <- v
	}()
	<-started
	c.SetQueryData("after update", "currentUser")
	close(release)
	<-done

	if got, ok := querycache.GetQueryData[string](c, "currentUser"); !ok || got != "after update" {
		t.Fatalf("expected primed value to survive, got %q ok=%t", got, ok)
	}
}

func TestCancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	t.Parallel()
	c := newClient(clock.SystemClock{})
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	q := querycache.Query[string]{Key: []any{"courses"}, Fetch: func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "catalogue", nil
	}}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := querycache.Fetch(ctxA, c, q)
		errA <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := querycache.Fetch(context.Background(), c, q)
		resB <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller should stop waiting with context.Canceled, got %v", err)
	}
	close(release)
	b := <-resB
	if b.err != nil || b.v != "catalogue" {
		t.Fatalf("live caller got %q err=%v", b.v, b.err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one shared fetch, got %d", calls.Load())
	}
}
