package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// blockingFetch serves scripted results, holding each fetch until
// released so tests can control single-flight timing.
type blockingFetch struct {
	mu      sync.Mutex
	calls   atomic.Int32
	results []fetchResult
	release chan struct{}
}

type fetchResult struct {
	val []string
	err error
}

func newBlockingFetch() *blockingFetch {
	return &blockingFetch{release: make(chan struct{})}
}

func (b *blockingFetch) push(val []string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = append(b.results, fetchResult{val: val, err: err})
}

func (b *blockingFetch) fetch(ctx context.Context) ([]string, error) {
	b.calls.Add(1)
	<-b.release

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.results) == 0 {
		return nil, errors.New("no scripted result")
	}
	res := b.results[0]
	b.results = b.results[1:]
	return res.val, res.err
}

func cloneStrings(s []string) []string {
	return append([]string(nil), s...)
}

type ResourceSuite struct {
	suite.Suite
	fetch *blockingFetch
	ctx   context.Context
}

func TestResourceSuite(t *testing.T) {
	suite.Run(t, new(ResourceSuite))
}

func (s *ResourceSuite) SetupTest() {
	s.fetch = newBlockingFetch()
	s.ctx = context.Background()
}

func (s *ResourceSuite) newResource(opts ...Option[[]string]) *Resource[[]string] {
	return NewResource(s.fetch.fetch, cloneStrings, opts...)
}

// open releases all pending and future fetches immediately
func (s *ResourceSuite) open() {
	close(s.fetch.release)
}

func (s *ResourceSuite) TestFirstGetFetches() {
	s.fetch.push([]string{"a"}, nil)
	s.open()

	r := s.newResource()
	val, err := r.Get(s.ctx, false)
	s.Require().NoError(err)
	s.Equal([]string{"a"}, val)
	s.Equal(int32(1), s.fetch.calls.Load())
}

func (s *ResourceSuite) TestSecondGetServedFromCache() {
	s.fetch.push([]string{"a"}, nil)
	s.open()

	r := s.newResource()
	_, _ = r.Get(s.ctx, false)
	val, err := r.Get(s.ctx, false)
	s.Require().NoError(err)
	s.Equal([]string{"a"}, val)
	s.Equal(int32(1), s.fetch.calls.Load())
}

func (s *ResourceSuite) TestConcurrentGetsCollapseToOneFetch() {
	s.fetch.push([]string{"a"}, nil)
	r := s.newResource()

	const callers = 8
	var wg sync.WaitGroup
	vals := make([][]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vals[i], errs[i] = r.Get(s.ctx, false)
		}(i)
	}

	// Let the callers pile up behind the single in-flight fetch
	s.Eventually(func() bool { return s.fetch.calls.Load() == 1 }, waitFor, tick)
	s.open()
	wg.Wait()

	for i := 0; i < callers; i++ {
		s.Require().NoError(errs[i])
		s.Equal([]string{"a"}, vals[i])
	}
	s.Equal(int32(1), s.fetch.calls.Load())
}

func (s *ResourceSuite) TestRefreshJoinsOutstandingFetch() {
	s.fetch.push([]string{"a"}, nil)
	r := s.newResource()

	first := make(chan error, 1)
	go func() {
		_, err := r.Get(s.ctx, false)
		first <- err
	}()
	s.Eventually(func() bool { return s.fetch.calls.Load() == 1 }, waitFor, tick)

	// A refresh arriving while a fetch is outstanding joins it rather
	// than starting a second one
	second := make(chan error, 1)
	go func() {
		_, err := r.Get(s.ctx, true)
		second <- err
	}()
	time.Sleep(50 * time.Millisecond)
	s.open()

	s.Require().NoError(<-first)
	s.Require().NoError(<-second)
	s.Equal(int32(1), s.fetch.calls.Load())
}

func (s *ResourceSuite) TestRefreshFetchesAgain() {
	s.fetch.push([]string{"a"}, nil)
	s.fetch.push([]string{"b"}, nil)
	s.open()

	r := s.newResource()
	_, _ = r.Get(s.ctx, false)

	val, err := r.Get(s.ctx, true)
	s.Require().NoError(err)
	s.Equal([]string{"b"}, val)
	s.Equal(int32(2), s.fetch.calls.Load())
}

func (s *ResourceSuite) TestReturnsDefensiveCopies() {
	s.fetch.push([]string{"a", "b"}, nil)
	s.open()

	r := s.newResource()
	val, _ := r.Get(s.ctx, false)
	val[0] = "tampered"

	again, _ := r.Get(s.ctx, false)
	s.Equal([]string{"a", "b"}, again)
}

func (s *ResourceSuite) TestFailureIsMemoizedUntilRefresh() {
	fetchErr := errors.New("server down")
	s.fetch.push(nil, fetchErr)
	s.fetch.push([]string{"a"}, nil)
	s.open()

	r := s.newResource()
	_, err := r.Get(s.ctx, false)
	s.ErrorIs(err, fetchErr)

	// Non-refresh reads keep surfacing the failure without refetching
	_, err = r.Get(s.ctx, false)
	s.ErrorIs(err, fetchErr)
	s.Equal(int32(1), s.fetch.calls.Load())

	// Only an explicit refresh re-attempts
	val, err := r.Get(s.ctx, true)
	s.Require().NoError(err)
	s.Equal([]string{"a"}, val)
}

func (s *ResourceSuite) TestFailedRefreshKeepsPriorValue() {
	fetchErr := errors.New("server down")
	s.fetch.push([]string{"a"}, nil)
	s.fetch.push(nil, fetchErr)
	s.open()

	r := s.newResource()
	_, _ = r.Get(s.ctx, false)

	// The refresher sees the failure...
	_, err := r.Get(s.ctx, true)
	s.ErrorIs(err, fetchErr)

	// ...but the previously cached value survives for later reads
	val, err := r.Get(s.ctx, false)
	s.Require().NoError(err)
	s.Equal([]string{"a"}, val)
	s.Equal(int32(2), s.fetch.calls.Load())
}

func (s *ResourceSuite) TestOnSuccessRunsOncePerFetch() {
	var hookCalls atomic.Int32
	s.fetch.push([]string{"a"}, nil)
	s.fetch.push([]string{"b"}, nil)
	s.open()

	r := s.newResource(WithOnSuccess[[]string](func([]string) {
		hookCalls.Add(1)
	}))

	_, _ = r.Get(s.ctx, false)
	_, _ = r.Get(s.ctx, false) // cached, no fetch, no hook
	_, _ = r.Get(s.ctx, true)

	s.Equal(int32(2), hookCalls.Load())
}

func (s *ResourceSuite) TestOnSuccessNotRunOnFailure() {
	var hookCalls atomic.Int32
	s.fetch.push(nil, errors.New("server down"))
	s.open()

	r := s.newResource(WithOnSuccess[[]string](func([]string) {
		hookCalls.Add(1)
	}))

	_, err := r.Get(s.ctx, false)
	s.Error(err)
	s.Equal(int32(0), hookCalls.Load())
}

func (s *ResourceSuite) TestCallerCancellationDoesNotCancelFetch() {
	s.fetch.push([]string{"a"}, nil)

	r := s.newResource()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Get(ctx, false)
	s.ErrorIs(err, context.Canceled)

	// The abandoned fetch still completes and fills the cache
	s.open()
	val, err := r.Get(context.Background(), false)
	s.Require().NoError(err)
	s.Equal([]string{"a"}, val)
	s.Equal(int32(1), s.fetch.calls.Load())
}

func (s *ResourceSuite) TestCachedReportsLastSuccess() {
	r := s.newResource()
	_, ok := r.Cached()
	s.False(ok)

	s.fetch.push([]string{"a"}, nil)
	s.open()
	_, _ = r.Get(s.ctx, false)

	val, ok := r.Cached()
	s.True(ok)
	s.Equal([]string{"a"}, val)
}
