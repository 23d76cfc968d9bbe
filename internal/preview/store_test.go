package preview

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-hebergement/internal/render"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(clock *fakeClock) *Store {
	n := 0
	return NewStore(10*time.Minute,
		WithClock(clock.Now),
		WithTokenFunc(func() string { n++; return fmt.Sprintf("tok-%d", n) }),
	)
}

func doc(name string) *render.Document {
	return &render.Document{Filename: name, ContentType: "application/pdf", Data: []byte("%PDF-1.3")}
}

func TestStore_AcquireGetRelease(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(clock)

	h := s.Acquire(doc("a.pdf"))
	assert.Equal(t, "tok-1", h.Token)
	assert.Equal(t, clock.Now().Add(10*time.Minute), h.ExpiresAt)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(h.Token)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.Filename)

	require.NoError(t, s.Release(h.Token))
	assert.Equal(t, 0, s.Len())
	assert.ErrorIs(t, s.Release(h.Token), ErrReleased)

	_, err = s.Get(h.Token)
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, s.Release("unknown"), ErrNotFound)
}

func TestStore_ReplaceReleasesPrevious(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(clock)

	first := s.Acquire(doc("v1.pdf"))
	second := s.Replace(first.Token, doc("v2.pdf"))
	assert.Equal(t, 1, s.Len())
	assert.ErrorIs(t, s.Release(first.Token), ErrReleased)

	got, err := s.Get(second.Token)
	require.NoError(t, err)
	assert.Equal(t, "v2.pdf", got.Filename)

	third := s.Replace("", doc("v3.pdf"))
	assert.Equal(t, 2, s.Len())
	assert.NotEqual(t, second.Token, third.Token)
}

func TestStore_ReplaceLogsStalePrevious(t *testing.T) {
	var buf bytes.Buffer
	s := NewStore(time.Minute, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	first := s.Acquire(doc("v1.pdf"))
	require.NoError(t, s.Release(first.Token))
	s.Replace(first.Token, doc("v2.pdf"))
	assert.Contains(t, buf.String(), first.Token)
	assert.Contains(t, buf.String(), ErrReleased.Error())

	buf.Reset()
	s.Replace("unknown", doc("v3.pdf"))
	assert.Contains(t, buf.String(), ErrNotFound.Error())
	assert.Equal(t, 2, s.Len())
}

func TestStore_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(clock)

	h := s.Acquire(doc("a.pdf"))
	clock.Advance(11 * time.Minute)
	_, err := s.Get(h.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())
	assert.ErrorIs(t, s.Release(h.Token), ErrReleased)

	clock.Advance(11 * time.Minute)
	s.Sweep()
	assert.ErrorIs(t, s.Release(h.Token), ErrNotFound)
}

func TestStore_Run(t *testing.T) {
	s := NewStore(time.Millisecond)
	s.Acquire(doc("a.pdf"))

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	go s.Run(ctx, 2*time.Millisecond, func(n int) {
		select {
		case swept <- n:
		default:
		}
	})
	select {
	case n := <-swept:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not run")
	}
	cancel()
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentAcquireRelease(t *testing.T) {
	s := NewStore(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := s.Acquire(doc("x.pdf"))
			_, _ = s.Get(h.Token)
			assert.NoError(t, s.Release(h.Token))
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, s.Len())
}
