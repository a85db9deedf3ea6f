package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/api/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = clock.Now
	return s, clock
}

func TestMemoryStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Minute)
	key := Key{SessionID: "s1", Tool: "image-to-png"}

	_, err := s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	img := &models.UploadedImage{ID: "a", Filename: "a.png"}
	require.NoError(t, s.Put(ctx, key, img))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "a.png", got.Filename)

	// keys are scoped per tool
	_, err = s.Get(ctx, Key{SessionID: "s1", Tool: "image-to-jpg"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, key, &models.UploadedImage{ID: "b", Filename: "b.jpg"}))
	got, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(time.Minute)
	key := Key{SessionID: "s1", Tool: "image-resizer"}

	require.NoError(t, s.Put(ctx, key, &models.UploadedImage{ID: "a"}))
	clock.Advance(59 * time.Second)
	_, err := s.Get(ctx, key)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(time.Minute)

	require.NoError(t, s.Put(ctx, Key{SessionID: "old", Tool: "t"}, &models.UploadedImage{}))
	clock.Advance(2 * time.Minute)
	require.NoError(t, s.Put(ctx, Key{SessionID: "new", Tool: "t"}, &models.UploadedImage{}))

	assert.Equal(t, 1, s.Sweep())
	_, err := s.Get(ctx, Key{SessionID: "new", Tool: "t"})
	assert.NoError(t, err)
}

func TestMemoryStore_Lock(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(time.Minute)
	key := Key{SessionID: "s1", Tool: "image-to-jpg"}

	unlock, err := s.Lock(ctx, key, 10*time.Second)
	require.NoError(t, err)

	_, err = s.Lock(ctx, key, 10*time.Second)
	assert.ErrorIs(t, err, ErrBusy)

	other, err := s.Lock(ctx, Key{SessionID: "s2", Tool: "image-to-jpg"}, 10*time.Second)
	require.NoError(t, err)
	other()

	unlock()
	unlock()

	again, err := s.Lock(ctx, key, 10*time.Second)
	require.NoError(t, err)

	// after lapsing, a new holder can take it and the stale unlock is a no-op
	clock.Advance(10 * time.Second)
	next, err := s.Lock(ctx, key, 10*time.Second)
	require.NoError(t, err)
	again()
	_, err = s.Lock(ctx, key, 10*time.Second)
	assert.ErrorIs(t, err, ErrBusy)
	next()
}

func TestMemoryStore_LockIsExclusive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	key := Key{SessionID: "s1", Tool: "image-to-png"}

	var acquired atomic.Int32
	var wg sync.WaitGroup
	unlocks := make(chan func(), 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if unlock, err := s.Lock(ctx, key, time.Minute); err == nil {
				acquired.Add(1)
				unlocks <- unlock
			}
		}()
	}
	wg.Wait()
	close(unlocks)

	assert.Equal(t, int32(1), acquired.Load())
	for unlock := range unlocks {
		unlock()
	}
}
