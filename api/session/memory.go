package session

import (
	"context"
	"sync"
	"time"

	"toolbox/api/models"
)

type memoryEntry struct {
	img     *models.UploadedImage
	expires time.Time
}

type memoryLock struct {
	until time.Time
	token uint64
}

type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	images   map[Key]memoryEntry
	locks    map[Key]memoryLock
	lastLock uint64
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		images: make(map[Key]memoryEntry),
		locks:  make(map[Key]memoryLock),
		now:    time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, key Key, img *models.UploadedImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.images[key] = memoryEntry{img: img, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key Key) (*models.UploadedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.images[key]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(entry.expires) {
		delete(s.images, key)
		return nil, ErrNotFound
	}
	return entry.img, nil
}

func (s *MemoryStore) Delete(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.images, key)
	return nil
}

func (s *MemoryStore) Lock(_ context.Context, key Key, ttl time.Duration) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if held, ok := s.locks[key]; ok && now.Before(held.until) {
		return nil, ErrBusy
	}
	s.lastLock++
	token := s.lastLock
	s.locks[key] = memoryLock{until: now.Add(ttl), token: token}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			// a lapsed lock may already belong to someone else
			if s.locks[key].token == token {
				delete(s.locks, key)
			}
		})
	}, nil
}

// Sweep drops expired images and lapsed locks and returns how many images
// it removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.images {
		if !now.Before(entry.expires) {
			delete(s.images, key)
			removed++
		}
	}
	for key, held := range s.locks {
		if !now.Before(held.until) {
			delete(s.locks, key)
		}
	}
	return removed
}

// RunJanitor calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
