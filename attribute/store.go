package attribute

import (
	"context"

	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

// Store is a Set guarded by its own read-mostly lock. It may be read and
// written by an external controller while the owning stage is transforming
// a sample; it never takes the stage lock.
type Store struct {
	locker     xsync.RWMutex
	items      Set
	generation atomic.Uint64
}

func NewStore(initial Set) *Store {
	s := &Store{
		items: initial.Clone(),
	}
	if s.items == nil {
		s.items = Set{}
	}
	return s
}

// Generation is incremented on every mutation. Readers may compare it with a
// previously seen value to skip re-parsing configuration.
func (s *Store) Generation() uint64 {
	return s.generation.Load()
}

func (s *Store) Get(ctx context.Context, key Key) (Value, bool) {
	s.locker.ManualRLock(ctx)
	defer s.locker.ManualRUnlock(ctx)
	v, ok := s.items[key]
	return v.Clone(), ok
}

func (s *Store) GetInt(ctx context.Context, key Key) (int64, bool) {
	v, ok := s.Get(ctx, key)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

func (s *Store) GetFloat(ctx context.Context, key Key) (float64, bool) {
	v, ok := s.Get(ctx, key)
	if !ok {
		return 0, false
	}
	return v.AsFloat()
}

func (s *Store) GetString(ctx context.Context, key Key) (string, bool) {
	v, ok := s.Get(ctx, key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

func (s *Store) GetBlob(ctx context.Context, key Key) ([]byte, bool) {
	v, ok := s.Get(ctx, key)
	if !ok {
		return nil, false
	}
	return v.AsBlob()
}

func (s *Store) Set(ctx context.Context, key Key, value Value) {
	logger.Tracef(ctx, "attribute.Store.Set(%s, %s)", key, value)
	s.locker.ManualLock(ctx)
	defer s.locker.ManualUnlock(ctx)
	s.items.Set(key, value)
	s.generation.Inc()
}

func (s *Store) SetInt(ctx context.Context, key Key, v int64) {
	s.Set(ctx, key, Int(v))
}

func (s *Store) SetFloat(ctx context.Context, key Key, v float64) {
	s.Set(ctx, key, Float(v))
}

func (s *Store) SetString(ctx context.Context, key Key, v string) {
	s.Set(ctx, key, String(v))
}

func (s *Store) SetBlob(ctx context.Context, key Key, v []byte) {
	s.Set(ctx, key, Blob(v))
}

// Delete reports whether the key was present.
func (s *Store) Delete(ctx context.Context, key Key) bool {
	s.locker.ManualLock(ctx)
	defer s.locker.ManualUnlock(ctx)
	_, ok := s.items[key]
	if !ok {
		return false
	}
	delete(s.items, key)
	s.generation.Inc()
	return true
}

// Update applies fn to the items atomically in respect to other readers and
// writers of the store. fn must not retain the Set.
func (s *Store) Update(ctx context.Context, fn func(Set)) {
	s.locker.ManualLock(ctx)
	defer s.locker.ManualUnlock(ctx)
	fn(s.items)
	s.generation.Inc()
}

func (s *Store) Clear(ctx context.Context) {
	s.locker.ManualLock(ctx)
	defer s.locker.ManualUnlock(ctx)
	s.items = Set{}
	s.generation.Inc()
}

func (s *Store) Len(ctx context.Context) int {
	s.locker.ManualRLock(ctx)
	defer s.locker.ManualRUnlock(ctx)
	return len(s.items)
}

func (s *Store) Keys(ctx context.Context) []Key {
	s.locker.ManualRLock(ctx)
	defer s.locker.ManualRUnlock(ctx)
	return s.items.Keys()
}

// Snapshot returns a detached copy of the current items.
func (s *Store) Snapshot(ctx context.Context) Set {
	s.locker.ManualRLock(ctx)
	defer s.locker.ManualRUnlock(ctx)
	return s.items.Clone()
}

func (s *Store) String() string {
	ctx := context.TODO()
	if !s.locker.ManualTryRLock(ctx) {
		return "attribute.Store(<locked>)"
	}
	defer s.locker.ManualRUnlock(ctx)
	return s.items.String()
}
