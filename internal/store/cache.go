package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedStore is a read-through cache over a Store. Collection reads are
// cached until a write lands; every mutating call marks all cached
// collections stale, matching the one-session-one-cache behavior the form
// front end expects (a mutation may move documents the next render reads).
type CachedStore struct {
	inner Store
	cache *cache.Cache
}

func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *CachedStore) GetCollection(ctx context.Context, name string) ([]Document, error) {
	if cached, ok := s.cache.Get(name); ok {
		return cached.([]Document), nil
	}
	docs, err := s.inner.GetCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(name, docs)
	return docs, nil
}

func (s *CachedStore) SetDocument(ctx context.Context, collection, key string, fields map[string]string, merge bool) error {
	err := s.inner.SetDocument(ctx, collection, key, fields, merge)
	if err == nil {
		s.InvalidateAll()
	}
	return err
}

func (s *CachedStore) UpdateDocument(ctx context.Context, collection, key string, fields map[string]string) error {
	err := s.inner.UpdateDocument(ctx, collection, key, fields)
	if err == nil {
		s.InvalidateAll()
	}
	return err
}

func (s *CachedStore) InsertDocuments(ctx context.Context, collection string, docs []Document) error {
	err := s.inner.InsertDocuments(ctx, collection, docs)
	// A failed batch may still have written part of itself; the cache
	// cannot assume it saw nothing.
	s.InvalidateAll()
	return err
}

func (s *CachedStore) DeleteDocuments(ctx context.Context, collection string, keys []string) error {
	err := s.inner.DeleteDocuments(ctx, collection, keys)
	s.InvalidateAll()
	return err
}

// Invalidate drops a single cached collection.
func (s *CachedStore) Invalidate(collection string) {
	s.cache.Delete(collection)
}

// InvalidateAll drops every cached collection.
func (s *CachedStore) InvalidateAll() {
	s.cache.Flush()
	slog.Debug("store cache flushed")
}
