package cache

import (
	"context"
	"slices"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
	basecache "github.com/riskibarqy/the-gaffer/internal/platform/cache"
	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
)

// KVStore serves reads from the TTL cache and drops cached keys on every write.
type KVStore struct {
	next  kvstore.Store
	cache *basecache.Store[cachedValue]
}

func NewKVStore(next kvstore.Store, ttl time.Duration) *KVStore {
	return &KVStore{next: next, cache: basecache.NewStore[cachedValue](ttl)}
}

func kvCacheKey(namespace, key string) string {
	return "kv:" + namespace + ":" + key
}

func (s *KVStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	cached, err := s.cache.GetOrLoad(ctx, kvCacheKey(namespace, key), func(ctx context.Context) (cachedValue, error) {
		value, exists, err := s.next.Get(ctx, namespace, key)
		if err != nil {
			return cachedValue{}, err
		}
		return cachedValue{value: slices.Clone(value), exists: exists}, nil
	})
	if err != nil {
		return nil, false, err
	}

	return slices.Clone(cached.value), cached.exists, nil
}

func (s *KVStore) SetMany(ctx context.Context, namespace string, entries ...kvstore.Entry) error {
	defer s.invalidate(ctx, namespace, kvstore.Keys(entries)...)
	return s.next.SetMany(ctx, namespace, entries...)
}

func (s *KVStore) Delete(ctx context.Context, namespace string, keys ...string) error {
	defer s.invalidate(ctx, namespace, keys...)
	return s.next.Delete(ctx, namespace, keys...)
}

func (s *KVStore) invalidate(ctx context.Context, namespace string, keys ...string) {
	cacheKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		cacheKeys = append(cacheKeys, kvCacheKey(namespace, key))
	}
	s.cache.Delete(ctx, cacheKeys...)
}

type cachedValue struct {
	value  []byte
	exists bool
}

// FixtureRepository caches the catalog listing and per-id lookups separately.
type FixtureRepository struct {
	next fixture.Repository
	list *basecache.Store[[]fixture.Fixture]
	byID *basecache.Store[cachedFixtureByID]
}

func NewFixtureRepository(next fixture.Repository, ttl time.Duration) *FixtureRepository {
	return &FixtureRepository{
		next: next,
		list: basecache.NewStore[[]fixture.Fixture](ttl),
		byID: basecache.NewStore[cachedFixtureByID](ttl),
	}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	items, err := r.list.GetOrLoad(ctx, "fixture:list", func(ctx context.Context) ([]fixture.Fixture, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	return slices.Clone(items), nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, fixtureID, func(ctx context.Context) (cachedFixtureByID, error) {
		item, exists, err := r.next.GetByID(ctx, fixtureID)
		if err != nil {
			return cachedFixtureByID{}, err
		}
		return cachedFixtureByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	return cached.value, cached.exists, nil
}

type cachedFixtureByID struct {
	value  fixture.Fixture
	exists bool
}
