// Package cache holds the in-memory listing collection cache. The public
// endpoints read through it; admin writes invalidate it instead of
// mutating entries in place.
package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"imovia_backend/internal/model"
)

const collectionKey = "listings:active"

type ListingCache struct {
	cache *ttlcache.Cache[string, []model.Listing]
	ttl   time.Duration
}

func NewListingCache(ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := ttlcache.New(
		ttlcache.WithTTL[string, []model.Listing](ttl),
		ttlcache.WithDisableTouchOnHit[string, []model.Listing](),
	)
	go c.Start()

	return &ListingCache{cache: c, ttl: ttl}
}

// Get returns the cached collection, or nil and false on a miss.
func (c *ListingCache) Get() ([]model.Listing, bool) {
	item := c.cache.Get(collectionKey)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (c *ListingCache) Set(listings []model.Listing) {
	c.cache.Set(collectionKey, listings, c.ttl)
}

// Invalidate drops the cached collection so the next read refetches.
func (c *ListingCache) Invalidate() {
	c.cache.Delete(collectionKey)
}

func (c *ListingCache) Stop() {
	c.cache.Stop()
}
