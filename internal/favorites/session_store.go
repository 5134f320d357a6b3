package favorites

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultSessionTTL is how long an anonymous favorites set survives
// without being touched.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionStore keeps anonymous favorites in memory, keyed by the opaque
// session token the client presents. Sets expire after the TTL; there is
// no merge into an account on login, the anonymous set is simply dropped.
type SessionStore struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, []uint]
	ttl   time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	cache := ttlcache.New(
		ttlcache.WithTTL[string, []uint](ttl),
	)
	go cache.Start()

	return &SessionStore{cache: cache, ttl: ttl}
}

func (s *SessionStore) get(owner string) []uint {
	item := s.cache.Get(owner)
	if item == nil {
		return nil
	}
	return item.Value()
}

func (s *SessionStore) Toggle(owner string, listingID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.get(owner)
	for i, id := range set {
		if id == listingID {
			set = append(set[:i], set[i+1:]...)
			s.cache.Set(owner, set, s.ttl)
			return false, nil
		}
	}

	set = append(set, listingID)
	s.cache.Set(owner, set, s.ttl)
	return true, nil
}

func (s *SessionStore) Has(owner string, listingID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.get(owner) {
		if id == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (s *SessionStore) List(owner string) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.get(owner)
	out := make([]uint, len(set))
	copy(out, set)
	return out, nil
}

func (s *SessionStore) Count(owner string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.get(owner)), nil
}

// Stop halts the cache janitor.
func (s *SessionStore) Stop() {
	s.cache.Stop()
}
