package api

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/rotisserie/eris"
)

const cacheHeader = "X-Cache"

type cachedResponse struct {
	status int
	body   []byte
}

// responseCache memoises rendered responses by request fingerprint. A zero
// TTL or size disables it.
type responseCache struct {
	store *ristretto.Cache[string, cachedResponse]
	ttl   time.Duration
}

func newResponseCache(maxEntries int, ttl time.Duration) (*responseCache, error) {
	if maxEntries <= 0 || ttl <= 0 {
		return &responseCache{}, nil
	}
	store, err := ristretto.NewCache(&ristretto.Config[string, cachedResponse]{
		NumCounters:        int64(maxEntries) * 10,
		MaxCost:            int64(maxEntries),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, eris.Wrap(err, "api: create response cache")
	}
	return &responseCache{store: store, ttl: ttl}, nil
}

func (c *responseCache) enabled() bool { return c.store != nil }

func (c *responseCache) get(key string) (cachedResponse, bool) {
	if !c.enabled() {
		return cachedResponse{}, false
	}
	return c.store.Get(key)
}

func (c *responseCache) put(key string, resp cachedResponse) {
	if !c.enabled() {
		return
	}
	c.store.SetWithTTL(key, resp, 1, c.ttl)
	c.store.Wait()
}

func (c *responseCache) close() {
	if c.enabled() {
		c.store.Close()
	}
}

// cacheKey fingerprints a route, its rendering options and the raw body.
func cacheKey(route, variant string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(route))
	h.Write([]byte{0})
	h.Write([]byte(variant))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
