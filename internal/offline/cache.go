// Package offline serves previously fetched static assets when the network
// is unavailable, with a single live cache generation per version tag.
package offline

import (
	"context"
	"log"
	"sort"
	"sync"
)

// AssetSource fetches live asset bytes, both for install-time caching and for
// pass-through serving.
type AssetSource interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// DefaultManifest lists the core assets cached at install time.
var DefaultManifest = []string{"/", "/index.html", "/manifest.json"}

// FallbackPath is the document served when a live fetch fails and no cached
// entry matches; a navigation must never end on an error page.
const FallbackPath = "/index.html"

// Storage holds every cache generation, keyed by version tag. It outlives
// individual Cache values so an upgrade can purge superseded generations.
type Storage struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// NewStorage creates empty cache storage.
func NewStorage() *Storage {
	return &Storage{buckets: make(map[string]map[string][]byte)}
}

func (s *Storage) put(version, path string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.buckets[version]
	if !ok {
		bucket = make(map[string][]byte)
		s.buckets[version] = bucket
	}
	bucket[path] = body
}

func (s *Storage) get(version, path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.buckets[version][path]
	return body, ok
}

// Versions returns every cache generation currently present, sorted.
func (s *Storage) Versions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	versions := make([]string, 0, len(s.buckets))
	for v := range s.buckets {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

func (s *Storage) delete(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, version)
}

// Cache is one version's view over the shared storage.
type Cache struct {
	version  string
	manifest []string
	source   AssetSource
	storage  *Storage
}

// NewCache creates a cache bound to the given version tag. A nil manifest
// uses DefaultManifest.
func NewCache(version string, manifest []string, source AssetSource, storage *Storage) *Cache {
	if manifest == nil {
		manifest = DefaultManifest
	}
	return &Cache{
		version:  version,
		manifest: manifest,
		source:   source,
		storage:  storage,
	}
}

// Install pre-populates this version's generation with the manifest assets.
// A single asset failing to cache does not abort the others.
func (c *Cache) Install(ctx context.Context) {
	for _, path := range c.manifest {
		body, err := c.source.Fetch(ctx, path)
		if err != nil {
			log.Printf("ERROR: offline cache install failed for %s: %v", path, err)
			continue
		}
		c.storage.put(c.version, path, body)
	}
}

// Intercept serves the cached entry for path when present, otherwise fetches
// live. When the live fetch fails too, the cached fallback document is served
// instead of an error.
func (c *Cache) Intercept(ctx context.Context, path string) ([]byte, error) {
	if body, ok := c.storage.get(c.version, path); ok {
		return body, nil
	}
	body, err := c.source.Fetch(ctx, path)
	if err == nil {
		return body, nil
	}
	if fb, ok := c.storage.get(c.version, FallbackPath); ok {
		return fb, nil
	}
	return nil, err
}

// Activate deletes every cache generation whose tag is not this cache's
// version, leaving at most one live generation. It returns the purged tags.
func (c *Cache) Activate() []string {
	var purged []string
	for _, v := range c.storage.Versions() {
		if v != c.version {
			c.storage.delete(v)
			purged = append(purged, v)
		}
	}
	return purged
}
