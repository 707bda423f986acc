package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/domain/providers"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
)

// DefaultCachedRoutes lists the listing routes whose responses depend only on
// the catalog. Profiles are excluded because reviews change them.
var DefaultCachedRoutes = map[string]time.Duration{
	"/api/categories":          time.Hour,
	"/api/providers":           5 * time.Minute,
	"/api/providers/locations": time.Hour,
}

// CacheMiddleware caches successful GET responses for exact route matches
type CacheMiddleware struct {
	cache  providers.CacheProvider
	routes map[string]time.Duration
}

// NewCacheMiddleware creates a cache middleware for the given routes
func NewCacheMiddleware(cache providers.CacheProvider, routes map[string]time.Duration) *CacheMiddleware {
	if routes == nil {
		routes = DefaultCachedRoutes
	}
	return &CacheMiddleware{
		cache:  cache,
		routes: routes,
	}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		ttl, ok := m.routes[r.URL.Path]
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		logger := observability.LoggerFromContext(r.Context())
		cacheKey := generateCacheKey(r)

		if cached, err := m.cache.Get(r.Context(), cacheKey); err == nil {
			logger.Debug().Str("key", cacheKey).Msg("response cache hit")
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		w.Header().Set("X-Cache", "MISS")
		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode == http.StatusOK && recorder.body.Len() > 0 {
			if err := m.cache.Set(r.Context(), cacheKey, recorder.body.Bytes(), ttl); err != nil {
				logger.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache response")
			}
		}
	})
}

// generateCacheKey hashes the path and the normalised query. Encode sorts
// parameters so equivalent queries share an entry.
func generateCacheKey(r *http.Request) string {
	key := r.URL.Path
	if query := r.URL.Query(); len(query) > 0 {
		key += "?" + query.Encode()
	}

	hash := sha256.Sum256([]byte(key))
	return "http:cache:" + hex.EncodeToString(hash[:])
}

// responseRecorder captures the response for caching
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
