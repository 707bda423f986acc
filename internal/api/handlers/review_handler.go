package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/providers"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
)

const (
	reviewRateLimit   = 5
	reviewRateWindow  = time.Hour
	reviewDedupWindow = 24 * time.Hour
)

// ReviewSubmitter defines the review operation used by the handler
type ReviewSubmitter interface {
	SubmitReview(ctx context.Context, review *entities.Review) error
}

// ReviewHandler handles review submissions. Submissions are rate limited per
// client IP and identical submissions within a day are acknowledged without
// being appended again.
type ReviewHandler struct {
	service ReviewSubmitter
	cache   providers.CacheProvider
	local   *localRateLimiter
	deduper *localDeduper
}

// NewReviewHandler creates a new review handler. A nil cache keeps rate
// limiting and dedup in process.
func NewReviewHandler(service ReviewSubmitter, cache providers.CacheProvider) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		cache:   cache,
		local:   newLocalRateLimiter(),
		deduper: newLocalDeduper(),
	}
}

type reviewRequest struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// SubmitReview handles POST /api/providers/{id}/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var payload reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	providerID := r.PathValue("id")
	ip := clientIP(r)

	allowed, retryAfter := h.allowRequest(r.Context(), "review:rate:"+ip)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	dupKey := "review:dup:" + reviewFingerprint(providerID, payload, ip)
	if h.isDuplicate(r.Context(), dupKey) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	review := &entities.Review{
		ID:           strings.TrimSpace(payload.ID),
		ProviderID:   providerID,
		CustomerName: payload.CustomerName,
		Rating:       payload.Rating,
		Comment:      payload.Comment,
	}

	if err := h.service.SubmitReview(r.Context(), review); err != nil {
		// a rejected review may be corrected and resent
		h.forget(r.Context(), dupKey)
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, reviewRateLimit, reviewRateWindow)
	}

	count, err := h.cache.Increment(ctx, key, reviewRateWindow)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("rate limit cache unavailable, using local limiter")
		return h.local.allow(key, reviewRateLimit, reviewRateWindow)
	}
	if count > reviewRateLimit {
		return false, reviewRateWindow
	}
	return true, reviewRateWindow
}

func (h *ReviewHandler) isDuplicate(ctx context.Context, key string) bool {
	if h.cache == nil {
		return h.deduper.seen(key, reviewDedupWindow)
	}

	stored, err := h.cache.SetNX(ctx, key, []byte("1"), reviewDedupWindow)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("dedup cache unavailable, using local deduper")
		return h.deduper.seen(key, reviewDedupWindow)
	}
	return !stored
}

func (h *ReviewHandler) forget(ctx context.Context, key string) {
	h.deduper.forget(key)
	if h.cache != nil {
		_ = h.cache.Delete(ctx, key)
	}
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) seen(key string, window time.Duration) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if expiresAt, ok := d.entries[key]; ok && now.Before(expiresAt) {
		return true
	}

	d.entries[key] = now.Add(window)
	return false
}

func (d *localDeduper) forget(key string) {
	d.mu.Lock()
	delete(d.entries, key)
	d.mu.Unlock()
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func reviewFingerprint(providerID string, payload reviewRequest, ip string) string {
	normalized := []string{
		providerID,
		strconv.Itoa(payload.Rating),
		normalizeText(payload.CustomerName),
		normalizeText(payload.Comment),
		ip,
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}

func normalizeText(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}
