package routes

import (
	"net/http"

	"github.com/athul0622-dotcom/local-service/internal/api/handlers"
	"github.com/athul0622-dotcom/local-service/internal/api/middleware"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	providerHandler *handlers.ProviderHandler
	reviewHandler   *handlers.ReviewHandler
	bookingHandler  *handlers.BookingHandler

	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  []string
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware may be nil.
func NewRouter(
	providerHandler *handlers.ProviderHandler,
	reviewHandler *handlers.ReviewHandler,
	bookingHandler *handlers.BookingHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		providerHandler: providerHandler,
		reviewHandler:   reviewHandler,
		bookingHandler:  bookingHandler,
		cacheMiddleware: cacheMiddleware,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /api/categories", handlers.ListCategories)

	// Listing and profile
	r.mux.HandleFunc("GET /api/providers", r.providerHandler.ListProviders)
	r.mux.HandleFunc("GET /api/providers/locations", r.providerHandler.ListLocations)
	r.mux.HandleFunc("GET /api/providers/{id}", r.providerHandler.GetProvider)

	r.mux.HandleFunc("POST /api/providers/{id}/reviews", r.reviewHandler.SubmitReview)

	if r.bookingHandler != nil {
		r.mux.HandleFunc("POST /api/providers/{id}/bookings", r.bookingHandler.RequestBooking)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache hits
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
