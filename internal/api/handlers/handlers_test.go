package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/adapters/memory"
	"github.com/athul0622-dotcom/local-service/internal/api/handlers"
	"github.com/athul0622-dotcom/local-service/internal/application/services"
	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	queryservices "github.com/athul0622-dotcom/local-service/internal/query/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	reviews  *memory.ReviewLog
	provider *handlers.ProviderHandler
	review   *handlers.ReviewHandler
	booking  *handlers.BookingHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := memory.NewCatalogStore([]*entities.Provider{
		{ID: "1", Name: "Manoj Kumar", Profession: "Plumber", Location: "Delhi", Phone: "+91 1", Rating: 4.5},
		{ID: "2", Name: "Priya Sharma", Profession: "Electrician", Location: "Mumbai", Phone: "+91 2", Rating: 4.8},
		{ID: "3", Name: "Asha Patil", Profession: "Plumber", Location: "Mumbai", Phone: "+91 3", Rating: 4.2},
	})
	require.NoError(t, err)

	reviews, err := memory.NewReviewLog([]*entities.Review{
		{ID: "rev1", ProviderID: "1", CustomerName: "Rahul S.", Rating: 5, CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	return &fixture{
		reviews: reviews,
		provider: handlers.NewProviderHandler(
			queryservices.NewListingQueryService(catalog, nil),
			services.NewProfileService(catalog, reviews, nil),
		),
		review:  handlers.NewReviewHandler(services.NewReviewService(catalog, reviews, nil), nil),
		booking: handlers.NewBookingHandler(services.NewBookingService(catalog, nil, nil)),
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func providerNames(body map[string]interface{}) []string {
	var out []string
	for _, p := range body["providers"].([]interface{}) {
		out = append(out, p.(map[string]interface{})["name"].(string))
	}
	return out
}

func TestProviderHandler_ListProviders(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"category=Plumber&sort=rating", []string{"Manoj Kumar", "Asha Patil"}},
		{"location=Mumbai&sort=name", []string{"Asha Patil", "Priya Sharma"}},
		{"q=mumbai", []string{"Priya Sharma", "Asha Patil"}},
		{"", []string{"Priya Sharma", "Manoj Kumar", "Asha Patil"}},
		{"sort=bogus", []string{"Priya Sharma", "Manoj Kumar", "Asha Patil"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			f.provider.ListProviders(w, httptest.NewRequest(http.MethodGet, "/api/providers?"+tt.query, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.want, providerNames(body))
			assert.EqualValues(t, len(tt.want), body["count"])
		})
	}

	t.Run("no matches", func(t *testing.T) {
		w := httptest.NewRecorder()
		f.provider.ListProviders(w, httptest.NewRequest(http.MethodGet, "/api/providers?location=Chennai", nil))
		body := decode(t, w)
		assert.Empty(t, body["providers"])
		assert.EqualValues(t, 0, body["count"])
	})
}

func TestProviderHandler_ListLocations(t *testing.T) {
	f := newFixture(t)
	w := httptest.NewRecorder()
	f.provider.ListLocations(w, httptest.NewRequest(http.MethodGet, "/api/providers/locations", nil))

	body := decode(t, w)
	assert.Equal(t, []interface{}{"Delhi", "Mumbai"}, body["locations"])
}

func TestProviderHandler_GetProvider(t *testing.T) {
	f := newFixture(t)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/providers/1", nil)
		req.SetPathValue("id", "1")
		w := httptest.NewRecorder()
		f.provider.GetProvider(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.EqualValues(t, 1, body["review_count"])
		assert.Equal(t, "4.5", body["display_rating"])
		assert.EqualValues(t, 4, body["full_stars"])
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/providers/nonexistent-id", nil)
		req.SetPathValue("id", "nonexistent-id")
		w := httptest.NewRecorder()
		f.provider.GetProvider(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decode(t, w)["error"], "not found")
	})
}

func TestListCategories(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.ListCategories(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	body := decode(t, w)
	assert.Len(t, body["categories"], 6)
}

func submitReview(f *fixture, providerID, body, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/providers/"+providerID+"/reviews", strings.NewReader(body))
	req.SetPathValue("id", providerID)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	f.review.SubmitReview(w, req)
	return w
}

func TestReviewHandler_SubmitReview(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		w := submitReview(f, "1", `{"customer_name":"Anil","rating":4,"comment":"Quick fix"}`, "10.0.0.1")

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "1", body["provider_id"])

		count, _ := f.reviews.Count(ctx)
		assert.Equal(t, 2, count)
	})

	t.Run("status mapping", func(t *testing.T) {
		tests := []struct {
			name       string
			providerID string
			body       string
			want       int
		}{
			{"rating zero", "1", `{"customer_name":"A","rating":0}`, http.StatusBadRequest},
			{"rating six", "1", `{"customer_name":"A","rating":6}`, http.StatusBadRequest},
			{"unknown provider", "nope", `{"customer_name":"A","rating":3}`, http.StatusNotFound},
			{"duplicate id", "1", `{"id":"rev1","customer_name":"A","rating":3}`, http.StatusConflict},
			{"malformed json", "1", `{"rating":`, http.StatusBadRequest},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				w := submitReview(f, tt.providerID, tt.body, "10.0.0.2")
				assert.Equal(t, tt.want, w.Code)

				count, _ := f.reviews.Count(ctx)
				assert.Equal(t, 1, count)
			})
		}
	})

	t.Run("identical submission is acknowledged once", func(t *testing.T) {
		f := newFixture(t)
		body := `{"customer_name":"Anil","rating":4,"comment":"Quick fix"}`

		assert.Equal(t, http.StatusCreated, submitReview(f, "1", body, "10.0.0.3").Code)
		w := submitReview(f, "1", body, "10.0.0.3")
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "duplicate_ignored", decode(t, w)["status"])

		count, _ := f.reviews.Count(ctx)
		assert.Equal(t, 2, count)
	})

	t.Run("rejected submission can be resent", func(t *testing.T) {
		f := newFixture(t)
		body := `{"customer_name":"  ","rating":4}`

		assert.Equal(t, http.StatusBadRequest, submitReview(f, "1", body, "10.0.0.4").Code)
		assert.Equal(t, http.StatusBadRequest, submitReview(f, "1", body, "10.0.0.4").Code)
	})

	t.Run("rate limited per client", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < 5; i++ {
			body := `{"customer_name":"A","rating":4,"comment":"visit ` + strconv.Itoa(i) + `"}`
			assert.Equal(t, http.StatusCreated, submitReview(f, "1", body, "10.0.0.5").Code)
		}

		w := submitReview(f, "1", `{"customer_name":"A","rating":4,"comment":"one more"}`, "10.0.0.5")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))

		assert.Equal(t, http.StatusCreated, submitReview(f, "1", `{"customer_name":"B","rating":4}`, "10.0.0.6").Code)
	})
}

func TestBookingHandler_RequestBooking(t *testing.T) {
	f := newFixture(t)

	post := func(providerID, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/providers/"+providerID+"/bookings", strings.NewReader(body))
		req.SetPathValue("id", providerID)
		w := httptest.NewRecorder()
		f.booking.RequestBooking(w, req)
		return w
	}

	w := post("2", `{"customer_name":"Meera","customer_phone":"+91 7","preferred_date":"2024-02-01"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "requested", body["status"])
	assert.NotEmpty(t, body["id"])

	assert.Equal(t, http.StatusBadRequest, post("2", `{"customer_name":"Meera"}`).Code)
	assert.Equal(t, http.StatusNotFound, post("nope", `{"customer_name":"A","customer_phone":"1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post("2", `not json`).Code)
}
