package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobelens/backend/config"
	"github.com/wardrobelens/backend/internal/domain"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// MockComposer records the last request and returns a canned result
type MockComposer struct {
	capsules    []domain.Capsule
	err         error
	lastRequest *domain.CapsuleRequest
}

func (m *MockComposer) CreateCapsules(ctx context.Context, request *domain.CapsuleRequest) ([]domain.Capsule, error) {
	m.lastRequest = request
	return m.capsules, m.err
}

// MockImageSource serves images from a map
type MockImageSource struct {
	images map[uint64][]byte
	err    error
}

func (m *MockImageSource) Fetch(ctx context.Context, productID uint64) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.images[productID]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	return data, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"chrome-extension://*", "http://localhost:3000"},
			PublicBaseURL:  "http://localhost:8080/",
		},
		Cache: config.CacheConfig{Type: "memory"},
	}
}

// setupTestRouter creates a test router around the given collaborators
func setupTestRouter(composer CapsuleComposer, images domain.ImageSource) *gin.Engine {
	handler := NewHandler(composer, images, HandlerConfig{PublicBaseURL: testConfig().Server.PublicBaseURL})
	return SetupRouter(testConfig(), handler, nil)
}

func sampleCapsules() []domain.Capsule {
	price := 4599.0
	rating := 4.7
	feedbacks := 320
	anchor := domain.ProductCard{
		ID: 111, Name: "Ботинки зимние мужские", Brand: "Trek",
		Price: &price, Rating: &rating, FeedbackCount: &feedbacks,
		Link: domain.ProductLink(111),
	}
	capsules := make([]domain.Capsule, 0, 3)
	for i := 0; i < 3; i++ {
		complement := domain.ProductCard{ID: uint64(200 + i), Name: fmt.Sprintf("Пуховик %d", i), Link: domain.ProductLink(uint64(200 + i))}
		capsules = append(capsules, domain.Capsule{
			Outfit:      []domain.ProductCard{anchor, complement},
			AnchorStyle: domain.StyleCasual,
		})
	}
	return capsules
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(nil, nil)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "wardrobelens-backend", response["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRootEndpoint(t *testing.T) {
	router := setupTestRouter(nil, nil)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "POST /api/v1/capsule")
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(nil, nil)

	req, _ := http.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestCreateCapsuleEndpoint(t *testing.T) {
	t.Run("returns capsules with image refs", func(t *testing.T) {
		composer := &MockComposer{capsules: sampleCapsules()}
		router := setupTestRouter(composer, nil)

		w := postJSON(router, "/api/v1/capsule", `{"query": "ботинки зимние мужские"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var response []CapsuleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response, 3)
		for _, capsule := range response {
			require.Len(t, capsule.Outfit, 2)
			assert.Equal(t, uint64(111), capsule.Outfit[0].ID)
			assert.Equal(t, domain.StyleCasual, capsule.AnchorStyle)
		}
		first := response[0].Outfit[0]
		assert.Equal(t, "http://localhost:8080/api/v1/image/111", first.ImageRef)
		assert.Equal(t, "https://www.wildberries.ru/catalog/111/detail.aspx", first.Link)
		require.NotNil(t, first.Price)
		assert.InDelta(t, 4599.0, *first.Price, 0.001)
	})

	t.Run("passes extension fields through", func(t *testing.T) {
		composer := &MockComposer{capsules: sampleCapsules()}
		router := setupTestRouter(composer, nil)

		body := `{"query": " Платье ", "product_name": "Платье летнее", "nm_id": "98765",
			"gender": "female", "season": "summer", "hints": {"style": "casual", "season": "spring"}}`
		w := postJSON(router, "/api/capsule", body)

		require.Equal(t, http.StatusOK, w.Code)
		req := composer.lastRequest
		require.NotNil(t, req)
		assert.Equal(t, "Платье", req.Query)
		assert.Equal(t, "Платье летнее", req.ProductName)
		require.NotNil(t, req.ProductID)
		assert.Equal(t, uint64(98765), *req.ProductID)
		assert.Equal(t, domain.QueryHintOverrides{Gender: "female", Season: "spring", Style: "casual"}, req.Hints)
	})

	t.Run("numeric product id wins over nm_id", func(t *testing.T) {
		composer := &MockComposer{capsules: sampleCapsules()}
		router := setupTestRouter(composer, nil)

		w := postJSON(router, "/api/v1/capsule", `{"query": "куртка", "product_id": 555, "nm_id": 777}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, composer.lastRequest.ProductID)
		assert.Equal(t, uint64(555), *composer.lastRequest.ProductID)
	})

	t.Run("unusable product id is ignored", func(t *testing.T) {
		composer := &MockComposer{capsules: sampleCapsules()}
		router := setupTestRouter(composer, nil)

		w := postJSON(router, "/api/v1/capsule", `{"query": "куртка", "nm_id": "abc"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, composer.lastRequest.ProductID)
	})

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "invalid JSON", body: `{"query":`, wantStatus: http.StatusBadRequest},
		{name: "missing query", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "blank query", body: `{"query": "   "}`, wantStatus: http.StatusBadRequest},
		{name: "anchor not found", body: `{"query": "x"}`, err: domain.ErrAnchorNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid request from service", body: `{"query": "x"}`, err: fmt.Errorf("%w: bad", domain.ErrInvalidRequest), wantStatus: http.StatusBadRequest},
		{name: "search failure", body: `{"query": "x"}`, err: fmt.Errorf("%w: timeout", domain.ErrSearchFailure), wantStatus: http.StatusBadGateway},
		{
			name: "unexpected error is opaque", body: `{"query": "x"}`,
			err: errors.New("secret database path /var/lib/x"), wantStatus: http.StatusInternalServerError,
			wantError: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(&MockComposer{err: tt.err}, nil)

			w := postJSON(router, "/api/v1/capsule", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotEmpty(t, response["error"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, response["error"])
			}
		})
	}

	t.Run("service not configured", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		w := postJSON(router, "/api/v1/capsule", `{"query": "x"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGetImageEndpoint(t *testing.T) {
	images := &MockImageSource{images: map[uint64][]byte{111: []byte("webp-bytes")}}

	tests := []struct {
		name       string
		source     domain.ImageSource
		path       string
		wantStatus int
	}{
		{name: "found", source: images, path: "/api/v1/image/111", wantStatus: http.StatusOK},
		{name: "legacy path", source: images, path: "/api/image/111", wantStatus: http.StatusOK},
		{name: "not found", source: images, path: "/api/v1/image/222", wantStatus: http.StatusNotFound},
		{name: "invalid id", source: images, path: "/api/v1/image/abc", wantStatus: http.StatusBadRequest},
		{name: "zero id", source: images, path: "/api/v1/image/0", wantStatus: http.StatusBadRequest},
		{name: "upstream failure", source: &MockImageSource{err: errors.New("boom")}, path: "/api/v1/image/111", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(nil, tt.source)

			req, _ := http.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "image/webp", w.Header().Get("Content-Type"))
				assert.Equal(t, "webp-bytes", w.Body.String())
			}
		})
	}

	t.Run("image source not configured", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		req, _ := http.NewRequest("GET", "/api/v1/image/111", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestParseProductID(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   uint64
		wantOK bool
	}{
		{"number", float64(123), 123, true},
		{"numeric string", " 456 ", 456, true},
		{"fraction", 1.5, 0, false},
		{"negative", float64(-3), 0, false},
		{"zero", float64(0), 0, false},
		{"text", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseProductID(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
