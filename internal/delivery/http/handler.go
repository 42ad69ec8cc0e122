package http

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
)

const serviceName = "wardrobelens-backend"

// CapsuleComposer builds capsules for one request
type CapsuleComposer interface {
	CreateCapsules(ctx context.Context, request *domain.CapsuleRequest) ([]domain.Capsule, error)
}

// HandlerConfig holds presentation settings for the handler
type HandlerConfig struct {
	PublicBaseURL    string // image refs are built on top of it
	ImageContentType string
	Version          string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	composer         CapsuleComposer
	images           domain.ImageSource
	publicBaseURL    string
	imageContentType string
	version          string
}

// NewHandler creates a new HTTP handler. composer and images may be nil;
// the matching endpoints then answer 503.
func NewHandler(composer CapsuleComposer, images domain.ImageSource, cfg HandlerConfig) *Handler {
	if cfg.ImageContentType == "" {
		cfg.ImageContentType = "image/webp"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	return &Handler{
		composer:         composer,
		images:           images,
		publicBaseURL:    strings.TrimRight(cfg.PublicBaseURL, "/"),
		imageContentType: cfg.ImageContentType,
		version:          cfg.Version,
	}
}

// hintsBody is the nested form of caller hints
type hintsBody struct {
	Gender   string `json:"gender"`
	AgeGroup string `json:"age_group"`
	Season   string `json:"season"`
	Style    string `json:"style"`
}

// capsuleRequestBody accepts both the nested hints object and the flat
// fields the browser extension sends.
type capsuleRequestBody struct {
	Query       string     `json:"query"`
	ProductName string     `json:"product_name"`
	ProductID   any        `json:"product_id"`
	NmID        any        `json:"nm_id"`
	Gender      string     `json:"gender"`
	AgeGroup    string     `json:"age_group"`
	Season      string     `json:"season"`
	Style       string     `json:"style"`
	Hints       *hintsBody `json:"hints"`
}

// ItemResponse is one product in a capsule response
type ItemResponse struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Price         *float64 `json:"price"`
	FeedbackCount *int     `json:"feedback_count"`
	Rating        *float64 `json:"rating"`
	Link          string   `json:"link"`
	ImageRef      string   `json:"image_ref"`
}

// CapsuleResponse is one capsule in a capsule response
type CapsuleResponse struct {
	Outfit      []ItemResponse `json:"outfit"`
	AnchorStyle domain.Style   `json:"anchor_style"`
}

// Root answers with a short service banner
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Wardrobe server is running. Use POST /api/v1/capsule",
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": h.version,
	})
}

// CreateCapsule handles capsule composition requests
func (h *Handler) CreateCapsule(c *gin.Context) {
	if h.composer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "capsule service not configured"})
		return
	}

	var body capsuleRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	query := strings.TrimSpace(body.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must not be empty"})
		return
	}

	request := &domain.CapsuleRequest{
		Query:       query,
		ProductName: strings.TrimSpace(body.ProductName),
		ProductID:   firstProductID(body.ProductID, body.NmID),
		Hints:       body.hints(),
	}

	capsules, err := h.composer.CreateCapsules(c.Request.Context(), request)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response := make([]CapsuleResponse, 0, len(capsules))
	for _, capsule := range capsules {
		response = append(response, h.toCapsuleResponse(capsule))
	}
	c.JSON(http.StatusOK, response)
}

// GetImage streams the first picture of a product
func (h *Handler) GetImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image source not configured"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	data, err := h.images.Fetch(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		logging.Error().Err(err).Uint64("product_id", id).Msg("[IMAGE] fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load image"})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, h.imageContentType, data)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAnchorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing found for this query"})
	case errors.Is(err, domain.ErrSearchFailure):
		logging.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("[CAPSULE] search failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "product search is unavailable"})
	default:
		// raw error stays in the log only
		logging.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("[CAPSULE] unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) toCapsuleResponse(capsule domain.Capsule) CapsuleResponse {
	items := make([]ItemResponse, 0, len(capsule.Outfit))
	for _, p := range capsule.Outfit {
		items = append(items, ItemResponse{
			ID:            p.ID,
			Name:          p.Name,
			Brand:         p.Brand,
			Price:         p.Price,
			FeedbackCount: p.FeedbackCount,
			Rating:        p.Rating,
			Link:          p.Link,
			ImageRef:      h.imageRef(p.ID),
		})
	}
	return CapsuleResponse{Outfit: items, AnchorStyle: capsule.AnchorStyle}
}

func (h *Handler) imageRef(id uint64) string {
	return fmt.Sprintf("%s/api/v1/image/%d", h.publicBaseURL, id)
}

// hints merges the nested object over the flat fields
func (b *capsuleRequestBody) hints() domain.QueryHintOverrides {
	hints := domain.QueryHintOverrides{
		Gender:   b.Gender,
		AgeGroup: b.AgeGroup,
		Season:   b.Season,
		Style:    b.Style,
	}
	if b.Hints != nil {
		if b.Hints.Gender != "" {
			hints.Gender = b.Hints.Gender
		}
		if b.Hints.AgeGroup != "" {
			hints.AgeGroup = b.Hints.AgeGroup
		}
		if b.Hints.Season != "" {
			hints.Season = b.Hints.Season
		}
		if b.Hints.Style != "" {
			hints.Style = b.Hints.Style
		}
	}
	return hints
}

// firstProductID returns the first usable product id among values.
// Numbers and numeric strings are accepted; anything else is ignored.
func firstProductID(values ...any) *uint64 {
	for _, v := range values {
		if id, ok := parseProductID(v); ok {
			return &id
		}
	}
	return nil
}

func parseProductID(v any) (uint64, bool) {
	switch id := v.(type) {
	case float64:
		if id <= 0 || id != math.Trunc(id) || id > math.MaxUint64 {
			return 0, false
		}
		return uint64(id), true
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
		if err != nil || parsed == 0 {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
