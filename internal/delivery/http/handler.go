package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	shopping *usecase.ShoppingService
	items    *usecase.ItemService
}

// NewHandler creates a new HTTP handler
func NewHandler(shopping *usecase.ShoppingService, items *usecase.ItemService) *Handler {
	return &Handler{
		shopping: shopping,
		items:    items,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopsense-backend",
		"version": "1.0.0",
	})
}

// searchRequest is the body for POST /api/v1/search
type searchRequest struct {
	Items    []string `json:"items" binding:"required"`
	Retailer string   `json:"retailer"`
	Sort     string   `json:"sort"`
}

// Search runs the retrieval pipeline for every item in the request and
// returns the results keyed by item name
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items list is required"})
		return
	}

	pref := domain.ParseRetailer(req.Retailer)
	policy := domain.ParseSortPolicy(req.Sort)

	results := h.shopping.ProcessList(c.Request.Context(), req.Items, pref, policy)

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ExtractItems turns an uploaded image into a shopping item list. The body
// is the raw image bytes.
func (h *Handler) ExtractItems(c *gin.Context) {
	image, err := io.ReadAll(c.Request.Body)
	if err != nil || len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image body is required"})
		return
	}

	items, err := h.items.ItemsFromImage(c.Request.Context(), image)
	if err != nil {
		if errors.Is(err, domain.ErrNoTextDetected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no text was detected in the uploaded image"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "text extraction failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// parseRequest is the body for POST /api/v1/items/parse
type parseRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseItems turns a free-text shopping request into an item list
func (h *Handler) ParseItems(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	items, err := h.items.ItemsFromText(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrUnparsableItems) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not parse items, please rephrase your request"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// resolveRequest is the body for POST /api/v1/offers/resolve
type resolveRequest struct {
	Offer    domain.Offer `json:"offer" binding:"required"`
	Retailer string       `json:"retailer"`
}

// ResolveLink returns the best actionable purchase link for a chosen offer
func (h *Handler) ResolveLink(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offer is required"})
		return
	}

	pref := domain.ParseRetailer(req.Retailer)
	link := h.shopping.ResolveLink(c.Request.Context(), req.Offer, pref)

	c.JSON(http.StatusOK, gin.H{"link": link})
}

// explainRequest is the body for POST /api/v1/offers/explain
type explainRequest struct {
	Item         string         `json:"item" binding:"required"`
	Chosen       domain.Offer   `json:"chosen" binding:"required"`
	Alternatives []domain.Offer `json:"alternatives"`
}

// Explain returns a short justification for the chosen offer
func (h *Handler) Explain(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item and chosen offer are required"})
		return
	}

	explanation := h.shopping.ExplainChoice(c.Request.Context(), req.Item, req.Chosen, req.Alternatives)

	c.JSON(http.StatusOK, gin.H{"explanation": explanation})
}
