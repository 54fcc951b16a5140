package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veggiekiosk/backend/internal/domain"
	"github.com/veggiekiosk/backend/internal/qr"
	"github.com/veggiekiosk/backend/internal/usecase"
)

// maxImageBytes caps uploaded scan images.
const maxImageBytes = 10 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis *usecase.AnalysisService
	catalog  domain.CatalogRepository
	cart     domain.CartRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(analysis *usecase.AnalysisService, catalog domain.CatalogRepository, cart domain.CartRepository) *Handler {
	return &Handler{
		analysis: analysis,
		catalog:  catalog,
		cart:     cart,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "veggiekiosk-backend",
		"version": "1.0.0",
	})
}

// AnalyzeImage accepts a multipart image upload plus the kiosk session id and
// runs the scan pipeline. Vision failures abort the scan; everything else
// degrades into the result payload.
func (h *Handler) AnalyzeImage(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		sessionID = c.GetHeader("X-Session-ID")
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	result, err := h.analysis.Analyze(c.Request.Context(), sessionID, image, mimeType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScanInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "a scan is already in progress for this session"})
		case errors.Is(err, domain.ErrInferenceFailed):
			log.Printf("[HTTP] analysis failed for session %s: %v", sessionID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to analyze image, please try again"})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[HTTP] unexpected analysis error for session %s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListVegetables returns the full catalog ordered by name.
func (h *Handler) ListVegetables(c *gin.Context) {
	records, err := h.catalog.ListVegetables(c.Request.Context())
	if err != nil {
		log.Printf("[HTTP] catalog list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vegetables": records})
}

// addItemRequest carries a confirmed scan into the cart.
type addItemRequest struct {
	SessionID         string  `json:"session_id" binding:"required"`
	VegetableID       string  `json:"vegetable_id"`
	VegetableName     string  `json:"vegetable_name" binding:"required"`
	WeightGrams       float64 `json:"weight_g"`
	UnitPrice         float64 `json:"unit_price"`
	TotalPrice        float64 `json:"total_price"`
	ConfidencePercent int     `json:"confidence_score"`
}

// AddCartItem persists a confirmed line item for a session.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &domain.CartLineItem{
		SessionID:         req.SessionID,
		VegetableID:       req.VegetableID,
		VegetableName:     req.VegetableName,
		WeightGrams:       req.WeightGrams,
		UnitPrice:         req.UnitPrice,
		TotalPrice:        req.TotalPrice,
		ConfidencePercent: req.ConfidencePercent,
	}

	if err := h.cart.AddItem(c.Request.Context(), item); err != nil {
		log.Printf("[HTTP] cart insert failed for session %s: %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item to cart"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListCartItems returns a session's line items, newest first, plus the total.
func (h *Handler) ListCartItems(c *gin.Context) {
	sessionID := c.Param("sessionId")

	items, err := h.cart.ListItems(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("[HTTP] cart list failed for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}

	total, err := h.cart.CartTotal(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("[HTTP] cart total failed for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute cart total"})
		return
	}

	if items == nil {
		items = []domain.CartLineItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// CartTotal returns only a session's running total.
func (h *Handler) CartTotal(c *gin.Context) {
	sessionID := c.Param("sessionId")

	total, err := h.cart.CartTotal(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("[HTTP] cart total failed for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute cart total"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}

// RemoveCartItem deletes one line item by id.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	itemID := c.Param("id")

	if err := h.cart.RemoveItem(c.Request.Context(), itemID); err != nil {
		log.Printf("[HTTP] cart remove failed for item %s: %v", itemID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearCart deletes every line item for a session.
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	if err := h.cart.ClearSession(c.Request.Context(), sessionID); err != nil {
		log.Printf("[HTTP] cart clear failed for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}

	c.Status(http.StatusNoContent)
}

// receiptRequest describes the confirmation screen's QR request.
type receiptRequest struct {
	Vegetable   string  `json:"vegetable" binding:"required"`
	WeightGrams float64 `json:"weight"`
	Price       float64 `json:"price"`
	SessionID   string  `json:"sessionId" binding:"required"`
	Size        int     `json:"size"`
}

// ReceiptQR renders the receipt payload as a PNG QR code. The timestamp is
// assigned server-side at render time.
func (h *Handler) ReceiptQR(c *gin.Context) {
	var req receiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	png, err := qr.Render(qr.Payload{
		Vegetable:   req.Vegetable,
		WeightGrams: req.WeightGrams,
		Price:       req.Price,
		Timestamp:   time.Now().UTC(),
		SessionID:   req.SessionID,
	}, req.Size)
	if err != nil {
		log.Printf("[HTTP] qr render failed for session %s: %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render qr code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
