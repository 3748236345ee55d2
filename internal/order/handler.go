package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"comanda/internal/menu"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Current order
// --------------------------------------------------
func (h *Handler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"lines": h.service.Lines(),
		"total": h.service.Total(),
	})
}

// --------------------------------------------------
// Add line (availability-gated)
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	var req struct {
		Menu     string `json:"menu"`
		Quantity int    `json:"quantity"`
	}
	if err := c.BindJSON(&req); err != nil || req.Menu == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	err := h.service.AddItem(c.Request.Context(), req.Menu, req.Quantity)
	switch {
	case errors.Is(err, menu.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
	case errors.Is(err, ErrUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{
			"lines": h.service.Lines(),
			"total": h.service.Total(),
		})
	}
}

// --------------------------------------------------
// Remove line (decrement or drop)
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	name := c.Param("name")

	quantity := 1
	if q := c.Query("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
			return
		}
		quantity = n
	}

	if !h.service.RemoveItem(name, quantity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lines": h.service.Lines(),
		"total": h.service.Total(),
	})
}

// --------------------------------------------------
// Checkout (atomic against the ledger)
// --------------------------------------------------
func (h *Handler) Checkout(c *gin.Context) {
	receipt, err := h.service.Checkout(c.Request.Context())
	switch {
	case errors.Is(err, ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		// a fulfilled order that failed to persist still carries a
		// receipt; hand it back so the sale is not lost
		if receipt != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "receipt": receipt})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, receipt)
	}
}

// --------------------------------------------------
// Order history
// --------------------------------------------------
func (h *Handler) History(c *gin.Context) {
	receipts, err := h.service.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": receipts})
}
