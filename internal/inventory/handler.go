package inventory

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// List current ledger
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ingredients": h.service.List()})
}

// --------------------------------------------------
// Add stock (merges into existing entry)
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req Ingredient
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ing, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ing)
}

// --------------------------------------------------
// Set quantity verbatim (stock recount)
// --------------------------------------------------
func (h *Handler) SetQuantity(c *gin.Context) {
	name := c.Param("name")

	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	found, err := h.service.SetQuantity(c.Request.Context(), name, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "quantity": req.Quantity})
}

// --------------------------------------------------
// Remove ingredient (all units)
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	name := c.Param("name")

	if err := h.service.Remove(c.Request.Context(), name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ingredient removed"})
}

// --------------------------------------------------
// Stock reporting
// --------------------------------------------------
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stats())
}

func (h *Handler) LowStock(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ingredients": h.service.LowStock()})
}

// --------------------------------------------------
// Bulk CSV import
// --------------------------------------------------
func (h *Handler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".txt" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be a CSV"})
		return
	}

	// Row and structural problems are part of the summary, not HTTP
	// errors: partial success must stay visible to the caller.
	summary := h.service.Import(c.Request.Context(), file)
	c.JSON(http.StatusOK, summary)
}
