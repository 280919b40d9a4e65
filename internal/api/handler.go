package api

import (
	"errors"
	"net/http"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	inventory *service.InventoryService
}

// NewHandler creates a new HTTP handler
func NewHandler(inventory *service.InventoryService) *Handler {
	return &Handler{
		inventory: inventory,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(requestLogger())

	router.GET("/health", h.healthCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/products", h.createProduct)
		v1.POST("/products/adjust", h.adjustQuantity)
		v1.GET("/products", h.listProducts)
		v1.GET("/transactions", h.listTransactions)
		v1.GET("/transactions/report", h.transactionReport)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// createProductRequest carries raw user-entered strings; all parsing and
// validation happens in the service layer.
type createProductRequest struct {
	Name           string `json:"name"`
	Price          string `json:"price"`
	Quantity       string `json:"quantity"`
	AlertThreshold string `json:"alert_threshold"`
}

// createProduct handles product registration
func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.inventory.CreateProduct(req.Name, req.Price, req.Quantity, req.AlertThreshold)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

type adjustQuantityRequest struct {
	Product string `json:"product"`
	Delta   string `json:"delta"`
}

// adjustQuantity handles stock quantity adjustments
func (h *Handler) adjustQuantity(c *gin.Context) {
	var req adjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	quantity, err := h.inventory.AdjustQuantity(req.Product, req.Delta)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":  req.Product,
		"quantity": quantity,
	})
}

// listProducts returns the current stock table
func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": h.inventory.Products(),
	})
}

// listTransactions returns the transaction log in insertion order
func (h *Handler) listTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"transactions": h.inventory.Transactions(),
	})
}

// transactionReport returns the formatted report lines
func (h *Handler) transactionReport(c *gin.Context) {
	lines := []string{}
	for line := range h.inventory.TransactionReport() {
		lines = append(lines, line)
	}
	c.JSON(http.StatusOK, gin.H{
		"report": lines,
	})
}

// writeError maps the service error taxonomy onto HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input",
			"details": err.Error(),
		})
	case errors.Is(err, models.ErrDuplicateProduct):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, models.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Operation failed",
			"details": err.Error(),
		})
	}
}
