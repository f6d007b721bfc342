// Package handler exposes the product catalog over HTTP.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/product/domain"
	"storefront/internal/product/service"
	"storefront/internal/server/middleware"
)

type Handler struct {
	products *service.Service
	log      *zap.Logger
}

func NewHandler(products *service.Service, log *zap.Logger) *Handler {
	return &Handler{products: products, log: log}
}

// RegisterRoutes mounts the product endpoints on the given group. Reading a
// product is public; everything else requires a user.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/products", middleware.RequireUser(), h.CreateProduct)
	r.GET("/api/products/:productId", h.GetProduct)
	r.PUT("/api/products/:productId", middleware.RequireUser(), h.UpdateProduct)
	r.DELETE("/api/products/:productId", middleware.RequireUser(), h.DeleteProduct)
}

type productRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required,min=20"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image" binding:"required"`
}

type productResponse struct {
	ProductID   string    `json:"productId"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(p *domain.Product) productResponse {
	return productResponse{
		ProductID:   p.ProductID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateProduct handles POST /api/products.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := middleware.PrincipalFromContext(c)
	created, err := h.products.Create(c.Request.Context(), p.UserID(), service.Input{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		h.log.Error("create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, toResponse(created))
}

// GetProduct handles GET /api/products/:productId.
func (h *Handler) GetProduct(c *gin.Context) {
	prod, err := h.products.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.writeError(c, err, "get product")
		return
	}
	c.JSON(http.StatusOK, toResponse(prod))
}

// UpdateProduct handles PUT /api/products/:productId.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := middleware.PrincipalFromContext(c)
	updated, err := h.products.Update(c.Request.Context(), p.UserID(), c.Param("productId"), service.Input{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		h.writeError(c, err, "update product")
		return
	}
	c.JSON(http.StatusOK, toResponse(updated))
}

// DeleteProduct handles DELETE /api/products/:productId.
func (h *Handler) DeleteProduct(c *gin.Context) {
	p := middleware.PrincipalFromContext(c)
	if err := h.products.Delete(c.Request.Context(), p.UserID(), c.Param("productId")); err != nil {
		h.writeError(c, err, "delete product")
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) writeError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		h.log.Error(op, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
