package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "stockview/internal/errors"
	"stockview/internal/services"
)

// StockHandler handles the per-user stock CRUD endpoints.
//
// The item endpoints keep two quirks of the legacy API that clients
// depend on: a missing record answers 400 (not 404) with a
// {"res": "..."} body, and a successful delete answers with
// {"res": "Object deleted!"}. Success bodies are the bare Stock JSON,
// not a wrapper object.
type StockHandler struct {
	stockService services.StockServicer
	auditService services.AuditServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService services.StockServicer, auditService services.AuditServicer) *StockHandler {
	return &StockHandler{stockService: stockService, auditService: auditService}
}

// CreateStockRequest represents the request payload for creating a stock.
// Any owner claim in the body is ignored; the owner is always the
// authenticated caller.
type CreateStockRequest struct {
	Name  string    `json:"name" binding:"required,notblank,max=180"`
	Price time.Time `json:"price" binding:"required"`
}

// UpdateStockRequest represents the partial-update payload. Absent
// fields are left unchanged.
type UpdateStockRequest struct {
	Name  *string    `json:"name" binding:"omitempty,notblank,max=180"`
	Price *time.Time `json:"price"`
}

// ListStocks handles listing all stocks owned by the caller.
// @Summary     List stocks
// @Description Get all stock entries owned by the authenticated user
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Stock "Owned stocks"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stocks, err := h.stockService.ListStocks(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stocks)
}

// CreateStock handles creating a stock entry owned by the caller.
// @Summary     Create stock
// @Description Create a stock entry; the owner is bound to the caller
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateStockRequest true "Stock details"
// @Success     201 {object} models.Stock "Stock created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stocks [post]
func (h *StockHandler) CreateStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stock, err := h.stockService.CreateStock(userID, req.Name, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_STOCK", "stock", stock.ID, c.ClientIP(),
		map[string]interface{}{"name": stock.Name})

	c.JSON(http.StatusCreated, stock)
}

// GetStock handles retrieving a single stock by name.
// @Summary     Get stock by name
// @Description Get the caller's stock entry with the given name
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Stock name"
// @Success     200 {object} models.Stock "Stock details"
// @Failure     400 {object} map[string]string "Not found (legacy res body)"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stocks/{name} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stock, err := h.stockService.GetStock(userID, c.Param("name"))
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			respondNotFound(c)
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stock)
}

// UpdateStock handles partially updating a stock by name.
// @Summary     Update stock
// @Description Partially update the caller's stock entry with the given name
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       name    path string             true "Stock name"
// @Param       request body UpdateStockRequest true "Fields to update"
// @Success     200 {object} models.Stock "Updated stock"
// @Failure     400 {object} ErrorResponse "Invalid input or not found"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stocks/{name} [put]
func (h *StockHandler) UpdateStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	name := c.Param("name")
	stock, err := h.stockService.UpdateStock(userID, name, services.StockUpdate{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			respondNotFound(c)
			return
		}
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_STOCK", "stock", stock.ID, c.ClientIP(),
		map[string]interface{}{"name": name})

	c.JSON(http.StatusOK, stock)
}

// DeleteStock handles deleting a stock by name.
// @Summary     Delete stock
// @Description Delete the caller's stock entry with the given name
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Stock name"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     400 {object} map[string]string "Not found (legacy res body)"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stocks/{name} [delete]
func (h *StockHandler) DeleteStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name := c.Param("name")
	if err := h.stockService.DeleteStock(userID, name); err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			respondNotFound(c)
			return
		}
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_STOCK", "stock", 0, c.ClientIP(),
		map[string]interface{}{"name": name})

	c.JSON(http.StatusOK, gin.H{"res": "Object deleted!"})
}

// respondNotFound writes the legacy bad-request body for a missing stock.
func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"res": apperrors.ErrStockNotFound.Message})
}
