package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto/backend/internal/application/orderinv"
	"github.com/resto/backend/internal/domain/inventory"
)

// OrderInventoryHandler handles order inventory accounting endpoints:
// requirement calculation, availability checks, deduction and adjustments
type OrderInventoryHandler struct {
	BaseHandler
	calculator *orderinv.RequirementCalculator
	checker    *orderinv.AvailabilityChecker
	deduction  *orderinv.DeductionService
}

// NewOrderInventoryHandler creates a new OrderInventoryHandler
func NewOrderInventoryHandler(
	calculator *orderinv.RequirementCalculator,
	checker *orderinv.AvailabilityChecker,
	deduction *orderinv.DeductionService,
) *OrderInventoryHandler {
	return &OrderInventoryHandler{
		calculator: calculator,
		checker:    checker,
		deduction:  deduction,
	}
}

// OrderLinesRequest carries the order lines for requirement and availability endpoints
// @Description Order lines to compute inventory requirements for
type OrderLinesRequest struct {
	Lines []orderinv.OrderLine `json:"lines" binding:"required,min=1,dive"`
}

// DeductRequest is the request body for committing an order deduction
// @Description Request body for deducting the stock an order consumes
type DeductRequest struct {
	OrderID string               `json:"order_id" binding:"required"`
	Lines   []orderinv.OrderLine `json:"lines" binding:"required,min=1,dive"`
	// AllowNegativeStock records the deduction even when stock does not cover
	// it, letting quantities go negative
	AllowNegativeStock bool `json:"allow_negative_stock"`
}

// AdjustmentsRequest is the request body for a batch of manual stock corrections
// @Description Batch of manual stock adjustments
type AdjustmentsRequest struct {
	Adjustments []orderinv.AdjustmentUpdate `json:"adjustments" binding:"required,min=1,dive"`
	// ReferenceID links the resulting ledger entries to the source document,
	// such as a delivery note or stocktake sheet
	ReferenceID string `json:"reference_id" example:"delivery-2026-0142"`
}

// LedgerEntryResponse represents one inventory ledger entry in API responses
// @Description Append-only inventory ledger entry
type LedgerEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	TransactionType string          `json:"transaction_type" example:"sale"`
	QuantityChange  decimal.Decimal `json:"quantity_change" example:"-0.125"`
	ReferenceType   string          `json:"reference_type" example:"order"`
	ReferenceID     string          `json:"reference_id,omitempty" example:"order-1042"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       string          `json:"created_at" example:"2026-01-15T10:30:00Z"`
}

// ReconciliationResponse reports the drift between stock and ledger
// @Description Difference between a product's current quantity and the sum of its ledger entries
type ReconciliationResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Drift     decimal.Decimal `json:"drift"`
}

// ComputeOrderRequirements godoc
// @ID           computeOrderRequirements
// @Summary      Compute order inventory requirements
// @Description  Computes the total product quantities an order would consume, merged across lines
// @Tags         order-inventory
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /order-inventory/requirements [post]
func (h *OrderInventoryHandler) ComputeOrderRequirements(c *gin.Context) {
	var req OrderLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	requirements, err := h.calculator.ComputeOrderRequirement(c.Request.Context(), req.Lines)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, requirements)
}

// ComputeRecipeRequirements godoc
// @ID           computeRecipeRequirements
// @Summary      Compute recipe inventory requirements
// @Description  Computes the product quantities needed to prepare a number of servings of a recipe
// @Tags         order-inventory
// @Produce      json
// @Param        id path string true "Recipe ID" format(uuid)
// @Param        servings query int false "Number of servings" default(1)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /recipes/{id}/requirements [get]
func (h *OrderInventoryHandler) ComputeRecipeRequirements(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	servings := 1
	if raw := c.Query("servings"); raw != "" {
		servings, err = strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid servings value")
			return
		}
	}

	requirements, err := h.calculator.ComputeRecipeRequirement(c.Request.Context(), recipeID, servings)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, requirements)
}

// CheckAvailability godoc
// @ID           checkOrderAvailability
// @Summary      Check order availability
// @Description  Checks whether current stock covers an order, without modifying anything
// @Tags         order-inventory
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /order-inventory/check [post]
func (h *OrderInventoryHandler) CheckAvailability(c *gin.Context) {
	var req OrderLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.checker.CheckOrder(c.Request.Context(), req.Lines)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Deduct godoc
// @ID           deductOrderStock
// @Summary      Deduct stock for an order
// @Description  Atomically deducts the stock an order consumes and appends one ledger entry per product. Each order is deducted at most once.
// @Tags         order-inventory
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /order-inventory/deduct [post]
func (h *OrderInventoryHandler) Deduct(c *gin.Context) {
	var req DeductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.deduction.DeductForOrder(c.Request.Context(), req.OrderID, req.Lines, orderinv.DeductOptions{
		SkipAvailabilityCheck: req.AllowNegativeStock,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetOrderDeductions godoc
// @ID           getOrderDeductions
// @Summary      Get deductions for an order
// @Description  Returns the ledger entries recorded when the order was deducted
// @Tags         order-inventory
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /order-inventory/orders/{orderId}/deductions [get]
func (h *OrderInventoryHandler) GetOrderDeductions(c *gin.Context) {
	orderID := c.Param("orderId")

	entries, err := h.deduction.GetOrderDeductions(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toLedgerEntryResponses(entries))
}

// Adjust godoc
// @ID           adjustStock
// @Summary      Apply manual stock adjustments
// @Description  Atomically applies a batch of manual corrections (restock, waste, adjustment) and records each in the ledger
// @Tags         order-inventory
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /inventory/adjustments [post]
func (h *OrderInventoryHandler) Adjust(c *gin.Context) {
	var req AdjustmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, err := h.deduction.BatchAdjust(c.Request.Context(), req.Adjustments, req.ReferenceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, results)
}

// Reconcile godoc
// @ID           reconcileProduct
// @Summary      Reconcile a product against its ledger
// @Description  Compares a product's current quantity with the sum of its ledger entries
// @Tags         order-inventory
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /inventory/products/{id}/reconciliation [get]
func (h *OrderInventoryHandler) Reconcile(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	drift, err := h.deduction.ReconcileProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ReconciliationResponse{ProductID: productID, Drift: drift})
}

// RegisterRoutes registers all order inventory routes
func (h *OrderInventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/order-inventory")
	{
		orders.POST("/requirements", h.ComputeOrderRequirements)
		orders.POST("/check", h.CheckAvailability)
		orders.POST("/deduct", h.Deduct)
		orders.GET("/orders/:orderId/deductions", h.GetOrderDeductions)
	}

	rg.GET("/recipes/:id/requirements", h.ComputeRecipeRequirements)

	stock := rg.Group("/inventory")
	{
		stock.POST("/adjustments", h.Adjust)
		stock.GET("/products/:id/reconciliation", h.Reconcile)
	}
}

func toLedgerEntryResponses(entries []inventory.InventoryTransaction) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp := LedgerEntryResponse{
			ID:              entry.ID,
			ProductID:       entry.ProductID,
			TransactionType: entry.TransactionType.String(),
			QuantityChange:  entry.QuantityChange,
			ReferenceType:   entry.ReferenceType.String(),
			Notes:           entry.Notes,
			CreatedAt:       entry.CreatedAt.Format(time.RFC3339),
		}
		if entry.ReferenceID != nil {
			resp.ReferenceID = *entry.ReferenceID
		}
		responses = append(responses, resp)
	}
	return responses
}
