package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/resto/backend/internal/application/alerting"
)

// AlertHandler handles stock alert endpoints
type AlertHandler struct {
	BaseHandler
	alertService *alerting.AlertService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService *alerting.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// GetLowStockAlerts godoc
// @ID           getLowStockAlerts
// @Summary      List low stock alerts
// @Description  Returns products at or below their low stock threshold, most severe first
// @Tags         alerts
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /inventory/alerts/low-stock [get]
func (h *AlertHandler) GetLowStockAlerts(c *gin.Context) {
	alerts, err := h.alertService.GetLowStockAlerts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, alerts)
}

// GetOutOfStockAlerts godoc
// @ID           getOutOfStockAlerts
// @Summary      List out of stock alerts
// @Description  Returns products whose quantity is exactly zero
// @Tags         alerts
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /inventory/alerts/out-of-stock [get]
func (h *AlertHandler) GetOutOfStockAlerts(c *gin.Context) {
	alerts, err := h.alertService.GetOutOfStockAlerts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, alerts)
}

// GetDashboardSummary godoc
// @ID           getAlertDashboardSummary
// @Summary      Get stock alert summary
// @Description  Returns aggregate counts and a human-readable stock status message
// @Tags         alerts
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /inventory/alerts/summary [get]
func (h *AlertHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.alertService.GetDashboardSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// RegisterRoutes registers all alert routes
func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	alerts := rg.Group("/inventory/alerts")
	{
		alerts.GET("/low-stock", h.GetLowStockAlerts)
		alerts.GET("/out-of-stock", h.GetOutOfStockAlerts)
		alerts.GET("/summary", h.GetDashboardSummary)
	}
}
