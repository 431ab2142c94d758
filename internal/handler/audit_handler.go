package handler

import (
	"errors"
	"net/http"

	"dmvcalc/internal/middleware"
	"dmvcalc/internal/service"
	"dmvcalc/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	group := router.Group("/api/dmv-calculations")
	group.Use(auth)
	{
		group.GET("/:id/history", h.GetHistory)
	}
}

// GetHistory lists the audit trail of one calculation
// @Summary      Get calculation history
// @Description  Returns the create, update and delete entries of a calculation, oldest first
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Calculation ID"
// @Success      200  {object}  response.Response{data=[]service.AuditLogResponse}
// @Router       /api/dmv-calculations/{id}/history [get]
func (h *AuditHandler) GetHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	logs, err := h.auditService.CalculationHistory(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrCalculationNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrForbidden):
			status = http.StatusForbidden
		}
		c.JSON(status, response.Error(status, "Failed to retrieve audit logs: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, logs))
}
