package handler

import (
	"net/http"

	"device-checkout/internal/usecase/devicelog"
	"device-checkout/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LogHandler exposes the read-only audit trail to admins.
type LogHandler struct {
	service *devicelog.Service
}

func NewLogHandler(service *devicelog.Service) *LogHandler {
	return &LogHandler{service: service}
}

func (h *LogHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	logs := router.Group("/logs")
	{
		logs.GET("", h.ListLogs)
		logs.GET("/export", h.ExportLogs)
	}
}

func (h *LogHandler) ListLogs(c *gin.Context) {
	var req devicelog.ListLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	entries, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device logs retrieved successfully", entries)
}

func (h *LogHandler) ExportLogs(c *gin.Context) {
	var req devicelog.ListLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="device-logs.csv"`)
	if err := h.service.ExportCSV(c.Request.Context(), &req, c.Writer); err != nil {
		handleServiceError(c, err)
		return
	}
}
