package handler

import (
	"net/http"

	"device-checkout/internal/usecase/repair"
	"device-checkout/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RepairHandler struct {
	service *repair.Service
}

func NewRepairHandler(service *repair.Service) *RepairHandler {
	return &RepairHandler{service: service}
}

func (h *RepairHandler) RegisterRoutes(router *gin.RouterGroup) {
	repairs := router.Group("/repairs")
	{
		repairs.GET("", h.ListTickets)
		repairs.POST("", h.CreateTicket)
	}
}

func (h *RepairHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	repairs := router.Group("/repairs")
	{
		repairs.GET("/export", h.ExportTickets)
	}
}

func (h *RepairHandler) ListTickets(c *gin.Context) {
	var req repair.ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	tickets, err := h.service.ListTickets(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Repair tickets retrieved successfully", tickets)
}

func (h *RepairHandler) CreateTicket(c *gin.Context) {
	var req repair.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CreateTicket(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Repair ticket created successfully", resp)
}

func (h *RepairHandler) ExportTickets(c *gin.Context) {
	var req repair.ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="repair-tickets.csv"`)
	if err := h.service.ExportCSV(c.Request.Context(), &req, c.Writer); err != nil {
		handleServiceError(c, err)
		return
	}
}
