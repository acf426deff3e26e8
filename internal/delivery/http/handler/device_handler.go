package handler

import (
	"errors"
	"io"
	"net/http"

	"device-checkout/internal/usecase/device"
	"device-checkout/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeviceHandler struct {
	service *device.Service
}

func NewDeviceHandler(service *device.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

// RegisterRoutes mounts the kiosk-facing device routes. The :id segment
// is a school slug on GET and an asset tag on the lifecycle POSTs; gin
// requires one param name per position.
func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.GET("/:id", h.ListDevices)
		devices.POST("", h.RegisterDevice)
		devices.POST("/:id/checkout", h.CheckOut)
		devices.POST("/:id/checkin", h.CheckIn)
	}
}

func (h *DeviceHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.DELETE("/:id", h.RemoveDevice)
	}
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	schoolID := c.Param("id")

	devices, err := h.service.ListBySchool(c.Request.Context(), schoolID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Devices retrieved successfully", devices)
}

func (h *DeviceHandler) RegisterDevice(c *gin.Context) {
	var req device.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Device registered successfully", gin.H{"id": created.ID})
}

func (h *DeviceHandler) CheckOut(c *gin.Context) {
	assetTag := c.Param("id")

	var req device.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.service.CheckOut(c.Request.Context(), assetTag, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device checked out successfully", d)
}

func (h *DeviceHandler) CheckIn(c *gin.Context) {
	assetTag := c.Param("id")

	// The check-in body is optional; an empty request means no
	// auto-registration hint.
	var req device.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.service.CheckIn(c.Request.Context(), assetTag, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device checked in successfully", d)
}

func (h *DeviceHandler) RemoveDevice(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), deviceID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device removed successfully", nil)
}
