package handler

import (
	"net/http"

	"device-checkout/internal/usecase/school"
	"device-checkout/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SchoolHandler struct {
	service *school.Service
}

func NewSchoolHandler(service *school.Service) *SchoolHandler {
	return &SchoolHandler{service: service}
}

func (h *SchoolHandler) RegisterRoutes(router *gin.RouterGroup) {
	schools := router.Group("/schools")
	{
		schools.GET("", h.ListSchools)
		schools.GET("/:id", h.GetSchool)
	}
}

func (h *SchoolHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	schools := router.Group("/schools")
	{
		schools.PATCH("/:id", h.UpdateSchool)
		schools.POST("/:id/logo", h.UpdateLogo)
	}
}

func (h *SchoolHandler) ListSchools(c *gin.Context) {
	schools, err := h.service.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Schools retrieved successfully", schools)
}

func (h *SchoolHandler) GetSchool(c *gin.Context) {
	sch, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "School retrieved successfully", sch)
}

func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	var req school.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sch, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "School updated successfully", sch)
}

func (h *SchoolHandler) UpdateLogo(c *gin.Context) {
	var req school.UpdateLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateLogo(c.Request.Context(), c.Param("id"), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "School logo updated successfully", nil)
}
