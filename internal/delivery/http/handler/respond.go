package handler

import (
	"errors"
	"net/http"

	domainDevice "device-checkout/internal/domain/device"
	domainRepair "device-checkout/internal/domain/repair"
	domainSchool "device-checkout/internal/domain/school"
	domainUser "device-checkout/internal/domain/user"
	appErrors "device-checkout/pkg/errors"
	"device-checkout/pkg/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps domain and usecase errors onto HTTP statuses:
// 404 for not-found, 400 for conflicts and validation, 401/403 for auth,
// 500 for upstream and unexpected failures.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainDevice.ErrDeviceNotFound),
		errors.Is(err, domainSchool.ErrSchoolNotFound),
		errors.Is(err, domainUser.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())

	case errors.Is(err, domainDevice.ErrDuplicateAssetTag),
		errors.Is(err, domainDevice.ErrAlreadyCheckedOut),
		errors.Is(err, domainDevice.ErrAlreadyAvailable),
		errors.Is(err, domainUser.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, domainUser.ErrUserInactive):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())

	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case "VALIDATION_ERROR", "WEAK_PASSWORD":
				utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
				return
			case "UPSTREAM_ERROR":
				utils.ErrorResponse(c, http.StatusInternalServerError, appErr.Message)
				return
			}
		}
		if errors.Is(err, domainRepair.ErrSubmissionFailed) {
			utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
