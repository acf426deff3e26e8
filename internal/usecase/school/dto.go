package school

import (
	"time"

	domainSchool "device-checkout/internal/domain/school"
)

type UpdateSchoolRequest struct {
	Name            string  `json:"name" validate:"required"`
	AllowNewDevices bool    `json:"allowNewDevices"`
	LogoURL         *string `json:"logoUrl,omitempty"`
	Address         *string `json:"address,omitempty"`
	Contact         *string `json:"contact,omitempty"`
}

type UpdateLogoRequest struct {
	LogoURL string `json:"logoUrl" validate:"required"`
}

type SchoolResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	AllowNewDevices bool      `json:"allowNewDevices"`
	LogoURL         *string   `json:"logoUrl,omitempty"`
	Address         *string   `json:"address,omitempty"`
	Contact         *string   `json:"contact,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToSchoolResponse(s *domainSchool.School) *SchoolResponse {
	return &SchoolResponse{
		ID:              s.ID,
		Name:            s.Name,
		AllowNewDevices: s.AllowNewDevices,
		LogoURL:         s.LogoURL,
		Address:         s.Address,
		Contact:         s.Contact,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
