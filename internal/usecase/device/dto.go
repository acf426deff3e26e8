package device

import (
	"time"

	domainDevice "device-checkout/internal/domain/device"
)

type RegisterDeviceRequest struct {
	AssetTag string  `json:"assetTag" validate:"required"`
	Model    string  `json:"model" validate:"required,device_model"`
	SchoolID string  `json:"schoolId" validate:"required"`
	Serial   *string `json:"serial,omitempty"`
}

type CheckOutRequest struct {
	UserName        string `json:"userName" validate:"required"`
	Reason          string `json:"reason"`
	HomeroomTeacher string `json:"homeroomTeacher"`
	// SchoolID is only consulted when the asset tag is unknown and the
	// school permits auto-registration.
	SchoolID string `json:"schoolId"`
}

type CheckInRequest struct {
	SchoolID string `json:"schoolId"`
}

type DeviceResponse struct {
	ID              string     `json:"id"`
	AssetTag        string     `json:"assetTag"`
	Serial          *string    `json:"serial,omitempty"`
	Model           string     `json:"model"`
	Status          string     `json:"status"`
	SchoolID        string     `json:"schoolId"`
	AssignedToName  *string    `json:"assignedToName,omitempty"`
	AssignedAt      *time.Time `json:"assignedTimestamp,omitempty"`
	AssignedReason  *string    `json:"assignedReason,omitempty"`
	HomeroomTeacher *string    `json:"homeroomTeacher,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func ToDeviceResponse(d *domainDevice.Device) *DeviceResponse {
	return &DeviceResponse{
		ID:              d.ID.String(),
		AssetTag:        d.AssetTag,
		Serial:          d.Serial,
		Model:           d.Model,
		Status:          string(d.Status),
		SchoolID:        d.SchoolID,
		AssignedToName:  d.AssignedToName,
		AssignedAt:      d.AssignedAt,
		AssignedReason:  d.AssignedReason,
		HomeroomTeacher: d.HomeroomTeacher,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func ToDeviceResponseList(devices []*domainDevice.Device) []*DeviceResponse {
	out := make([]*DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, ToDeviceResponse(d))
	}
	return out
}
