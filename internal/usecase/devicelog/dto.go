package devicelog

import (
	"time"

	domainLog "device-checkout/internal/domain/devicelog"
)

type ListLogsRequest struct {
	SchoolID  string `form:"schoolId"`
	Action    string `form:"action"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

type LogEntryResponse struct {
	ID              string    `json:"id"`
	DeviceID        string    `json:"deviceId"`
	AssetTag        string    `json:"assetTag"`
	Action          string    `json:"action"`
	UserName        string    `json:"userName"`
	Reason          *string   `json:"reason,omitempty"`
	HomeroomTeacher *string   `json:"homeroomTeacher,omitempty"`
	SchoolID        string    `json:"schoolId"`
	CreatedAt       time.Time `json:"createdAt"`
}

func ToLogEntryResponse(e *domainLog.Entry) *LogEntryResponse {
	return &LogEntryResponse{
		ID:              e.ID.String(),
		DeviceID:        e.DeviceID.String(),
		AssetTag:        e.AssetTag,
		Action:          string(e.Action),
		UserName:        e.UserName,
		Reason:          e.Reason,
		HomeroomTeacher: e.HomeroomTeacher,
		SchoolID:        e.SchoolID,
		CreatedAt:       e.CreatedAt,
	}
}
