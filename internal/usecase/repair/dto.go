package repair

import (
	"time"

	domainRepair "device-checkout/internal/domain/repair"
)

type CreateTicketRequest struct {
	SchoolID      string  `json:"schoolId" validate:"required"`
	DeviceType    string  `json:"deviceType" validate:"required"`
	FullName      string  `json:"fullName" validate:"required"`
	IssueType     string  `json:"issueType" validate:"required"`
	DeviceBarcode string  `json:"deviceBarcode" validate:"required"`
	Notes         *string `json:"notes,omitempty"`
	IsStaff       bool    `json:"isStaff"`
}

type CreateTicketResponse struct {
	ID               string `json:"id"`
	OperationsHeroID string `json:"operationsHeroId"`
}

type ListTicketsRequest struct {
	StartDate     string `form:"startDate"`
	EndDate       string `form:"endDate"`
	DeviceBarcode string `form:"deviceBarcode"`
	FullName      string `form:"fullName"`
	IssueType     string `form:"issueType"`
	SchoolID      string `form:"schoolId"`
	IsStaff       string `form:"isStaff"`
	Status        string `form:"status"`
}

type TicketResponse struct {
	ID               string    `json:"id"`
	SchoolID         string    `json:"schoolId"`
	DeviceType       string    `json:"deviceType"`
	FullName         string    `json:"fullName"`
	IssueType        string    `json:"issueType"`
	DeviceBarcode    string    `json:"deviceBarcode"`
	Notes            *string   `json:"notes,omitempty"`
	IsStaff          bool      `json:"isStaff"`
	OperationsHeroID string    `json:"operationsHeroId"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ToTicketResponse(t *domainRepair.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:               t.ID.String(),
		SchoolID:         t.SchoolID,
		DeviceType:       t.DeviceType,
		FullName:         t.FullName,
		IssueType:        t.IssueType,
		DeviceBarcode:    t.DeviceBarcode,
		Notes:            t.Notes,
		IsStaff:          t.IsStaff,
		OperationsHeroID: t.OperationsHeroID,
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
