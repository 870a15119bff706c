package permit

import (
	"strings"
	"time"

	permitDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/permit"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Permit is a vehicle usage request. It is created pending and transitions
// exactly once, to approved or rejected; decision metadata is present iff
// the status is terminal.
type Permit struct {
	ID           int64      `json:"id"`
	EmployeeID   int64      `json:"employee_id"`
	VehicleType  string     `json:"vehicle_type"`
	LicensePlate string     `json:"license_plate"`
	UsageStart   time.Time  `json:"usage_start"`
	UsageEnd     time.Time  `json:"usage_end"`
	Purpose      *string    `json:"purpose,omitempty"`
	Status       string     `json:"status"`
	HRComments   *string    `json:"hr_comments,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	ApprovedBy   *int64     `json:"approved_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (p *Permit) IsPending() bool {
	return p.Status == StatusPending
}

func (p *Permit) IsDecided() bool {
	return p.Status == StatusApproved || p.Status == StatusRejected
}

// PurposeOrDefault returns the free-text purpose, or the placeholder used
// in notifications and exports when none was given.
func (p *Permit) PurposeOrDefault() string {
	if p.Purpose != nil && *p.Purpose != "" {
		return *p.Purpose
	}
	return "Not specified"
}

// CapitalizeStatus renders a status for human-facing output
// (Pending/Approved/Rejected).
func CapitalizeStatus(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

func ToDataModel(p *Permit) *permitDatamodel.VehiclePermit {
	return &permitDatamodel.VehiclePermit{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		VehicleType:  p.VehicleType,
		LicensePlate: p.LicensePlate,
		UsageStart:   p.UsageStart,
		UsageEnd:     p.UsageEnd,
		Purpose:      p.Purpose,
		Status:       p.Status,
		HRComments:   p.HRComments,
		ApprovedAt:   p.ApprovedAt,
		ApprovedBy:   p.ApprovedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModel(p *permitDatamodel.VehiclePermit) *Permit {
	return &Permit{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		VehicleType:  p.VehicleType,
		LicensePlate: p.LicensePlate,
		UsageStart:   p.UsageStart,
		UsageEnd:     p.UsageEnd,
		Purpose:      p.Purpose,
		Status:       p.Status,
		HRComments:   p.HRComments,
		ApprovedAt:   p.ApprovedAt,
		ApprovedBy:   p.ApprovedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModelSlice(permits []*permitDatamodel.VehiclePermit) []*Permit {
	result := make([]*Permit, len(permits))
	for i, p := range permits {
		result[i] = FromDataModel(p)
	}
	return result
}
