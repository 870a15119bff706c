package permit

import (
	"strings"
	"time"

	"github.com/frahmantamala/permit-management/internal"
)

// SubmitPermitDTO is the request payload for a new permit submission.
type SubmitPermitDTO struct {
	EmployeeID   string    `json:"employee_id"`
	VehicleType  string    `json:"vehicle_type"`
	LicensePlate string    `json:"license_plate"`
	UsageStart   time.Time `json:"usage_start"`
	UsageEnd     time.Time `json:"usage_end"`
	Purpose      *string   `json:"purpose,omitempty"`
}

func (dto SubmitPermitDTO) Validate(now time.Time) error {
	if strings.TrimSpace(dto.EmployeeID) == "" {
		return internal.NewValidationFieldError("employee_id", "Employee ID is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.VehicleType) == "" {
		return internal.NewValidationFieldError("vehicle_type", "Vehicle type is required", internal.ErrCodeInvalidVehicle)
	}
	if len(dto.VehicleType) > 255 {
		return internal.NewValidationFieldError("vehicle_type", "vehicle type must be less than 255 characters", internal.ErrCodeInvalidVehicle)
	}
	if strings.TrimSpace(dto.LicensePlate) == "" {
		return internal.NewValidationFieldError("license_plate", "License plate is required", internal.ErrCodeInvalidVehicle)
	}
	if len(dto.LicensePlate) > 255 {
		return internal.NewValidationFieldError("license_plate", "license plate must be less than 255 characters", internal.ErrCodeInvalidVehicle)
	}
	if dto.UsageStart.IsZero() {
		return internal.NewValidationError("Start date and time is required", internal.ErrCodeInvalidUsageWindow)
	}
	if dto.UsageEnd.IsZero() {
		return internal.NewValidationError("End date and time is required", internal.ErrCodeInvalidUsageWindow)
	}
	if !dto.UsageStart.After(now) {
		return internal.NewValidationError("Start date must be in the future", internal.ErrCodeInvalidUsageWindow)
	}
	if !dto.UsageEnd.After(dto.UsageStart) {
		return internal.NewValidationError("End date must be after start date", internal.ErrCodeInvalidUsageWindow)
	}
	if dto.Purpose != nil && len(*dto.Purpose) > 1000 {
		return internal.NewValidationFieldError("purpose", "purpose must be less than 1000 characters", internal.ErrCodeInvalidPurpose)
	}
	return nil
}

// DecidePermitDTO is the request payload for the HR decision. DecidedBy is
// an explicit parameter, never inferred from ambient session state.
type DecidePermitDTO struct {
	Status     string  `json:"status"`
	HRComments *string `json:"hr_comments,omitempty"`
	DecidedBy  int64   `json:"decided_by"`
}

func (dto DecidePermitDTO) Validate() error {
	if dto.Status != StatusApproved && dto.Status != StatusRejected {
		return internal.NewValidationError("status must be either 'approved' or 'rejected'", internal.ErrCodeInvalidDecision)
	}
	if dto.DecidedBy <= 0 {
		return internal.NewValidationFieldError("decided_by", "decider is required", internal.ErrCodeValidationFailed)
	}
	if dto.HRComments != nil && len(*dto.HRComments) > 1000 {
		return internal.NewValidationFieldError("hr_comments", "HR comments must be less than 1000 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ListQuery filters the HR dashboard listing. Dates bound the submission
// timestamp, inclusive on both ends at day granularity.
type ListQuery struct {
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}

// ExportQuery bounds the CSV dump by submission date.
type ExportQuery struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// Stats are the summary counts shown alongside the permit listing.
type Stats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type PermitsResponse struct {
	Permits []*Permit `json:"permits"`
	Stats   *Stats    `json:"stats"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
}

// ExportRecord is one CSV row: a permit joined with its employee and the
// deciding user, when any.
type ExportRecord struct {
	RequestID    int64      `gorm:"column:request_id"`
	EmployeeCode string     `gorm:"column:employee_code"`
	EmployeeName string     `gorm:"column:employee_name"`
	Department   string     `gorm:"column:department"`
	Grade        string     `gorm:"column:grade"`
	VehicleType  string     `gorm:"column:vehicle_type"`
	LicensePlate string     `gorm:"column:license_plate"`
	UsageStart   time.Time  `gorm:"column:usage_start"`
	UsageEnd     time.Time  `gorm:"column:usage_end"`
	Purpose      *string    `gorm:"column:purpose"`
	Status       string     `gorm:"column:status"`
	HRComments   *string    `gorm:"column:hr_comments"`
	ApproverName *string    `gorm:"column:approver_name"`
	ApprovedAt   *time.Time `gorm:"column:approved_at"`
	SubmittedAt  time.Time  `gorm:"column:submitted_at"`
}
