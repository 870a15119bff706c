package employee

import (
	"strings"

	"github.com/frahmantamala/permit-management/internal"
)

// LookupResponse is the subset of employee data exposed to the submission
// form. Contact details and active flag stay internal.
type LookupResponse struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
}

type CreateEmployeeDTO struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Grade      string  `json:"grade"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if strings.TrimSpace(dto.EmployeeID) == "" {
		return internal.NewValidationFieldError("employee_id", "employee ID is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Department) == "" {
		return internal.NewValidationFieldError("department", "department is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Grade) == "" {
		return internal.NewValidationFieldError("grade", "grade is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateEmployeeDTO carries optional fields; nil means leave unchanged.
// The employee code itself is immutable after creation.
type UpdateEmployeeDTO struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Grade      *string `json:"grade,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Department != nil && strings.TrimSpace(*dto.Department) == "" {
		return internal.NewValidationFieldError("department", "department cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Grade != nil && strings.TrimSpace(*dto.Grade) == "" {
		return internal.NewValidationFieldError("grade", "grade cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}

type EmployeesResponse struct {
	Employees []*Employee `json:"employees"`
	Limit     int         `json:"limit"`
	Offset    int         `json:"offset"`
}
