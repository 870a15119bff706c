package employee

import (
	"log/slog"

	"github.com/frahmantamala/permit-management/internal"
)

// Repository defines the data access methods for the employee directory.
type Repository interface {
	Create(emp *Employee) error
	GetByID(id int64) (*Employee, error)
	FindActiveByEmployeeID(employeeID string) (*Employee, error)
	GetAll(limit, offset int) ([]*Employee, error)
	Update(emp *Employee) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// LookupByEmployeeID resolves an active employee by their assigned code.
// Inactive and nonexistent codes are indistinguishable to the caller.
func (s *Service) LookupByEmployeeID(employeeID string) (*Employee, error) {
	emp, err := s.repo.FindActiveByEmployeeID(employeeID)
	if err != nil {
		s.logger.Warn("employee lookup failed", "employee_id", employeeID, "error", err)
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) GetEmployee(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("employee not found", "id", id, "error", err)
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) ListEmployees(limit, offset int) ([]*Employee, error) {
	employees, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}

	emp := &Employee{
		EmployeeID: dto.EmployeeID,
		Name:       dto.Name,
		Department: dto.Department,
		Grade:      dto.Grade,
		Email:      dto.Email,
		Phone:      dto.Phone,
		IsActive:   active,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("employee created", "id", emp.ID, "employee_id", emp.EmployeeID)
	return emp, nil
}

func (s *Service) UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee update validation failed", "error", err, "id", id)
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("employee not found for update", "id", id, "error", err)
		return nil, internal.ErrEmployeeNotFound
	}

	if dto.Name != nil {
		emp.Name = *dto.Name
	}
	if dto.Department != nil {
		emp.Department = *dto.Department
	}
	if dto.Grade != nil {
		emp.Grade = *dto.Grade
	}
	if dto.Email != nil {
		emp.Email = dto.Email
	}
	if dto.Phone != nil {
		emp.Phone = dto.Phone
	}
	if dto.IsActive != nil {
		emp.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("employee updated", "id", emp.ID, "employee_id", emp.EmployeeID)
	return emp, nil
}

// DeleteEmployee removes the employee record. The database cascades the
// delete to their permits, which in turn cascade to notifications.
func (s *Service) DeleteEmployee(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		s.logger.Warn("employee not found for delete", "id", id, "error", err)
		return internal.ErrEmployeeNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "id", id)
		return err
	}

	s.logger.Info("employee deleted", "id", id)
	return nil
}
