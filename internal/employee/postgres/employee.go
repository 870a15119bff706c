package postgres

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	dm := employee.ToDataModel(emp)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	*emp = *employee.FromDataModel(dm)
	return nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var dm employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&dm), nil
}

// FindActiveByEmployeeID looks up by the human-assigned employee code and
// only returns active records.
func (r *EmployeeRepository) FindActiveByEmployeeID(employeeID string) (*employee.Employee, error) {
	var dm employeeDatamodel.Employee
	err := r.db.Where("employee_id = ? AND is_active = ?", employeeID, true).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&dm), nil
}

func (r *EmployeeRepository) GetAll(limit, offset int) ([]*employee.Employee, error) {
	var dms []*employeeDatamodel.Employee
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(dms), nil
}

func (r *EmployeeRepository) Update(emp *employee.Employee) error {
	dm := employee.ToDataModel(emp)
	dm.UpdatedAt = time.Now()
	return r.db.Save(dm).Error
}

func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
}
