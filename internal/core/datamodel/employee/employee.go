package employee

import "time"

// Employee is the persistence model for the employee directory.
type Employee struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID string    `json:"employee_id" gorm:"column:employee_id;uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"not null"`
	Department string    `json:"department" gorm:"not null"`
	Grade      string    `json:"grade" gorm:"not null"`
	Email      *string   `json:"email,omitempty" gorm:"column:email"`
	Phone      *string   `json:"phone,omitempty" gorm:"column:phone"`
	IsActive   bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Employee) TableName() string {
	return "employees"
}
