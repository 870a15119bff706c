package permit

import "time"

// VehiclePermit is the persistence model for a vehicle usage request.
// ApprovedAt/ApprovedBy/HRComments are set exactly once, when the permit
// leaves the pending status.
type VehiclePermit struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	EmployeeID   int64      `json:"employee_id" gorm:"column:employee_id;not null;index"`
	VehicleType  string     `json:"vehicle_type" gorm:"column:vehicle_type;not null"`
	LicensePlate string     `json:"license_plate" gorm:"column:license_plate;not null"`
	UsageStart   time.Time  `json:"usage_start" gorm:"column:usage_start;not null"`
	UsageEnd     time.Time  `json:"usage_end" gorm:"column:usage_end;not null"`
	Purpose      *string    `json:"purpose,omitempty" gorm:"column:purpose"`
	Status       string     `json:"status" gorm:"column:status;default:pending;index"`
	HRComments   *string    `json:"hr_comments,omitempty" gorm:"column:hr_comments"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty" gorm:"column:approved_at"`
	ApprovedBy   *int64     `json:"approved_by,omitempty" gorm:"column:approved_by"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (VehiclePermit) TableName() string {
	return "vehicle_permits"
}
