package user

import "time"

// User is an HR/admin account that may decide permits. Authentication is
// handled outside this service; the password hash column exists for the
// integrating auth layer.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey" db:"id"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null" db:"email"`
	Name         string    `json:"name" gorm:"not null" db:"name"`
	PasswordHash string    `json:"-" gorm:"column:password_hash" db:"password_hash"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type Permission struct {
	ID          int64     `json:"id" gorm:"primaryKey" db:"id"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()" db:"created_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

type UserPermission struct {
	ID           int64     `json:"id" gorm:"primaryKey" db:"id"`
	UserID       int64     `json:"user_id" gorm:"column:user_id;not null" db:"user_id"`
	PermissionID int64     `json:"permission_id" gorm:"column:permission_id;not null" db:"permission_id"`
	GrantedBy    *int64    `json:"granted_by,omitempty" gorm:"column:granted_by" db:"granted_by"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()" db:"created_at"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
