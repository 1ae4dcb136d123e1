package domain

import (
	"time"

	"gorm.io/gorm"
)

// Role types
const (
	RoleConsumer = "consumer"
	RoleFarmer   = "farmer"
	RoleAdmin    = "admin"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleConsumer || role == RoleFarmer || role == RoleAdmin
}

// User represents the user entity (domain model)
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"` // Never expose password in JSON
	FullName  string         `json:"full_name" gorm:"not null"`
	Role      string         `json:"role" gorm:"not null;default:'consumer'"`
	Phone     string         `json:"phone"`
	FarmName  string         `json:"farm_name,omitempty"`
	Latitude  *float64       `json:"latitude,omitempty"`
	Longitude *float64       `json:"longitude,omitempty"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"` // Soft delete
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsFarmer checks if user has farmer role
func (u *User) IsFarmer() bool {
	return u.Role == RoleFarmer
}

// HasLocation reports whether both coordinates are set
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	FindByRole(role string, limit, offset int) ([]User, error)
	Update(user *User) error
	Delete(id uint) error
	Count() (int64, error)
	CountByRole(role string) (int64, error)
	CountActive() (int64, error)
}
