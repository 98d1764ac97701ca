package models

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleSuperAdmin UserRole = "superadmin"
	RoleRestaurant UserRole = "restaurant"
	RoleCustomer   UserRole = "customer"
	RoleDelivery   UserRole = "delivery"
)

// Valid reports whether r is one of the four known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleRestaurant, RoleCustomer, RoleDelivery:
		return true
	}
	return false
}

// User status flag values as stored in users.status.
const (
	UserInactive = 0
	UserActive   = 1
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Phone        string   `json:"phone" gorm:"uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"column:password;not null"`
	Role         UserRole `json:"role" gorm:"not null;index"`
	Name         string   `json:"name"`
	Status       int      `json:"status" gorm:"not null"`
}

func (u User) IsActive() bool {
	return u.Status == UserActive
}
