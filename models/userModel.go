package models

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleDelivery = "delivery"
)

// ValidRole reports whether role is one of the three stored role literals.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin || role == RoleDelivery
}

type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:customer" json:"role"`
	FullName string `gorm:"not null" json:"fullName"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type LoginData struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
