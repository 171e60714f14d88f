package models

type Product struct {
	ID          int     `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name" binding:"required"`
	Description string  `gorm:"not null" json:"description" binding:"required"`
	Price       float64 `gorm:"not null" json:"price" binding:"required"`
	Image       string  `gorm:"not null" json:"image" binding:"required"`
	Category    string  `gorm:"not null;index" json:"category" binding:"required"`
	Stock       int     `gorm:"not null;default:0" json:"stock" binding:"min=0"`
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock" binding:"omitempty,min=0"`
}
