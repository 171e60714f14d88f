package models

import "gorm.io/datatypes"

// Cart mirrors the client's in-progress selections. It is replaced
// wholesale on every update and is not authoritative for pricing.
type Cart struct {
	ID     int                            `gorm:"primaryKey" json:"id"`
	UserID int                            `gorm:"uniqueIndex;not null" json:"userId"`
	Items  datatypes.JSONSlice[OrderItem] `json:"items"`
	Total  float64                        `json:"total"`
}
