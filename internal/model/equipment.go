package model

import "time"

// EquipmentListing is a marketplace row: gear offered for sale by a user.
type EquipmentListing struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	Brand          *string     `json:"brand"`
	Model          *string     `json:"model"`
	Condition      string      `json:"condition"`
	Price          float64     `json:"price"`
	Images         []string    `json:"images"`
	Specifications *string     `json:"specifications"`
	IsActive       bool        `json:"isActive"`
	IsSold         bool        `json:"isSold"`
	City           *string     `json:"city"`
	State          *string     `json:"state"`
	SellerID       string      `json:"sellerId"`
	Seller         UserSummary `json:"seller"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
