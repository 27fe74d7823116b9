package model

import "time"

// Location is a bookable shoot space owned by a user.
type Location struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Vibe        string      `json:"vibe"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       *string     `json:"state"`
	Country     *string     `json:"country"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
	HourlyRate  float64     `json:"hourlyRate"`
	DailyRate   *float64    `json:"dailyRate"`
	MinBooking  int         `json:"minBooking"`
	MaxBooking  int         `json:"maxBooking"`
	Amenities   []string    `json:"amenities"`
	Lighting    []string    `json:"lighting"`
	Access      *string     `json:"access"`
	Parking     bool        `json:"parking"`
	Wifi        bool        `json:"wifi"`
	Restroom    bool        `json:"restroom"`
	Images      []string    `json:"images"`
	CoverImage  *string     `json:"coverImage"`
	IsActive    bool        `json:"isActive"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"reviewCount"`
	OwnerID     string      `json:"ownerId"`
	Owner       UserSummary `json:"owner"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Location type and vibe values accepted by the API.
const (
	LocationTypeHomeStudio       = "HOME_STUDIO"
	LocationTypeCommercialStudio = "COMMERCIAL_STUDIO"
	LocationTypeOutdoorSpot      = "OUTDOOR_SPOT"
	LocationTypeUniqueSpace      = "UNIQUE_SPACE"
)
