package model

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// Booking reserves a location for a time window. TotalAmount is computed
// server-side from the location's hourly rate at creation time.
type Booking struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"locationId"`
	Location    *Location `json:"location,omitempty"`
	UserID      string    `json:"userId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	TotalHours  float64   `json:"totalHours"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	Purpose     *string   `json:"purpose"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
