package model

import "time"

// User is an account row. PasswordHash never leaves the API.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Name            *string   `json:"name"`
	Avatar          *string   `json:"avatar"`
	Bio             *string   `json:"bio"`
	Location        *string   `json:"location"`
	Website         *string   `json:"website"`
	InstagramHandle *string   `json:"instagramHandle"`
	TwitterHandle   *string   `json:"twitterHandle"`
	PortfolioURL    *string   `json:"portfolioUrl"`
	IsVerified      bool      `json:"isVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserSummary is the shallow owner/seller/creator relation embedded in
// listing responses.
type UserSummary struct {
	ID     string  `json:"id"`
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// Summary converts a full user into its embeddable relation shape.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}
