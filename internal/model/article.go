package model

import "time"

// Article is published magazine content authored by a user.
type Article struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Excerpt     *string     `json:"excerpt"`
	CoverImage  *string     `json:"coverImage"`
	Tags        []string    `json:"tags"`
	Category    string      `json:"category"`
	IsActive    bool        `json:"isActive"`
	IsPublished bool        `json:"isPublished"`
	PublishedAt *time.Time  `json:"publishedAt"`
	AuthorID    string      `json:"authorId"`
	Author      UserSummary `json:"author"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
