package model

import "time"

// Challenge statuses. A challenge moves UPCOMING -> ACTIVE -> ENDED as the
// clock passes its start and end dates; the status sweep job keeps the
// stored value in step.
const (
	ChallengeStatusUpcoming = "UPCOMING"
	ChallengeStatusActive   = "ACTIVE"
	ChallengeStatusEnded    = "ENDED"
)

// Challenge is a timed community photo contest.
type Challenge struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Theme           *string     `json:"theme"`
	Rules           []string    `json:"rules"`
	Category        string      `json:"category"`
	Difficulty      string      `json:"difficulty"`
	Status          string      `json:"status"`
	StartDate       time.Time   `json:"startDate"`
	EndDate         time.Time   `json:"endDate"`
	PrizePool       *float64    `json:"prizePool"`
	CoverImage      *string     `json:"coverImage"`
	IsActive        bool        `json:"isActive"`
	CreatorID       string      `json:"creatorId"`
	Creator         UserSummary `json:"creator"`
	SubmissionCount int         `json:"submissionCount"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ChallengeSubmission is a user's entry into a challenge.
type ChallengeSubmission struct {
	ID          string      `json:"id"`
	ChallengeID string      `json:"challengeId"`
	UserID      string      `json:"userId"`
	User        UserSummary `json:"user"`
	ImageURL    string      `json:"imageUrl"`
	Caption     *string     `json:"caption"`
	Votes       int         `json:"votes"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// StatusForTime derives the status a challenge should carry at t.
func (c *Challenge) StatusForTime(t time.Time) string {
	switch {
	case t.Before(c.StartDate):
		return ChallengeStatusUpcoming
	case t.After(c.EndDate):
		return ChallengeStatusEnded
	default:
		return ChallengeStatusActive
	}
}
