package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChallengeStatusForTime(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	c := &Challenge{StartDate: start, EndDate: end}

	assert.Equal(t, ChallengeStatusUpcoming, c.StatusForTime(start.Add(-time.Hour)))
	assert.Equal(t, ChallengeStatusActive, c.StatusForTime(start))
	assert.Equal(t, ChallengeStatusActive, c.StatusForTime(start.Add(7*24*time.Hour)))
	assert.Equal(t, ChallengeStatusActive, c.StatusForTime(end))
	assert.Equal(t, ChallengeStatusEnded, c.StatusForTime(end.Add(time.Second)))
}
