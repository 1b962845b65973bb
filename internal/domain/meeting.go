package domain

import "time"

// MeetingToken OAuth tokens of the video-meeting provider stored per user
type MeetingToken struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UpdatedAt    time.Time
}

// IsExpired returns true if the access token must be refreshed at now
func (t *MeetingToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Meeting represents a created video meeting
type Meeting struct {
	ID        int64
	Topic     string
	StartTime time.Time
	JoinURL   string
	StartURL  string
}
