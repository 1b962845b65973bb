package domain

import "time"

// BookableSlot represents an instant that can be booked with an availability owner
type BookableSlot struct {
	StartsAt     time.Time
	DisplayLabel string
}

// DefaultDisplayLabel renders an instant the way the client shows it (es-ES locale)
func DefaultDisplayLabel(t time.Time) string {
	return t.Format(DisplayLabelLayout)
}
