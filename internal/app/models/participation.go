package models

import "time"

// EventParticipation represents a user's participation in an event.
// Exactly one row exists per (event, user) pair; join/leave mutate the
// status in place instead of creating or deleting rows.
type EventParticipation struct {
	ID        int64               `json:"id" db:"id"`
	EventID   int64               `json:"eventId" db:"event_id"`
	UserID    int64               `json:"userId" db:"user_id"`
	Status    ParticipationStatus `json:"status" db:"status"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time           `json:"updatedAt" db:"updated_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}

// ParticipationStats breaks a set of participation rows down by status.
type ParticipationStats struct {
	Going      int `json:"going"`
	Interested int `json:"interested"`
	Cancelled  int `json:"cancelled"`
}
