package dto

import (
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
)

// ParticipationResponse represents a single participation row
type ParticipationResponse struct {
	ID        int64              `json:"id"`
	EventID   int64              `json:"eventId"`
	UserID    int64              `json:"userId"`
	Status    string             `json:"status"`
	User      *UserBasicResponse `json:"user,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// JoinLeaveResponse is returned by join/leave: the mutated participation row
// plus the recomputed count of rows with status 'going'.
type JoinLeaveResponse struct {
	Message           string                `json:"message"`
	Participation     ParticipationResponse `json:"participation"`
	ParticipantsCount int                   `json:"participantsCount"`
}

// ParticipantListResponse is the roster returned to organization admins
type ParticipantListResponse struct {
	Total        int                       `json:"total"`
	Participants []ParticipationResponse   `json:"participants"`
	Stats        models.ParticipationStats `json:"stats"`
}

// NewParticipationResponse maps a participation model to its API representation
func NewParticipationResponse(p *models.EventParticipation) ParticipationResponse {
	resp := ParticipationResponse{
		ID:        p.ID,
		EventID:   p.EventID,
		UserID:    p.UserID,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User != nil {
		user := NewUserBasicResponse(p.User)
		resp.User = &user
	}
	return resp
}
