package services

import (
	"github.com/mkowalczyk/campushub/internal/app/repositories"
	"github.com/mkowalczyk/campushub/internal/pkg/auth"
	"github.com/mkowalczyk/campushub/internal/pkg/ratelimit"
)

// Services holds all the service instances
type Services struct {
	AuthService          *AuthService
	UserService          *UserService
	OrganizationService  *OrganizationService
	EventService         *EventService
	ParticipationService *ParticipationService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, loginLimits ratelimit.Limiter) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			jwtService,
			loginLimits,
		),
		UserService: NewUserService(repos.UserRepository),
		OrganizationService: NewOrganizationService(
			repos.OrganizationRepository,
		),
		EventService: NewEventService(
			repos.EventRepository,
			repos.OrganizationRepository,
			repos.ParticipationRepository,
		),
		ParticipationService: NewParticipationService(
			repos.ParticipationRepository,
			repos.EventRepository,
		),
	}
}
