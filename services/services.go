package services

import (
	"github.com/meveto/meveto-go-sdk/repositories"
)

// Services holds all service instances
type Services struct {
	Session SessionService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, newMeveto MevetoFactory, opts ...SessionOption) *Services {
	return &Services{
		Session: NewSessionService(newMeveto, repos.Users, opts...),
	}
}
