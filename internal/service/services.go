package service

import (
	"github.com/deedsapp/deeds-server/internal/config"
	"github.com/deedsapp/deeds-server/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Session  *SessionService
	Deed     *DeedService
	Waitlist *WaitlistService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Member),
		Session:  NewSessionService(repos.Session, repos.Member, cfg.SessionTTL),
		Deed:     NewDeedService(repos.Deed, repos.Member),
		Waitlist: NewWaitlistService(repos.Waitlist),
	}
}
