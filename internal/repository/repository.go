package repository

import "github.com/latafatguliyeva/Skill-sharing-platform/internal/service"

var (
	_ service.UserRepository           = (*UserRepository)(nil)
	_ service.SessionRequestRepository = (*SessionRequestRepository)(nil)
	_ service.SessionRepository        = (*SessionRepository)(nil)
)
