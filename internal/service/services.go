package service

import (
	"github.com/deppfellow/nutri-api/internal/lib/job"
	"github.com/deppfellow/nutri-api/internal/repository"
	"github.com/deppfellow/nutri-api/internal/server"
)

type Services struct {
	Food *FoodService
	User *UserService
	Job  *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *JobService must not become a non-nil interface.
	var welcome WelcomeEnqueuer
	if s.Job != nil {
		welcome = s.Job
	}

	return &Services{
		Food: NewFoodService(repos.Food),
		User: NewUserService(repos.User, s.Config.Security.BcryptCost, welcome, s.Metrics),
		Job:  s.Job,
	}, nil
}
