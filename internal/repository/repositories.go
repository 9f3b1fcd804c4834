package repository

import (
	"github.com/deppfellow/nutri-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Food *FoodRepository
	User *UserRepository
}

// NewRepositories builds every repository on the server's gorm session.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Food: NewFoodRepository(s.DB.Gorm, s.Metrics),
		User: NewUserRepository(s.DB.Gorm, s.Metrics),
	}
}
