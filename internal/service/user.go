package service

import (
	"context"
	"errors"
	"strings"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/lib/job"
	"github.com/deppfellow/nutri-api/internal/metrics"
	"github.com/deppfellow/nutri-api/internal/model"
	"github.com/deppfellow/nutri-api/internal/sqlerr"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// UserStore persists users. A taken email is reported as a unique violation.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, mutate func(*model.User)) (*model.User, error)
	Delete(ctx context.Context, id string) (*model.User, error)
}

// WelcomeEnqueuer schedules the welcome email of a new user.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name, lang string) error
}

type UserService struct {
	store      UserStore
	bcryptCost int
	welcome    WelcomeEnqueuer
	metrics    *metrics.Manager
}

// NewUserService creates the service. welcome may be nil, in which case no
// welcome email is scheduled.
func NewUserService(store UserStore, bcryptCost int, welcome WelcomeEnqueuer, m *metrics.Manager) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		store:      store,
		bcryptCost: bcryptCost,
		welcome:    welcome,
		metrics:    m,
	}
}

func userKeys(failed string) storeErrorKeys {
	return storeErrorKeys{
		notFound:     i18n.MsgUserNotFound,
		notFoundCode: "USER_NOT_FOUND",
		failed:       failed,
	}
}

func (s *UserService) hashPassword(ctx context.Context, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errs.NewValidationError(i18n.FromContext(ctx, i18n.MsgInvalidData), []errs.FieldError{
				{Field: "password", Error: "must not exceed 72 bytes"},
			})
		}
		return "", errs.NewInternalServerError().
			WithMessage(i18n.FromContext(ctx, i18n.MsgInternalError)).
			WithCause(err)
	}
	return string(hash), nil
}

// Create hashes the password, stores the user and schedules the welcome email.
func (s *UserService) Create(ctx context.Context, payload *model.CreateUserPayload) (*model.User, error) {
	hash, err := s.hashPassword(ctx, payload.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:             payload.Name,
		Email:            normalizeEmail(payload.Email),
		PasswordHash:     hash,
		Role:             payload.Role,
		Sex:              payload.Sex,
		Height:           payload.Height,
		Weight:           payload.Weight,
		Age:              payload.Age,
		PhysicalActivity: payload.PhysicalActivity,
		Objective:        payload.Objective,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if sqlerr.IsUniqueViolation(err) {
			code := "USER_ALREADY_EXISTS"
			return nil, errs.NewConflictError(i18n.FromContext(ctx, i18n.MsgUserEmailTaken), true, &code).WithCause(err)
		}
		return nil, storeError(ctx, err, userKeys(i18n.MsgUserCreateFailed))
	}

	s.enqueueWelcome(ctx, user)

	return user, nil
}

// normalizeEmail makes email uniqueness case insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// enqueueWelcome is best effort: a failure is logged and counted, the
// account stays created.
func (s *UserService) enqueueWelcome(ctx context.Context, user *model.User) {
	if s.welcome == nil {
		return
	}

	lang := i18n.TagFromContext(ctx).String()
	if err := s.welcome.EnqueueWelcomeEmail(ctx, user.Email, user.Name, lang); err != nil {
		s.metrics.RecordJobEnqueued(job.TaskWelcome, metrics.OutcomeError)
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("user_id", user.ID.String()).
			Msg("failed to enqueue welcome email")
		return
	}
	s.metrics.RecordJobEnqueued(job.TaskWelcome, metrics.OutcomeSuccess)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, storeError(ctx, err, userKeys(i18n.MsgUserListFailed))
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// Update changes the name and/or the password. Other fields are untouched.
func (s *UserService) Update(ctx context.Context, payload *model.UpdateUserPayload) (*model.User, error) {
	var hash string
	if payload.Password != nil {
		var err error
		if hash, err = s.hashPassword(ctx, *payload.Password); err != nil {
			return nil, err
		}
	}

	user, err := s.store.Update(ctx, payload.ID, func(u *model.User) {
		if payload.Name != nil {
			u.Name = *payload.Name
		}
		if payload.Password != nil {
			u.PasswordHash = hash
		}
	})
	if err != nil {
		return nil, storeError(ctx, err, userKeys(i18n.MsgUserUpdateFailed))
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, payload *model.DeleteUserPayload) (*model.User, error) {
	user, err := s.store.Delete(ctx, payload.ID)
	if err != nil {
		return nil, storeError(ctx, err, userKeys(i18n.MsgUserDeleteFailed))
	}
	return user, nil
}
