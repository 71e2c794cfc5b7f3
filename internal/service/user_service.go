package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gleysonwener/new-lu/internal/config"
	"github.com/gleysonwener/new-lu/internal/domain"
	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"
	"github.com/gleysonwener/new-lu/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	SetRole(ctx context.Context, id uuid.UUID, role string) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	// Bootstrap seeds the default admin account when the user table is empty.
	Bootstrap(ctx context.Context) error
}

type userService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{repo: repo, cfg: cfg}
}

// Create registers a user. The row count and the insert share one
// transaction so the first-user-is-admin rule cannot race with a concurrent
// registration, and a unique-index violation at commit time surfaces as the
// same "already registered" condition as the pre-checks.
func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username", domain.ErrDuplicate)
	}
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email", domain.ErrDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		count, err := s.repo.CountTx(ctx, tx)
		if err != nil {
			return err
		}
		user.Role = model.RoleRegular
		if count == 0 {
			user.Role = model.RoleAdmin
		}
		return s.repo.CreateTx(ctx, tx, user)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email", domain.ErrDuplicate)
		}
		return nil, err
	}

	return userToResponse(user), nil
}

func (s *userService) SetRole(ctx context.Context, id uuid.UUID, role string) (*dto.UserResponse, error) {
	if !model.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i, u := range users {
		resp[i] = *userToResponse(&u)
	}
	return resp, nil
}

// Bootstrap runs once at startup: a single transaction counts users and, only
// when there are none, inserts the configured default admin. The defaults
// are deliberately weak first-use credentials — change them at first login.
func (s *userService) Bootstrap(ctx context.Context) error {
	return s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		count, err := s.repo.CountTx(ctx, tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.BootstrapAdminPassword), 12)
		if err != nil {
			return err
		}
		admin := &model.User{
			Username:     s.cfg.BootstrapAdminUsername,
			Email:        s.cfg.BootstrapAdminEmail,
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
		}
		if err := s.repo.CreateTx(ctx, tx, admin); err != nil {
			return err
		}
		log.Warn().
			Str("username", admin.Username).
			Msg("default admin created with bootstrap credentials — change the password at first login")
		return nil
	})
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
