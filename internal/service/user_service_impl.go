package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, name string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("user name is required: %w", domain.ErrInvalid)
	}
	if role == "" {
		role = domain.RolePlanner
	}
	if !domain.ValidRoles[role] {
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalid)
	}
	u := &domain.User{Name: name, Role: role, IsActive: true, CreatedAt: time.Now().UTC()}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("registering user %q: %w", name, err)
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return activeUser(u)
}

func (s *userService) GetByName(ctx context.Context, name string) (*domain.User, error) {
	u, err := s.users.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return activeUser(u)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func activeUser(u *domain.User) (*domain.User, error) {
	if !u.IsActive {
		return nil, fmt.Errorf("user %q is inactive: %w", u.Name, domain.ErrNotFound)
	}
	return u, nil
}
