package services

import (
	"context"
	"strings"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
}

// NewUserService creates a new UserService
func NewUserService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
) driving.UserService {
	return &userService{
		userStore:    userStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
	}
}

// Setup creates the initial admin user (only works if no users exist)
func (s *userService) Setup(ctx context.Context, req driving.SetupRequest) (*driving.SetupResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	// Setup only works on an empty deployment
	count, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrForbidden
	}

	user, err := s.Create(ctx, driving.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &driving.SetupResponse{
		User:    user,
		Message: "Setup complete. You can now log in.",
	}, nil
}

// Create creates a new user (admin only)
func (s *userService) Create(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	// Check if email already exists
	existing, _ := s.userStore.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	passwordHash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           generateID(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.userStore.Get(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// Update updates a user (admin only)
func (s *userService) Update(ctx context.Context, id string, req driving.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	user.UpdatedAt = time.Now()

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	// If user was deactivated, invalidate their sessions
	if req.Active != nil && !*req.Active {
		_ = s.sessionStore.DeleteByUser(ctx, id)
	}

	return user, nil
}

// Delete deletes a user (admin only)
func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return err
	}

	// Invalidate all sessions first
	_ = s.sessionStore.DeleteByUser(ctx, user.ID)

	return s.userStore.Delete(ctx, id)
}

// SetPassword sets a new password for a user (admin only)
func (s *userService) SetPassword(ctx context.Context, id string, password string) error {
	if password == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return err
	}

	passwordHash, err := s.authAdapter.HashPassword(password)
	if err != nil {
		return err
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()

	if err := s.userStore.Save(ctx, user); err != nil {
		return err
	}

	// Invalidate all sessions (force re-login)
	return s.sessionStore.DeleteByUser(ctx, id)
}

// validateCreateRequest validates the create user request
func validateCreateRequest(req driving.CreateUserRequest) error {
	if req.Email == "" {
		return domain.ErrInvalidInput
	}
	if req.Password == "" {
		return domain.ErrInvalidInput
	}
	if req.Name == "" {
		return domain.ErrInvalidInput
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleMember {
		return domain.ErrInvalidInput
	}
	return nil
}
