package command

import (
	"fmt"
	"time"

	"github.com/farmgate/marketplace/internal/user/domain"
	"github.com/farmgate/marketplace/pkg/auth"
	"github.com/farmgate/marketplace/pkg/geo"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	Role      string // Optional, defaults to "consumer"
	Phone     string
	FarmName  string
	Latitude  *float64
	Longitude *float64
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	// Validation
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if cmd.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	// Set default role if not provided
	role := cmd.Role
	if role == "" {
		role = domain.RoleConsumer
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("invalid role")
	}

	// Farmers must provide their farm coordinates so that produce can be
	// distance-ranked for buyers.
	if role == domain.RoleFarmer && (cmd.Latitude == nil || cmd.Longitude == nil) {
		return nil, fmt.Errorf("farm coordinates are required for farmers")
	}

	if cmd.Latitude != nil && cmd.Longitude != nil {
		point := geo.Point{Latitude: *cmd.Latitude, Longitude: *cmd.Longitude}
		if err := point.Validate(); err != nil {
			return nil, err
		}
	}

	// Check if user already exists
	if existingUser, _ := h.repo.FindByUsername(cmd.Username); existingUser != nil {
		return nil, fmt.Errorf("username already exists")
	}
	if existingUser, _ := h.repo.FindByEmail(cmd.Email); existingUser != nil {
		return nil, fmt.Errorf("email already exists")
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		Password:  hashedPassword,
		FullName:  cmd.FullName,
		Role:      role,
		Phone:     cmd.Phone,
		FarmName:  cmd.FarmName,
		Latitude:  cmd.Latitude,
		Longitude: cmd.Longitude,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
