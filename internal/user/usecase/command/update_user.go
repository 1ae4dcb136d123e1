package command

import (
	"fmt"
	"time"

	"github.com/farmgate/marketplace/internal/user/domain"
	"github.com/farmgate/marketplace/pkg/geo"
)

// UpdateUserCommand represents the command to update a user
type UpdateUserCommand struct {
	ID        uint
	Email     string
	FullName  string
	Phone     string
	FarmName  string
	Latitude  *float64
	Longitude *float64
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	// Validation
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	if cmd.Latitude != nil && cmd.Longitude != nil {
		point := geo.Point{Latitude: *cmd.Latitude, Longitude: *cmd.Longitude}
		if err := point.Validate(); err != nil {
			return nil, err
		}
	}

	// Check if user exists
	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	// Update fields
	user.Email = cmd.Email
	user.FullName = cmd.FullName
	user.Phone = cmd.Phone
	if cmd.FarmName != "" {
		user.FarmName = cmd.FarmName
	}
	if cmd.Latitude != nil && cmd.Longitude != nil {
		user.Latitude = cmd.Latitude
		user.Longitude = cmd.Longitude
	}
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
