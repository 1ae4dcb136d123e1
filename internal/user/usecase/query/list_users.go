package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/user/domain"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Limit  int
	Offset int
	Role   string
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(query ListUsersQuery) ([]domain.User, error) {
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	if query.Role != "" {
		if !domain.ValidRole(query.Role) {
			return nil, fmt.Errorf("invalid role")
		}
		users, err := h.repo.FindByRole(query.Role, query.Limit, query.Offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list users by role: %w", err)
		}
		return users, nil
	}

	users, err := h.repo.FindAll(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
