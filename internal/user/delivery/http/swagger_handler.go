package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for User Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new user
// @Description Register as a consumer or farmer; farmers must supply farm coordinates
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,full_name=string,role=string,phone=string,farm_name=string,latitude=number,longitude=number} true "Registration data"
// @Success 201 {object} object{id=int,username=string,role=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary Login
// @Description Authenticate and receive a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Credentials"
// @Success 200 {object} object{token=string,user=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get own profile
// @Description Get the authenticated user's profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,username=string}
// @Failure 401 {object} object{error=string}
// @Router /users/me [get]
func (h *UserHandler) GetProfileDoc() {}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Update the authenticated user's profile, including location
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{email=string,full_name=string,phone=string,farm_name=string,latitude=number,longitude=number} true "Profile data"
// @Success 200 {object} object{id=int,username=string}
// @Failure 400 {object} object{error=string}
// @Router /users/me [put]
func (h *UserHandler) UpdateProfileDoc() {}

// ListUsers godoc
// @Summary List users
// @Description List users with pagination and optional role filter (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Param role query string false "Role filter (consumer, farmer, admin)"
// @Success 200 {array} object{id=int,username=string}
// @Failure 403 {object} object{error=string}
// @Router /admin/users [get]
func (h *UserHandler) ListUsersDoc() {}

// GetStats godoc
// @Summary User statistics
// @Description Get per-role and active user counts (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{total_users=int,consumer_count=int,farmer_count=int,admin_count=int,active_users=int}
// @Failure 403 {object} object{error=string}
// @Router /admin/stats [get]
func (h *UserHandler) GetStatsDoc() {}

// GetPublicProfile godoc
// @Summary Get public user profile
// @Description Get the public subset of a user profile (username, role, farm details)
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{id=int,username=string,role=string,farm_name=string,is_active=bool}
// @Failure 404 {object} object{error=string}
// @Router /users/{id} [get]
func (h *UserHandler) GetPublicProfileDoc() {}
