package command_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/farmgate/marketplace/internal/user/domain"
	"github.com/farmgate/marketplace/internal/user/usecase/command"
	"github.com/farmgate/marketplace/pkg/auth"
)

// fakeUserRepo is an in-memory UserRepository for handler tests.
type fakeUserRepo struct {
	nextID uint
	users  map[uint]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*domain.User{}}
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByRole(role string, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count() (int64, error) { return int64(len(f.users)), nil }

func (f *fakeUserRepo) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) CountActive() (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

func floatp(v float64) *float64 { return &v }

func TestRegisterConsumer(t *testing.T) {
	repo := newFakeUserRepo()
	handler := command.NewRegisterUserHandler(repo)

	user, err := handler.Handle(command.RegisterUserCommand{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		FullName: "Asha Patel",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if user.Role != domain.RoleConsumer {
		t.Errorf("role = %q, want %q", user.Role, domain.RoleConsumer)
	}
	if !user.IsActive {
		t.Error("new user should be active")
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}
	if !auth.CheckPassword("secret123", user.Password) {
		t.Error("stored hash does not verify against original password")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     command.RegisterUserCommand
		wantErr string
	}{
		{
			name:    "missing username",
			cmd:     command.RegisterUserCommand{Email: "a@b.com", Password: "secret123", FullName: "A"},
			wantErr: "username is required",
		},
		{
			name:    "short password",
			cmd:     command.RegisterUserCommand{Username: "a", Email: "a@b.com", Password: "abc", FullName: "A"},
			wantErr: "at least 6 characters",
		},
		{
			name:    "unknown role",
			cmd:     command.RegisterUserCommand{Username: "a", Email: "a@b.com", Password: "secret123", FullName: "A", Role: "superuser"},
			wantErr: "invalid role",
		},
		{
			name:    "farmer without coordinates",
			cmd:     command.RegisterUserCommand{Username: "a", Email: "a@b.com", Password: "secret123", FullName: "A", Role: domain.RoleFarmer},
			wantErr: "farm coordinates are required",
		},
		{
			name: "latitude out of range",
			cmd: command.RegisterUserCommand{
				Username: "a", Email: "a@b.com", Password: "secret123", FullName: "A",
				Role: domain.RoleFarmer, Latitude: floatp(95), Longitude: floatp(77),
			},
			wantErr: "latitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			handler := command.NewRegisterUserHandler(repo)

			_, err := handler.Handle(tt.cmd)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
			if n, _ := repo.Count(); n != 0 {
				t.Errorf("invalid registration persisted %d users", n)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	handler := command.NewRegisterUserHandler(repo)

	cmd := command.RegisterUserCommand{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		FullName: "Asha Patel",
	}
	if _, err := handler.Handle(cmd); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	cmd.Email = "other@example.com"
	if _, err := handler.Handle(cmd); err == nil {
		t.Fatal("expected duplicate username error")
	}
}

func TestRegisterFarmerWithLocation(t *testing.T) {
	repo := newFakeUserRepo()
	handler := command.NewRegisterUserHandler(repo)

	user, err := handler.Handle(command.RegisterUserCommand{
		Username:  "ramesh",
		Email:     "ramesh@example.com",
		Password:  "secret123",
		FullName:  "Ramesh Kumar",
		Role:      domain.RoleFarmer,
		FarmName:  "Green Acres",
		Latitude:  floatp(28.61),
		Longitude: floatp(77.21),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if !user.IsFarmer() {
		t.Errorf("role = %q, want farmer", user.Role)
	}
	if !user.HasLocation() {
		t.Error("farmer should have a location")
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	register := command.NewRegisterUserHandler(repo)
	login := command.NewLoginUserHandler(repo)

	if _, err := register.Handle(command.RegisterUserCommand{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		FullName: "Asha Patel",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := login.Handle(command.LoginUserCommand{Username: "asha", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}

	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "asha" {
		t.Errorf("claims.Username = %q, want asha", claims.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	register := command.NewRegisterUserHandler(repo)
	login := command.NewLoginUserHandler(repo)

	if _, err := register.Handle(command.RegisterUserCommand{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		FullName: "Asha Patel",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := login.Handle(command.LoginUserCommand{Username: "asha", Password: "wrong"}); err == nil {
		t.Fatal("expected invalid credentials error")
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	register := command.NewRegisterUserHandler(repo)
	toggle := command.NewToggleActiveHandler(repo)
	login := command.NewLoginUserHandler(repo)

	user, err := register.Handle(command.RegisterUserCommand{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		FullName: "Asha Patel",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := toggle.Handle(command.ToggleActiveCommand{UserID: user.ID, IsActive: false}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if _, err := login.Handle(command.LoginUserCommand{Username: "asha", Password: "secret123"}); err == nil {
		t.Fatal("expected deactivated account error")
	}
}

func TestChangeRoleRequiresLocationForFarmer(t *testing.T) {
	repo := newFakeUserRepo()
	register := command.NewRegisterUserHandler(repo)
	changeRole := command.NewChangeRoleHandler(repo)

	user, err := register.Handle(command.RegisterUserCommand{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		FullName: "Asha Patel",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := changeRole.Handle(command.ChangeRoleCommand{UserID: user.ID, Role: domain.RoleFarmer}); err == nil {
		t.Fatal("expected coordinates-required error")
	}

	// With a location set, promotion succeeds.
	update := command.NewUpdateUserHandler(repo)
	if _, err := update.Handle(command.UpdateUserCommand{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Latitude:  floatp(19.07),
		Longitude: floatp(72.87),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	promoted, err := changeRole.Handle(command.ChangeRoleCommand{UserID: user.ID, Role: domain.RoleFarmer})
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if promoted.Role != domain.RoleFarmer {
		t.Errorf("role = %q, want farmer", promoted.Role)
	}
}
