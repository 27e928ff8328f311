package command

import (
	"errors"
	"testing"
	"time"

	"github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

// Mock UserRepository
type mockUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (m *mockUserRepo) add(u *domain.User) *domain.User {
	if u.ID == 0 {
		u.ID = m.nextID
		m.nextID++
	}
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepo) Create(user *domain.User) error {
	m.add(user)
	return nil
}

func (m *mockUserRepo) FindByID(id uint) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) FindByRole(role string, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) Update(user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(id uint) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func uintPtr(v uint) *uint { return &v }

func TestRegisterMerchant_Success(t *testing.T) {
	repo := newMockUserRepo()
	handler := NewRegisterMerchantHandler(repo)

	user, err := handler.Handle(RegisterMerchantCommand{
		Username: "owner",
		Email:    "owner@duka.co.ke",
		Password: "Str0ng!Pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.RoleMerchant {
		t.Errorf("expected merchant role, got %s", user.Role)
	}
	if !user.IsActive {
		t.Error("expected new merchant to be active")
	}
	if user.Password == "Str0ng!Pass" {
		t.Error("password must be hashed before storage")
	}
}

func TestRegisterMerchant_SingleMerchantOnly(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&domain.User{Username: "owner", Email: "owner@duka.co.ke", Role: domain.RoleMerchant})
	handler := NewRegisterMerchantHandler(repo)

	_, err := handler.Handle(RegisterMerchantCommand{
		Username: "second",
		Email:    "second@duka.co.ke",
		Password: "Str0ng!Pass",
	})
	if !errors.Is(err, domain.ErrMerchantExists) {
		t.Errorf("expected ErrMerchantExists, got: %v", err)
	}
}

func TestRegisterMerchant_WeakPasswordRejected(t *testing.T) {
	repo := newMockUserRepo()
	handler := NewRegisterMerchantHandler(repo)

	if _, err := handler.Handle(RegisterMerchantCommand{
		Username: "owner",
		Email:    "owner@duka.co.ke",
		Password: "weak",
	}); err == nil {
		t.Error("expected weak password to be rejected")
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	hash, _ := auth.HashPassword("Str0ng!Pass")
	repo.add(&domain.User{Username: "owner", Email: "owner@duka.co.ke", Password: hash, Role: domain.RoleMerchant, IsActive: true})
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	handler := NewLoginUserHandler(repo, tokens)

	resp, err := handler.Handle(LoginUserCommand{Email: "owner@duka.co.ke", Password: "Str0ng!Pass"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if resp.User.Email != "owner@duka.co.ke" {
		t.Errorf("unexpected user in response: %s", resp.User.Email)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := newMockUserRepo()
	hash, _ := auth.HashPassword("Str0ng!Pass")
	repo.add(&domain.User{Username: "owner", Email: "owner@duka.co.ke", Password: hash, Role: domain.RoleMerchant, IsActive: true})
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	handler := NewLoginUserHandler(repo, tokens)

	if _, err := handler.Handle(LoginUserCommand{Email: "owner@duka.co.ke", Password: "wrong"}); !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials for wrong password, got: %v", err)
	}
	if _, err := handler.Handle(LoginUserCommand{Email: "ghost@duka.co.ke", Password: "Str0ng!Pass"}); !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials for unknown email, got: %v", err)
	}
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	repo := newMockUserRepo()
	hash, _ := auth.HashPassword("Str0ng!Pass")
	repo.add(&domain.User{Username: "clerk", Email: "clerk@duka.co.ke", Password: hash, Role: domain.RoleClerk, IsActive: false})
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	handler := NewLoginUserHandler(repo, tokens)

	if _, err := handler.Handle(LoginUserCommand{Email: "clerk@duka.co.ke", Password: "Str0ng!Pass"}); !errors.Is(err, domain.ErrInactive) {
		t.Errorf("expected ErrInactive, got: %v", err)
	}
}

func TestCreateAdmin_MerchantOnly(t *testing.T) {
	repo := newMockUserRepo()
	handler := NewCreateAdminHandler(repo)

	_, err := handler.Handle(CreateAdminCommand{
		Actor:    domain.Actor{ID: 2, Role: domain.RoleAdmin},
		Username: "admin2",
		Email:    "admin2@duka.co.ke",
		Password: "Str0ng!Pass",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-merchant actor, got: %v", err)
	}
}

func TestCreateAdmin_Success(t *testing.T) {
	repo := newMockUserRepo()
	merchant := repo.add(&domain.User{Username: "owner", Email: "owner@duka.co.ke", Role: domain.RoleMerchant})
	handler := NewCreateAdminHandler(repo)

	admin, err := handler.Handle(CreateAdminCommand{
		Actor:    merchant.Actor(),
		Username: "admin1",
		Email:    "admin1@duka.co.ke",
		Password: "Str0ng!Pass",
		StoreID:  uintPtr(3),
	})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", admin.Role)
	}
	if admin.MerchantID == nil || *admin.MerchantID != merchant.ID {
		t.Error("expected admin to reference the creating merchant")
	}
	if admin.StoreID == nil || *admin.StoreID != 3 {
		t.Error("expected admin to carry the assigned store")
	}
}

func TestCreateAdmin_EmailTaken(t *testing.T) {
	repo := newMockUserRepo()
	merchant := repo.add(&domain.User{Username: "owner", Email: "owner@duka.co.ke", Role: domain.RoleMerchant})
	repo.add(&domain.User{Username: "other", Email: "taken@duka.co.ke", Role: domain.RoleAdmin})
	handler := NewCreateAdminHandler(repo)

	_, err := handler.Handle(CreateAdminCommand{
		Actor:    merchant.Actor(),
		Username: "admin1",
		Email:    "taken@duka.co.ke",
		Password: "Str0ng!Pass",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestCreateClerk_InheritsAdminStore(t *testing.T) {
	repo := newMockUserRepo()
	admin := repo.add(&domain.User{Username: "admin1", Email: "admin1@duka.co.ke", Role: domain.RoleAdmin, StoreID: uintPtr(5)})
	handler := NewCreateClerkHandler(repo)

	clerk, err := handler.Handle(CreateClerkCommand{
		Actor:    admin.Actor(),
		Username: "clerk1",
		Email:    "clerk1@duka.co.ke",
		Password: "Str0ng!Pass",
	})
	if err != nil {
		t.Fatalf("create clerk failed: %v", err)
	}
	if clerk.Role != domain.RoleClerk {
		t.Errorf("expected clerk role, got %s", clerk.Role)
	}
	if clerk.StoreID == nil || *clerk.StoreID != 5 {
		t.Error("expected clerk to inherit the admin's store")
	}
	if clerk.AdminID == nil || *clerk.AdminID != admin.ID {
		t.Error("expected clerk to reference the creating admin")
	}
}

func TestCreateClerk_AdminWithoutStoreRejected(t *testing.T) {
	repo := newMockUserRepo()
	admin := repo.add(&domain.User{Username: "admin1", Email: "admin1@duka.co.ke", Role: domain.RoleAdmin})
	handler := NewCreateClerkHandler(repo)

	if _, err := handler.Handle(CreateClerkCommand{
		Actor:    admin.Actor(),
		Username: "clerk1",
		Email:    "clerk1@duka.co.ke",
		Password: "Str0ng!Pass",
	}); err == nil {
		t.Error("expected error when admin has no store assigned")
	}
}

func TestToggleActive(t *testing.T) {
	repo := newMockUserRepo()
	merchant := repo.add(&domain.User{Username: "owner", Email: "owner@duka.co.ke", Role: domain.RoleMerchant})
	clerk := repo.add(&domain.User{Username: "clerk1", Email: "clerk1@duka.co.ke", Role: domain.RoleClerk, IsActive: true})
	handler := NewToggleActiveHandler(repo)

	updated, err := handler.Handle(ToggleActiveCommand{Actor: merchant.Actor(), TargetID: clerk.ID, IsActive: false})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if updated.IsActive {
		t.Error("expected clerk to be deactivated")
	}

	// Merchants cannot deactivate themselves
	if _, err := handler.Handle(ToggleActiveCommand{Actor: merchant.Actor(), TargetID: merchant.ID, IsActive: false}); err == nil {
		t.Error("expected self-deactivation to be rejected")
	}

	// Non-merchants cannot toggle at all
	if _, err := handler.Handle(ToggleActiveCommand{Actor: clerk.Actor(), TargetID: merchant.ID, IsActive: false}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}
