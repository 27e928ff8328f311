package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/myduka/myduka-backend/internal/invitation/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// Mock InvitationRepository
type mockInvitationRepo struct {
	invitations map[string]*domain.Invitation
	nextID      uint
}

func newMockInvitationRepo() *mockInvitationRepo {
	return &mockInvitationRepo{invitations: make(map[string]*domain.Invitation), nextID: 1}
}

func (m *mockInvitationRepo) add(inv *domain.Invitation) *domain.Invitation {
	if inv.ID == 0 {
		inv.ID = m.nextID
		m.nextID++
	}
	m.invitations[inv.Token] = inv
	return inv
}

func (m *mockInvitationRepo) Create(invitation *domain.Invitation) error {
	m.add(invitation)
	return nil
}

func (m *mockInvitationRepo) FindByToken(token string) (*domain.Invitation, error) {
	inv, ok := m.invitations[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (m *mockInvitationRepo) FindByInviter(inviterID uint, limit, offset int) ([]domain.Invitation, error) {
	var out []domain.Invitation
	for _, inv := range m.invitations {
		if inv.InvitedBy == inviterID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (m *mockInvitationRepo) Update(invitation *domain.Invitation) error {
	if _, ok := m.invitations[invitation.Token]; !ok {
		return domain.ErrNotFound
	}
	m.invitations[invitation.Token] = invitation
	return nil
}

// Mock UserRepository
type mockUserRepo struct {
	users  map[uint]*userdomain.User
	nextID uint
}

func newMockUserRepo(users ...*userdomain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uint]*userdomain.User), nextID: 1}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = m.nextID
			m.nextID++
		}
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(user *userdomain.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(id uint) (*userdomain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userdomain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByUsername(username string) (*userdomain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, userdomain.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(email string) (*userdomain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userdomain.ErrNotFound
}

func (m *mockUserRepo) FindAll(limit, offset int) ([]userdomain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindByRole(role string, limit, offset int) ([]userdomain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Update(user *userdomain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(id uint) error {
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

// Mock Mailer
type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) SendAdminInvitation(to, link string, validHours int) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func merchantActor(id uint) userdomain.Actor {
	return userdomain.Actor{ID: id, Role: userdomain.RoleMerchant}
}

func TestCreateInvitation_Success(t *testing.T) {
	invitations := newMockInvitationRepo()
	users := newMockUserRepo()
	mail := &mockMailer{}
	handler := NewCreateInvitationHandler(invitations, users, mail, "http://localhost:3000", 24*time.Hour)

	inv, err := handler.Handle(context.Background(), CreateInvitationCommand{
		Actor: merchantActor(1),
		Email: "newadmin@duka.co.ke",
	})
	if err != nil {
		t.Fatalf("create invitation failed: %v", err)
	}
	if inv.Token == "" {
		t.Error("expected a token to be generated")
	}
	if inv.InvitedBy != 1 {
		t.Errorf("expected inviter to be recorded, got %d", inv.InvitedBy)
	}
	if !inv.ExpiresAt.After(time.Now()) {
		t.Error("expected expiry in the future")
	}
	if len(mail.sent) != 1 || mail.sent[0] != "newadmin@duka.co.ke" {
		t.Errorf("expected invitation mail to the invitee, got %v", mail.sent)
	}
}

func TestCreateInvitation_MerchantOnly(t *testing.T) {
	handler := NewCreateInvitationHandler(newMockInvitationRepo(), newMockUserRepo(), &mockMailer{}, "http://localhost:3000", 24*time.Hour)

	storeID := uint(3)
	_, err := handler.Handle(context.Background(), CreateInvitationCommand{
		Actor: userdomain.Actor{ID: 2, Role: userdomain.RoleAdmin, StoreID: &storeID},
		Email: "newadmin@duka.co.ke",
	})
	if !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

func TestCreateInvitation_ExistingEmailRejected(t *testing.T) {
	users := newMockUserRepo(&userdomain.User{Username: "admin1", Email: "taken@duka.co.ke", Role: userdomain.RoleAdmin})
	handler := NewCreateInvitationHandler(newMockInvitationRepo(), users, &mockMailer{}, "http://localhost:3000", 24*time.Hour)

	_, err := handler.Handle(context.Background(), CreateInvitationCommand{
		Actor: merchantActor(1),
		Email: "taken@duka.co.ke",
	})
	if !errors.Is(err, userdomain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestCreateInvitation_MailFailureStillPersists(t *testing.T) {
	invitations := newMockInvitationRepo()
	mail := &mockMailer{err: errors.New("smtp down")}
	handler := NewCreateInvitationHandler(invitations, newMockUserRepo(), mail, "http://localhost:3000", 24*time.Hour)

	inv, err := handler.Handle(context.Background(), CreateInvitationCommand{
		Actor: merchantActor(1),
		Email: "newadmin@duka.co.ke",
	})
	if err != nil {
		t.Fatalf("invitation must persist even when mail fails: %v", err)
	}
	if _, err := invitations.FindByToken(inv.Token); err != nil {
		t.Error("expected invitation to be stored")
	}
}

func TestAcceptInvitation_Success(t *testing.T) {
	invitations := newMockInvitationRepo()
	storeID := uint(3)
	invitations.add(&domain.Invitation{
		Email:     "newadmin@duka.co.ke",
		Token:     "tok-1",
		InvitedBy: 1,
		StoreID:   &storeID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	users := newMockUserRepo()
	handler := NewAcceptInvitationHandler(invitations, users)

	user, err := handler.Handle(AcceptInvitationCommand{
		Token:    "tok-1",
		Username: "admin1",
		Password: "Str0ng!Pass",
	})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if user.Role != userdomain.RoleAdmin {
		t.Errorf("expected admin role, got %s", user.Role)
	}
	if user.Email != "newadmin@duka.co.ke" {
		t.Errorf("email must come from the invitation, got %s", user.Email)
	}
	if user.StoreID == nil || *user.StoreID != 3 {
		t.Error("expected store carried over from the invitation")
	}
	if user.MerchantID == nil || *user.MerchantID != 1 {
		t.Error("expected admin to reference the inviting merchant")
	}

	// Consumed invitations cannot be used again
	if _, err := handler.Handle(AcceptInvitationCommand{
		Token:    "tok-1",
		Username: "admin2",
		Password: "Str0ng!Pass",
	}); !errors.Is(err, domain.ErrUsed) {
		t.Errorf("expected ErrUsed on second redemption, got: %v", err)
	}
}

func TestAcceptInvitation_Expired(t *testing.T) {
	invitations := newMockInvitationRepo()
	invitations.add(&domain.Invitation{
		Email:     "late@duka.co.ke",
		Token:     "tok-old",
		InvitedBy: 1,
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	handler := NewAcceptInvitationHandler(invitations, newMockUserRepo())

	_, err := handler.Handle(AcceptInvitationCommand{
		Token:    "tok-old",
		Username: "admin1",
		Password: "Str0ng!Pass",
	})
	if !errors.Is(err, domain.ErrExpired) {
		t.Errorf("expected ErrExpired, got: %v", err)
	}
}

func TestAcceptInvitation_UnknownToken(t *testing.T) {
	handler := NewAcceptInvitationHandler(newMockInvitationRepo(), newMockUserRepo())

	_, err := handler.Handle(AcceptInvitationCommand{
		Token:    "tok-missing",
		Username: "admin1",
		Password: "Str0ng!Pass",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestAcceptInvitation_UsernameTaken(t *testing.T) {
	invitations := newMockInvitationRepo()
	invitations.add(&domain.Invitation{
		Email:     "newadmin@duka.co.ke",
		Token:     "tok-1",
		InvitedBy: 1,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	users := newMockUserRepo(&userdomain.User{Username: "admin1", Email: "other@duka.co.ke", Role: userdomain.RoleAdmin})
	handler := NewAcceptInvitationHandler(invitations, users)

	_, err := handler.Handle(AcceptInvitationCommand{
		Token:    "tok-1",
		Username: "admin1",
		Password: "Str0ng!Pass",
	})
	if !errors.Is(err, userdomain.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got: %v", err)
	}
}
