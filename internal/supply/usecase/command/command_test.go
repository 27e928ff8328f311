package command

import (
	"context"
	"errors"
	"testing"

	productdomain "github.com/myduka/myduka-backend/internal/product/domain"
	"github.com/myduka/myduka-backend/internal/supply/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/kafka"
)

// Mock SupplyRequestRepository
type mockSupplyRepo struct {
	requests map[uint]*domain.SupplyRequest
	nextID   uint
}

func newMockSupplyRepo() *mockSupplyRepo {
	return &mockSupplyRepo{requests: make(map[uint]*domain.SupplyRequest), nextID: 1}
}

func (m *mockSupplyRepo) add(r *domain.SupplyRequest) *domain.SupplyRequest {
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.requests[r.ID] = r
	return r
}

func (m *mockSupplyRepo) Create(request *domain.SupplyRequest) error {
	m.add(request)
	return nil
}

func (m *mockSupplyRepo) FindByID(id uint) (*domain.SupplyRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockSupplyRepo) FindAll(limit, offset int) ([]domain.SupplyRequest, error) {
	var out []domain.SupplyRequest
	for _, r := range m.requests {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockSupplyRepo) FindByStore(storeID uint, limit, offset int) ([]domain.SupplyRequest, error) {
	var out []domain.SupplyRequest
	for _, r := range m.requests {
		if r.StoreID == storeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockSupplyRepo) FindByClerk(clerkID uint, limit, offset int) ([]domain.SupplyRequest, error) {
	var out []domain.SupplyRequest
	for _, r := range m.requests {
		if r.ClerkID == clerkID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockSupplyRepo) Update(request *domain.SupplyRequest) error {
	if _, ok := m.requests[request.ID]; !ok {
		return domain.ErrNotFound
	}
	m.requests[request.ID] = request
	return nil
}

func (m *mockSupplyRepo) Delete(id uint) error {
	if _, ok := m.requests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.requests, id)
	return nil
}

// Mock ProductRepository
type mockProductRepo struct {
	products map[uint]*productdomain.Product
}

func newMockProductRepo(products ...*productdomain.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[uint]*productdomain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(product *productdomain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) FindByID(id uint) (*productdomain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, productdomain.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) FindByName(name string) (*productdomain.Product, error) {
	return nil, productdomain.ErrNotFound
}

func (m *mockProductRepo) FindAll(limit, offset int) ([]productdomain.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Update(product *productdomain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(id uint) error {
	delete(m.products, id)
	return nil
}

// Mock EventPublisher
type mockSupplyPublisher struct {
	events []kafka.SupplyRespondedEvent
}

func (m *mockSupplyPublisher) PublishSupplyResponded(_ context.Context, event kafka.SupplyRespondedEvent) error {
	m.events = append(m.events, event)
	return nil
}

func clerkActor(id, storeID uint) userdomain.Actor {
	return userdomain.Actor{ID: id, Role: userdomain.RoleClerk, StoreID: &storeID}
}

func adminActor(id, storeID uint) userdomain.Actor {
	return userdomain.Actor{ID: id, Role: userdomain.RoleAdmin, StoreID: &storeID}
}

func TestCreateRequest_Success(t *testing.T) {
	requests := newMockSupplyRepo()
	products := newMockProductRepo(&productdomain.Product{ID: 1, Name: "Cooking Oil 5L"})
	handler := NewCreateRequestHandler(requests, products)

	request, err := handler.Handle(CreateRequestCommand{
		Actor:     clerkActor(9, 3),
		ProductID: 1,
		Quantity:  20,
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if request.Status != domain.StatusPending {
		t.Errorf("expected pending, got %s", request.Status)
	}
	if request.StoreID != 3 || request.ClerkID != 9 {
		t.Error("expected request bound to the clerk and its store")
	}
}

func TestCreateRequest_OnlyClerks(t *testing.T) {
	requests := newMockSupplyRepo()
	products := newMockProductRepo(&productdomain.Product{ID: 1, Name: "Cooking Oil 5L"})
	handler := NewCreateRequestHandler(requests, products)

	_, err := handler.Handle(CreateRequestCommand{
		Actor:     adminActor(2, 3),
		ProductID: 1,
		Quantity:  20,
	})
	if !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

func TestCreateRequest_UnknownProduct(t *testing.T) {
	requests := newMockSupplyRepo()
	products := newMockProductRepo()
	handler := NewCreateRequestHandler(requests, products)

	_, err := handler.Handle(CreateRequestCommand{
		Actor:     clerkActor(9, 3),
		ProductID: 404,
		Quantity:  5,
	})
	if !errors.Is(err, productdomain.ErrNotFound) {
		t.Errorf("expected product ErrNotFound, got: %v", err)
	}
}

func TestRespondRequest_Approve(t *testing.T) {
	requests := newMockSupplyRepo()
	requests.add(&domain.SupplyRequest{ProductID: 1, StoreID: 3, ClerkID: 9, Quantity: 20, Status: domain.StatusPending})
	publisher := &mockSupplyPublisher{}
	handler := NewRespondRequestHandler(requests, publisher)

	request, err := handler.Handle(context.Background(), RespondRequestCommand{
		Actor:     adminActor(2, 3),
		RequestID: 1,
		Status:    domain.StatusApproved,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if request.Status != domain.StatusApproved {
		t.Errorf("expected approved, got %s", request.Status)
	}
	if request.RespondedBy == nil || *request.RespondedBy != 2 {
		t.Error("expected responder to be recorded")
	}
	if request.RespondedAt == nil {
		t.Error("expected response time to be recorded")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one supply event, got %d", len(publisher.events))
	}
	if publisher.events[0].Status != domain.StatusApproved {
		t.Errorf("unexpected event status: %s", publisher.events[0].Status)
	}
}

func TestRespondRequest_TerminalStateSticks(t *testing.T) {
	requests := newMockSupplyRepo()
	requests.add(&domain.SupplyRequest{ProductID: 1, StoreID: 3, ClerkID: 9, Status: domain.StatusDeclined})
	handler := NewRespondRequestHandler(requests, nil)

	_, err := handler.Handle(context.Background(), RespondRequestCommand{
		Actor:     adminActor(2, 3),
		RequestID: 1,
		Status:    domain.StatusApproved,
	})
	if !errors.Is(err, domain.ErrRequestClosed) {
		t.Errorf("expected ErrRequestClosed, got: %v", err)
	}
}

func TestRespondRequest_BadStatus(t *testing.T) {
	requests := newMockSupplyRepo()
	requests.add(&domain.SupplyRequest{ProductID: 1, StoreID: 3, ClerkID: 9, Status: domain.StatusPending})
	handler := NewRespondRequestHandler(requests, nil)

	_, err := handler.Handle(context.Background(), RespondRequestCommand{
		Actor:     adminActor(2, 3),
		RequestID: 1,
		Status:    "maybe",
	})
	if !errors.Is(err, domain.ErrBadStatus) {
		t.Errorf("expected ErrBadStatus, got: %v", err)
	}
}

func TestRespondRequest_AdminOnly(t *testing.T) {
	requests := newMockSupplyRepo()
	request := requests.add(&domain.SupplyRequest{ProductID: 1, StoreID: 3, ClerkID: 9, Status: domain.StatusPending})
	handler := NewRespondRequestHandler(requests, nil)

	if _, err := handler.Handle(context.Background(), RespondRequestCommand{
		Actor:     userdomain.Actor{ID: 1, Role: userdomain.RoleMerchant},
		RequestID: 1,
		Status:    domain.StatusApproved,
	}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for merchant, got: %v", err)
	}

	if _, err := handler.Handle(context.Background(), RespondRequestCommand{
		Actor:     clerkActor(9, 3),
		RequestID: 1,
		Status:    domain.StatusApproved,
	}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for clerk, got: %v", err)
	}

	if request.Status != domain.StatusPending {
		t.Errorf("expected request untouched, got status %s", request.Status)
	}
}

func TestRespondRequest_AdminStoreScoping(t *testing.T) {
	requests := newMockSupplyRepo()
	requests.add(&domain.SupplyRequest{ProductID: 1, StoreID: 7, ClerkID: 9, Status: domain.StatusPending})
	handler := NewRespondRequestHandler(requests, nil)

	// Admin from a different store
	if _, err := handler.Handle(context.Background(), RespondRequestCommand{
		Actor:     adminActor(2, 3),
		RequestID: 1,
		Status:    domain.StatusApproved,
	}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden across stores, got: %v", err)
	}

	// The store's own admin
	if _, err := handler.Handle(context.Background(), RespondRequestCommand{
		Actor:     adminActor(4, 7),
		RequestID: 1,
		Status:    domain.StatusDeclined,
	}); err != nil {
		t.Errorf("admin response failed: %v", err)
	}
}

func TestDeleteRequest_MerchantOnly(t *testing.T) {
	requests := newMockSupplyRepo()
	requests.add(&domain.SupplyRequest{ProductID: 1, StoreID: 3, ClerkID: 9, Status: domain.StatusPending})
	handler := NewDeleteRequestHandler(requests)

	if err := handler.Handle(DeleteRequestCommand{Actor: clerkActor(9, 3), RequestID: 1}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for the requesting clerk, got: %v", err)
	}
	if err := handler.Handle(DeleteRequestCommand{Actor: adminActor(2, 3), RequestID: 1}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for admin, got: %v", err)
	}
	if len(requests.requests) != 1 {
		t.Fatal("expected request to survive forbidden deletes")
	}

	if err := handler.Handle(DeleteRequestCommand{Actor: userdomain.Actor{ID: 1, Role: userdomain.RoleMerchant}, RequestID: 1}); err != nil {
		t.Fatalf("merchant delete failed: %v", err)
	}
	if len(requests.requests) != 0 {
		t.Error("expected request to be removed")
	}
}

func TestDeleteRequest_UnknownRequest(t *testing.T) {
	handler := NewDeleteRequestHandler(newMockSupplyRepo())

	err := handler.Handle(DeleteRequestCommand{Actor: userdomain.Actor{ID: 1, Role: userdomain.RoleMerchant}, RequestID: 404})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
