package command

import (
	"context"
	"errors"
	"testing"

	"github.com/myduka/myduka-backend/internal/inventory/domain"
	productdomain "github.com/myduka/myduka-backend/internal/product/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/kafka"
)

// Mock InventoryRepository
type mockInventoryRepo struct {
	records map[uint]*domain.InventoryRecord
	nextID  uint
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{records: make(map[uint]*domain.InventoryRecord), nextID: 1}
}

func (m *mockInventoryRepo) add(r *domain.InventoryRecord) *domain.InventoryRecord {
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.records[r.ID] = r
	return r
}

func (m *mockInventoryRepo) Create(record *domain.InventoryRecord) error {
	m.add(record)
	return nil
}

func (m *mockInventoryRepo) FindByID(id uint) (*domain.InventoryRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockInventoryRepo) FindAll(limit, offset int) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockInventoryRepo) FindByStore(storeID uint, limit, offset int) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	for _, r := range m.records {
		if r.StoreID == storeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockInventoryRepo) FindByClerk(clerkID uint, limit, offset int) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	for _, r := range m.records {
		if r.ClerkID != nil && *r.ClerkID == clerkID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockInventoryRepo) FindLatest(productID, storeID uint) (*domain.InventoryRecord, error) {
	var latest *domain.InventoryRecord
	for _, r := range m.records {
		if r.ProductID == productID && r.StoreID == storeID {
			if latest == nil || r.ID > latest.ID {
				latest = r
			}
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (m *mockInventoryRepo) Update(record *domain.InventoryRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return domain.ErrNotFound
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockInventoryRepo) Delete(id uint) error {
	if _, ok := m.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records, id)
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
	for _, p := range m.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, productdomain.ErrNotFound
}

func (m *mockProductRepo) FindAll(limit, offset int) ([]productdomain.Product, error) {
	var out []productdomain.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
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
type mockStockPublisher struct {
	events []kafka.StockReceivedEvent
	err    error
}

func (m *mockStockPublisher) PublishStockReceived(_ context.Context, event kafka.StockReceivedEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func uintPtr(v uint) *uint          { return &v }
func intPtr(v int) *int             { return &v }
func strPtr(v string) *string       { return &v }
func floatPtr(v float64) *float64   { return &v }

func clerkActor(id, storeID uint) userdomain.Actor {
	return userdomain.Actor{ID: id, Role: userdomain.RoleClerk, StoreID: &storeID}
}

func TestRecordReceipt_Success(t *testing.T) {
	records := newMockInventoryRepo()
	products := newMockProductRepo(&productdomain.Product{ID: 1, Name: "Maize Flour 2kg", BuyingPrice: 120, SellingPrice: 155})
	publisher := &mockStockPublisher{}
	handler := NewRecordReceiptHandler(records, products, publisher)

	record, err := handler.Handle(context.Background(), RecordReceiptCommand{
		Actor:            clerkActor(9, 3),
		ProductID:        1,
		QuantityReceived: 50,
		ItemsSpoilt:      2,
	})
	if err != nil {
		t.Fatalf("record receipt failed: %v", err)
	}
	if record.ItemsInStock != 48 {
		t.Errorf("expected 48 in stock, got %d", record.ItemsInStock)
	}
	if record.PaymentStatus != domain.PaymentUnpaid {
		t.Errorf("expected unpaid default, got %s", record.PaymentStatus)
	}
	if record.BuyingPrice != 120 || record.SellingPrice != 155 {
		t.Error("expected prices snapshotted from the product")
	}
	if record.StoreID != 3 {
		t.Errorf("expected record bound to clerk's store, got %d", record.StoreID)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one stock event, got %d", len(publisher.events))
	}
	if publisher.events[0].QuantityReceived != 50 {
		t.Errorf("unexpected event quantity: %d", publisher.events[0].QuantityReceived)
	}
}

func TestRecordReceipt_OnlyClerks(t *testing.T) {
	records := newMockInventoryRepo()
	products := newMockProductRepo(&productdomain.Product{ID: 1, Name: "Sugar 1kg"})
	handler := NewRecordReceiptHandler(records, products, nil)

	storeID := uint(3)
	_, err := handler.Handle(context.Background(), RecordReceiptCommand{
		Actor:            userdomain.Actor{ID: 1, Role: userdomain.RoleAdmin, StoreID: &storeID},
		ProductID:        1,
		QuantityReceived: 10,
	})
	if !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for admin, got: %v", err)
	}
}

func TestRecordReceipt_SpoiltExceedsReceived(t *testing.T) {
	records := newMockInventoryRepo()
	products := newMockProductRepo(&productdomain.Product{ID: 1, Name: "Sugar 1kg"})
	handler := NewRecordReceiptHandler(records, products, nil)

	if _, err := handler.Handle(context.Background(), RecordReceiptCommand{
		Actor:            clerkActor(9, 3),
		ProductID:        1,
		QuantityReceived: 5,
		ItemsSpoilt:      6,
	}); err == nil {
		t.Error("expected spoilt > received to be rejected")
	}
}

func TestRecordReceipt_UnknownProduct(t *testing.T) {
	records := newMockInventoryRepo()
	products := newMockProductRepo()
	handler := NewRecordReceiptHandler(records, products, nil)

	_, err := handler.Handle(context.Background(), RecordReceiptCommand{
		Actor:            clerkActor(9, 3),
		ProductID:        404,
		QuantityReceived: 10,
	})
	if !errors.Is(err, productdomain.ErrNotFound) {
		t.Errorf("expected product ErrNotFound, got: %v", err)
	}
}

func TestRecordReceipt_PublisherFailureDoesNotBlock(t *testing.T) {
	records := newMockInventoryRepo()
	products := newMockProductRepo(&productdomain.Product{ID: 1, Name: "Sugar 1kg", BuyingPrice: 80, SellingPrice: 100})
	publisher := &mockStockPublisher{err: errors.New("broker down")}
	handler := NewRecordReceiptHandler(records, products, publisher)

	record, err := handler.Handle(context.Background(), RecordReceiptCommand{
		Actor:            clerkActor(9, 3),
		ProductID:        1,
		QuantityReceived: 10,
	})
	if err != nil {
		t.Fatalf("receipt must succeed even when publishing fails: %v", err)
	}
	if record.ID == 0 {
		t.Error("expected record to be persisted")
	}
}

func TestAdjustRecord_ClerkStockOnly(t *testing.T) {
	records := newMockInventoryRepo()
	records.add(&domain.InventoryRecord{StoreID: 3, ItemsInStock: 48, ItemsSpoilt: 2, PaymentStatus: domain.PaymentUnpaid})
	handler := NewAdjustRecordHandler(records)

	updated, err := handler.Handle(AdjustRecordCommand{
		Actor:        clerkActor(9, 3),
		RecordID:     1,
		ItemsInStock: intPtr(45),
		ItemsSpoilt:  intPtr(5),
	})
	if err != nil {
		t.Fatalf("clerk stock adjustment failed: %v", err)
	}
	if updated.ItemsInStock != 45 || updated.ItemsSpoilt != 5 {
		t.Errorf("unexpected counts: stock=%d spoilt=%d", updated.ItemsInStock, updated.ItemsSpoilt)
	}

	// Payment status is off limits for clerks
	if _, err := handler.Handle(AdjustRecordCommand{
		Actor:         clerkActor(9, 3),
		RecordID:      1,
		PaymentStatus: strPtr(domain.PaymentPaid),
	}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for clerk payment change, got: %v", err)
	}
}

func TestAdjustRecord_AdminPaymentOnly(t *testing.T) {
	records := newMockInventoryRepo()
	records.add(&domain.InventoryRecord{StoreID: 3, ItemsInStock: 48, PaymentStatus: domain.PaymentUnpaid})
	handler := NewAdjustRecordHandler(records)
	storeID := uint(3)
	admin := userdomain.Actor{ID: 2, Role: userdomain.RoleAdmin, StoreID: &storeID}

	updated, err := handler.Handle(AdjustRecordCommand{
		Actor:         admin,
		RecordID:      1,
		PaymentStatus: strPtr(domain.PaymentPaid),
	})
	if err != nil {
		t.Fatalf("admin payment settlement failed: %v", err)
	}
	if updated.PaymentStatus != domain.PaymentPaid {
		t.Errorf("expected paid, got %s", updated.PaymentStatus)
	}

	if _, err := handler.Handle(AdjustRecordCommand{
		Actor:        admin,
		RecordID:     1,
		ItemsInStock: intPtr(10),
	}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for admin stock change, got: %v", err)
	}
}

func TestAdjustRecord_StoreScoping(t *testing.T) {
	records := newMockInventoryRepo()
	records.add(&domain.InventoryRecord{StoreID: 7, ItemsInStock: 10})
	handler := NewAdjustRecordHandler(records)

	// Clerk from another store
	if _, err := handler.Handle(AdjustRecordCommand{
		Actor:        clerkActor(9, 3),
		RecordID:     1,
		ItemsInStock: intPtr(5),
	}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden across stores, got: %v", err)
	}
}

func TestAdjustRecord_MerchantFullAccess(t *testing.T) {
	records := newMockInventoryRepo()
	records.add(&domain.InventoryRecord{StoreID: 7, ItemsInStock: 10, BuyingPrice: 100, SellingPrice: 120})
	handler := NewAdjustRecordHandler(records)
	merchant := userdomain.Actor{ID: 1, Role: userdomain.RoleMerchant}

	updated, err := handler.Handle(AdjustRecordCommand{
		Actor:        merchant,
		RecordID:     1,
		ItemsInStock: intPtr(8),
		BuyingPrice:  floatPtr(90),
		SellingPrice: floatPtr(130),
	})
	if err != nil {
		t.Fatalf("merchant adjustment failed: %v", err)
	}
	if updated.ItemsInStock != 8 || updated.BuyingPrice != 90 || updated.SellingPrice != 130 {
		t.Error("expected all merchant fields to be applied")
	}
}

func TestAdjustRecord_NegativeRejected(t *testing.T) {
	records := newMockInventoryRepo()
	records.add(&domain.InventoryRecord{StoreID: 3, ItemsInStock: 10})
	handler := NewAdjustRecordHandler(records)

	if _, err := handler.Handle(AdjustRecordCommand{
		Actor:        clerkActor(9, 3),
		RecordID:     1,
		ItemsInStock: intPtr(-1),
	}); !errors.Is(err, domain.ErrNegativeQuantity) {
		t.Errorf("expected ErrNegativeQuantity, got: %v", err)
	}
}

func TestDeleteRecord_MerchantOnly(t *testing.T) {
	records := newMockInventoryRepo()
	records.add(&domain.InventoryRecord{StoreID: 3})
	handler := NewDeleteRecordHandler(records)

	if err := handler.Handle(DeleteRecordCommand{Actor: clerkActor(9, 3), RecordID: 1}); !errors.Is(err, userdomain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for clerk delete, got: %v", err)
	}
	if err := handler.Handle(DeleteRecordCommand{Actor: userdomain.Actor{ID: 1, Role: userdomain.RoleMerchant}, RecordID: 1}); err != nil {
		t.Errorf("merchant delete failed: %v", err)
	}
}
