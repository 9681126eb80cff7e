package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/minimart/backend/internal/core/domain"
)

// Mock OwnershipStore
type mockOwnershipStore struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	records map[int64][]domain.OwnershipRecord
	nextID  int64

	findErr error
	listErr error
}

func newMockOwnershipStore() *mockOwnershipStore {
	return &mockOwnershipStore{
		users:   make(map[string]*domain.User),
		records: make(map[int64][]domain.OwnershipRecord),
	}
}

func (m *mockOwnershipStore) addUser(id int64, username string) {
	m.users[username] = &domain.User{ID: id, Username: username, Role: domain.RoleUser}
}

func (m *mockOwnershipStore) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Username]; ok {
		return 0, domain.ErrUserExists
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.Username] = &user
	return user.ID, nil
}

func (m *mockOwnershipStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.users[username], nil
}

func (m *mockOwnershipStore) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockOwnershipStore) ListOwnershipRecords(ctx context.Context, userID int64) ([]domain.OwnershipRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records[userID], nil
}

func (m *mockOwnershipStore) AddOwnershipRecord(ctx context.Context, rec domain.OwnershipRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	rec.ID = m.nextID
	m.records[rec.UserID] = append(m.records[rec.UserID], rec)
	return rec.ID, nil
}

func (m *mockOwnershipStore) RemoveOwnershipRecord(ctx context.Context, userID, recordID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.records[userID]
	for i, rec := range recs {
		if rec.ID == recordID {
			m.records[userID] = append(recs[:i], recs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Mock CatalogStore
type mockCatalogStore struct {
	mu      sync.Mutex
	entries map[string]domain.CatalogEntry
	getErrs map[string]error
}

func newMockCatalogStore() *mockCatalogStore {
	return &mockCatalogStore{
		entries: make(map[string]domain.CatalogEntry),
		getErrs: make(map[string]error),
	}
}

func (m *mockCatalogStore) Get(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.getErrs[id]; err != nil {
		return nil, err
	}
	entry, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (m *mockCatalogStore) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.CatalogEntry
	for _, entry := range m.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (m *mockCatalogStore) Insert(ctx context.Context, entry domain.CatalogEntry) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = "p-" + entry.Name
	m.entries[entry.ID] = entry
	return entry.ID, nil
}

func (m *mockCatalogStore) Update(ctx context.Context, id string, patch domain.CatalogPatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return false, nil
	}
	if patch.Name != nil {
		entry.Name = *patch.Name
	}
	if patch.Price != nil {
		entry.Price = *patch.Price
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	m.entries[id] = entry
	return true, nil
}

func (m *mockCatalogStore) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

func newCartService(ownership *mockOwnershipStore, catalog *mockCatalogStore) *CartService {
	return NewCartService(ownership, catalog, zap.NewNop(), 4)
}

func TestGetCart_EmptyCart(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")
	catalog := newMockCatalogStore()

	svc := newCartService(ownership, catalog)

	lines, err := svc.GetCart(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(lines))
	}
}

func TestGetCart_Anonymous(t *testing.T) {
	svc := newCartService(newMockOwnershipStore(), newMockCatalogStore())

	_, err := svc.GetCart(context.Background(), domain.Identity{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
}

func TestGetCart_UserNotFound(t *testing.T) {
	svc := newCartService(newMockOwnershipStore(), newMockCatalogStore())

	// Role does not bypass the ownership-domain resolution step.
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		_, err := svc.GetCart(context.Background(), domain.Identity{Username: "ghost", Role: role})
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("role %s: expected ErrUserNotFound, got: %v", role, err)
		}
	}
}

func TestGetCart_MissingProductOmitted(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")
	ownership.records[1] = []domain.OwnershipRecord{
		{ID: 1, UserID: 1, ProductRef: "P1", Quantity: 2},
		{ID: 2, UserID: 1, ProductRef: "P2", Quantity: 1},
	}

	catalog := newMockCatalogStore()
	catalog.entries["P1"] = domain.CatalogEntry{ID: "P1", Name: "Widget", Price: 9.99}

	svc := newCartService(ownership, catalog)

	lines, err := svc.GetCart(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("expected exactly 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line.ProductRef != "P1" {
		t.Errorf("expected product ref P1, got %s", line.ProductRef)
	}
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
	if line.Product.Name != "Widget" || line.Product.Price != 9.99 {
		t.Errorf("unexpected product details: %+v", line.Product)
	}
	if line.Product.Description != "" {
		t.Errorf("expected empty description, got %q", line.Product.Description)
	}
}

func TestGetCart_PreservesRecordOrder(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")
	catalog := newMockCatalogStore()

	refs := []string{"P1", "P2", "P3", "P4", "P5"}
	for i, ref := range refs {
		ownership.records[1] = append(ownership.records[1], domain.OwnershipRecord{
			ID: int64(i + 1), UserID: 1, ProductRef: ref, Quantity: i + 1,
		})
	}
	// P3 missing from the catalog.
	for _, ref := range []string{"P1", "P2", "P4", "P5"} {
		catalog.entries[ref] = domain.CatalogEntry{ID: ref, Name: "product " + ref, Price: 1}
	}

	svc := newCartService(ownership, catalog)

	lines, err := svc.GetCart(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want := []string{"P1", "P2", "P4", "P5"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, ref := range want {
		if lines[i].ProductRef != ref {
			t.Errorf("line %d: expected %s, got %s", i, ref, lines[i].ProductRef)
		}
	}
}

func TestGetCart_CatalogFailureSwallowedPerLine(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")
	ownership.records[1] = []domain.OwnershipRecord{
		{ID: 1, UserID: 1, ProductRef: "P1", Quantity: 1},
		{ID: 2, UserID: 1, ProductRef: "P2", Quantity: 1},
	}

	catalog := newMockCatalogStore()
	catalog.entries["P1"] = domain.CatalogEntry{ID: "P1", Name: "Widget", Price: 9.99}
	catalog.getErrs["P2"] = domain.ErrStoreUnavailable

	svc := newCartService(ownership, catalog)

	lines, err := svc.GetCart(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("expected degraded cart, got error: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductRef != "P1" {
		t.Errorf("expected only P1 to survive, got %+v", lines)
	}
}

func TestGetCart_OwnershipFailurePropagates(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")
	ownership.listErr = domain.ErrStoreUnavailable

	svc := newCartService(ownership, newMockCatalogStore())

	_, err := svc.GetCart(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got: %v", err)
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")

	svc := newCartService(ownership, newMockCatalogStore())

	for _, qty := range []int{0, -1} {
		_, err := svc.AddItem(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser}, "P1", qty)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got: %v", qty, err)
		}
	}
}

func TestAddItem_UnvalidatedProductRef(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")

	svc := newCartService(ownership, newMockCatalogStore())

	// The ref does not exist in the catalog; the add still succeeds.
	rec, err := svc.AddItem(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser}, "no-such-product", 3)
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected assigned record id")
	}
	if rec.ProductRef != "no-such-product" || rec.Quantity != 3 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestRemoveItem_NotFound(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")

	svc := newCartService(ownership, newMockCatalogStore())

	err := svc.RemoveItem(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser}, 42)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got: %v", err)
	}
}

func TestRemoveItem_OtherUsersRow(t *testing.T) {
	ownership := newMockOwnershipStore()
	ownership.addUser(1, "alice")
	ownership.addUser(2, "bob")
	ownership.records[2] = []domain.OwnershipRecord{
		{ID: 7, UserID: 2, ProductRef: "P1", Quantity: 1},
	}

	svc := newCartService(ownership, newMockCatalogStore())

	err := svc.RemoveItem(context.Background(), domain.Identity{Username: "alice", Role: domain.RoleUser}, 7)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound for another user's row, got: %v", err)
	}
}
