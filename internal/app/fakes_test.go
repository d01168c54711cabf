package app_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"resort_booking/internal/domain"
)

// ---- fakes ----

type fakeCatalog struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	finds    int
	upserts  []domain.Product
	misses   map[int64]int
}

func newFakeCatalog(ps ...domain.Product) *fakeCatalog {
	f := &fakeCatalog{products: map[int64]domain.Product{}, misses: map[int64]int{}}
	for _, p := range ps {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) FindProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	var out []domain.Product
	for _, p := range f.products {
		if q.Category != nil && p.Category != *q.Category {
			continue
		}
		if q.ReservableOnly && !p.Reservable {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) UpsertProduct(ctx context.Context, p domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
	f.upserts = append(f.upserts, p)
	return nil
}

func (f *fakeCatalog) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.misses[id] = status
	return nil
}

// fakeLedger joins against its own customer/product tables like the store's FKs would.
type fakeLedger struct {
	customers map[int64]string
	products  map[int64]string
	rows      map[int64]domain.NewReservation
	nextID    int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		customers: map[int64]string{7: "Ada Lovelace"},
		products:  map[int64]string{1: "Lakeside Cabin", 2: "Hot Stone Massage"},
		rows:      map[int64]domain.NewReservation{},
	}
}

func (f *fakeLedger) CreateReservation(ctx context.Context, r domain.NewReservation) (int64, error) {
	if _, ok := f.customers[r.CustomerID]; !ok {
		return 0, domain.ErrReferentialIntegrity
	}
	if _, ok := f.products[r.ProductID]; !ok {
		return 0, domain.ErrReferentialIntegrity
	}
	f.nextID++
	f.rows[f.nextID] = r
	return f.nextID, nil
}

func (f *fakeLedger) GetReservation(ctx context.Context, id int64) (domain.ReservationView, error) {
	r, ok := f.rows[id]
	if !ok {
		return domain.ReservationView{}, domain.ErrNotFound
	}
	return domain.ReservationView{
		ID:           id,
		CustomerID:   r.CustomerID,
		CustomerName: f.customers[r.CustomerID],
		ProductName:  f.products[r.ProductID],
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		TotalCost:    r.TotalCost,
	}, nil
}

type fakeAccounts struct {
	users     map[int64]domain.User
	customers map[int64]int64 // user id -> customer id
	touched   map[int64]time.Time
	nextID    int64
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{users: map[int64]domain.User{}, customers: map[int64]int64{}, touched: map[int64]time.Time{}}
}

func (f *fakeAccounts) exists(email string, role domain.Role) bool {
	for _, u := range f.users {
		if u.Email == email && u.Role == role {
			return true
		}
	}
	return false
}

func (f *fakeAccounts) CreateCustomerAccount(ctx context.Context, u domain.User, c domain.Customer) (int64, error) {
	id, err := f.CreateUser(ctx, u)
	if err != nil {
		return 0, err
	}
	f.customers[id] = 100 + id
	return id, nil
}

func (f *fakeAccounts) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	if f.exists(u.Email, u.Role) {
		return 0, domain.ErrDuplicateIdentity
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeAccounts) GetUserByEmail(ctx context.Context, email string, role domain.Role) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.Role == role {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeAccounts) TouchLastLoggedIn(ctx context.Context, userID int64, at time.Time) error {
	f.touched[userID] = at
	return nil
}

func (f *fakeAccounts) GetCustomerIDByUserID(ctx context.Context, userID int64) (int64, error) {
	id, ok := f.customers[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// fakeCache round-trips through JSON like the redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Lakeside Cabin", UnitPrice: dec("150.00"), Mode: domain.PricingFixed, Reservable: true, Category: domain.CategoryCabin, ImageURL: ptr("/img/cabin.jpg")},
		{ID: 2, Name: "Hot Stone Massage", UnitPrice: dec("80.00"), Mode: domain.PricingPerNightMarked, Reservable: true, Category: domain.CategorySpa, Description: ptr("Sixty minutes")},
		{ID: 3, Name: "Guided Hike", UnitPrice: dec("40.00"), Mode: domain.PricingFixed, Reservable: false, Category: domain.CategoryActivities},
		{ID: 4, Name: "Treehouse Cabin", UnitPrice: dec("210.00"), Mode: domain.PricingPerNightMarked, Reservable: false, Category: domain.CategoryCabin},
	}
}
