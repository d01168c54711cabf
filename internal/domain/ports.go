package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	FindProducts(ctx context.Context, q ProductQuery) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	UpsertProduct(ctx context.Context, p Product) error
	LogMiss(ctx context.Context, id int64, status int, reason string) error
}

type ReservationRepository interface {
	// CreateReservation inserts the row and returns its id as one atomic unit.
	CreateReservation(ctx context.Context, r NewReservation) (int64, error)
	GetReservation(ctx context.Context, id int64) (ReservationView, error)
}

type AccountRepository interface {
	CreateCustomerAccount(ctx context.Context, u User, c Customer) (userID int64, err error)
	CreateUser(ctx context.Context, u User) (int64, error)
	GetUserByEmail(ctx context.Context, email string, role Role) (User, error)
	TouchLastLoggedIn(ctx context.Context, userID int64, at time.Time) error
	GetCustomerIDByUserID(ctx context.Context, userID int64) (int64, error)
}

type ReportRepository interface {
	ListReservations(ctx context.Context) ([]ReservationView, error)
	CountReservations(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	RevenueByCategory(ctx context.Context) ([]CategoryRevenue, error)
}

// CatalogFeed is the upstream catalog-management service.
type CatalogFeed interface {
	ListProductIDs(ctx context.Context) ([]int64, error)
	GetProduct(ctx context.Context, id int64) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
