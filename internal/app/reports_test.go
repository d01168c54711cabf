package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"resort_booking/internal/app"
	"resort_booking/internal/domain"
)

type fakeReports struct {
	views []domain.ReservationView
	cats  map[int64]domain.Category // reservation id -> category
	fail  error
}

func (f *fakeReports) ListReservations(ctx context.Context) ([]domain.ReservationView, error) {
	return f.views, f.fail
}

func (f *fakeReports) CountReservations(ctx context.Context) (int64, error) {
	return int64(len(f.views)), nil
}

func (f *fakeReports) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, v := range f.views {
		sum = sum.Add(v.TotalCost)
	}
	return sum, nil
}

func (f *fakeReports) RevenueByCategory(ctx context.Context) ([]domain.CategoryRevenue, error) {
	by := map[domain.Category]decimal.Decimal{}
	var order []domain.Category
	for _, v := range f.views {
		c := f.cats[v.ID]
		if _, ok := by[c]; !ok {
			order = append(order, c)
		}
		by[c] = by[c].Add(v.TotalCost)
	}
	out := make([]domain.CategoryRevenue, 0, len(order))
	for _, c := range order {
		out = append(out, domain.CategoryRevenue{Category: c, Revenue: by[c]})
	}
	return out, nil
}

func TestDashboard_RevenuePartition(t *testing.T) {
	repo := &fakeReports{
		views: []domain.ReservationView{
			{ID: 1, TotalCost: dec("450.00")},
			{ID: 2, TotalCost: dec("192.00")},
			{ID: 3, TotalCost: dec("150.00")},
		},
		cats: map[int64]domain.Category{1: domain.CategoryCabin, 2: domain.CategorySpa, 3: domain.CategoryCabin},
	}
	d, err := app.NewReportService(repo).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if d.TotalReservations != 3 || len(d.Reservations) != 3 {
		t.Fatalf("counts = %d / %d", d.TotalReservations, len(d.Reservations))
	}
	sum := decimal.Zero
	for _, c := range d.RevenueByCategory {
		sum = sum.Add(c.Revenue)
	}
	if !sum.Equal(d.TotalRevenue) || !d.TotalRevenue.Equal(dec("792")) {
		t.Fatalf("partition %s != total %s", sum, d.TotalRevenue)
	}
}

func TestDashboard_Empty(t *testing.T) {
	d, err := app.NewReportService(&fakeReports{}).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !d.TotalRevenue.IsZero() || d.TotalReservations != 0 || len(d.RevenueByCategory) != 0 {
		t.Fatalf("dashboard = %+v", d)
	}
}

func TestDashboard_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := app.NewReportService(&fakeReports{fail: boom}).Dashboard(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
