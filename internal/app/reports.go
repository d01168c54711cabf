package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"resort_booking/internal/domain"
)

type ReportService struct {
	repo domain.ReportRepository
}

func NewReportService(r domain.ReportRepository) *ReportService {
	return &ReportService{repo: r}
}

// Dashboard runs the four read-only rollups concurrently.
func (s *ReportService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	var d domain.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rs, err := s.repo.ListReservations(gctx)
		d.Reservations = rs
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountReservations(gctx)
		d.TotalReservations = n
		return err
	})
	g.Go(func() error {
		v, err := s.repo.TotalRevenue(gctx)
		d.TotalRevenue = v
		return err
	})
	g.Go(func() error {
		rs, err := s.repo.RevenueByCategory(gctx)
		d.RevenueByCategory = rs
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}
	return d, nil
}
