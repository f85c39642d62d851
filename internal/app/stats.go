package app

import (
	"context"

	"balearic_charter/internal/domain"
	"balearic_charter/internal/revenue"
)

// StatsService assembles the admin dashboard summary from raw counts
// and the revenue estimate. Not cached: admins expect the numbers to
// move as inquiries arrive.
type StatsService struct {
	repo domain.ContentRepository
}

func NewStatsService(r domain.ContentRepository) *StatsService {
	return &StatsService{repo: r}
}

// Inquiries lists every inquiry, newest first, for the admin inbox.
func (s *StatsService) Inquiries(ctx context.Context) ([]domain.Inquiry, error) {
	return s.repo.ListInquiries(ctx)
}

func (s *StatsService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	inquiries, err := s.repo.ListInquiries(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	cards, err := s.repo.ListRateCards(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	fleet, err := s.repo.CountYachts(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	gallery, err := s.repo.CountGalleryImages(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return domain.DashboardStats{
		TotalInquiries:   len(inquiries),
		FleetSize:        fleet,
		GalleryImages:    gallery,
		RevenuePotential: revenue.Estimate(inquiries, cards),
	}, nil
}
