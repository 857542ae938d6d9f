package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tamilsociety/internal/domain/repository"
)

type (
	orderStatsSource interface {
		Stats(ctx context.Context) (*repository.OrderStats, error)
	}
	catalogCountSource interface {
		Counts(ctx context.Context) (map[string]int64, error)
	}
	countSource interface {
		Count(ctx context.Context) (int64, error)
	}
	pendingApplicationSource interface {
		CountPending(ctx context.Context) (int64, error)
	}
)

type DashboardStats struct {
	Orders              *repository.OrderStats `json:"orders"`
	Catalog             map[string]int64       `json:"catalog"`
	Programs            map[string]int64       `json:"programs"`
	ContentSections     int64                  `json:"content_sections"`
	PendingApplications int64                  `json:"pending_applications"`
}

type DashboardUseCase struct {
	orders       orderStatsSource
	catalog      catalogCountSource
	programs     []*ProgramUseCase
	content      countSource
	applications pendingApplicationSource
}

func NewDashboardUseCase(
	orders orderStatsSource,
	catalog catalogCountSource,
	content countSource,
	applications pendingApplicationSource,
	programs ...*ProgramUseCase,
) *DashboardUseCase {
	return &DashboardUseCase{
		orders:       orders,
		catalog:      catalog,
		programs:     programs,
		content:      content,
		applications: applications,
	}
}

// Stats gathers every count concurrently; any failure fails the whole call.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	programCounts := make([]int64, len(uc.programs))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.orders.Stats(gctx)
		stats.Orders = s
		return err
	})
	g.Go(func() error {
		c, err := uc.catalog.Counts(gctx)
		stats.Catalog = c
		return err
	})
	g.Go(func() error {
		n, err := uc.content.Count(gctx)
		stats.ContentSections = n
		return err
	})
	g.Go(func() error {
		n, err := uc.applications.CountPending(gctx)
		stats.PendingApplications = n
		return err
	})
	for i, p := range uc.programs {
		i, p := i, p
		g.Go(func() error {
			n, err := p.Count(gctx)
			programCounts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Programs = make(map[string]int64, len(uc.programs))
	for i, p := range uc.programs {
		stats.Programs[p.Kind().Plural()] = programCounts[i]
	}
	return stats, nil
}
