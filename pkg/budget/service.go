package budget

import (
	"context"
	"fmt"

	"github.com/dailyspends/dailyspends/internal/utils"
	"github.com/dailyspends/dailyspends/pkg/expense"
	"github.com/dailyspends/dailyspends/pkg/limits"
	"github.com/dailyspends/dailyspends/pkg/user"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	GetSummary(ctx context.Context, month expense.Month, period Period) (Summary, error)
	CurrentMonth() expense.Month
}

type ServiceImpl struct {
	expenses expense.Service
	limits   limits.Service
	clock    utils.Clock
}

func NewService(expenses expense.Service, limits limits.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{expenses: expenses, limits: limits, clock: clock}
}

// GetSummary reads the month's records and the user's limits independently and aggregates them.
// Either read failing fails the summary.
func (s *ServiceImpl) GetSummary(ctx context.Context, month expense.Month, period Period) (Summary, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var records []expense.Record
	var userLimits limits.Limits
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.expenses.GetMonth(gctx, month)
		if err != nil {
			return fmt.Errorf("failed to get expenses of %s: %w", month.Label(), err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		userLimits, err = s.limits.Get(gctx)
		if err != nil {
			return fmt.Errorf("failed to get limits: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return Aggregate(records, month, period, userLimits), nil
}

func (s *ServiceImpl) CurrentMonth() expense.Month {
	return expense.MonthOf(s.clock.Now())
}
