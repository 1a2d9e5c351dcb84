package limits

import (
	"context"
	"fmt"

	"github.com/dailyspends/dailyspends/internal/event_bus"
	"github.com/dailyspends/dailyspends/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Service owns the current user's limits. Consumers call Get whenever they need fresh values.
type Service interface {
	Get(ctx context.Context) (Limits, error)
	Update(ctx context.Context, limits Limits) (Limits, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Get(ctx context.Context) (Limits, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Limits{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId)
}

// Update replaces all three limits at once.
func (s *ServiceImpl) Update(ctx context.Context, limits Limits) (Limits, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Limits{}, fmt.Errorf("failed to get current user: %w", err)
	}
	limits = limits.Normalize()

	if err := s.repo.Store(ctx, userId, limits); err != nil {
		return Limits{}, err
	}

	err = s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.LimitsUpdated,
		event_bus.LimitsUpdatedPayload{
			UserId:  userId,
			Daily:   limits.Daily,
			Monthly: limits.Monthly,
			Yearly:  limits.Yearly,
		},
	))
	if err != nil {
		log.Errorf("failed to publish limits updated event: %v", err)
	}
	return limits, nil
}
