package expense

import (
	"context"
	"fmt"

	"github.com/dailyspends/dailyspends/internal/event_bus"
	"github.com/dailyspends/dailyspends/pkg/receipt"
	"github.com/dailyspends/dailyspends/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetMonth(ctx context.Context, month Month) ([]Record, error)
	GetDay(ctx context.Context, month Month, day int) (Record, error)
	SaveDay(ctx context.Context, month Month, record Record) (Record, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) GetMonth(ctx context.Context, month Month) ([]Record, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !month.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMonth, month)
	}
	return s.repo.GetMonth(ctx, userId, month)
}

func (s *ServiceImpl) GetDay(ctx context.Context, month Month, day int) (Record, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !month.Valid() {
		return Record{}, fmt.Errorf("%w: %s", ErrInvalidMonth, month)
	}
	if day < 1 || day > month.DaysIn() {
		return Record{}, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return s.repo.GetDay(ctx, userId, month, day)
}

// SaveDay replaces the day's document and announces it. A receipt reference must point at one of the user's own receipts. Nothing is published when the store rejects the write.
func (s *ServiceImpl) SaveDay(ctx context.Context, month Month, record Record) (Record, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("failed to get current user: %w", err)
	}
	userId := currentUser.Id
	if err := record.Validate(month); err != nil {
		return Record{}, err
	}
	if record.ReceiptRef != "" {
		ref, err := receipt.ResolveRef(currentUser.Uid, record.ReceiptRef)
		if err != nil {
			return Record{}, fmt.Errorf("%w: receipt %q is not owned by the user", ErrInvalidRecord, record.ReceiptRef)
		}
		record.ReceiptRef = ref
	}

	if err := s.repo.StoreDay(ctx, userId, month, record); err != nil {
		return Record{}, err
	}

	// The write is already committed, a failing subscriber only loses its notification.
	err = s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.ExpenseDaySaved,
		event_bus.ExpenseDaySavedPayload{
			UserId: userId,
			Year:   month.Year,
			Month:  month.Month,
			Day:    record.Day,
		},
	))
	if err != nil {
		log.Errorf("failed to publish expense day saved event: %v", err)
	}
	return record, nil
}
