package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dailyspends/dailyspends/internal/event_bus"
	"github.com/dailyspends/dailyspends/pkg/budget"
	"github.com/dailyspends/dailyspends/pkg/expense"
	"github.com/dailyspends/dailyspends/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Subscriber recomputes summaries after expenses or limits change and notifies about every
// period that went over its limit.
type Subscriber struct {
	summaries budget.Service
	notifier  Notifier
	timeout   time.Duration
}

// checkTimeout bounds one check over all periods. Checks run on the publishing request, so it
// stays below the server write timeout.
const checkTimeout = 5 * time.Second

func NewSubscriber(summaries budget.Service, notifier Notifier) *Subscriber {
	return &Subscriber{summaries: summaries, notifier: notifier, timeout: checkTimeout}
}

// Register subscribes to the bus and returns a function removing both subscriptions.
func (s *Subscriber) Register(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubscribeSaved := event_bus.SubscribeTyped(bus, event_bus.ExpenseDaySaved, func(e event_bus.EventT[event_bus.ExpenseDaySavedPayload]) error {
		month := expense.Month{Year: e.Data.Year, Month: e.Data.Month}
		return s.check(e.Context(), e.Data.UserId, month)
	})
	unsubscribeLimits := event_bus.SubscribeTyped(bus, event_bus.LimitsUpdated, func(e event_bus.EventT[event_bus.LimitsUpdatedPayload]) error {
		return s.check(e.Context(), e.Data.UserId, s.summaries.CurrentMonth())
	})
	return func() {
		unsubscribeSaved()
		unsubscribeLimits()
	}
}

func (s *Subscriber) check(ctx context.Context, userId int, month expense.Month) error {
	if currentId, err := user.CurrentId(ctx); err != nil || currentId != userId {
		ctx = user.WithUser(ctx, user.User{Id: userId})
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var errs []error
	for _, period := range budget.Periods {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("budget check for user %d aborted before %s: %w", userId, period, ctx.Err()))
			break
		}
		summary, err := s.summaries.GetSummary(ctx, month, period)
		if err != nil {
			errs = append(errs, fmt.Errorf("summary %s %s: %w", month, period, err))
			continue
		}
		messages := summary.Alerts()
		if len(messages) == 0 {
			continue
		}
		err = s.notifier.Notify(ctx, Notification{
			UserId:    userId,
			Month:     month.Label(),
			Period:    string(period),
			Messages:  messages,
			Timestamp: time.Now(),
		})
		if err != nil {
			log.Errorf("failed to notify user %d about %s budget: %v", userId, period, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
