package app

import (
	"context"
	"fmt"

	"github.com/dailyspends/dailyspends/internal/config"
	"github.com/dailyspends/dailyspends/internal/event_bus"
	"github.com/dailyspends/dailyspends/internal/utils"
	"github.com/dailyspends/dailyspends/pkg/alert"
	"github.com/dailyspends/dailyspends/pkg/budget"
	"github.com/dailyspends/dailyspends/pkg/expense"
	"github.com/dailyspends/dailyspends/pkg/limits"
	"github.com/dailyspends/dailyspends/pkg/receipt"
	"github.com/dailyspends/dailyspends/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler

	LimitsService *limits.ServiceImpl
	LimitsHandler *limits.Handler

	BudgetService      *budget.ServiceImpl
	CsvSummaryRenderer *budget.CsvSummaryRendererImpl
	BudgetHandler      *budget.Handler

	ReceiptStore   receipt.Store
	ReceiptService *receipt.ServiceImpl
	ReceiptHandler *receipt.Handler

	Notifier        alert.Notifier
	AlertSubscriber *alert.Subscriber

	closers []func() error
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.ExpenseService = expense.NewService(expense.NewRepository(db), deps.EventBus)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.LimitsService = limits.NewService(limits.NewRepository(db), deps.EventBus)
	deps.LimitsHandler = limits.NewHandler(deps.LimitsService)

	deps.BudgetService = budget.NewService(deps.ExpenseService, deps.LimitsService, deps.Clock)
	deps.CsvSummaryRenderer = budget.NewCsvSummaryRenderer()
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService, deps.CsvSummaryRenderer)

	store, err := newReceiptStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	deps.ReceiptStore = store
	deps.ReceiptService = receipt.NewService(deps.ReceiptStore)
	deps.ReceiptHandler = receipt.NewHandler(deps.ReceiptService)

	if cfg.Notifications.Amqp.Enabled {
		amqpCfg := cfg.Notifications.Amqp
		notifier, err := alert.NewAMQPNotifier(amqpCfg.Url, amqpCfg.Exchange, amqpCfg.Queue)
		if err != nil {
			return nil, fmt.Errorf("failed to connect budget alerts to AMQP: %w", err)
		}
		deps.closers = append(deps.closers, notifier.Close)
		deps.Notifier = notifier
		log.Infof("Budget alerts are published to exchange %s", amqpCfg.Exchange)
	} else {
		deps.Notifier = alert.NewLogNotifier()
	}
	deps.AlertSubscriber = alert.NewSubscriber(deps.BudgetService, deps.Notifier)
	deps.AlertSubscriber.Register(deps.EventBus)

	return deps, nil
}

func newReceiptStore(ctx context.Context, cfg config.Storage) (receipt.Store, error) {
	switch cfg.Backend {
	case config.GCSStorage:
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("storage.bucket is required for the %s backend", cfg.Backend)
		}
		log.Infof("Receipts are stored in bucket %s", cfg.Bucket)
		return receipt.NewGCSStore(ctx, cfg.Bucket, cfg.CredentialsFile)
	case config.LocalStorage, "":
		log.Infof("Receipts are stored in %s", cfg.LocalPath)
		return receipt.NewLocalStore(cfg.LocalPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Close releases connections opened while building the dependencies.
func (d *Dependencies) Close() {
	for _, closer := range d.closers {
		if err := closer(); err != nil {
			log.Warnf("failed to close dependency: %v", err)
		}
	}
}
