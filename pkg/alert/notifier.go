package alert

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Notification tells a user that a period's spending went over its limit.
type Notification struct {
	UserId    int       `json:"userId"`
	Month     string    `json:"month"`
	Period    string    `json:"period"`
	Messages  []string  `json:"messages"`
	Timestamp time.Time `json:"timestamp"`
}

type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, notification Notification) error {
	log.WithFields(log.Fields{
		"userId": notification.UserId,
		"month":  notification.Month,
		"period": notification.Period,
	}).Warn(strings.Join(notification.Messages, " "))
	return nil
}
