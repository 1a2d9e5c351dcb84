package event_bus

import "time"

const (
	ExpenseDaySaved EventType = "expense.day.saved"
	LimitsUpdated   EventType = "limits.updated"
)

// ExpenseDaySavedPayload is published after a day record has been fully replaced in the store.
type ExpenseDaySavedPayload struct {
	UserId int
	Year   int
	Month  time.Month
	Day    int
}

// LimitsUpdatedPayload is published after a user's limits have been replaced in the store.
type LimitsUpdatedPayload struct {
	UserId  int
	Daily   float64
	Monthly float64
	Yearly  float64
}
