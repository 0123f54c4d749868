package models

import (
	"fmt"
	"time"
)

// RiskLevel indicates how sensitive a todo is to external conditions such as
// weather and traffic.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Todo is a one-shot item scheduled at an absolute instant, unlike habits and
// routines which recur at a daily time-of-day.
type Todo struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Location      string    `json:"location,omitempty"`
	RiskLevel     RiskLevel `json:"riskLevel"`
	Completed     bool      `json:"completed"`
}

func (t *Todo) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("todo title cannot be empty")
	}
	if t.ScheduledTime.IsZero() {
		return fmt.Errorf("todo scheduled time cannot be empty")
	}
	switch t.RiskLevel {
	case "", RiskLow, RiskMedium, RiskHigh:
	default:
		return fmt.Errorf("invalid risk level: %s", t.RiskLevel)
	}
	return nil
}

// HighRisk reports whether the todo should get the extra weather and traffic
// warnings in its reminders.
func (t *Todo) HighRisk() bool {
	return t.RiskLevel == RiskHigh
}
