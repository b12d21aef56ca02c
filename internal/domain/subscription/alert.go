package subscription

import "time"

// Status is the normalized billing lifecycle state of a user's plan.
type Status string

const (
	StatusNone     Status = "none" // never subscribed
	StatusTrialing Status = "trialing"
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusExpired  Status = "expired"
	StatusCanceled Status = "canceled"
)

// ActiveEquivalent reports whether s grants uninterrupted service.
func (s Status) ActiveEquivalent() bool {
	return s == StatusActive || s == StatusTrialing
}

type AlertLevel string

const (
	AlertNone     AlertLevel = "none"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// WarningThresholdDays is the inclusive number of remaining days that raises a warning.
const WarningThresholdDays = 7

// AlertInput is a snapshot of the subscription fields supplied by billing.
// DaysRemaining is nil when the period end is unknown.
type AlertInput struct {
	Status        Status
	DaysRemaining *int
}

// Classify maps a subscription snapshot to the banner severity to show.
func Classify(in AlertInput) AlertLevel {
	switch {
	case in.Status == StatusNone:
		return AlertNone
	case !in.Status.ActiveEquivalent():
		return AlertCritical
	case in.DaysRemaining != nil && *in.DaysRemaining <= WarningThresholdDays:
		return AlertWarning
	default:
		return AlertNone
	}
}

// DaysRemaining returns whole days left until end, floored and clamped at zero.
func DaysRemaining(now time.Time, end *time.Time) *int {
	if end == nil {
		return nil
	}
	d := 0
	if now.Before(*end) {
		d = int(end.Sub(now).Hours() / 24)
	}
	return &d
}
