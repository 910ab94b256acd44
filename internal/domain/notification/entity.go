package notification

import (
	"time"
)

// Type represents the type of notification
type Type string

const (
	TypeClockIn         Type = "attendance.clock_in"
	TypeClockOut        Type = "attendance.clock_out"
	TypeAbsenteesMarked Type = "attendance.absentees_marked"
	TypeShiftApplied    Type = "shift.applied"
)

// Notification is the persisted copy of a dispatched push message.
// RecipientID is empty for agency-wide notifications.
type Notification struct {
	ID          string
	AgencyID    string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	Data        map[string]any
	CreatedAt   time.Time
}

// Device is a push target registered by the mobile app.
type Device struct {
	ID     string
	UserID string
	Token  string
}
