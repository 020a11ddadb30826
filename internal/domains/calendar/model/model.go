package model

import (
	"time"

	"trainboard/shared/model"
)

const (
	TableName  = "trainer_availability"
	EntityName = "availability"

	FieldID        = "id"
	FieldTrainerID = "trainer_id"
	FieldDate      = "date"
	FieldStatus    = "status"
)

// Status is the per-day calendar state of a trainer. TENTATIVE marks a
// pending-admin-confirmation hold, weaker than BOOKED. A BOOKED day is
// never downgraded by booking actions, only by an explicit release.
type Status string

const (
	StatusAvailable    Status = "AVAILABLE"
	StatusNotAvailable Status = "NOT_AVAILABLE"
	StatusTentative    Status = "TENTATIVE"
	StatusBooked       Status = "BOOKED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusNotAvailable, StatusTentative, StatusBooked:
		return true
	default:
		return false
	}
}

// Bookable reports whether a confirmation may consume this day.
func (s Status) Bookable() bool {
	return s == StatusAvailable || s == StatusTentative
}

// Availability is a trainer's whole-day calendar entry. At most one row
// exists per (trainer, date), enforced by a unique constraint.
type Availability struct {
	ID        string    `db:"id"`
	TrainerID string    `db:"trainer_id"`
	Date      time.Time `db:"date"`
	Status    Status    `db:"status"`
	model.Metadata
}
