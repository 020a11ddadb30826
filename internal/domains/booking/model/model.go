package model

import (
	"database/sql"
	"time"

	"trainboard/shared/model"
)

const (
	TableName  = "booking_requests"
	EntityName = "booking"

	FieldID                    = "id"
	FieldCourseID              = "course_id"
	FieldTrainerID             = "trainer_id"
	FieldClientID              = "client_id"
	FieldRequestType           = "request_type"
	FieldRequestedDate         = "requested_date"
	FieldEndDate               = "end_date"
	FieldStatus                = "status"
	FieldTrainerAvailabilityID = "trainer_availability_id"
)

type RequestType string

const (
	TypePublic  RequestType = "PUBLIC"
	TypeInhouse RequestType = "INHOUSE"
)

// Status is the booking lifecycle state. Transitions are checked against an
// explicit table rather than free-form writes, DENIED, CANCELLED and
// COMPLETED are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusDenied    Status = "DENIED"
	StatusTentative Status = "TENTATIVE"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusDenied, StatusCancelled},
	StatusApproved:  {StatusTentative, StatusConfirmed, StatusCancelled},
	StatusTentative: {StatusApproved, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether the lifecycle permits moving to the target
// state from this one.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

// Terminal reports whether no further transitions exist from this state.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Booking is a client/trainer-initiated ask to reserve a trainer for a
// course on the inclusive day range [RequestedDate, EndDate]. EndDate is
// null for single-day requests.
type Booking struct {
	ID                    string       `db:"id"`
	CourseID              string       `db:"course_id"`
	TrainerID             string       `db:"trainer_id"`
	ClientID              string       `db:"client_id"`
	RequestType           RequestType  `db:"request_type"`
	RequestedDate         time.Time    `db:"requested_date"`
	EndDate               sql.NullTime `db:"end_date"`
	Status                Status       `db:"status"`
	TrainerAvailabilityID string       `db:"trainer_availability_id"`
	model.Metadata
}

// LastDate returns the inclusive end of the requested range, falling back to
// the requested date for single-day bookings.
func (b *Booking) LastDate() time.Time {
	if b.EndDate.Valid {
		return b.EndDate.Time
	}

	return b.RequestedDate
}
