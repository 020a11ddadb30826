package model

import (
	"database/sql"
	"time"

	"trainboard/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID        = "id"
	FieldCourseID  = "course_id"
	FieldTrainerID = "trainer_id"
	FieldEventDate = "event_date"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldMaxPacks  = "max_packs"
	FieldStatus    = "status"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Event is the confirmed, capacity-bounded instance of a course. Exactly one
// event exists per (course, event date), dates are fixed at creation and a
// date change means a new event.
type Event struct {
	ID        string       `db:"id"`
	CourseID  string       `db:"course_id"`
	TrainerID string       `db:"trainer_id"`
	EventDate time.Time    `db:"event_date"`
	StartDate time.Time    `db:"start_date"`
	EndDate   sql.NullTime `db:"end_date"`
	MaxPacks  int          `db:"max_packs"`
	Status    Status       `db:"status"`
	model.Metadata
}
