package model

import (
	"time"

	"trainboard/shared/model"
)

const (
	BlockedDateTableName  = "trainer_blocked_dates"
	BlockedDateEntityName = "blocked_date"

	FieldBlockedDate = "blocked_date"
	FieldReason      = "reason"
)

// BlockedDate is an authoritative "never book this day" entry. It is
// independent of Availability and always wins over AVAILABLE/TENTATIVE.
type BlockedDate struct {
	ID          string    `db:"id"`
	TrainerID   string    `db:"trainer_id"`
	BlockedDate time.Time `db:"blocked_date"`
	Reason      string    `db:"reason"`
	model.Metadata
}

const (
	BlockedDayTableName  = "trainer_blocked_days"
	BlockedDayEntityName = "blocked_day"

	FieldDayOfWeek = "day_of_week"
)

// BlockedDay is a standing weekly rule (0 = Sunday .. 6 = Saturday).
// The set of rows per trainer is replaced wholesale on update.
type BlockedDay struct {
	ID        string `db:"id"`
	TrainerID string `db:"trainer_id"`
	DayOfWeek int    `db:"day_of_week"`
	model.Metadata
}
