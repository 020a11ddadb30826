package model

import (
	"encoding/json"

	"trainboard/shared/model"
)

const (
	TableName  = "activity_logs"
	EntityName = "activity"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldActionType  = "action_type"
	FieldEntityType  = "entity_type"
	FieldEntityID    = "entity_id"
	FieldDescription = "description"
	FieldExtra       = "metadata"
)

const (
	ActionBookingApproved   = "booking_approved"
	ActionBookingDenied     = "booking_denied"
	ActionBookingConfirmed  = "booking_confirmed"
	ActionBookingCancelled  = "booking_cancelled"
	ActionBookingCompleted  = "booking_completed"
	ActionConflictResolved  = "conflict_resolved"
	ActionEventCreated      = "event_created"
	ActionEventRegistration = "event_registration"
)

type ActivityLog struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	ActionType  string          `db:"action_type"`
	EntityType  string          `db:"entity_type"`
	EntityID    string          `db:"entity_id"`
	Description string          `db:"description"`
	Extra       json.RawMessage `db:"metadata"`
	model.Metadata
}
