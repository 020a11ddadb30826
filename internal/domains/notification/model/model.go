package model

import (
	"trainboard/shared/model"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID                = "id"
	FieldUserID            = "user_id"
	FieldTitle             = "title"
	FieldMessage           = "message"
	FieldType              = "type"
	FieldRelatedEntityType = "related_entity_type"
	FieldRelatedEntityID   = "related_entity_id"
	FieldRead              = "read"
)

const (
	TypeBookingApproved  = "booking_approved"
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
	TypeBookingDenied    = "booking_denied"
	TypeEventCreated     = "event_created"
	TypeEventRegistered  = "event_registered"
)

type Notification struct {
	ID                string `db:"id"`
	UserID            string `db:"user_id"`
	Title             string `db:"title"`
	Message           string `db:"message"`
	Type              string `db:"type"`
	RelatedEntityType string `db:"related_entity_type"`
	RelatedEntityID   string `db:"related_entity_id"`
	Read              bool   `db:"read"`
	model.Metadata
}
