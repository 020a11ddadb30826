package model

import (
	"trainboard/shared/model"
)

const (
	RegistrationTableName  = "event_registrations"
	RegistrationEntityName = "registration"

	FieldEventID              = "event_id"
	FieldClientID             = "client_id"
	FieldNumberOfParticipants = "number_of_participants"
)

type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "REGISTERED"
	RegistrationApproved   RegistrationStatus = "APPROVED"
	RegistrationCancelled  RegistrationStatus = "CANCELLED"
)

// Registration consumes event capacity. The sum of participants over
// REGISTERED and APPROVED rows never exceeds the event's max packs.
type Registration struct {
	ID                   string             `db:"id"`
	EventID              string             `db:"event_id"`
	ClientID             string             `db:"client_id"`
	NumberOfParticipants int                `db:"number_of_participants"`
	Status               RegistrationStatus `db:"status"`
	model.Metadata
}
