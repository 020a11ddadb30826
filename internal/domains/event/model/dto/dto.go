package dto

import (
	"time"

	"trainboard/internal/domains/event/model"
	"trainboard/shared"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/failure"
)

type CreateEventRequest struct {
	CourseID               string   `json:"course_id"               validate:"required,max=64"`
	TrainerID              string   `json:"trainer_id"              validate:"required,max=64"`
	ClientID               string   `json:"client_id"               validate:"omitempty,max=64"`
	Dates                  []string `json:"dates"                   validate:"required,min=1"`
	TotalSlots             int      `json:"total_slots"             validate:"required,gte=1"`
	RegisteredParticipants int      `json:"registered_participants" validate:"gte=0"`
}

func (c *CreateEventRequest) ParseDates() ([]time.Time, error) {
	dates := make([]time.Time, len(c.Dates))

	for i, raw := range c.Dates {
		parsed, err := time.Parse(constant.DayFormat, raw)
		if err != nil {
			return nil, failure.BadRequestFromString("dates must be formatted as YYYY-MM-DD") //nolint:wrapcheck
		}

		dates[i] = shared.DateOnly(parsed)
	}

	return dates, nil
}

type RegisterRequest struct {
	ClientID             string `json:"client_id"              validate:"omitempty,max=64"`
	NumberOfParticipants int    `json:"number_of_participants" validate:"required,gte=1"`
}

type EventResponse struct {
	ID        string `json:"id"`
	CourseID  string `json:"course_id"`
	TrainerID string `json:"trainer_id"`
	EventDate string `json:"event_date"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	MaxPacks  int    `json:"max_packs"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(model model.Event) {
	r.ID = model.ID
	r.CourseID = model.CourseID
	r.TrainerID = model.TrainerID
	r.EventDate = model.EventDate.Format(constant.DayFormat)
	r.StartDate = model.StartDate.Format(constant.DayFormat)

	if model.EndDate.Valid {
		r.EndDate = model.EndDate.Time.Format(constant.DayFormat)
	}

	r.MaxPacks = model.MaxPacks
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetEventsResponse struct {
	Events    []EventResponse `json:"events"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.Event, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventResponse, len(models))
	for i, mod := range models {
		r.Events[i].FromModel(mod)
	}
}

type RegistrationResponse struct {
	ID                   string `json:"id"`
	EventID              string `json:"event_id"`
	ClientID             string `json:"client_id,omitempty"`
	NumberOfParticipants int    `json:"number_of_participants"`
	Status               string `json:"status"`
}

func (r *RegistrationResponse) FromModel(model model.Registration) {
	r.ID = model.ID
	r.EventID = model.EventID
	r.ClientID = model.ClientID
	r.NumberOfParticipants = model.NumberOfParticipants
	r.Status = string(model.Status)
}
