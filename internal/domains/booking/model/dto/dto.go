package dto

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"trainboard/internal/domains/booking/model"
	"trainboard/shared"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/failure"
	gModel "trainboard/shared/model"
	"trainboard/shared/timezone"
)

type CreateBookingRequest struct {
	CourseID      string `json:"course_id"      validate:"omitempty,max=64"`
	TrainerID     string `json:"trainer_id"     validate:"omitempty,max=64"`
	ClientID      string `json:"client_id"      validate:"omitempty,max=64"`
	RequestType   string `json:"request_type"   validate:"required,oneof=PUBLIC INHOUSE"`
	RequestedDate string `json:"requested_date" validate:"required"`
	EndDate       string `json:"end_date"       validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	requestedDate, err := time.Parse(constant.DayFormat, c.RequestedDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("requested_date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	endDate := sql.NullTime{}

	if c.EndDate != "" {
		parsed, err := time.Parse(constant.DayFormat, c.EndDate)
		if err != nil {
			return model.Booking{}, failure.BadRequestFromString("end_date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
		}

		if parsed.Before(requestedDate) {
			return model.Booking{}, failure.BadRequestFromString("end_date must not precede requested_date") //nolint:wrapcheck
		}

		endDate = sql.NullTime{Time: shared.DateOnly(parsed), Valid: true}
	}

	return model.Booking{
		ID:            uuid.NewString(),
		CourseID:      c.CourseID,
		TrainerID:     c.TrainerID,
		ClientID:      c.ClientID,
		RequestType:   model.RequestType(c.RequestType),
		RequestedDate: shared.DateOnly(requestedDate),
		EndDate:       endDate,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type ConfirmBookingRequest struct {
	AvailabilityIDs        []string `json:"availability_ids"        validate:"required,min=1,dive,required"`
	TotalSlots             int      `json:"total_slots"             validate:"required,gte=1"`
	RegisteredParticipants int      `json:"registered_participants" validate:"gte=0"`
}

type BookingResponse struct {
	ID                    string `json:"id"`
	CourseID              string `json:"course_id,omitempty"`
	TrainerID             string `json:"trainer_id,omitempty"`
	ClientID              string `json:"client_id,omitempty"`
	RequestType           string `json:"request_type"`
	RequestedDate         string `json:"requested_date"`
	EndDate               string `json:"end_date,omitempty"`
	Status                string `json:"status"`
	TrainerAvailabilityID string `json:"trainer_availability_id,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CourseID = model.CourseID
	r.TrainerID = model.TrainerID
	r.ClientID = model.ClientID
	r.RequestType = string(model.RequestType)
	r.RequestedDate = model.RequestedDate.Format(constant.DayFormat)

	if model.EndDate.Valid {
		r.EndDate = model.EndDate.Time.Format(constant.DayFormat)
	}

	r.Status = string(model.Status)
	r.TrainerAvailabilityID = model.TrainerAvailabilityID
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
