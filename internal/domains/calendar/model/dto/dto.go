package dto

import (
	"time"

	"github.com/google/uuid"

	"trainboard/internal/domains/calendar/model"
	"trainboard/shared"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/failure"
	gModel "trainboard/shared/model"
	"trainboard/shared/timezone"
)

type SetAvailabilityRequest struct {
	Date   string `json:"date"   validate:"required"`
	Status string `json:"status" validate:"required,oneof=AVAILABLE NOT_AVAILABLE TENTATIVE BOOKED"`
}

func (r *SetAvailabilityRequest) ToModel(trainerID, user string) (model.Availability, error) {
	date, err := time.Parse(constant.DayFormat, r.Date)
	if err != nil {
		return model.Availability{}, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	return model.Availability{
		ID:        uuid.NewString(),
		TrainerID: trainerID,
		Date:      shared.DateOnly(date),
		Status:    model.Status(r.Status),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type SetAvailabilityRangeRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
	Status    string `json:"status"     validate:"required,oneof=AVAILABLE NOT_AVAILABLE TENTATIVE BOOKED"`
}

func (r *SetAvailabilityRangeRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DayFormat, r.StartDate)
	if err != nil {
		return start, end, failure.BadRequestFromString("start_date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	end, err = time.Parse(constant.DayFormat, r.EndDate)
	if err != nil {
		return start, end, failure.BadRequestFromString("end_date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	if end.Before(start) {
		return start, end, failure.BadRequestFromString("end_date must not precede start_date") //nolint:wrapcheck
	}

	return shared.DateOnly(start), shared.DateOnly(end), nil
}

type AvailabilityResponse struct {
	ID        string `json:"id"`
	TrainerID string `json:"trainer_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *AvailabilityResponse) FromModel(model model.Availability) {
	r.ID = model.ID
	r.TrainerID = model.TrainerID
	r.Date = model.Date.Format(constant.DayFormat)
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetAvailabilityResponse struct {
	Availability []AvailabilityResponse `json:"availability"`
	TotalData    int                    `json:"total_data"`
}

func (r *GetAvailabilityResponse) FromModels(models []model.Availability) {
	r.TotalData = len(models)

	r.Availability = make([]AvailabilityResponse, len(models))
	for i, mod := range models {
		r.Availability[i].FromModel(mod)
	}
}

type BlockDateRequest struct {
	Date   string `json:"date"   validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

func (r *BlockDateRequest) ToModel(trainerID, user string) (model.BlockedDate, error) {
	date, err := time.Parse(constant.DayFormat, r.Date)
	if err != nil {
		return model.BlockedDate{}, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	return model.BlockedDate{
		ID:          uuid.NewString(),
		TrainerID:   trainerID,
		BlockedDate: shared.DateOnly(date),
		Reason:      r.Reason,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type BlockedDateResponse struct {
	ID          string `json:"id"`
	TrainerID   string `json:"trainer_id"`
	BlockedDate string `json:"blocked_date"`
	Reason      string `json:"reason"`
}

func (r *BlockedDateResponse) FromModel(model model.BlockedDate) {
	r.ID = model.ID
	r.TrainerID = model.TrainerID
	r.BlockedDate = model.BlockedDate.Format(constant.DayFormat)
	r.Reason = model.Reason
}

type ReplaceBlockedDaysRequest struct {
	Days []int `json:"days" validate:"dive,gte=0,lte=6"`
}

type BlockedDayResponse struct {
	ID        string `json:"id"`
	TrainerID string `json:"trainer_id"`
	DayOfWeek int    `json:"day_of_week"`
}

func (r *BlockedDayResponse) FromModel(model model.BlockedDay) {
	r.ID = model.ID
	r.TrainerID = model.TrainerID
	r.DayOfWeek = model.DayOfWeek
}
