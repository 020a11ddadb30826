package dto

import (
	bookingDto "trainboard/internal/domains/booking/model/dto"
	calendarDto "trainboard/internal/domains/calendar/model/dto"
)

const (
	ResolutionReschedule = "reschedule"
	ResolutionOverride   = "override"
	ResolutionCancel     = "cancel"
)

type DetectConflictRequest struct {
	TrainerID string `json:"trainer_id" validate:"required,max=64"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"omitempty"`
}

// ConflictReport is the full picture an operator sees before deciding how to
// place a booking. WeeklyAvailability is informational, the weekly pattern
// never blocks on its own.
type ConflictReport struct {
	TrainerID             string                            `json:"trainer_id"`
	StartDate             string                            `json:"start_date"`
	EndDate               string                            `json:"end_date"`
	HasConflict           bool                              `json:"has_conflict"`
	ExistingBookings      []bookingDto.BookingResponse      `json:"existing_bookings"`
	BlockedDates          []calendarDto.BlockedDateResponse `json:"blocked_dates"`
	WeeklyAvailability    []calendarDto.BlockedDayResponse  `json:"weekly_availability"`
	SuggestedAlternatives []string                          `json:"suggested_alternatives"`
}

type ResolveConflictRequest struct {
	Resolution string `json:"resolution" validate:"required,oneof=reschedule override cancel"`
	NewDate    string `json:"new_date"   validate:"omitempty"`
	Reason     string `json:"reason"     validate:"omitempty,max=255"`
}

type ResolveConflictResponse struct {
	BookingID  string                     `json:"booking_id"`
	Resolution string                     `json:"resolution"`
	Booking    bookingDto.BookingResponse `json:"booking"`
}

type OverlappingBookingsResponse struct {
	BookingID string                       `json:"booking_id"`
	Bookings  []bookingDto.BookingResponse `json:"bookings"`
}
