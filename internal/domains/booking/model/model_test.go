package model_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trainboard/internal/domains/booking/model"
)

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from model.Status
		to   model.Status
		want bool
	}{
		{"pending to approved", model.StatusPending, model.StatusApproved, true},
		{"pending to denied", model.StatusPending, model.StatusDenied, true},
		{"pending to cancelled", model.StatusPending, model.StatusCancelled, true},
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, false},
		{"pending to completed", model.StatusPending, model.StatusCompleted, false},
		{"approved to tentative", model.StatusApproved, model.StatusTentative, true},
		{"approved to confirmed", model.StatusApproved, model.StatusConfirmed, true},
		{"approved to cancelled", model.StatusApproved, model.StatusCancelled, true},
		{"approved to denied", model.StatusApproved, model.StatusDenied, false},
		{"tentative back to approved", model.StatusTentative, model.StatusApproved, true},
		{"tentative to cancelled", model.StatusTentative, model.StatusCancelled, true},
		{"tentative to confirmed", model.StatusTentative, model.StatusConfirmed, false},
		{"confirmed to cancelled", model.StatusConfirmed, model.StatusCancelled, true},
		{"confirmed to completed", model.StatusConfirmed, model.StatusCompleted, true},
		{"confirmed to approved", model.StatusConfirmed, model.StatusApproved, false},
		{"denied is terminal", model.StatusDenied, model.StatusApproved, false},
		{"cancelled is terminal", model.StatusCancelled, model.StatusApproved, false},
		{"completed is terminal", model.StatusCompleted, model.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	terminal := []model.Status{model.StatusDenied, model.StatusCancelled, model.StatusCompleted}
	for _, status := range terminal {
		assert.True(t, status.Terminal(), "expected %s to be terminal", status)
	}

	active := []model.Status{model.StatusPending, model.StatusApproved, model.StatusTentative, model.StatusConfirmed}
	for _, status := range active {
		assert.False(t, status.Terminal(), "expected %s not to be terminal", status)
	}
}

func TestBooking_LastDate(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	single := model.Booking{RequestedDate: start}
	assert.Equal(t, start, single.LastDate())

	ranged := model.Booking{RequestedDate: start, EndDate: sql.NullTime{Time: end, Valid: true}}
	assert.Equal(t, end, ranged.LastDate())
}
