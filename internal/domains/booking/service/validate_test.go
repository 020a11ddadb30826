package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trainboard/internal/domains/booking/model"
	calendarModel "trainboard/internal/domains/calendar/model"
	"trainboard/shared/failure"
)

func TestValidateDays(t *testing.T) {
	booking := model.Booking{
		ID:        "booking-1",
		TrainerID: "trainer-1",
	}

	day := func(id, trainerID string, status calendarModel.Status) calendarModel.Availability {
		return calendarModel.Availability{
			ID:        id,
			TrainerID: trainerID,
			Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			Status:    status,
		}
	}

	tests := []struct {
		name        string
		requested   []string
		days        []calendarModel.Availability
		wantCode    int
		wantMessage string
	}{
		{
			name:      "all available and tentative days pass",
			requested: []string{"avail-1", "avail-2"},
			days: []calendarModel.Availability{
				day("avail-1", "trainer-1", calendarModel.StatusAvailable),
				day("avail-2", "trainer-1", calendarModel.StatusTentative),
			},
		},
		{
			name:        "missing ids are named",
			requested:   []string{"avail-1", "avail-404", "avail-405"},
			days:        []calendarModel.Availability{day("avail-1", "trainer-1", calendarModel.StatusAvailable)},
			wantCode:    404,
			wantMessage: "availability not found: avail-404, avail-405",
		},
		{
			name:      "another trainer's days are named",
			requested: []string{"avail-1", "avail-2"},
			days: []calendarModel.Availability{
				day("avail-1", "trainer-1", calendarModel.StatusAvailable),
				day("avail-2", "trainer-2", calendarModel.StatusAvailable),
			},
			wantCode:    400,
			wantMessage: "availability belongs to another trainer: avail-2",
		},
		{
			name:      "booked and unavailable days are named",
			requested: []string{"avail-1", "avail-2"},
			days: []calendarModel.Availability{
				day("avail-1", "trainer-1", calendarModel.StatusBooked),
				day("avail-2", "trainer-1", calendarModel.StatusNotAvailable),
			},
			wantCode:    409,
			wantMessage: "availability not bookable: avail-1, avail-2",
		},
		{
			name:      "missing wins over foreign and unbookable",
			requested: []string{"avail-404", "avail-1", "avail-2"},
			days: []calendarModel.Availability{
				day("avail-1", "trainer-2", calendarModel.StatusAvailable),
				day("avail-2", "trainer-1", calendarModel.StatusBooked),
			},
			wantCode:    404,
			wantMessage: "availability not found: avail-404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDays(booking, tt.requested, tt.days)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.EqualError(t, err, tt.wantMessage)
		})
	}
}
