package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trainboard/config"
	"trainboard/infras/otel/mocks"
	activityMocks "trainboard/internal/domains/activity/mocks"
	bookingMocks "trainboard/internal/domains/booking/mocks"
	"trainboard/internal/domains/booking/model"
	"trainboard/internal/domains/booking/model/dto"
	"trainboard/internal/domains/booking/service"
	calendarMocks "trainboard/internal/domains/calendar/mocks"
	calendarModel "trainboard/internal/domains/calendar/model"
	eventServiceMocks "trainboard/internal/domains/event/service/mocks"
	notificationMocks "trainboard/internal/domains/notification/mocks"
	cacheMocks "trainboard/shared/cache/mocks"
	"trainboard/shared/constant"
	"trainboard/shared/failure"
	gModel "trainboard/shared/model"
)

type fixture struct {
	repo         *bookingMocks.MockBooking
	availability *calendarMocks.MockAvailability
	event        *eventServiceMocks.MockEvent
	cache        *cacheMocks.MockRedisCache
	notifier     *notificationMocks.MockNotifier
	activity     *activityMocks.MockLogger
	service      service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		availability: calendarMocks.NewMockAvailability(ctrl),
		event:        eventServiceMocks.NewMockEvent(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		notifier:     notificationMocks.NewMockNotifier(ctrl),
		activity:     activityMocks.NewMockLogger(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	f.activity.EXPECT().LogActivity(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	f.service = service.New(f.repo, f.availability, f.event, nil, cfg, f.cache, f.notifier, f.activity, mocks.NewOtel())

	return f
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func pendingBooking(id string) model.Booking {
	return model.Booking{
		ID:            id,
		CourseID:      "course-1",
		TrainerID:     "trainer-1",
		ClientID:      "client-1",
		RequestType:   model.TypeInhouse,
		RequestedDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Status:        model.StatusPending,
		Metadata:      gModel.Metadata{CreatedBy: "client-1"},
	}
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateBookingRequest{
				CourseID:      "course-1",
				TrainerID:     "trainer-1",
				ClientID:      "client-1",
				RequestType:   "INHOUSE",
				RequestedDate: "2025-06-02",
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "end date before requested date",
			req: dto.CreateBookingRequest{
				RequestType:   "PUBLIC",
				RequestedDate: "2025-06-02",
				EndDate:       "2025-06-01",
			},
			setupMock: func(f *fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "malformed requested date",
			req: dto.CreateBookingRequest{
				RequestType:   "PUBLIC",
				RequestedDate: "02-06-2025",
			},
			setupMock: func(f *fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "repository error",
			req: dto.CreateBookingRequest{
				RequestType:   "PUBLIC",
				RequestedDate: "2025-06-02",
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.service.Create(testContext(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, string(model.StatusPending), res.Status)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestBookingService_Approve(t *testing.T) {
	t.Run("inhouse approval places one hold per day", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking("booking-1")
		booking.EndDate.Time = booking.RequestedDate.AddDate(0, 0, 2)
		booking.EndDate.Valid = true

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		var heldDates []time.Time

		f.availability.EXPECT().
			UpsertUnlessBooked(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, availability calendarModel.Availability) error {
				assert.Equal(t, "trainer-1", availability.TrainerID)
				assert.Equal(t, calendarModel.StatusTentative, availability.Status)
				heldDates = append(heldDates, availability.Date)

				return nil
			}).
			Times(3)

		res, err := f.service.Approve(testContext(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusApproved), res.Status)
		assert.Len(t, heldDates, 3)
		assert.Equal(t, booking.RequestedDate, heldDates[0])
		assert.Equal(t, booking.EndDate.Time, heldDates[2])
	})

	t.Run("public approval touches no calendar", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking("booking-2")
		booking.RequestType = model.TypePublic

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.service.Approve(testContext(), "booking-2")

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusApproved), res.Status)
	})

	t.Run("approving a cancelled booking is a conflict", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking("booking-3")
		booking.Status = model.StatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.service.Approve(testContext(), "booking-3")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.service.Approve(testContext(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("hold failure aborts the approval result", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking("booking-4")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.availability.EXPECT().
			UpsertUnlessBooked(gomock.Any(), gomock.Any()).
			Return(errors.New("db down"))

		_, err := f.service.Approve(testContext(), "booking-4")

		assert.Error(t, err)
	})
}

func TestBookingService_Deny(t *testing.T) {
	tests := []struct {
		name     string
		status   model.Status
		wantErr  bool
		wantCode int
	}{
		{"pending can be denied", model.StatusPending, false, 0},
		{"approved cannot be denied", model.StatusApproved, true, 409},
		{"confirmed cannot be denied", model.StatusConfirmed, true, 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			booking := pendingBooking("booking-1")
			booking.Status = tt.status

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			if !tt.wantErr {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			res, err := f.service.Deny(testContext(), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, string(model.StatusDenied), res.Status)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("confirmed booking can be cancelled without touching the calendar", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking("booking-1")
		booking.Status = model.StatusConfirmed
		booking.TrainerAvailabilityID = "availability-1"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.service.Cancel(testContext(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking("booking-2")
		booking.Status = model.StatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.service.Cancel(testContext(), "booking-2")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_Confirm_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.ConfirmBookingRequest
	}{
		{
			name: "empty availability id",
			req: dto.ConfirmBookingRequest{
				AvailabilityIDs:        []string{"availability-1", ""},
				TotalSlots:             10,
				RegisteredParticipants: 2,
			},
		},
		{
			name: "registered participants exceed total slots",
			req: dto.ConfirmBookingRequest{
				AvailabilityIDs:        []string{"availability-1"},
				TotalSlots:             5,
				RegisteredParticipants: 6,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.service.Confirm(testContext(), "booking-1", tt.req)

			assert.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestBookingService_MarkTentative(t *testing.T) {
	f := newFixture(t)

	booking := pendingBooking("booking-1")
	booking.Status = model.StatusApproved

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.service.MarkTentative(testContext(), "booking-1")

	assert.NoError(t, err)
	assert.Equal(t, string(model.StatusTentative), res.Status)
}
