package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trainboard/infras/otel/mocks"
	activityMocks "trainboard/internal/domains/activity/mocks"
	bookingMocks "trainboard/internal/domains/booking/mocks"
	bookingModel "trainboard/internal/domains/booking/model"
	calendarMocks "trainboard/internal/domains/calendar/mocks"
	"trainboard/internal/domains/conflict/model/dto"
	"trainboard/internal/domains/conflict/service"
	"trainboard/shared/constant"
	"trainboard/shared/failure"
)

type fixture struct {
	bookings    *bookingMocks.MockBooking
	blockedDate *calendarMocks.MockBlockedDate
	blockedDay  *calendarMocks.MockBlockedDay
	service     service.Conflict
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		bookings:    bookingMocks.NewMockBooking(ctrl),
		blockedDate: calendarMocks.NewMockBlockedDate(ctrl),
		blockedDay:  calendarMocks.NewMockBlockedDay(ctrl),
	}

	activity := activityMocks.NewMockLogger(ctrl)
	activity.EXPECT().
		LogActivity(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		AnyTimes()

	f.service = service.New(f.bookings, f.blockedDate, f.blockedDay, nil, activity, mocks.NewOtel())

	return f
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func day(value string) time.Time {
	parsed, _ := time.Parse(constant.DayFormat, value)

	return parsed
}

func approvedBooking(id string) bookingModel.Booking {
	return bookingModel.Booking{
		ID:            id,
		TrainerID:     "trainer-1",
		ClientID:      "client-1",
		CourseID:      "course-1",
		RequestType:   bookingModel.TypeInhouse,
		RequestedDate: day("2025-06-02"),
		Status:        bookingModel.StatusApproved,
	}
}

func TestConflictService_Detect(t *testing.T) {
	t.Run("clean window reports no conflict and no suggestions", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().
			GetInRange(gomock.Any(), "trainer-1", day("2025-06-02"), day("2025-06-04"), gomock.Any()).
			Return(nil, nil)
		f.blockedDate.EXPECT().
			GetRange(gomock.Any(), "trainer-1", day("2025-06-02"), day("2025-06-04")).
			Return(nil, nil)
		f.blockedDay.EXPECT().GetByTrainer(gomock.Any(), "trainer-1").Return(nil, nil)

		report, err := f.service.Detect(testContext(), dto.DetectConflictRequest{
			TrainerID: "trainer-1",
			StartDate: "2025-06-02",
			EndDate:   "2025-06-04",
		})

		assert.NoError(t, err)
		assert.False(t, report.HasConflict)
		assert.Empty(t, report.ExistingBookings)
		assert.Empty(t, report.SuggestedAlternatives)
	})

	t.Run("colliding booking triggers the week-shift suggestion", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().
			GetInRange(gomock.Any(), "trainer-1", day("2025-06-02"), day("2025-06-02"), gomock.Any()).
			Return([]bookingModel.Booking{approvedBooking("booking-1")}, nil)
		f.blockedDate.EXPECT().
			GetRange(gomock.Any(), "trainer-1", day("2025-06-02"), day("2025-06-02")).
			Return(nil, nil)
		f.blockedDay.EXPECT().GetByTrainer(gomock.Any(), "trainer-1").Return(nil, nil)

		f.bookings.EXPECT().
			GetInRange(gomock.Any(), "trainer-1", day("2025-06-09"), day("2025-06-09"), gomock.Any()).
			Return(nil, nil)
		f.blockedDate.EXPECT().
			GetRange(gomock.Any(), "trainer-1", day("2025-06-09"), day("2025-06-09")).
			Return(nil, nil)

		report, err := f.service.Detect(testContext(), dto.DetectConflictRequest{
			TrainerID: "trainer-1",
			StartDate: "2025-06-02",
		})

		assert.NoError(t, err)
		assert.True(t, report.HasConflict)
		assert.Len(t, report.ExistingBookings, 1)
		assert.Equal(t, []string{"2025-06-09"}, report.SuggestedAlternatives)
	})

	t.Run("taken shifted window yields an empty suggestion list", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().
			GetInRange(gomock.Any(), "trainer-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{approvedBooking("booking-1")}, nil).
			Times(2)
		f.blockedDate.EXPECT().
			GetRange(gomock.Any(), "trainer-1", gomock.Any(), gomock.Any()).
			Return(nil, nil).
			Times(2)
		f.blockedDay.EXPECT().GetByTrainer(gomock.Any(), "trainer-1").Return(nil, nil)

		report, err := f.service.Detect(testContext(), dto.DetectConflictRequest{
			TrainerID: "trainer-1",
			StartDate: "2025-06-02",
		})

		assert.NoError(t, err)
		assert.True(t, report.HasConflict)
		assert.NotNil(t, report.SuggestedAlternatives)
		assert.Empty(t, report.SuggestedAlternatives)
	})

	t.Run("malformed window is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Detect(testContext(), dto.DetectConflictRequest{
			TrainerID: "trainer-1",
			StartDate: "not-a-date",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestConflictService_Overlapping(t *testing.T) {
	t.Run("competitors for the same day are listed", func(t *testing.T) {
		f := newFixture(t)

		booking := approvedBooking("booking-1")

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.bookings.EXPECT().
			GetOverlapping(gomock.Any(), "trainer-1", booking.RequestedDate, "booking-1").
			Return([]bookingModel.Booking{approvedBooking("booking-2")}, nil)

		res, err := f.service.Overlapping(testContext(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.BookingID)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, "booking-2", res.Bookings[0].ID)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := f.service.Overlapping(testContext(), "booking-404")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestConflictService_Resolve(t *testing.T) {
	t.Run("reschedule without a new date is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedBooking("booking-1"), nil)

		_, err := f.service.Resolve(testContext(), "booking-1", dto.ResolveConflictRequest{
			Resolution: dto.ResolutionReschedule,
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("reschedule slides a multi-day range intact", func(t *testing.T) {
		f := newFixture(t)

		booking := approvedBooking("booking-1")
		booking.EndDate.Valid = true
		booking.EndDate.Time = day("2025-06-04")

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, day("2025-06-09"), req[bookingModel.FieldRequestedDate])
				assert.Equal(t, day("2025-06-11"), req[bookingModel.FieldEndDate])
				assert.Equal(t, bookingModel.StatusTentative, req[bookingModel.FieldStatus])

				return nil
			})

		res, err := f.service.Resolve(testContext(), "booking-1", dto.ResolveConflictRequest{
			Resolution: dto.ResolutionReschedule,
			NewDate:    "2025-06-09",
		})

		assert.NoError(t, err)
		assert.Equal(t, dto.ResolutionReschedule, res.Resolution)
		assert.Equal(t, "2025-06-09", res.Booking.RequestedDate)
		assert.Equal(t, string(bookingModel.StatusTentative), res.Booking.Status)
	})

	t.Run("cancel withdraws the booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedBooking("booking-1"), nil)
		f.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, bookingModel.StatusCancelled, req[bookingModel.FieldStatus])

				return nil
			})

		res, err := f.service.Resolve(testContext(), "booking-1", dto.ResolveConflictRequest{
			Resolution: dto.ResolutionCancel,
		})

		assert.NoError(t, err)
		assert.Equal(t, string(bookingModel.StatusCancelled), res.Booking.Status)
	})

	t.Run("confirmed booking cannot be rescheduled or overridden", func(t *testing.T) {
		f := newFixture(t)

		booking := approvedBooking("booking-1")
		booking.Status = bookingModel.StatusConfirmed

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil).Times(2)

		_, err := f.service.Resolve(testContext(), "booking-1", dto.ResolveConflictRequest{
			Resolution: dto.ResolutionReschedule,
			NewDate:    "2025-06-09",
		})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))

		_, err = f.service.Resolve(testContext(), "booking-1", dto.ResolveConflictRequest{
			Resolution: dto.ResolutionOverride,
		})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("confirmed booking can still be cancelled", func(t *testing.T) {
		f := newFixture(t)

		booking := approvedBooking("booking-1")
		booking.Status = bookingModel.StatusConfirmed

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, bookingModel.StatusCancelled, req[bookingModel.FieldStatus])

				return nil
			})

		res, err := f.service.Resolve(testContext(), "booking-1", dto.ResolveConflictRequest{
			Resolution: dto.ResolutionCancel,
		})

		assert.NoError(t, err)
		assert.Equal(t, string(bookingModel.StatusCancelled), res.Booking.Status)
	})

	t.Run("terminal booking cannot be resolved", func(t *testing.T) {
		f := newFixture(t)

		booking := approvedBooking("booking-1")
		booking.Status = bookingModel.StatusCompleted

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.service.Resolve(testContext(), "booking-1", dto.ResolveConflictRequest{
			Resolution: dto.ResolutionCancel,
		})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("unknown resolution is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedBooking("booking-1"), nil)

		_, err := f.service.Resolve(testContext(), "booking-1", dto.ResolveConflictRequest{
			Resolution: "escalate",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
