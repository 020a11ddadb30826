package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trainboard/config"
	"trainboard/infras/otel/mocks"
	activityMocks "trainboard/internal/domains/activity/mocks"
	eventMocks "trainboard/internal/domains/event/mocks"
	"trainboard/internal/domains/event/model"
	"trainboard/internal/domains/event/service"
	notificationMocks "trainboard/internal/domains/notification/mocks"
	cacheMocks "trainboard/shared/cache/mocks"
	"trainboard/shared/constant"
	"trainboard/shared/failure"
)

type fixture struct {
	repo          *eventMocks.MockEvent
	registrations *eventMocks.MockRegistration
	cache         *cacheMocks.MockRedisCache
	service       service.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:          eventMocks.NewMockEvent(ctrl),
		registrations: eventMocks.NewMockRegistration(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	notifier := notificationMocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		AnyTimes()

	activity := activityMocks.NewMockLogger(ctrl)
	activity.EXPECT().
		LogActivity(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		AnyTimes()

	f.service = service.New(f.repo, f.registrations, nil, cfg, f.cache, notifier, activity, mocks.NewOtel())

	return f
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func day(value string) time.Time {
	parsed, _ := time.Parse(constant.DayFormat, value)

	return parsed
}

func TestEventService_MaterializeTx(t *testing.T) {
	t.Run("single day produces an event without an end date", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			ExistForCourseDateTx(gomock.Any(), gomock.Any(), "course-1", day("2025-06-02")).
			Return(false, nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, event model.Event) error {
				assert.Equal(t, day("2025-06-02"), event.EventDate)
				assert.False(t, event.EndDate.Valid)
				assert.Equal(t, model.StatusActive, event.Status)
				assert.Equal(t, 10, event.MaxPacks)

				return nil
			})
		f.registrations.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, registration model.Registration) error {
				assert.Equal(t, model.RegistrationApproved, registration.Status)
				assert.Equal(t, 4, registration.NumberOfParticipants)

				return nil
			})

		event, err := f.service.MaterializeTx(testContext(), nil, service.MaterializeInput{
			CourseID:               "course-1",
			TrainerID:              "trainer-1",
			ClientID:               "client-1",
			Dates:                  []time.Time{day("2025-06-02")},
			TotalSlots:             10,
			RegisteredParticipants: 4,
			CreatedBy:              "admin-1",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, event.ID)
	})

	t.Run("multi-day dates are bounded regardless of order", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			ExistForCourseDateTx(gomock.Any(), gomock.Any(), "course-1", day("2025-06-02")).
			Return(false, nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, event model.Event) error {
				assert.Equal(t, day("2025-06-02"), event.StartDate)
				assert.True(t, event.EndDate.Valid)
				assert.Equal(t, day("2025-06-04"), event.EndDate.Time)

				return nil
			})

		_, err := f.service.MaterializeTx(testContext(), nil, service.MaterializeInput{
			CourseID:   "course-1",
			TrainerID:  "trainer-1",
			Dates:      []time.Time{day("2025-06-04"), day("2025-06-02"), day("2025-06-03")},
			TotalSlots: 10,
			CreatedBy:  "admin-1",
		})

		assert.NoError(t, err)
	})

	t.Run("no dates is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.MaterializeTx(testContext(), nil, service.MaterializeInput{
			CourseID:   "course-1",
			TotalSlots: 10,
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("participants over capacity is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.MaterializeTx(testContext(), nil, service.MaterializeInput{
			CourseID:               "course-1",
			Dates:                  []time.Time{day("2025-06-02")},
			TotalSlots:             5,
			RegisteredParticipants: 6,
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("duplicate course and date is refused", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			ExistForCourseDateTx(gomock.Any(), gomock.Any(), "course-1", day("2025-06-02")).
			Return(true, nil)

		_, err := f.service.MaterializeTx(testContext(), nil, service.MaterializeInput{
			CourseID:   "course-1",
			Dates:      []time.Time{day("2025-06-02")},
			TotalSlots: 10,
		})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestEventService_Get(t *testing.T) {
	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Event{ID: "event-1", CourseID: "course-1", EventDate: day("2025-06-02"), MaxPacks: 10, Status: model.StatusActive}, nil)

		res, err := f.service.Get(testContext(), "event-1")

		assert.NoError(t, err)
		assert.Equal(t, "event-1", res.ID)
		assert.Equal(t, "ACTIVE", res.Status)
	})

	t.Run("missing event is not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Event{}, nil)

		_, err := f.service.Get(testContext(), "event-404")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestEventService_CancelRegistration(t *testing.T) {
	t.Run("registration is cancelled in place", func(t *testing.T) {
		f := newFixture(t)

		f.registrations.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Registration{ID: "registration-1", EventID: "event-1", Status: model.RegistrationRegistered}, nil)
		f.registrations.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, model.RegistrationCancelled, req[model.FieldStatus])

				return nil
			})

		err := f.service.CancelRegistration(testContext(), "registration-1")

		assert.NoError(t, err)
	})

	t.Run("unknown registration is not found", func(t *testing.T) {
		f := newFixture(t)

		f.registrations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Registration{}, nil)

		err := f.service.CancelRegistration(testContext(), "registration-404")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestEventService_Cancel(t *testing.T) {
	t.Run("active event can be cancelled", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Event{ID: "event-1", Status: model.StatusActive}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, model.StatusCancelled, req[model.FieldStatus])

				return nil
			})

		err := f.service.Cancel(testContext(), "event-1")

		assert.NoError(t, err)
	})

	t.Run("completed event cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Event{ID: "event-1", Status: model.StatusCompleted}, nil)

		err := f.service.Cancel(testContext(), "event-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}
