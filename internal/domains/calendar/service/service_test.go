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
	calendarMocks "trainboard/internal/domains/calendar/mocks"
	"trainboard/internal/domains/calendar/model"
	"trainboard/internal/domains/calendar/model/dto"
	"trainboard/internal/domains/calendar/service"
	cacheMocks "trainboard/shared/cache/mocks"
	"trainboard/shared/constant"
	"trainboard/shared/failure"
)

type fixture struct {
	repo        *calendarMocks.MockAvailability
	blockedRepo *calendarMocks.MockBlockedDate
	weeklyRepo  *calendarMocks.MockBlockedDay
	cache       *cacheMocks.MockRedisCache
	service     service.Calendar
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:        calendarMocks.NewMockAvailability(ctrl),
		blockedRepo: calendarMocks.NewMockBlockedDate(ctrl),
		weeklyRepo:  calendarMocks.NewMockBlockedDay(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.service = service.New(f.repo, f.blockedRepo, f.weeklyRepo, cfg, f.cache, mocks.NewOtel())

	return f
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "trainer-1")
}

func TestCalendarService_Set(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.SetAvailabilityRequest
		setupMock func(f *fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful upsert",
			req:  dto.SetAvailabilityRequest{Date: "2025-06-02", Status: "AVAILABLE"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, availability model.Availability) error {
						assert.Equal(t, "trainer-1", availability.TrainerID)
						assert.Equal(t, model.StatusAvailable, availability.Status)
						assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), availability.Date)

						return nil
					})
			},
		},
		{
			name:      "malformed date",
			req:       dto.SetAvailabilityRequest{Date: "junk", Status: "AVAILABLE"},
			setupMock: func(f *fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "repository error",
			req:  dto.SetAvailabilityRequest{Date: "2025-06-02", Status: "NOT_AVAILABLE"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.service.Set(testContext(), "trainer-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCalendarService_SetRange(t *testing.T) {
	t.Run("upserts every day in the range inclusive", func(t *testing.T) {
		f := newFixture(t)

		var dates []time.Time

		f.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, availability model.Availability) error {
				dates = append(dates, availability.Date)

				return nil
			}).
			Times(4)

		err := f.service.SetRange(testContext(), "trainer-1", dto.SetAvailabilityRangeRequest{
			StartDate: "2025-06-02",
			EndDate:   "2025-06-05",
			Status:    "AVAILABLE",
		})

		assert.NoError(t, err)
		assert.Len(t, dates, 4)
		assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), dates[0])
		assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), dates[3])
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		f := newFixture(t)

		err := f.service.SetRange(testContext(), "trainer-1", dto.SetAvailabilityRangeRequest{
			StartDate: "2025-06-05",
			EndDate:   "2025-06-02",
			Status:    "AVAILABLE",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestCalendarService_GetRange(t *testing.T) {
	t.Run("cache miss reads the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().
			GetRange(gomock.Any(), "trainer-1", gomock.Any(), gomock.Any()).
			Return([]model.Availability{
				{ID: "availability-1", TrainerID: "trainer-1", Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Status: model.StatusAvailable},
			}, nil)

		res, err := f.service.GetRange(testContext(), "trainer-1", "2025-06-01", "2025-06-07")

		assert.NoError(t, err)
		assert.Len(t, res.Availability, 1)
		assert.Equal(t, "AVAILABLE", res.Availability[0].Status)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.service.GetRange(testContext(), "trainer-1", "2025-06-01", "2025-06-07")

		assert.NoError(t, err)
	})

	t.Run("reversed range is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.GetRange(testContext(), "trainer-1", "2025-06-07", "2025-06-01")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestCalendarService_Release(t *testing.T) {
	t.Run("booked day goes back to available", func(t *testing.T) {
		f := newFixture(t)

		day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

		f.repo.EXPECT().
			GetRange(gomock.Any(), "trainer-1", day, day).
			Return([]model.Availability{{ID: "availability-1", TrainerID: "trainer-1", Date: day, Status: model.StatusBooked}}, nil)
		f.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, availability model.Availability) error {
				assert.Equal(t, model.StatusAvailable, availability.Status)

				return nil
			})

		err := f.service.Release(testContext(), "trainer-1", "2025-06-02")

		assert.NoError(t, err)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetRange(gomock.Any(), "trainer-1", gomock.Any(), gomock.Any()).Return(nil, nil)

		err := f.service.Release(testContext(), "trainer-1", "2025-06-02")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestCalendarService_BlockDate(t *testing.T) {
	t.Run("blocking is idempotent at the repository level", func(t *testing.T) {
		f := newFixture(t)

		f.blockedRepo.EXPECT().
			InsertIgnore(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, blocked model.BlockedDate) error {
				assert.Equal(t, "trainer-1", blocked.TrainerID)
				assert.Equal(t, "vacation", blocked.Reason)

				return nil
			})

		err := f.service.BlockDate(testContext(), "trainer-1", dto.BlockDateRequest{Date: "2025-06-02", Reason: "vacation"})

		assert.NoError(t, err)
	})
}

func TestCalendarService_UnblockDate(t *testing.T) {
	t.Run("existing block is deleted", func(t *testing.T) {
		f := newFixture(t)

		f.blockedRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.blockedRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.service.UnblockDate(testContext(), "trainer-1", "2025-06-02")

		assert.NoError(t, err)
	})

	t.Run("absent block is not found", func(t *testing.T) {
		f := newFixture(t)

		f.blockedRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.service.UnblockDate(testContext(), "trainer-1", "2025-06-02")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestCalendarService_ReplaceBlockedDays(t *testing.T) {
	t.Run("weekly pattern is replaced wholesale", func(t *testing.T) {
		f := newFixture(t)

		f.weeklyRepo.EXPECT().
			ReplaceAll(gomock.Any(), "trainer-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, days []model.BlockedDay) error {
				assert.Len(t, days, 2)
				assert.Equal(t, 0, days[0].DayOfWeek)
				assert.Equal(t, 6, days[1].DayOfWeek)

				return nil
			})

		err := f.service.ReplaceBlockedDays(testContext(), "trainer-1", dto.ReplaceBlockedDaysRequest{Days: []int{0, 6}})

		assert.NoError(t, err)
	})
}
