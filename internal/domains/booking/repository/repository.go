package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	"trainboard/internal/domains/booking/model"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/logger"
	gRepo "trainboard/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error)
	GetInRange(ctx context.Context, trainerID string, from, to time.Time, statuses []model.Status) ([]model.Booking, error)
	GetOverlapping(ctx context.Context, trainerID string, date time.Time, excludeID string) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetForUpdateTx locks the booking row so a concurrent confirmation or
// resolution cannot act on a stale status.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetForUpdateTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `SELECT id, course_id, trainer_id, client_id, request_type, requested_date, end_date,
		status, trainer_availability_id, created_by, modified_by
		FROM booking_requests WHERE id = $1 FOR UPDATE`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.Booking

	err := tx.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to lock booking row: %w", err)
	}

	return booking, nil
}

// GetInRange returns the trainer's bookings whose requested date falls inside
// the inclusive range, limited to the given statuses.
func (repo *repositoryImpl) GetInRange(ctx context.Context, trainerID string, from, to time.Time, statuses []model.Status) ([]model.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTrainerID,
				Operator: gDto.FilterOperatorEq,
				Value:    trainerID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "requested_from",
				Field:    model.FieldRequestedDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "requested_to",
				Field:    model.FieldRequestedDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    statuses,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldRequestedDate, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter)
}

// GetOverlapping surfaces other APPROVED bookings for the same trainer on the
// same exact date, oldest first, so colliding approvals can be reconciled.
func (repo *repositoryImpl) GetOverlapping(ctx context.Context, trainerID string, date time.Time, excludeID string) ([]model.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTrainerID,
				Operator: gDto.FilterOperatorEq,
				Value:    trainerID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRequestedDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusApproved,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorNotEq,
				Value:    excludeID,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter)
}
