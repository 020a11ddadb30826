package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	"trainboard/internal/domains/calendar/model"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/logger"
	gRepo "trainboard/shared/repository"
)

type Availability interface {
	Insert(ctx context.Context, model model.Availability) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Availability, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Availability, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	Upsert(ctx context.Context, availability model.Availability) error
	UpsertUnlessBooked(ctx context.Context, availability model.Availability) error
	GetRange(ctx context.Context, trainerID string, from, to time.Time) ([]model.Availability, error)
	GetByIDsForUpdateTx(ctx context.Context, tx *sqlx.Tx, ids []string) ([]model.Availability, error)
	SetStatusTx(ctx context.Context, tx *sqlx.Tx, ids []string, status model.Status, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Availability]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Availability](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert writes the day's status, overwriting whatever was there. The unique
// constraint on (trainer_id, date) keeps one row per trainer per day.
func (repo *repositoryImpl) Upsert(ctx context.Context, availability model.Availability) error {
	return repo.upsert(ctx, availability, false)
}

// UpsertUnlessBooked creates or upgrades the day's record but leaves a BOOKED
// day untouched. Used by the approve transition's TENTATIVE propagation.
func (repo *repositoryImpl) UpsertUnlessBooked(ctx context.Context, availability model.Availability) error {
	return repo.upsert(ctx, availability, true)
}

func (repo *repositoryImpl) upsert(ctx context.Context, availability model.Availability, preserveBooked bool) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.upsert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `INSERT INTO trainer_availability (id, trainer_id, date, status, created_by, modified_by)
		VALUES (:id, :trainer_id, :date, :status, :created_by, :modified_by)
		ON CONFLICT (trainer_id, date)
		DO UPDATE SET status = EXCLUDED.status, modified_at = NOW(), modified_by = EXCLUDED.modified_by`

	if preserveBooked {
		query += ` WHERE trainer_availability.status <> 'BOOKED'`
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, availability)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetRange(ctx context.Context, trainerID string, from, to time.Time) ([]model.Availability, error) {
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
				ArgName:  "date_from",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "date_to",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter)
}

// GetByIDsForUpdateTx re-reads the given rows under a row-level lock, so two
// concurrent confirmations cannot both see the same day as bookable.
func (repo *repositoryImpl) GetByIDsForUpdateTx(ctx context.Context, tx *sqlx.Tx, ids []string) ([]model.Availability, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetByIDsForUpdateTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query, args, err := sqlx.In(`SELECT id, trainer_id, date, status, created_by, modified_by
		FROM trainer_availability WHERE id IN (?) FOR UPDATE`, ids)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build lock query (%s): %w", model.EntityName, err)
	}

	query = tx.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []model.Availability

	err = tx.SelectContext(ctx, &models, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to lock rows (%s): %w", model.EntityName, err)
	}

	return models, nil
}

func (repo *repositoryImpl) SetStatusTx(ctx context.Context, tx *sqlx.Tx, ids []string, status model.Status, user string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.SetStatusTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query, args, err := sqlx.In(`UPDATE trainer_availability
		SET status = ?, modified_at = NOW(), modified_by = ? WHERE id IN (?)`, status, user, ids)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to build status update (%s): %w", model.EntityName, err)
	}

	query = tx.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = tx.ExecContext(ctx, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update status (%s): %w", model.EntityName, err)
	}

	return nil
}
