package repository

//go:generate go run go.uber.org/mock/mockgen -source=./blocked_repository.go -destination=../mocks/blocked_repository_mock.go -package=mocks

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

type BlockedDate interface {
	Insert(ctx context.Context, model model.BlockedDate) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BlockedDate, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BlockedDate, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	InsertIgnore(ctx context.Context, blocked model.BlockedDate) error
	InsertIgnoreTx(ctx context.Context, tx *sqlx.Tx, blocked model.BlockedDate) error
	GetRange(ctx context.Context, trainerID string, from, to time.Time) ([]model.BlockedDate, error)
}

type blockedDateImpl struct {
	gRepo.Repository[model.BlockedDate]
	db   *postgres.Connection
	otel otel.Otel
}

func NewBlockedDate(db *postgres.Connection, otel otel.Otel) BlockedDate {
	return &blockedDateImpl{
		Repository: gRepo.NewRepository[model.BlockedDate](model.BlockedDateEntityName, model.BlockedDateTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertIgnore creates the blocked date if it does not exist yet. A repeat
// call for the same (trainer, day) is a no-op, which makes the resolver's
// override path idempotent.
func (repo *blockedDateImpl) InsertIgnore(ctx context.Context, blocked model.BlockedDate) error {
	return repo.insertIgnore(ctx, repo.db.Write, blocked)
}

func (repo *blockedDateImpl) InsertIgnoreTx(ctx context.Context, tx *sqlx.Tx, blocked model.BlockedDate) error {
	return repo.insertIgnore(ctx, tx, blocked)
}

func (repo *blockedDateImpl) insertIgnore(ctx context.Context, exec sqlx.ExtContext, blocked model.BlockedDate) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.insertIgnore", constant.OtelRepositoryScopeName, model.BlockedDateEntityName))
	defer scope.End()

	query := `INSERT INTO trainer_blocked_dates (id, trainer_id, blocked_date, reason, created_by, modified_by)
		VALUES (:id, :trainer_id, :blocked_date, :reason, :created_by, :modified_by)
		ON CONFLICT (trainer_id, blocked_date) DO NOTHING`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := sqlx.NamedExecContext(ctx, exec, query, blocked)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.BlockedDateEntityName, err)
	}

	return nil
}

func (repo *blockedDateImpl) GetRange(ctx context.Context, trainerID string, from, to time.Time) ([]model.BlockedDate, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTrainerID,
				Operator: gDto.FilterOperatorEq,
				Value:    trainerID,
				Table:    model.BlockedDateTableName,
			},
			gDto.Filter{
				ArgName:  "blocked_from",
				Field:    model.FieldBlockedDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    model.BlockedDateTableName,
			},
			gDto.Filter{
				ArgName:  "blocked_to",
				Field:    model.FieldBlockedDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to,
				Table:    model.BlockedDateTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldBlockedDate, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter)
}

type BlockedDay interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BlockedDay, error)
	GetByTrainer(ctx context.Context, trainerID string) ([]model.BlockedDay, error)
	ReplaceAll(ctx context.Context, trainerID string, days []model.BlockedDay) error
}

type blockedDayImpl struct {
	gRepo.Repository[model.BlockedDay]
	db   *postgres.Connection
	otel otel.Otel
}

func NewBlockedDay(db *postgres.Connection, otel otel.Otel) BlockedDay {
	return &blockedDayImpl{
		Repository: gRepo.NewRepository[model.BlockedDay](model.BlockedDayEntityName, model.BlockedDayTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *blockedDayImpl) GetByTrainer(ctx context.Context, trainerID string) ([]model.BlockedDay, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTrainerID,
				Operator: gDto.FilterOperatorEq,
				Value:    trainerID,
				Table:    model.BlockedDayTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldDayOfWeek, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter)
}

// ReplaceAll swaps the trainer's weekly rules wholesale, there is no partial
// patch. Delete and re-insert run in one transaction.
func (repo *blockedDayImpl) ReplaceAll(ctx context.Context, trainerID string, days []model.BlockedDay) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ReplaceAll", constant.OtelRepositoryScopeName, model.BlockedDayEntityName))
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.BlockedDayEntityName, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTrainerID,
				Operator: gDto.FilterOperatorEq,
				Value:    trainerID,
			},
		},
	}

	if err = repo.DeleteTx(ctx, tx, filter); err != nil {
		return fmt.Errorf("failed to clear blocked days: %w", err)
	}

	if len(days) > 0 {
		if err = repo.InsertBulkTx(ctx, tx, days); err != nil {
			return fmt.Errorf("failed to insert blocked days: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.BlockedDayEntityName, err)
	}

	return nil
}
