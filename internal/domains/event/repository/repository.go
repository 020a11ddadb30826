package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	"trainboard/internal/domains/event/model"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/logger"
	gRepo "trainboard/shared/repository"
)

type Event interface {
	Insert(ctx context.Context, model model.Event) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Event) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Event, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Event, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	ExistForCourseDateTx(ctx context.Context, tx *sqlx.Tx, courseID string, eventDate time.Time) (bool, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Event, bool, error)
}

type eventImpl struct {
	gRepo.Repository[model.Event]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Event {
	return &eventImpl{
		Repository: gRepo.NewRepository[model.Event](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ExistForCourseDateTx is the duplicate-event guard. It runs on the write
// connection inside the confirmation transaction so it observes rows locked
// by competing confirmations.
func (repo *eventImpl) ExistForCourseDateTx(ctx context.Context, tx *sqlx.Tx, courseID string, eventDate time.Time) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ExistForCourseDateTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `SELECT EXISTS(SELECT 1 FROM events WHERE course_id = $1 AND event_date = $2)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false

	err := tx.GetContext(ctx, &exist, query, courseID, eventDate)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check existing event: %w", err)
	}

	return exist, nil
}

// GetForUpdateTx locks the event row for a registration capacity check.
func (repo *eventImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Event, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetForUpdateTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `SELECT id, course_id, trainer_id, event_date, start_date, end_date, max_packs, status,
		created_by, modified_by FROM events WHERE id = $1 FOR UPDATE`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var events []model.Event

	err := tx.SelectContext(ctx, &events, query, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Event{}, false, fmt.Errorf("failed to lock event row: %w", err)
	}

	if len(events) == 0 {
		return model.Event{}, false, nil
	}

	return events[0], true, nil
}
