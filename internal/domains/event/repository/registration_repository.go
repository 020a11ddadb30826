package repository

//go:generate go run go.uber.org/mock/mockgen -source=./registration_repository.go -destination=../mocks/registration_repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	"trainboard/internal/domains/event/model"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/logger"
	gRepo "trainboard/shared/repository"
)

type Registration interface {
	Insert(ctx context.Context, model model.Registration) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Registration) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Registration, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Registration, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error

	SumParticipantsTx(ctx context.Context, tx *sqlx.Tx, eventID string) (int, error)
}

type registrationImpl struct {
	gRepo.Repository[model.Registration]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRegistration(db *postgres.Connection, otel otel.Otel) Registration {
	return &registrationImpl{
		Repository: gRepo.NewRepository[model.Registration](model.RegistrationEntityName, model.RegistrationTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SumParticipantsTx totals the participants of capacity-consuming rows
// (REGISTERED and APPROVED) for one event, inside the caller's transaction.
func (repo *registrationImpl) SumParticipantsTx(ctx context.Context, tx *sqlx.Tx, eventID string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.SumParticipantsTx", constant.OtelRepositoryScopeName, model.RegistrationEntityName))
	defer scope.End()

	query := `SELECT COALESCE(SUM(number_of_participants), 0) FROM event_registrations
		WHERE event_id = $1 AND status IN ('REGISTERED', 'APPROVED')`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var total int

	err := tx.GetContext(ctx, &total, query, eventID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum registrations: %w", err)
	}

	return total, nil
}
