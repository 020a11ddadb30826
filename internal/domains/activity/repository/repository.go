package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	"trainboard/internal/domains/activity/model"
	gDto "trainboard/shared/dto"
	gRepo "trainboard/shared/repository"
)

type Activity interface {
	Insert(ctx context.Context, model model.ActivityLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ActivityLog, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ActivityLog]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Activity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ActivityLog](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
