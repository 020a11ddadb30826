package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trainboard/infras/otel"
	"trainboard/internal/domains/activity/model"
	"trainboard/internal/domains/activity/repository"
	"trainboard/shared/constant"
	gModel "trainboard/shared/model"
	"trainboard/shared/timezone"
)

// Logger records admin/trainer actions for audit. Best effort only, a
// failed write is logged and discarded.
type Logger interface {
	LogActivity(ctx context.Context, userID, actionType, entityType, entityID, description string, metadata map[string]any)
}

type serviceImpl struct {
	repo repository.Activity
	otel otel.Otel
}

func New(repo repository.Activity, otel otel.Otel) Logger {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) LogActivity(ctx context.Context, userID, actionType, entityType, entityID, description string, metadata map[string]any) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".LogActivity")
	defer scope.End()

	extra := json.RawMessage("{}")

	if len(metadata) > 0 {
		encoded, err := json.Marshal(metadata)
		if err != nil {
			log.Error().Err(err).Msg("failed to encode activity metadata")
		} else {
			extra = encoded
		}
	}

	entry := model.ActivityLog{
		ID:          uuid.NewString(),
		UserID:      userID,
		ActionType:  actionType,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Extra:       extra,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("actionType", actionType).Msg("failed to write activity log")
	}
}
