package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trainboard/infras/nats"
	"trainboard/infras/otel"
	"trainboard/internal/domains/notification/model"
	"trainboard/internal/domains/notification/repository"
	"trainboard/shared/constant"
	gModel "trainboard/shared/model"
	"trainboard/shared/timezone"
)

const (
	subjectPrefix = "notifications."
)

// Notifier is the best-effort notification sink. Failures are logged and
// swallowed, a lost notification never fails the mutation that produced it.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message, notificationType, relatedEntityType, relatedEntityID string)
}

type serviceImpl struct {
	repo      repository.Notification
	publisher nats.Publisher
	otel      otel.Otel
}

func New(repo repository.Notification, publisher nats.Publisher, otel otel.Otel) Notifier {
	return &serviceImpl{
		repo:      repo,
		publisher: publisher,
		otel:      otel,
	}
}

type notificationEvent struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Title             string `json:"title"`
	Message           string `json:"message"`
	Type              string `json:"type"`
	RelatedEntityType string `json:"related_entity_type"`
	RelatedEntityID   string `json:"related_entity_id"`
}

func (s *serviceImpl) Notify(ctx context.Context, userID, title, message, notificationType, relatedEntityType, relatedEntityID string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Notify")
	defer scope.End()

	if userID == "" {
		return
	}

	notification := model.Notification{
		ID:                uuid.NewString(),
		UserID:            userID,
		Title:             title,
		Message:           message,
		Type:              notificationType,
		RelatedEntityType: relatedEntityType,
		RelatedEntityID:   relatedEntityID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}

	if err := s.repo.Insert(ctx, notification); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to persist notification")
	}

	event := notificationEvent{
		ID:                notification.ID,
		UserID:            userID,
		Title:             title,
		Message:           message,
		Type:              notificationType,
		RelatedEntityType: relatedEntityType,
		RelatedEntityID:   relatedEntityID,
	}

	if err := s.publisher.Publish(ctx, subjectPrefix+notificationType, event); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to publish notification event")
	}
}
