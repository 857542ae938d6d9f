package usecase

import (
	"context"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/internal/domain/service"
	"tamilsociety/pkg/logger"
	"tamilsociety/pkg/utils"
)

const activityEvent = "activity"

type ActivityUseCase struct {
	activityRepo repository.ActivityRepository
	notifier     service.ActivityNotifier
}

func NewActivityUseCase(activityRepo repository.ActivityRepository, notifier service.ActivityNotifier) *ActivityUseCase {
	return &ActivityUseCase{
		activityRepo: activityRepo,
		notifier:     notifier,
	}
}

func (uc *ActivityUseCase) Record(ctx context.Context, entry *entity.ActivityLog) {
	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		logger.LogActivityError(entry.EntityID, entry.Action, err)
		return
	}
	if uc.notifier != nil {
		uc.notifier.Broadcast(activityEvent, entry)
	}
}

func (uc *ActivityUseCase) List(ctx context.Context, entityType string, page, limit int) ([]*entity.ActivityLog, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.activityRepo.List(ctx, entityType, repository.ListOptions{
		Sort:   utils.DefaultSort,
		Limit:  p.PageSize,
		Offset: p.Offset,
	})
}

// record is shared by the usecases that emit feed entries.
func record(ctx context.Context, recorder ActivityRecorder, action, entityType, entityID, actorID, message string) {
	if recorder == nil {
		return
	}
	recorder.Record(ctx, &entity.ActivityLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Message:    message,
	})
}
