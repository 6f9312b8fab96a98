package board

import (
	"context"

	"github.com/taskboard/backend/internal/domain/board"
	"go.uber.org/zap"
)

// activityRecorder appends activity log entries. Logging is best effort:
// a failed write never fails the operation that produced it.
type activityRecorder struct {
	repo   board.ActivityRepository
	logger *zap.Logger
}

func newActivityRecorder(repo board.ActivityRepository, logger *zap.Logger) *activityRecorder {
	return &activityRecorder{repo: repo, logger: logger}
}

func (r *activityRecorder) record(ctx context.Context, activity *board.Activity) {
	if err := r.repo.Create(ctx, activity); err != nil {
		r.logger.Warn("failed to record activity",
			zap.String("action", string(activity.Action)),
			zap.String("target_id", activity.TargetID.String()),
			zap.Error(err))
	}
}
