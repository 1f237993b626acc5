package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/unifylabs/unify-backend/internal/config"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
)

const (
	DeadlineScanInterval = 1 * time.Minute
	DeadlineWindow       = 24 * time.Hour
)

// DeadlineWorker periodically scans for tasks due within the reminder
// window and enqueues a notification for each. The claim query marks
// tasks as reminded, so a task is never announced twice even with
// multiple server instances running.
type DeadlineWorker struct {
	tasks *repository.TaskRepository
	rdb   *redis.Client
	log   zerolog.Logger
}

func NewDeadlineWorker(tasks *repository.TaskRepository, rdb *redis.Client, log zerolog.Logger) *DeadlineWorker {
	return &DeadlineWorker{
		tasks: tasks,
		rdb:   rdb,
		log:   log.With().Str("component", "deadline_worker").Logger(),
	}
}

func (w *DeadlineWorker) Start(ctx context.Context) {
	w.log.Info().Msg("DeadlineWorker started")

	ticker := time.NewTicker(DeadlineScanInterval)
	defer ticker.Stop()

	// First scan right away instead of waiting a full interval.
	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("DeadlineWorker stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *DeadlineWorker) scan(ctx context.Context) {
	due, err := w.tasks.DueWithin(ctx, DeadlineWindow)
	if err != nil {
		w.log.Error().Err(err).Msg("deadline scan failed")
		return
	}

	for i := range due {
		t := &due[i]

		userID, err := w.tasks.StudentUserID(ctx, t.StudentID)
		if err != nil {
			w.log.Error().Err(err).Int("student_id", t.StudentID).Msg("user lookup failed")
			continue
		}

		n := model.Notification{
			UserID:   userID,
			Title:    "Task deadline approaching",
			Body:     fmt.Sprintf("%q is due %s", t.Title, t.DueAt.Format("Mon 15:04")),
			Kind:     model.NotificationDeadline,
			Priority: reminderPriority(t.Priority),
		}

		raw, err := json.Marshal(n)
		if err != nil {
			continue
		}

		if err := w.rdb.RPush(ctx, config.WorkerKey.NotificationQueue, raw).Err(); err != nil {
			w.log.Error().Err(err).Int("task_id", t.ID).Msg("enqueue failed")
		}
	}

	if len(due) > 0 {
		w.log.Info().Int("count", len(due)).Msg("deadline reminders enqueued")
	}
}

// reminderPriority maps the task's own priority onto its reminder.
func reminderPriority(p model.TaskPriority) model.NotificationPriority {
	switch p {
	case model.TaskHigh:
		return model.PriorityHigh
	case model.TaskMedium:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
