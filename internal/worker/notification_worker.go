package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/unifylabs/unify-backend/internal/config"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
	"github.com/unifylabs/unify-backend/internal/websocket"
)

const (
	NotifyBatchSize    = 50
	NotifyBatchTimeout = 2 * time.Second
	NotifyPollTimeout  = 1 * time.Second
)

// NotificationWorker drains the fan-out queue, persists notifications in
// batches, and publishes each stored notification to the recipient's
// pub/sub channel for live WebSocket delivery.
type NotificationWorker struct {
	repo *repository.NotificationRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewNotificationWorker(repo *repository.NotificationRepository, rdb *redis.Client, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "notification_worker").Logger(),
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotificationWorker started")

	batch := make([]model.Notification, 0, NotifyBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= NotifyBatchSize || time.Since(lastFlush) >= NotifyBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, NotifyPollTimeout, config.WorkerKey.NotificationQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var n model.Notification
			if err := json.Unmarshal([]byte(item[1]), &n); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, n)
		}
	}
}

// flushSafe persists the batch, falling back to per-row inserts when the
// batch transaction fails. Rows that still cannot be stored are pushed
// back onto the queue.
func (w *NotificationWorker) flushSafe(ctx context.Context, batch []model.Notification) {
	if len(batch) == 0 {
		return
	}

	if err := w.repo.CreateBatch(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("batch insert failed, using fallback")

		for i := range batch {
			n := &batch[i]
			if err := w.repo.Create(ctx, n); err != nil {
				w.log.Error().Err(err).Int("user_id", n.UserID).Msg("insert failed — requeueing")
				raw, _ := json.Marshal(n)
				w.rdb.RPush(ctx, config.WorkerKey.NotificationQueue, raw)
				continue
			}
			w.publish(ctx, n)
		}
		return
	}

	// CreateBatch fills in IDs and timestamps, so publish after commit.
	for i := range batch {
		w.publish(ctx, &batch[i])
	}
}

func (w *NotificationWorker) publish(ctx context.Context, n *model.Notification) {
	event := websocket.NotificationEvent{
		Event:    websocket.EventNotification,
		ID:       n.ID,
		Kind:     string(n.Kind),
		Priority: string(n.Priority),
		Title:    n.Title,
		Body:     n.Body,
		SentAt:   n.CreatedAt.Format(time.RFC3339),
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return
	}

	// Best effort — a miss only means the user wasn't connected.
	if err := w.rdb.Publish(ctx, config.CacheKey.UserNotifyChannel(n.UserID), raw).Err(); err != nil {
		w.log.Debug().Err(err).Int("user_id", n.UserID).Msg("publish failed")
	}
}
