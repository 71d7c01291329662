package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/logger"
)

// Enqueuer ставит задачи уведомлений в очередь asynq.
// Используется сценариями бронирования и отмены.
type Enqueuer struct {
	client *asynq.Client
	logs   *logger.Logger
}

// NewEnqueuer создает новый экземпляр Enqueuer
func NewEnqueuer(client *asynq.Client, logs *logger.Logger) *Enqueuer {
	return &Enqueuer{
		client: client,
		logs:   logs,
	}
}

// EnqueueReservationConfirmed ставит в очередь уведомление о подтверждённом бронировании
func (e *Enqueuer) EnqueueReservationConfirmed(ctx context.Context, res *domain.Reservation) error {
	return e.enqueue(ctx, EventReservationConfirmed, res)
}

// EnqueueReservationCancelled ставит в очередь уведомление об отменённом бронировании
func (e *Enqueuer) EnqueueReservationCancelled(ctx context.Context, res *domain.Reservation) error {
	return e.enqueue(ctx, EventReservationCancelled, res)
}

func (e *Enqueuer) enqueue(ctx context.Context, event string, res *domain.Reservation) error {
	task, err := NewReservationNotifyTask(event, res)
	if err != nil {
		return fmt.Errorf("tasks: build %s task: %w", event, err)
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("tasks: enqueue %s task: %w", event, err)
	}

	e.logs.Debug("tasks: enqueued %s task id=%s queue=%s reservation=%s", event, info.ID, info.Queue, res.PublicID)
	return nil
}
