package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/logger"
)

// TypeReservationNotify тип asynq-задачи уведомления о бронировании
const TypeReservationNotify = "reservation:notify"

// Notification events
const (
	EventReservationConfirmed = "reservation_confirmed"
	EventReservationCancelled = "reservation_cancelled"
)

// NotifyPayload полезная нагрузка задачи уведомления.
// Содержит денормализованные данные брони, чтобы обработчик
// не ходил в БД.
type NotifyPayload struct {
	Event         string `json:"event"`
	ReservationID string `json:"reservation_id"` // public UUID
	StudioID      int64  `json:"studio_id"`
	CustomerID    int64  `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	Date          string `json:"date"`       // YYYY-MM-DD
	StartTime     string `json:"start_time"` // HH:MM
	EndTime       string `json:"end_time"`   // HH:MM, exclusive
	FinalPrice    int64  `json:"final_price"`
}

// NewReservationNotifyTask создает задачу уведомления о событии бронирования
func NewReservationNotifyTask(event string, res *domain.Reservation) (*asynq.Task, error) {
	payload := NotifyPayload{
		Event:         event,
		ReservationID: res.PublicID,
		StudioID:      res.StudioID,
		CustomerID:    res.CustomerID,
		CustomerName:  res.CustomerName,
		Date:          res.Date.Format(domain.DateFormat),
		StartTime:     res.StartTime.String(),
		EndTime:       res.EndTime.String(),
		FinalPrice:    res.FinalPrice,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("notify task: marshal payload: %w", err)
	}

	return asynq.NewTask(TypeReservationNotify, b, asynq.MaxRetry(5)), nil
}

// Notifier обработчик задач уведомлений: доставляет события бронирований
// на внешний webhook (бот/почтовый шлюз)
type Notifier struct {
	webhookURL string
	httpClient *http.Client
	logs       *logger.Logger
}

// NewNotifier создает обработчик уведомлений
func NewNotifier(webhookURL string, timeout time.Duration, logs *logger.Logger) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logs:       logs,
	}
}

// HandleReservationNotify обрабатывает задачу уведомления.
// Ошибка доставки возвращается наружу: asynq повторит задачу с backoff'ом.
func (n *Notifier) HandleReservationNotify(ctx context.Context, task *asynq.Task) error {
	var p NotifyPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		n.logs.Error("notify: invalid payload: %v", err)
		// Некорректная нагрузка не станет валидной при повторе
		return fmt.Errorf("notify: invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(task.Payload()))
	if err != nil {
		return fmt.Errorf("notify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logs.Warn("notify: deliver %s for reservation=%s: %v", p.Event, p.ReservationID, err)
		return fmt.Errorf("notify: deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logs.Warn("notify: webhook returned %d for reservation=%s", resp.StatusCode, p.ReservationID)
		return fmt.Errorf("notify: webhook returned status %d", resp.StatusCode)
	}

	n.logs.Info("notify: delivered %s for reservation=%s studio=%d", p.Event, p.ReservationID, p.StudioID)
	return nil
}

// Worker фоновый воркер asynq, работающий в том же процессе, что и API
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logs   *logger.Logger
}

// NewWorker создает воркер обработки задач уведомлений
func NewWorker(redisOpts asynq.RedisClientOpt, notifier *Notifier, concurrency int, logs *logger.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 5
	}

	server := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationNotify, notifier.HandleReservationNotify)

	return &Worker{
		server: server,
		mux:    mux,
		logs:   logs,
	}
}

// Start запускает воркер в фоне
func (w *Worker) Start() error {
	w.logs.Info("notify worker: starting")
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("notify worker: start: %w", err)
	}
	return nil
}

// Shutdown останавливает воркер, дожидаясь активных задач
func (w *Worker) Shutdown() {
	w.logs.Info("notify worker: shutting down")
	w.server.Shutdown()
}
