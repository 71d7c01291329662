package update_schedule

import (
	"context"

	"github.com/nrgaliy/Studio-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateWeekly(ctx context.Context, req *models.UpdateWeeklyScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
