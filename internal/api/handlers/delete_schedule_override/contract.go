package delete_schedule_override

import (
	"context"

	"github.com/nrgaliy/Studio-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	DeleteOverride(ctx context.Context, req *models.DeleteOverrideRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
