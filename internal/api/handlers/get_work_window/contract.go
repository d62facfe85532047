package get_work_window

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/workwindows/models"
)

type WorkWindowService interface {
	GetByID(ctx context.Context, id int64) (*models.WorkWindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
