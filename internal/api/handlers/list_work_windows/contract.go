package list_work_windows

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/workwindows/models"
)

type WorkWindowService interface {
	List(ctx context.Context) (*models.WorkWindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
