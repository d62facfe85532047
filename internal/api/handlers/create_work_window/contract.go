package create_work_window

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/workwindows/models"
)

type WorkWindowService interface {
	Create(ctx context.Context, req *models.CreateWorkWindowRequest) (*models.WorkWindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
