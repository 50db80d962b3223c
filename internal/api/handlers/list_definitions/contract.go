package list_definitions

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"
)

type DefinitionService interface {
	ListActive(ctx context.Context) ([]*models.DefinitionResponse, error)
	ListAll(ctx context.Context) ([]*models.DefinitionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
