package create_definition

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"
)

type DefinitionService interface {
	Create(ctx context.Context, req *models.CreateDefinitionRequest) (*models.DefinitionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
