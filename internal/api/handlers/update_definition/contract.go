package update_definition

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"
)

type DefinitionService interface {
	Update(ctx context.Context, id int64, req *models.UpdateDefinitionRequest) (*models.DefinitionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
