package delete_slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

type SlotService interface {
	DeleteMany(ctx context.Context, req *models.DeleteSlotsRequest) (*models.DeleteSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
