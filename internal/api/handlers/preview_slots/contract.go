package preview_slots

import (
	"context"

	generateSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_slots"
)

type PreviewUseCase interface {
	Preview(ctx context.Context, req *generateSlots.Request) (*generateSlots.Summary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
