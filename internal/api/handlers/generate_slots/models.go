package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	slotModels "github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
	generateSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP запрос на генерацию слотов
type GenerateSlotsRequest struct {
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
}

// ToUseCaseRequest разбирает даты в зоне loc
func (r *GenerateSlotsRequest) ToUseCaseRequest(definitionID int64, loc *time.Location) (*generateSlots.Request, error) {
	start, err := time.ParseInLocation(domain.DateFormat, r.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := time.ParseInLocation(domain.DateFormat, r.EndDate, loc)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &generateSlots.Request{
		DefinitionID: definitionID,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// GenerateSlotsResponse результат генерации
type GenerateSlotsResponse struct {
	BatchID      string                     `json:"batchId"`
	TotalDays    int                        `json:"totalDays"`
	MatchingDays int                        `json:"matchingDays"`
	SlotsPerDay  int                        `json:"slotsPerDay"`
	TotalSlots   int                        `json:"totalSlots"`
	CreatedCount int                        `json:"createdCount"`
	FailedCount  int                        `json:"failedCount"`
	Slots        []*slotModels.SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует результат usecase в HTTP ответ
func FromUseCaseResponse(resp *generateSlots.CommitResponse) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		BatchID:      resp.BatchID,
		TotalDays:    resp.Summary.TotalDays,
		MatchingDays: resp.Summary.MatchingDays,
		SlotsPerDay:  resp.Summary.SlotsPerDay,
		TotalSlots:   resp.Summary.TotalSlots,
		CreatedCount: resp.CreatedCount,
		FailedCount:  resp.FailedCount,
		Slots:        slotModels.FromDomainList(resp.Slots),
	}
}
