package preview_slots

import generateSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_slots"

// PreviewResponse итоги генерации без сохранения
type PreviewResponse struct {
	DefinitionID int64  `json:"definitionId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	TotalDays    int    `json:"totalDays"`
	MatchingDays int    `json:"matchingDays"`
	SlotsPerDay  int    `json:"slotsPerDay"`
	TotalSlots   int    `json:"totalSlots"`
}

func fromSummary(definitionID int64, startDate, endDate string, s *generateSlots.Summary) PreviewResponse {
	return PreviewResponse{
		DefinitionID: definitionID,
		StartDate:    startDate,
		EndDate:      endDate,
		TotalDays:    s.TotalDays,
		MatchingDays: s.MatchingDays,
		SlotsPerDay:  s.SlotsPerDay,
		TotalSlots:   s.TotalSlots,
	}
}
