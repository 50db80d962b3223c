package list_definitions

import "github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"

// DefinitionListResponse список определений
type DefinitionListResponse struct {
	Items []*models.DefinitionResponse `json:"items"`
	Total int                          `json:"total"`
}
