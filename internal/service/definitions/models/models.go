package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// CreateDefinitionRequest запрос на создание определения
type CreateDefinitionRequest struct {
	Name                string           `json:"name"`
	Description         *string          `json:"description,omitempty"`
	Weekdays            []int            `json:"weekdays"` // 0 = воскресенье ... 6 = суббота
	WindowStart         types.TimeString `json:"windowStart"`
	WindowEnd           types.TimeString `json:"windowEnd"`
	SlotDurationMinutes int              `json:"slotDurationMinutes"`
	MaxOccupants        int              `json:"maxOccupants"`
	Location            *string          `json:"location,omitempty"`
	IsActive            *bool            `json:"isActive,omitempty"` // nil = активно
}

// ToDomain конвертирует запрос в доменную модель
func (r *CreateDefinitionRequest) ToDomain() *domain.AppointmentDefinition {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &domain.AppointmentDefinition{
		Name:                r.Name,
		Description:         r.Description,
		Weekdays:            domain.Weekdays(r.Weekdays).Normalize(),
		WindowStart:         r.WindowStart,
		WindowEnd:           r.WindowEnd,
		SlotDurationMinutes: r.SlotDurationMinutes,
		MaxOccupants:        r.MaxOccupants,
		Location:            r.Location,
		IsActive:            isActive,
	}
}

// UpdateDefinitionRequest частичное обновление определения
// Все поля опциональны - обновляются только переданные значения
type UpdateDefinitionRequest struct {
	Name                *string           `json:"name,omitempty"`
	Description         *string           `json:"description,omitempty"`
	Weekdays            *[]int            `json:"weekdays,omitempty"`
	WindowStart         *types.TimeString `json:"windowStart,omitempty"`
	WindowEnd           *types.TimeString `json:"windowEnd,omitempty"`
	SlotDurationMinutes *int              `json:"slotDurationMinutes,omitempty"`
	MaxOccupants        *int              `json:"maxOccupants,omitempty"`
	Location            *string           `json:"location,omitempty"`
	IsActive            *bool             `json:"isActive,omitempty"`
}

// ToDomainPatch конвертирует запрос в патч
func (r *UpdateDefinitionRequest) ToDomainPatch() domain.DefinitionPatch {
	patch := domain.DefinitionPatch{
		Name:                r.Name,
		Description:         r.Description,
		WindowStart:         r.WindowStart,
		WindowEnd:           r.WindowEnd,
		SlotDurationMinutes: r.SlotDurationMinutes,
		MaxOccupants:        r.MaxOccupants,
		Location:            r.Location,
		IsActive:            r.IsActive,
	}
	if r.Weekdays != nil {
		weekdays := domain.Weekdays(*r.Weekdays).Normalize()
		patch.Weekdays = &weekdays
	}
	return patch
}

// Response модели

// DefinitionResponse ответ с данными определения
type DefinitionResponse struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	Description         *string          `json:"description,omitempty"`
	Weekdays            []int            `json:"weekdays"`
	WindowStart         types.TimeString `json:"windowStart"`
	WindowEnd           types.TimeString `json:"windowEnd"`
	SlotDurationMinutes int              `json:"slotDurationMinutes"`
	SlotsPerDay         int              `json:"slotsPerDay"`
	MaxOccupants        int              `json:"maxOccupants"`
	Location            *string          `json:"location,omitempty"`
	IsActive            bool             `json:"isActive"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в ответ
func FromDomain(def *domain.AppointmentDefinition) *DefinitionResponse {
	weekdays := make([]int, len(def.Weekdays))
	copy(weekdays, def.Weekdays)

	return &DefinitionResponse{
		ID:                  def.ID,
		Name:                def.Name,
		Description:         def.Description,
		Weekdays:            weekdays,
		WindowStart:         def.WindowStart,
		WindowEnd:           def.WindowEnd,
		SlotDurationMinutes: def.SlotDurationMinutes,
		SlotsPerDay:         def.SlotsPerDay(),
		MaxOccupants:        def.MaxOccupants,
		Location:            def.Location,
		IsActive:            def.IsActive,
		CreatedAt:           def.CreatedAt,
		UpdatedAt:           def.UpdatedAt,
	}
}

// FromDomainList конвертирует список определений
func FromDomainList(defs []*domain.AppointmentDefinition) []*DefinitionResponse {
	out := make([]*DefinitionResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, FromDomain(def))
	}
	return out
}
