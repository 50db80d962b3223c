package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на ручное создание слота
type CreateSlotRequest struct {
	DefinitionID int64      `json:"definitionId"`
	StartAt      time.Time  `json:"startAt"`
	EndAt        *time.Time `json:"endAt,omitempty"` // nil = startAt + длительность из определения
	Note         string     `json:"note,omitempty"`
}

// UpdateSlotRequest частичное обновление слота
// Статус и назначение меняются только через SetStatus и резервирование
type UpdateSlotRequest struct {
	StartAt  *time.Time `json:"startAt,omitempty"`
	EndAt    *time.Time `json:"endAt,omitempty"`
	Note     *string    `json:"note,omitempty"`
	IsActive *bool      `json:"isActive,omitempty"`
}

// ToDomainPatch конвертирует запрос в патч
func (r *UpdateSlotRequest) ToDomainPatch() domain.SlotPatch {
	return domain.SlotPatch{
		StartAt:  r.StartAt,
		EndAt:    r.EndAt,
		Note:     r.Note,
		IsActive: r.IsActive,
	}
}

// SetStatusRequest запрос на смену статуса одного слота
type SetStatusRequest struct {
	Status string  `json:"status"`           // open | closed (и локализованные алиасы)
	Reason *string `json:"reason,omitempty"` // причина закрытия
}

// SetStatusManyRequest запрос на смену статуса набора слотов
type SetStatusManyRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// DeleteSlotsRequest запрос на массовое удаление
type DeleteSlotsRequest struct {
	IDs []int64 `json:"ids"`
}

// ListSlotsRequest параметры списка слотов
type ListSlotsRequest struct {
	Filter domain.SlotFilter
	Page   domain.Page
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID             int64     `json:"id"`
	DefinitionID   int64     `json:"definitionId"`
	Date           string    `json:"date"` // YYYY-MM-DD
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	Status         string    `json:"status"`
	PersonID       *int64    `json:"personId,omitempty"`
	CounterpartyID *int64    `json:"counterpartyId,omitempty"`
	Note           string    `json:"note"`
	CloseReason    *string   `json:"closeReason,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в ответ
func FromDomain(slot *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:             slot.ID,
		DefinitionID:   slot.DefinitionID,
		Date:           slot.Date.Format(domain.DateFormat),
		StartAt:        slot.StartAt,
		EndAt:          slot.EndAt,
		Status:         string(slot.Status),
		PersonID:       slot.Assignment.PersonID(),
		CounterpartyID: slot.Assignment.CounterpartyID(),
		Note:           slot.Note,
		CloseReason:    slot.CloseReason,
		IsActive:       slot.IsActive,
		CreatedAt:      slot.CreatedAt,
		UpdatedAt:      slot.UpdatedAt,
	}
}

// FromDomainList конвертирует список слотов
func FromDomainList(slots []*domain.Slot) []*SlotResponse {
	out := make([]*SlotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, FromDomain(slot))
	}
	return out
}

// SlotListResponse страница слотов
type SlotListResponse struct {
	Items      []*SlotResponse `json:"items"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
}

// SetStatusManyResponse результат массовой смены статуса.
// Несуществующие слоты и слоты с неподходящим статусом попадают в skipped.
type SetStatusManyResponse struct {
	UpdatedCount int     `json:"updatedCount"`
	SkippedCount int     `json:"skippedCount"`
	UpdatedIDs   []int64 `json:"updatedIds"`
}

// DeleteSlotsResponse результат массового удаления
type DeleteSlotsResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
