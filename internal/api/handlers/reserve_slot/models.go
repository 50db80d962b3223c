package reserve_slot

import reserveSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_slot"

// ReserveSlotRequest HTTP запрос на резервирование.
// Указывается ровно один из personId и counterpartyId.
type ReserveSlotRequest struct {
	PersonID       *int64  `json:"personId,omitempty"`
	CounterpartyID *int64  `json:"counterpartyId,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель usecase
func (r *ReserveSlotRequest) ToUseCaseRequest(slotID, userID int64) *reserveSlot.Request {
	return &reserveSlot.Request{
		SlotID:         slotID,
		PersonID:       r.PersonID,
		CounterpartyID: r.CounterpartyID,
		Notes:          r.Notes,
		RequestedBy:    userID,
	}
}
