package reserve_slot

// Request модель запроса на резервирование слота.
// Должен быть указан ровно один из PersonID и CounterpartyID.
type Request struct {
	SlotID         int64
	PersonID       *int64
	CounterpartyID *int64
	Notes          *string
	RequestedBy    int64 // X-User-ID, только для логов
}
