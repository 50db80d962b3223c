package accessservice

// Права, которые проверяет сервис записи
const (
	PermissionManageDefinitions = "appointments.definitions.manage"
	PermissionManageSlots       = "appointments.slots.manage"
)

// PermissionResponse ответ AccessService на проверку права
type PermissionResponse struct {
	UserID     int64  `json:"user_id"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

// ErrorResponse модель ошибки от AccessService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
