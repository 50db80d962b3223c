package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgInvalidData   = "некорректные данные"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error      string           `json:"error"`
	Violations []ViolationModel `json:"violations,omitempty"`
}

// ViolationModel нарушение в конкретном поле запроса
type ViolationModel struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondNoContent отправляет 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest отправляет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondValidation отправляет 400 со списком нарушенных полей
func RespondValidation(w http.ResponseWriter, verr *domain.ValidationError) {
	violations := make([]ViolationModel, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		violations = append(violations, ViolationModel{Field: v.Field, Message: v.Message})
	}
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidData, Violations: violations})
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict отправляет 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError отправляет 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError отвечает по классу ошибки: validation 400, not found 404,
// conflict 409, остальное 500. Возвращает HTTP статус для логов.
func RespondDomainError(w http.ResponseWriter, err error, notFoundMsg, conflictMsg string) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		RespondValidation(w, verr)
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, msgInvalidData)
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, notFoundMsg)
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		RespondConflict(w, conflictMsg)
		return http.StatusConflict
	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}

// DecodeJSON декодирует тело запроса; неизвестные поля отклоняются
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// PathID читает положительный int64 параметр пути
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// QueryInt64 читает необязательный int64 query параметр
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

// QueryInt читает необязательный int query параметр
func QueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

// QueryDate читает необязательную дату YYYY-MM-DD в зоне loc
func QueryDate(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(domain.DateFormat, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", name, raw)
	}
	return &d, nil
}
