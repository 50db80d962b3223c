package accessservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда AccessService не знает пользователя
	ErrUserNotFound = errors.New("accessservice: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accessservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accessservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда проверку прав выполнить не удалось.
	// Запрос в этом случае отклоняется.
	ErrServiceUnavailable = errors.New("accessservice unavailable")
)
