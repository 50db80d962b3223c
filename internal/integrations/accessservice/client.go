package accessservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для проверки прав пользователя в AccessService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AccessService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPermission запрашивает право пользователя
func (c *Client) GetPermission(ctx context.Context, userID int64, permission string) (*PermissionResponse, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%d/permissions/%s", c.baseURL, userID, url.PathEscape(permission))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var permissionResp PermissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&permissionResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &permissionResp, nil
}

// HasPermission возвращает true, если пользователю выдано право.
// Неизвестный пользователь не имеет прав. Любая другая ошибка
// превращается в ErrServiceUnavailable, и запрос отклоняется.
func (c *Client) HasPermission(ctx context.Context, userID int64, permission string) (bool, error) {
	resp, err := c.GetPermission(ctx, userID, permission)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Warn("AccessService: user id=%d not found, permission=%s denied", userID, permission)
			return false, nil
		}

		c.log.Error("AccessService unavailable, denying permission=%s for user id=%d: %v", permission, userID, err)
		return false, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceUnavailable, userID, err)
	}

	return resp.Allowed, nil
}

// AllowAll используется, когда access_service.url не задан (локальный запуск)
type AllowAll struct{}

// HasPermission всегда разрешает
func (AllowAll) HasPermission(context.Context, int64, string) (bool, error) {
	return true, nil
}
