package adapter

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/constant"
	"AfrilanceWeb/internal/metrics"
	"AfrilanceWeb/internal/model"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const maxErrorBodyBytes = 64 * 1024

// APIError is a failed call to the marketplace API. Detail carries the
// backend's user-facing message when it sent one.
type APIError struct {
	Status int
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("marketplace API returned status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown to the user for a failed action.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return constant.GenericErrorMessage
}

type APIAdapter struct {
	client *resty.Client
}

func NewAPIAdapter(cfg *config.AppConfig, httpClient *http.Client) *APIAdapter {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.APIBaseURL).
		SetHeader("Accept", "application/json").
		SetDisableWarn(true)

	return &APIAdapter{
		client: client,
	}
}

func (a *APIAdapter) ListConversations(ctx context.Context, token string) ([]model.ConversationResponse, error) {
	var conversations []model.ConversationResponse
	if err := a.getList(ctx, "list_conversations", token, "/messages/conversations", nil, "conversations", &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (a *APIAdapter) ListMessages(ctx context.Context, token string, conversationID string) ([]model.MessageResponse, error) {
	path := fmt.Sprintf("/messages/conversations/%s/messages", url.PathEscape(conversationID))

	var messages []model.MessageResponse
	if err := a.getList(ctx, "list_messages", token, path, nil, "messages", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (a *APIAdapter) SendMessage(ctx context.Context, token string, req model.SendMessageRequest) error {
	_, err := a.do(ctx, "send_message", http.MethodPost, "/messages/send", token, nil, req)
	return err
}

func (a *APIAdapter) SearchUsers(ctx context.Context, token string, query string) ([]model.UserSearchResult, error) {
	var users []model.UserSearchResult
	if err := a.getList(ctx, "search_users", token, "/messages/search-users", map[string]string{"q": query}, "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *APIAdapter) AdminLogin(ctx context.Context, req model.AdminLoginRequest) (*model.AdminLoginAPIResponse, error) {
	raw, err := a.do(ctx, "admin_login", http.MethodPost, "/admin/login", "", nil, req)
	if err != nil {
		return nil, err
	}

	var resp model.AdminLoginAPIResponse
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &APIError{Status: http.StatusBadGateway, Err: errors.New("login response carried no access token")}
	}
	return &resp, nil
}

func (a *APIAdapter) RequestAdminRegistration(ctx context.Context, req model.AdminRegistrationRequest) (*model.AdminRegistrationResponse, error) {
	raw, err := a.do(ctx, "admin_registration", http.MethodPost, "/admin/registration-requests", "", nil, req)
	if err != nil {
		return nil, err
	}

	var resp model.AdminRegistrationResponse
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getList accepts both a bare JSON array and an object wrapping the array
// under key.
func (a *APIAdapter) getList(ctx context.Context, operation, token, path string, query map[string]string, key string, out interface{}) error {
	raw, err := a.do(ctx, operation, http.MethodGet, path, token, query, nil)
	if err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return &APIError{Status: http.StatusBadGateway, Err: fmt.Errorf("failed to decode %s: %w", key, err)}
		}
		return nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return &APIError{Status: http.StatusBadGateway, Err: fmt.Errorf("failed to decode %s: %w", key, err)}
	}
	list, ok := wrapped[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(list, out); err != nil {
		return &APIError{Status: http.StatusBadGateway, Err: fmt.Errorf("failed to decode %s: %w", key, err)}
	}
	return nil
}

func (a *APIAdapter) do(ctx context.Context, operation, method, path, token string, query map[string]string, body interface{}) ([]byte, error) {
	req := a.client.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		metrics.RecordAPIRequest(operation, 0, time.Since(start).Seconds())
		slog.Warn("Marketplace API request failed", "operation", operation, "method", method, "path", path, "error", err)
		return nil, &APIError{Status: http.StatusBadGateway, Err: err}
	}
	metrics.RecordAPIRequest(operation, resp.StatusCode(), time.Since(start).Seconds())

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &APIError{Status: resp.StatusCode(), Detail: readDetail(resp.Body())}
	}

	return resp.Body(), nil
}

func decode(raw []byte, out interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: http.StatusBadGateway, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func readDetail(data []byte) string {
	if len(data) > maxErrorBodyBytes {
		data = data[:maxErrorBodyBytes]
	}
	if len(data) == 0 {
		return ""
	}

	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}

	detail, _ := payload.Detail.(string)
	return detail
}
