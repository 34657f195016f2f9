package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/shaiso/flowctl/internal/config"
)

// Префикс версии API. Все логические пути относительны ему.
const apiPrefix = "/api/v1"

// Заголовок аутентификации.
const headerAPIKey = "X-Api-Key"

// Client — HTTP-клиент Flowhub API.
//
// Клиент строится из ровно одного профиля и не мутирует его.
// Последовательное переиспользование безопасно на всю жизнь процесса;
// параллельные вызовы допустимы (транспорт поддерживает конкурентные
// запросы), но клиент не упорядочивает записи в один ресурс.
type Client struct {
	profile *config.Profile
	http    *retryablehttp.Client
	logger  *slog.Logger
}

// New создаёт клиент для профиля.
func New(p *config.Profile, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		profile: p,
		http:    newRetryClient(p, logger),
		logger:  logger,
	}
}

// Send выполняет один низкоуровневый вызов API.
//
// Send строит URL из адреса профиля, префикса /api/v1 и логического
// пути, ставит заголовки аутентификации и выполняет запрос с retry
// по политике профиля. Возвращает распарсенное JSON-тело; пустое тело
// или не-JSON content-type дают nil без ошибки.
func (c *Client) Send(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var rawBody any
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		rawBody = data
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.profile.BaseURL+apiPrefix+path, rawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAPIKey, c.profile.APIKey)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if rawBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("sending request",
		"method", method,
		"path", path,
		"request_id", req.Header.Get("X-Request-Id"),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(c.profile.Timeout, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if !isJSONContentType(resp.Header.Get("Content-Type")) {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// sendScoped выполняет вызов по workflow-семейству с учётом project
// scope профиля.
//
// С заданным ProjectID вызов сначала идёт по scoped-пути
// /projects/{id}{path}; если он завершается 404, та же операция один
// раз повторяется по нескоуповому пути и возвращается её результат.
// Fallback действует на один вызов, профиль не мутируется. Любая
// другая ошибка scoped-вызова возвращается как есть.
func (c *Client) sendScoped(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if c.profile.ProjectID == "" {
		return c.Send(ctx, method, path, body)
	}

	scoped := "/projects/" + url.PathEscape(c.profile.ProjectID) + path
	out, err := c.Send(ctx, method, scoped, body)

	var apiErr *APIError
	if err != nil && errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		c.logger.Debug("scoped path not found, falling back to unscoped",
			"project_id", c.profile.ProjectID,
			"path", path,
		)
		return c.Send(ctx, method, path, body)
	}
	return out, err
}

// apiError строит APIError из ответа с кодом вне 2xx.
func apiError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	return &APIError{
		Status:  resp.StatusCode,
		Message: extractMessage(data),
	}
}

// extractMessage достаёт человекочитаемое сообщение из тела ошибки:
// поле "message", вложенное "error.message", иначе сырой текст.
func extractMessage(data []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	return strings.TrimSpace(string(data))
}

func isJSONContentType(ct string) bool {
	return strings.Contains(ct, "application/json")
}
