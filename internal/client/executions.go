package client

import (
	"context"
	"net/http"
	"net/url"
)

// Операции execution-семейства. Project scope к ним не применяется:
// executions всегда адресуются по нескоуповому пути.

// ListExecutionsOpts — параметры фильтрации списка executions.
type ListExecutionsOpts struct {
	// WorkflowID фильтрует по workflow.
	WorkflowID string

	// Status фильтрует по статусу (success, error, running, waiting).
	Status string

	// Cursor — токен страницы из предыдущего ответа.
	Cursor string
}

func (o ListExecutionsOpts) query() string {
	params := url.Values{}
	if o.WorkflowID != "" {
		params.Set("workflowId", o.WorkflowID)
	}
	if o.Status != "" {
		params.Set("status", o.Status)
	}
	if o.Cursor != "" {
		params.Set("cursor", o.Cursor)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// ListExecutions возвращает одну страницу списка executions.
func (c *Client) ListExecutions(ctx context.Context, opts ListExecutionsOpts) (*ExecutionPage, error) {
	raw, err := c.Send(ctx, http.MethodGet, "/executions"+opts.query(), nil)
	if err != nil {
		return nil, err
	}

	page := &ExecutionPage{}
	page.NextCursor, err = decodeList(raw, &page.Executions)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// ListAllExecutions обходит все страницы списка последовательно,
// в порядке сервера, до первого ответа без nextCursor.
func (c *Client) ListAllExecutions(ctx context.Context, opts ListExecutionsOpts) ([]Execution, error) {
	var all []Execution
	for {
		page, err := c.ListExecutions(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Executions...)
		if page.NextCursor == "" {
			return all, nil
		}
		opts.Cursor = page.NextCursor
	}
}

// GetExecution возвращает execution по ID.
func (c *Client) GetExecution(ctx context.Context, id string) (*Execution, error) {
	raw, err := c.Send(ctx, http.MethodGet, "/executions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var ex Execution
	if err := decodeObject(raw, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

// DeleteExecution удаляет запись об execution.
func (c *Client) DeleteExecution(ctx context.Context, id string) error {
	_, err := c.Send(ctx, http.MethodDelete, "/executions/"+url.PathEscape(id), nil)
	return err
}

// RetryExecution повторяет завершившийся execution.
//
// Endpoint один, но форма ответа так же неоднозначна, как у запуска:
// идентификатор нового execution извлекается тем же списком
// экстракторов. Ответ без идентификатора — ErrNoExecutionID.
func (c *Client) RetryExecution(ctx context.Context, id string) (*RunResult, error) {
	raw, err := c.Send(ctx, http.MethodPost, "/executions/"+url.PathEscape(id)+"/retry", nil)
	if err != nil {
		return nil, err
	}
	if execID := extractExecutionID(raw); execID != "" {
		return &RunResult{ExecutionID: execID}, nil
	}
	return nil, ErrNoExecutionID
}
