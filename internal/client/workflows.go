package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Операции workflow-семейства. Все они scopable: с заданным ProjectID
// профиля вызов идёт через sendScoped (см. client.go).

// ListWorkflowsOpts — параметры фильтрации списка workflows.
type ListWorkflowsOpts struct {
	// Active фильтрует по статусу активации (nil — без фильтра).
	Active *bool

	// Name фильтрует по имени.
	Name string

	// Cursor — токен страницы из предыдущего ответа.
	Cursor string
}

func (o ListWorkflowsOpts) query() string {
	params := url.Values{}
	if o.Active != nil {
		params.Set("active", strconv.FormatBool(*o.Active))
	}
	if o.Name != "" {
		params.Set("name", o.Name)
	}
	if o.Cursor != "" {
		params.Set("cursor", o.Cursor)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// ListWorkflows возвращает одну страницу списка workflows.
func (c *Client) ListWorkflows(ctx context.Context, opts ListWorkflowsOpts) (*WorkflowPage, error) {
	raw, err := c.sendScoped(ctx, http.MethodGet, "/workflows"+opts.query(), nil)
	if err != nil {
		return nil, err
	}

	page := &WorkflowPage{}
	page.NextCursor, err = decodeList(raw, &page.Workflows)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// ListAllWorkflows обходит все страницы списка, строго последовательно
// и в порядке сервера. Цикл завершается, когда ответ не содержит
// nextCursor. Дедупликации и пересортировки нет.
func (c *Client) ListAllWorkflows(ctx context.Context, opts ListWorkflowsOpts) ([]Workflow, error) {
	var all []Workflow
	for {
		page, err := c.ListWorkflows(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Workflows...)
		if page.NextCursor == "" {
			return all, nil
		}
		opts.Cursor = page.NextCursor
	}
}

// GetWorkflow возвращает workflow по ID.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*Workflow, error) {
	raw, err := c.sendScoped(ctx, http.MethodGet, "/workflows/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var wf Workflow
	if err := decodeObject(raw, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// ExportWorkflow возвращает полное определение workflow как сырой JSON —
// для выгрузки в файл без потери полей.
func (c *Client) ExportWorkflow(ctx context.Context, id string) (json.RawMessage, error) {
	return c.sendScoped(ctx, http.MethodGet, "/workflows/"+url.PathEscape(id), nil)
}

// CreateWorkflow создаёт workflow из полного определения.
func (c *Client) CreateWorkflow(ctx context.Context, def json.RawMessage) (*Workflow, error) {
	raw, err := c.sendScoped(ctx, http.MethodPost, "/workflows", def)
	if err != nil {
		return nil, err
	}
	var wf Workflow
	if err := decodeObject(raw, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// UpdateWorkflow заменяет определение workflow.
func (c *Client) UpdateWorkflow(ctx context.Context, id string, def json.RawMessage) (*Workflow, error) {
	raw, err := c.sendScoped(ctx, http.MethodPut, "/workflows/"+url.PathEscape(id), def)
	if err != nil {
		return nil, err
	}
	var wf Workflow
	if err := decodeObject(raw, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// DeleteWorkflow удаляет workflow.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) error {
	_, err := c.sendScoped(ctx, http.MethodDelete, "/workflows/"+url.PathEscape(id), nil)
	return err
}

// ActivateWorkflow включает workflow.
func (c *Client) ActivateWorkflow(ctx context.Context, id string) (*Workflow, error) {
	return c.toggleWorkflow(ctx, id, "activate")
}

// DeactivateWorkflow выключает workflow.
func (c *Client) DeactivateWorkflow(ctx context.Context, id string) (*Workflow, error) {
	return c.toggleWorkflow(ctx, id, "deactivate")
}

func (c *Client) toggleWorkflow(ctx context.Context, id, action string) (*Workflow, error) {
	raw, err := c.sendScoped(ctx, http.MethodPost, "/workflows/"+url.PathEscape(id)+"/"+action, nil)
	if err != nil {
		return nil, err
	}
	var wf Workflow
	if err := decodeObject(raw, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// RunResult — результат запуска или повторного запуска workflow.
type RunResult struct {
	ExecutionID string `json:"executionId"`
}

// RunWorkflow запускает workflow.
//
// Контракт сервера на запуск неоднозначен между версиями, поэтому
// клиент пробует две формы endpoint'а: основную
// POST /workflows/{id}/run и, при любой неудаче (ошибка или ответ без
// идентификатора), альтернативную POST /executions. Идентификатор
// execution извлекается по упорядоченному списку экстракторов
// (см. extract.go). Если после обеих попыток идентификатора нет —
// терминальная ошибка ErrNoExecutionID, без дальнейших повторов.
//
// Запуск не входит в scopable-семейство: fallback по project scope
// к нему не применяется.
func (c *Client) RunWorkflow(ctx context.Context, id string, inputs map[string]any) (*RunResult, error) {
	var body any
	if len(inputs) > 0 {
		body = inputs
	}

	raw, err := c.Send(ctx, http.MethodPost, "/workflows/"+url.PathEscape(id)+"/run", body)
	if err == nil {
		if execID := extractExecutionID(raw); execID != "" {
			return &RunResult{ExecutionID: execID}, nil
		}
	} else {
		c.logger.Debug("primary run endpoint failed, trying secondary",
			"workflow_id", id,
			"error", err,
		)
	}

	alt := map[string]any{"workflowId": id}
	if len(inputs) > 0 {
		alt["data"] = inputs
	}
	raw, err = c.Send(ctx, http.MethodPost, "/executions", alt)
	if err != nil {
		return nil, err
	}
	if execID := extractExecutionID(raw); execID != "" {
		return &RunResult{ExecutionID: execID}, nil
	}
	return nil, ErrNoExecutionID
}
