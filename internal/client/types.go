package client

import (
	"encoding/json"
	"fmt"
)

// --- Ресурсы API ---
//
// Клиент не интерпретирует ресурсы глубже, чем нужно для вывода
// и пагинации; полные определения workflow ходят как json.RawMessage.

// Workflow — workflow из API (primary resource, поддерживает project scope).
type Workflow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Execution — запись о запуске workflow (secondary resource, без scope).
type Execution struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflowId"`
	Status     string `json:"status"`
	StartedAt  string `json:"startedAt,omitempty"`
	StoppedAt  string `json:"stoppedAt,omitempty"`
}

// Credential — сводка credential из API (без секретов).
type Credential struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Tag — tag из API.
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Variable — variable из API.
type Variable struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// --- Страницы списков ---

// WorkflowPage — одна страница списка workflows.
type WorkflowPage struct {
	Workflows  []Workflow
	NextCursor string
}

// ExecutionPage — одна страница списка executions.
type ExecutionPage struct {
	Executions []Execution
	NextCursor string
}

// TagPage — одна страница списка tags.
type TagPage struct {
	Tags       []Tag
	NextCursor string
}

// --- Обёртки ответов ---

// listEnvelope — обёртка списочных ответов API:
// {"data": [...], "nextCursor": "..."}.
type listEnvelope struct {
	Data       json.RawMessage `json:"data"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

// decodeList разбирает списочный ответ в out и возвращает nextCursor.
// Отсутствие nextCursor означает последнюю страницу.
func decodeList(raw json.RawMessage, out any) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var env listEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("failed to decode list response: %w", err)
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode list items: %w", err)
		}
	}
	return env.NextCursor, nil
}

// decodeObject разбирает одиночный ресурс. Пустое тело оставляет out
// нетронутым — некоторые операции отвечают без тела.
func decodeObject(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
