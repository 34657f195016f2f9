package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Мелкие ресурсные семейства: credentials, tags, variables, audit.
// Scope к ним не применяется.

// --- Credentials ---

// ListCredentials возвращает сводки credentials (без секретов).
func (c *Client) ListCredentials(ctx context.Context) ([]Credential, error) {
	raw, err := c.Send(ctx, http.MethodGet, "/credentials", nil)
	if err != nil {
		return nil, err
	}
	var creds []Credential
	if _, err := decodeList(raw, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// CreateCredential создаёт credential из полного определения.
func (c *Client) CreateCredential(ctx context.Context, def json.RawMessage) (*Credential, error) {
	raw, err := c.Send(ctx, http.MethodPost, "/credentials", def)
	if err != nil {
		return nil, err
	}
	var cred Credential
	if err := decodeObject(raw, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// DeleteCredential удаляет credential.
func (c *Client) DeleteCredential(ctx context.Context, id string) error {
	_, err := c.Send(ctx, http.MethodDelete, "/credentials/"+url.PathEscape(id), nil)
	return err
}

// --- Tags ---

// ListTags возвращает одну страницу списка tags.
func (c *Client) ListTags(ctx context.Context, cursor string) (*TagPage, error) {
	path := "/tags"
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}
	raw, err := c.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	page := &TagPage{}
	page.NextCursor, err = decodeList(raw, &page.Tags)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// GetTag возвращает tag по ID.
func (c *Client) GetTag(ctx context.Context, id string) (*Tag, error) {
	raw, err := c.Send(ctx, http.MethodGet, "/tags/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var tag Tag
	if err := decodeObject(raw, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag создаёт tag с именем.
func (c *Client) CreateTag(ctx context.Context, name string) (*Tag, error) {
	raw, err := c.Send(ctx, http.MethodPost, "/tags", map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	var tag Tag
	if err := decodeObject(raw, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// UpdateTag переименовывает tag.
func (c *Client) UpdateTag(ctx context.Context, id, name string) (*Tag, error) {
	raw, err := c.Send(ctx, http.MethodPut, "/tags/"+url.PathEscape(id), map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	var tag Tag
	if err := decodeObject(raw, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag удаляет tag.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	_, err := c.Send(ctx, http.MethodDelete, "/tags/"+url.PathEscape(id), nil)
	return err
}

// --- Variables ---

// ListVariables возвращает variables.
func (c *Client) ListVariables(ctx context.Context) ([]Variable, error) {
	raw, err := c.Send(ctx, http.MethodGet, "/variables", nil)
	if err != nil {
		return nil, err
	}
	var vars []Variable
	if _, err := decodeList(raw, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}

// CreateVariable создаёт variable.
func (c *Client) CreateVariable(ctx context.Context, key, value string) (*Variable, error) {
	body := map[string]string{"key": key, "value": value}
	raw, err := c.Send(ctx, http.MethodPost, "/variables", body)
	if err != nil {
		return nil, err
	}
	var v Variable
	if err := decodeObject(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVariable обновляет variable.
func (c *Client) UpdateVariable(ctx context.Context, id, key, value string) (*Variable, error) {
	body := map[string]string{"key": key, "value": value}
	raw, err := c.Send(ctx, http.MethodPut, "/variables/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	var v Variable
	if err := decodeObject(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVariable удаляет variable.
func (c *Client) DeleteVariable(ctx context.Context, id string) error {
	_, err := c.Send(ctx, http.MethodDelete, "/variables/"+url.PathEscape(id), nil)
	return err
}

// --- Audit ---

// GenerateAudit запрашивает у сервера security audit и возвращает
// отчёт как сырой JSON — структура отчёта зависит от сервера.
func (c *Client) GenerateAudit(ctx context.Context) (json.RawMessage, error) {
	return c.Send(ctx, http.MethodPost, "/audit", nil)
}
