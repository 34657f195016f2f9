package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListAllWorkflows_Pagination(t *testing.T) {
	var cursors []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("cursor")
		cursors = append(cursors, cursor)
		w.Header().Set("Content-Type", "application/json")
		switch cursor {
		case "":
			w.Write([]byte(`{"data":[{"id":"A","name":"a"},{"id":"B","name":"b"}],"nextCursor":"c1"}`))
		case "c1":
			w.Write([]byte(`{"data":[{"id":"C","name":"c"}]}`))
		default:
			t.Errorf("unexpected cursor %q", cursor)
			w.Write([]byte(`{"data":[]}`))
		}
	}))
	defer server.Close()

	c := testClient(testProfile(server.URL))
	all, err := c.ListAllWorkflows(context.Background(), ListWorkflowsOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Страницы конкатенируются в порядке сервера, цикл заканчивается
	// на ответе без nextCursor
	if len(all) != 3 || all[0].ID != "A" || all[1].ID != "B" || all[2].ID != "C" {
		t.Errorf("unexpected result: %+v", all)
	}
	if len(cursors) != 2 || cursors[0] != "" || cursors[1] != "c1" {
		t.Errorf("unexpected cursor sequence: %v", cursors)
	}
}

func TestListWorkflows_Filters(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	c := testClient(testProfile(server.URL))
	active := true
	_, err := c.ListWorkflows(context.Background(), ListWorkflowsOpts{Active: &active, Name: "nightly"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "active=true&name=nightly" {
		t.Errorf("unexpected query: %q", query)
	}
}

func TestRunWorkflow_PrimaryEndpoint(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"executionId":"exec-1"}`))
	}))
	defer server.Close()

	c := testClient(testProfile(server.URL))
	res, err := c.RunWorkflow(context.Background(), "w1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExecutionID != "exec-1" {
		t.Errorf("unexpected execution id: %q", res.ExecutionID)
	}
	if len(paths) != 1 || paths[0] != "/api/v1/workflows/w1/run" {
		t.Errorf("expected single primary call, got %v", paths)
	}
}

func TestRunWorkflow_SecondaryEndpointFallback(t *testing.T) {
	var secondaryBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/workflows/w1/run":
			w.WriteHeader(http.StatusNotFound)
		case "/api/v1/executions":
			json.NewDecoder(r.Body).Decode(&secondaryBody)
			w.Write([]byte(`{"data":{"id":"exec-2"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := testClient(testProfile(server.URL))
	res, err := c.RunWorkflow(context.Background(), "w1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExecutionID != "exec-2" {
		t.Errorf("unexpected execution id: %q", res.ExecutionID)
	}
	if secondaryBody["workflowId"] != "w1" {
		t.Errorf("secondary endpoint should receive workflowId, got %v", secondaryBody)
	}
}

func TestRunWorkflow_NoExecutionID(t *testing.T) {
	// Оба endpoint'а отвечают успехом, но без идентификатора
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"accepted"}`))
	}))
	defer server.Close()

	c := testClient(testProfile(server.URL))
	_, err := c.RunWorkflow(context.Background(), "w1", nil)
	if !errors.Is(err, ErrNoExecutionID) {
		t.Fatalf("expected ErrNoExecutionID, got %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected both endpoints to be tried, got %v", paths)
	}
}

func TestRunWorkflow_SecondaryFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"unknown workflow"}`))
	}))
	defer server.Close()

	c := testClient(testProfile(server.URL))
	_, err := c.RunWorkflow(context.Background(), "w1", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected secondary endpoint error, got %v", err)
	}
}

func TestRunWorkflow_InputsForwarded(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"executionId":"exec-3"}`))
	}))
	defer server.Close()

	c := testClient(testProfile(server.URL))
	_, err := c.RunWorkflow(context.Background(), "w1", map[string]any{"env": "staging"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received["env"] != "staging" {
		t.Errorf("inputs not forwarded: %v", received)
	}
}

func TestExportWorkflow_RawDefinition(t *testing.T) {
	def := `{"id":"w1","name":"nightly","nodes":[{"type":"http"}],"connections":{}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(def))
	}))
	defer server.Close()

	c := testClient(testProfile(server.URL))
	raw, err := c.ExportWorkflow(context.Background(), "w1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Определение уходит наружу без потери полей
	if string(raw) != def {
		t.Errorf("definition should be verbatim, got %s", raw)
	}
}
