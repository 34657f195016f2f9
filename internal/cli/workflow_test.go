package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shaiso/flowctl/internal/client"
	"github.com/shaiso/flowctl/internal/config"
)

func testClientFn(serverURL string) ClientFunc {
	return func() (*client.Client, error) {
		p := &config.Profile{
			BaseURL:   serverURL,
			APIKey:    "test-key",
			VerifyTLS: true,
			Timeout:   5 * time.Second,
		}
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		return client.New(p, logger), nil
	}
}

func testOutputFn(jsonMode bool, w, errW *bytes.Buffer) OutputFunc {
	return func() *Output {
		return &Output{jsonMode: jsonMode, w: w, errW: errW}
	}
}

func TestWorkflowList_Table(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"w1","name":"nightly","active":true}]}`))
	}))
	defer server.Close()

	var out, errOut bytes.Buffer
	cmd := NewWorkflowCmd(testClientFn(server.URL), testOutputFn(false, &out, &errOut))
	cmd.SetArgs([]string{"list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "nightly") {
		t.Errorf("workflow missing from table: %q", out.String())
	}
}

func TestWorkflowList_InvalidActiveFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := NewWorkflowCmd(testClientFn("http://unused"), testOutputFn(false, &out, &errOut))
	cmd.SetArgs([]string{"list", "--active", "maybe"})
	cmd.SetErr(&errOut)

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for invalid --active value")
	}
}

func TestWorkflowRun_ReportsExecutionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"executionId":"exec-1"}`))
	}))
	defer server.Close()

	var out, errOut bytes.Buffer
	cmd := NewWorkflowCmd(testClientFn(server.URL), testOutputFn(false, &out, &errOut))
	cmd.SetArgs([]string{"run", "w1"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut.String(), "exec-1") {
		t.Errorf("execution id missing from message: %q", errOut.String())
	}
}

func TestWorkflowImport_CreateAndReplace(t *testing.T) {
	var paths []string
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		methods = append(methods, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"w1","name":"imported"}`))
	}))
	defer server.Close()

	file := filepath.Join(t.TempDir(), "wf.json")
	if err := os.WriteFile(file, []byte(`{"name":"imported","nodes":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := NewWorkflowCmd(testClientFn(server.URL), testOutputFn(false, &out, &errOut))
	cmd.SetArgs([]string{"import", "--file", file})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd = NewWorkflowCmd(testClientFn(server.URL), testOutputFn(false, &out, &errOut))
	cmd.SetArgs([]string{"import", "--file", file, "--id", "w1"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(methods) != 2 || methods[0] != http.MethodPost || methods[1] != http.MethodPut {
		t.Errorf("expected POST then PUT, got %v on %v", methods, paths)
	}
}

func TestWorkflowExport_WritesFile(t *testing.T) {
	def := `{"id":"w1","name":"nightly","nodes":[]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(def))
	}))
	defer server.Close()

	outFile := filepath.Join(t.TempDir(), "export.json")
	var out, errOut bytes.Buffer
	cmd := NewWorkflowCmd(testClientFn(server.URL), testOutputFn(false, &out, &errOut))
	cmd.SetArgs([]string{"export", "w1", "--out", outFile})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("exported file not written: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
	if decoded["name"] != "nightly" {
		t.Errorf("unexpected export content: %v", decoded)
	}
}

func TestReadJSONFile_Invalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(file, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readJSONFile(file); err == nil {
		t.Fatal("expected error for invalid JSON file")
	}
}
