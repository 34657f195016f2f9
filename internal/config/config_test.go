package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeSources — детерминированное окружение для тестов.
type fakeSources struct {
	env   map[string]string
	files map[string][]byte
	cwd   string
	exe   string
}

func (f *fakeSources) Getenv(key string) string { return f.env[key] }

func (f *fakeSources) Getwd() (string, error) {
	if f.cwd == "" {
		return "", errors.New("no cwd")
	}
	return f.cwd, nil
}

func (f *fakeSources) Executable() (string, error) {
	if f.exe == "" {
		return "", errors.New("no executable")
	}
	return f.exe, nil
}

func (f *fakeSources) ReadFile(path string) ([]byte, error) {
	if data, ok := f.files[path]; ok {
		return data, nil
	}
	return nil, os.ErrNotExist
}

func newFakeSources() *fakeSources {
	return &fakeSources{
		env:   map[string]string{},
		files: map[string][]byte{},
		cwd:   "/work/project",
		exe:   "/opt/flowctl/bin/flowctl",
	}
}

func TestResolve_EnvVars(t *testing.T) {
	src := newFakeSources()
	src.env[EnvBaseURL] = "  https://flowhub.example.com/  "
	src.env[EnvAPIKey] = " secret-key "
	src.env[EnvProjectID] = "proj-1"

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Пробелы и завершающий слэш убираются
	if p.BaseURL != "https://flowhub.example.com" {
		t.Errorf("unexpected baseURL: %q", p.BaseURL)
	}
	if p.APIKey != "secret-key" {
		t.Errorf("unexpected apiKey: %q", p.APIKey)
	}
	if p.ProjectID != "proj-1" {
		t.Errorf("unexpected projectID: %q", p.ProjectID)
	}

	// Значения по умолчанию
	if !p.VerifyTLS {
		t.Error("VerifyTLS should default to true")
	}
	if p.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %s", p.Timeout)
	}
	if p.Retries != DefaultRetries {
		t.Errorf("expected default retries, got %d", p.Retries)
	}
}

func TestResolve_EnvVerifyTLS(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"false", false},
		{"true", true},
		{"0", true}, // только литерал "false" отключает проверку
		{"", true},
	}

	for _, tc := range cases {
		src := newFakeSources()
		src.env[EnvBaseURL] = "https://flowhub.example.com"
		src.env[EnvAPIKey] = "key"
		src.env[EnvVerifyTLS] = tc.value

		p, err := Resolve(src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.value, err)
		}
		if p.VerifyTLS != tc.want {
			t.Errorf("%q: VerifyTLS = %t, want %t", tc.value, p.VerifyTLS, tc.want)
		}
	}
}

func TestResolve_EnvWinsOverFile(t *testing.T) {
	src := newFakeSources()
	src.env[EnvBaseURL] = "https://from-env.example.com"
	src.env[EnvAPIKey] = "env-key"
	src.files["/work/project/flowctl.json"] = []byte(`{"baseUrl":"https://from-file.example.com","apiKey":"file-key"}`)

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaseURL != "https://from-env.example.com" {
		t.Errorf("env should win, got %q", p.BaseURL)
	}
}

func TestResolve_EnvIncomplete_FallsThroughToFile(t *testing.T) {
	// Только один из двух обязательных env — источник не считается
	src := newFakeSources()
	src.env[EnvBaseURL] = "https://from-env.example.com"
	src.files["/work/project/flowctl.json"] = []byte(`{"baseUrl":"https://from-file.example.com","apiKey":"file-key"}`)

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaseURL != "https://from-file.example.com" {
		t.Errorf("expected file profile, got %q", p.BaseURL)
	}
}

func TestResolve_LocalFileWinsOverPlain(t *testing.T) {
	src := newFakeSources()
	src.files["/work/project/flowctl.json"] = []byte(`{"baseUrl":"https://plain.example.com","apiKey":"k"}`)
	src.files["/work/project/flowctl.local.json"] = []byte(`{"baseUrl":"https://local.example.com","apiKey":"k"}`)

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaseURL != "https://local.example.com" {
		t.Errorf("local variant should win, got %q", p.BaseURL)
	}
}

func TestResolve_SearchOrder(t *testing.T) {
	// Файл есть только в родителе рабочей директории и рядом с бинарём;
	// родитель cwd идёт раньше
	src := newFakeSources()
	src.files["/work/flowctl.json"] = []byte(`{"baseUrl":"https://parent.example.com","apiKey":"k"}`)
	src.files["/opt/flowctl/bin/flowctl.json"] = []byte(`{"baseUrl":"https://exedir.example.com","apiKey":"k"}`)

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaseURL != "https://parent.example.com" {
		t.Errorf("cwd parent should be searched before exe dir, got %q", p.BaseURL)
	}
}

func TestResolve_InvalidCandidatesSkipped(t *testing.T) {
	src := newFakeSources()
	// Невалидный JSON и файл без apiKey пропускаются
	src.files["/work/project/flowctl.local.json"] = []byte(`{not json`)
	src.files["/work/project/flowctl.json"] = []byte(`{"baseUrl":"https://incomplete.example.com"}`)
	src.files["/work/flowctl.json"] = []byte(`{"baseUrl":"https://valid.example.com","apiKey":"k"}`)

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaseURL != "https://valid.example.com" {
		t.Errorf("invalid candidates should be skipped, got %q", p.BaseURL)
	}
}

func TestResolve_ConfigOverride(t *testing.T) {
	src := newFakeSources()
	src.env[EnvConfig] = "staging.json"
	// Файлы по умолчанию игнорируются при override
	src.files["/work/project/flowctl.json"] = []byte(`{"baseUrl":"https://default.example.com","apiKey":"k"}`)
	src.files["/work/project/staging.json"] = []byte(`{"baseUrl":"https://staging.example.com","apiKey":"k"}`)

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaseURL != "https://staging.example.com" {
		t.Errorf("override file should win, got %q", p.BaseURL)
	}
}

func TestResolve_AbsoluteOverride(t *testing.T) {
	src := newFakeSources()
	src.env[EnvConfig] = "/etc/flowctl/prod.json"
	src.files["/etc/flowctl/prod.json"] = []byte(`{"baseUrl":"https://prod.example.com","apiKey":"k"}`)

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaseURL != "https://prod.example.com" {
		t.Errorf("absolute override should be read as-is, got %q", p.BaseURL)
	}
}

func TestResolve_NotFound(t *testing.T) {
	src := newFakeSources()
	src.env[EnvConfig] = "missing.json"

	_, err := Resolve(src)
	if err == nil {
		t.Fatal("expected error when no source matches")
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}

	// Сообщение называет оба пути настройки и override
	msg := err.Error()
	for _, want := range []string{EnvBaseURL, EnvAPIKey, "flowctl.json", "missing.json"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message should mention %q: %s", want, msg)
		}
	}
	if nf.Override != "missing.json" {
		t.Errorf("unexpected override: %q", nf.Override)
	}
}

func TestProfile_FileFields(t *testing.T) {
	src := newFakeSources()
	src.files["/work/project/flowctl.json"] = []byte(`{
		"baseUrl": "https://flowhub.example.com/",
		"apiKey": "file-key",
		"projectId": "proj-9",
		"rejectUnauthorized": false,
		"timeoutMs": 5000,
		"retries": 1,
		"debug": true
	}`)

	p, err := Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaseURL != "https://flowhub.example.com" {
		t.Errorf("trailing slash should be stripped: %q", p.BaseURL)
	}
	if p.ProjectID != "proj-9" {
		t.Errorf("unexpected projectID: %q", p.ProjectID)
	}
	if p.VerifyTLS {
		t.Error("rejectUnauthorized=false should disable TLS verification")
	}
	if p.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: %s", p.Timeout)
	}
	if p.Retries != 1 {
		t.Errorf("unexpected retries: %d", p.Retries)
	}
	if !p.Debug {
		t.Error("debug should be true")
	}
}

func TestProfile_RoundTripPreservesUnknownFields(t *testing.T) {
	in := []byte(`{"baseUrl":"https://flowhub.example.com","apiKey":"k","customField":{"nested":42}}`)

	var p Profile
	if err := json.Unmarshal(in, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if string(m["customField"]) != `{"nested":42}` {
		t.Errorf("unknown field should survive round-trip, got %s", m["customField"])
	}
	if string(m["baseUrl"]) != `"https://flowhub.example.com"` {
		t.Errorf("known field lost: %s", m["baseUrl"])
	}
}

func TestResolve_NoDirsAvailable(t *testing.T) {
	// Ни cwd, ни executable — резолюция не паникует, а возвращает ошибку
	src := &fakeSources{env: map[string]string{}, files: map[string][]byte{}}

	_, err := Resolve(src)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestCandidatePaths_Order(t *testing.T) {
	src := newFakeSources()
	paths := candidatePaths(src, "")

	want := []string{
		filepath.Join("/work/project", localConfigFile),
		filepath.Join("/work/project", configFile),
		filepath.Join("/work", localConfigFile),
		filepath.Join("/work", configFile),
		filepath.Join("/opt/flowctl/bin", localConfigFile),
		filepath.Join("/opt/flowctl/bin", configFile),
		filepath.Join("/opt/flowctl", localConfigFile),
		filepath.Join("/opt/flowctl", configFile),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("candidate %d: got %q, want %q", i, paths[i], want[i])
		}
	}
}
