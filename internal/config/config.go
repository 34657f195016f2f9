package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Переменные окружения для резолюции профиля.
const (
	// EnvBaseURL — адрес сервера (вместе с EnvAPIKey образует полный профиль).
	EnvBaseURL = "FLOWCTL_BASE_URL"

	// EnvAPIKey — API-ключ.
	EnvAPIKey = "FLOWCTL_API_KEY"

	// EnvProjectID — опциональный project scope.
	EnvProjectID = "FLOWCTL_PROJECT_ID"

	// EnvVerifyTLS — проверка TLS-сертификата сервера.
	// Любое значение, кроме литерала "false", означает true.
	EnvVerifyTLS = "FLOWCTL_VERIFY_TLS"

	// EnvConfig — имя (или абсолютный путь) конфигурационного файла,
	// перекрывающее имена по умолчанию.
	EnvConfig = "FLOWCTL_CONFIG"
)

// Имена конфигурационных файлов по умолчанию.
// Локальный вариант имеет приоритет.
const (
	localConfigFile = "flowctl.local.json"
	configFile      = "flowctl.json"
)

// Значения по умолчанию для профиля.
const (
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 3
)

// Profile — разрешённые настройки подключения к серверу.
//
// Профиль иммутабелен после резолюции: один Profile принадлежит
// ровно одному клиенту на всё время его жизни. Неизвестные поля
// JSON-файла не интерпретируются, но сохраняются при round-trip
// (MarshalJSON выводит их обратно).
type Profile struct {
	// BaseURL — адрес сервера без завершающего слэша.
	BaseURL string

	// APIKey — непрозрачный ключ, передаётся в заголовке X-Api-Key.
	APIKey string

	// ProjectID — опциональный scope для workflow-операций.
	ProjectID string

	// VerifyTLS — проверять ли сертификат сервера. По умолчанию true.
	VerifyTLS bool

	// Timeout — предел на одну попытку запроса.
	Timeout time.Duration

	// Retries — максимум дополнительных попыток (>= 0).
	Retries int

	// Debug — подробное логирование запросов.
	Debug bool

	// extra — непрозрачные поля конфигурационного файла.
	extra map[string]json.RawMessage
}

// Ключи известных полей конфигурационного файла.
var knownFields = []string{
	"baseUrl", "apiKey", "projectId", "rejectUnauthorized",
	"timeoutMs", "retries", "debug",
}

// fileProfile — промежуточная форма для парсинга JSON-файла.
// Указатели отличают "поле отсутствует" от нулевого значения.
type fileProfile struct {
	BaseURL            string `json:"baseUrl"`
	APIKey             string `json:"apiKey"`
	ProjectID          string `json:"projectId,omitempty"`
	RejectUnauthorized *bool  `json:"rejectUnauthorized,omitempty"`
	TimeoutMs          *int   `json:"timeoutMs,omitempty"`
	Retries            *int   `json:"retries,omitempty"`
	Debug              bool   `json:"debug,omitempty"`
}

// defaultProfile возвращает профиль со значениями по умолчанию.
func defaultProfile() *Profile {
	return &Profile{
		VerifyTLS: true,
		Timeout:   DefaultTimeout,
		Retries:   DefaultRetries,
	}
}

// UnmarshalJSON парсит профиль из конфигурационного файла,
// применяя значения по умолчанию и сохраняя неизвестные поля.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var fp fileProfile
	if err := json.Unmarshal(data, &fp); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, f := range knownFields {
		delete(raw, f)
	}

	def := defaultProfile()
	p.BaseURL = strings.TrimRight(strings.TrimSpace(fp.BaseURL), "/")
	p.APIKey = strings.TrimSpace(fp.APIKey)
	p.ProjectID = strings.TrimSpace(fp.ProjectID)
	p.VerifyTLS = def.VerifyTLS
	if fp.RejectUnauthorized != nil {
		p.VerifyTLS = *fp.RejectUnauthorized
	}
	p.Timeout = def.Timeout
	if fp.TimeoutMs != nil && *fp.TimeoutMs > 0 {
		p.Timeout = time.Duration(*fp.TimeoutMs) * time.Millisecond
	}
	p.Retries = def.Retries
	if fp.Retries != nil && *fp.Retries >= 0 {
		p.Retries = *fp.Retries
	}
	p.Debug = fp.Debug
	if len(raw) > 0 {
		p.extra = raw
	}
	return nil
}

// MarshalJSON выводит профиль в формате конфигурационного файла,
// включая сохранённые неизвестные поля.
func (p Profile) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.extra)+len(knownFields))
	for k, v := range p.extra {
		out[k] = v
	}

	put := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = b
		return nil
	}

	fields := map[string]any{
		"baseUrl":            p.BaseURL,
		"apiKey":             p.APIKey,
		"projectId":          p.ProjectID,
		"rejectUnauthorized": p.VerifyTLS,
		"timeoutMs":          int(p.Timeout / time.Millisecond),
		"retries":            p.Retries,
		"debug":              p.Debug,
	}
	for k, v := range fields {
		if err := put(k, v); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

// Resolve разрешает профиль подключения.
//
// Порядок (первое совпадение побеждает, источники не смешиваются):
//  1. Переменные окружения FLOWCTL_BASE_URL + FLOWCTL_API_KEY.
//  2. Конфигурационный файл в одной из директорий-кандидатов.
//  3. Ошибка *NotFoundError с подсказками по обоим путям настройки.
func Resolve(src Sources) (*Profile, error) {
	if p := fromEnv(src); p != nil {
		return p, nil
	}

	override := strings.TrimSpace(src.Getenv(EnvConfig))
	var tried []string
	for _, path := range candidatePaths(src, override) {
		tried = append(tried, path)

		data, err := src.ReadFile(path)
		if err != nil {
			continue
		}

		var p Profile
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		if p.BaseURL == "" || p.APIKey == "" {
			continue
		}
		return &p, nil
	}

	return nil, &NotFoundError{Override: override, Tried: tried}
}

// fromEnv собирает профиль из переменных окружения.
// Возвращает nil, если обязательные переменные не заданы.
func fromEnv(src Sources) *Profile {
	baseURL := strings.TrimSpace(src.Getenv(EnvBaseURL))
	apiKey := strings.TrimSpace(src.Getenv(EnvAPIKey))
	if baseURL == "" || apiKey == "" {
		return nil
	}

	p := defaultProfile()
	p.BaseURL = strings.TrimRight(baseURL, "/")
	p.APIKey = apiKey
	p.ProjectID = strings.TrimSpace(src.Getenv(EnvProjectID))
	p.VerifyTLS = src.Getenv(EnvVerifyTLS) != "false"
	return p
}

// candidatePaths возвращает упорядоченный список путей-кандидатов:
// каждое имя файла в каждой директории поиска. Абсолютный override
// пробуется как есть, один раз.
func candidatePaths(src Sources, override string) []string {
	names := []string{localConfigFile, configFile}
	if override != "" {
		if filepath.IsAbs(override) {
			return []string{override}
		}
		names = []string{override}
	}

	var paths []string
	seen := make(map[string]bool)
	for _, dir := range searchDirs(src) {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if seen[path] {
				continue
			}
			seen[path] = true
			paths = append(paths, path)
		}
	}
	return paths
}

// searchDirs возвращает директории поиска: рабочая директория,
// её родитель, директория исполняемого файла и её родитель.
func searchDirs(src Sources) []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	if cwd, err := src.Getwd(); err == nil {
		add(cwd)
		add(filepath.Dir(cwd))
	}
	if exe, err := src.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		add(exeDir)
		add(filepath.Dir(exeDir))
	}
	return dirs
}

// String возвращает профиль без секретов — для debug-логов.
func (p *Profile) String() string {
	key := "(unset)"
	if p.APIKey != "" {
		key = "***"
	}
	return fmt.Sprintf("Profile{baseUrl=%s apiKey=%s projectId=%s verifyTls=%t timeout=%s retries=%d}",
		p.BaseURL, key, p.ProjectID, p.VerifyTLS, p.Timeout, p.Retries)
}
