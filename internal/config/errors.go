package config

import (
	"fmt"
	"strings"
)

// NotFoundError — ни один источник не дал валидного профиля.
//
// Сообщение называет оба пути настройки (переменные окружения
// и конфигурационный файл) и показывает, какие пути были проверены.
type NotFoundError struct {
	// Override — значение FLOWCTL_CONFIG, если оно было задано.
	Override string

	// Tried — проверенные пути к файлам, по порядку.
	Tried []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no connection profile found: set %s and %s, or create %s", EnvBaseURL, EnvAPIKey, configFile)
	if e.Override != "" {
		fmt.Fprintf(&b, " (config override %s=%q was tried)", EnvConfig, e.Override)
	}
	if len(e.Tried) > 0 {
		fmt.Fprintf(&b, "; searched: %s", strings.Join(e.Tried, ", "))
	}
	return b.String()
}
