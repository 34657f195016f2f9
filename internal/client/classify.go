package client

import (
	"fmt"
	"strings"
)

// Diagnose превращает ошибку в строку с рекомендацией для пользователя.
//
// Функция чистая и тотальная: работает только с текстом сообщения
// (и строкой от не-ошибок), не выполняет I/O и никогда не паникует.
// Ветви проверяются в порядке приоритета; нераспознанное сообщение
// возвращается без изменений. Принимает any: на границе CLI может
// оказаться что угодно.
func Diagnose(v any) string {
	var msg string
	switch e := v.(type) {
	case nil:
		return ""
	case error:
		msg = e.Error()
	case string:
		msg = e
	default:
		msg = fmt.Sprint(v)
	}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "401") || strings.Contains(lower, "unauthorized"):
		return "Unauthorized (401): the server rejected the API key. Check " +
			"FLOWCTL_API_KEY or the apiKey field of your config file."

	case strings.Contains(msg, "403") || strings.Contains(lower, "forbidden"):
		return "Forbidden (403): the API key is valid but lacks permission for this " +
			"operation. Check the key's role and project access on the server."

	case strings.Contains(msg, "404"):
		return "Not found (404): check the server address and the resource ID. " +
			"The /api/v1 prefix is added automatically — don't include it in the base URL."

	case strings.Contains(msg, "ENOTFOUND") || strings.Contains(lower, "no such host"):
		return "DNS lookup failed: the server hostname could not be resolved. " +
			"Check the base URL for typos."

	case strings.Contains(msg, "ECONNREFUSED") || strings.Contains(lower, "connection refused"):
		return "Connection refused: is the server running and listening on the " +
			"configured address and port?"

	case strings.Contains(lower, "self-signed") || strings.Contains(lower, "self signed") ||
		strings.Contains(lower, "unknown authority"):
		return "TLS certificate is not trusted (self-signed?). Set " +
			"rejectUnauthorized=false in the config file or FLOWCTL_VERIFY_TLS=false " +
			"to skip verification."

	case strings.Contains(msg, "AbortError") || strings.Contains(lower, "timed out") ||
		strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return "Request timed out. The server may be slow or unreachable; " +
			"increase timeoutMs in the config file."

	case strings.Contains(msg, "API error"):
		return msg + " (check the profile: server address, API key, project ID)"

	case strings.Contains(msg, "transport error:"):
		return strings.TrimSpace(strings.TrimPrefix(msg, "transport error:"))

	default:
		return msg
	}
}
