package client

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки клиента.
var (
	// ErrNoExecutionID — сервер принял запуск, но ни одна из известных
	// форм ответа не содержала идентификатор execution.
	ErrNoExecutionID = errors.New("no execution ID in server response")
)

// APIError — ответ сервера с кодом вне диапазона 2xx.
//
// Message извлекается из JSON-тела (поле "message" или вложенное
// "error.message"), иначе — сырой текст ответа.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("API error: HTTP %d: %s", e.Status, e.Message)
}

// TimeoutError — попытка запроса превысила таймаут профиля.
// Отличается от TransportError: таймаут диагностируется отдельно.
type TimeoutError struct {
	Timeout time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s: %v", e.Timeout, e.Cause)
}

func (e *TimeoutError) Unwrap() error { return e.Cause }

// TransportError — сетевая ошибка: DNS, соединение, TLS.
// Возвращается после исчерпания retry-попыток; Cause — последняя
// ошибка транспорта без изменений.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }
