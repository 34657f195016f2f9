package client

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/shaiso/flowctl/internal/config"
)

// Параметры backoff между попытками: 1s, 2s, 4s, ... с потолком 10s.
// Без jitter — задержки детерминированы.
const (
	retryWaitMin = 1 * time.Second
	retryWaitMax = 10 * time.Second
)

// newRetryClient собирает retryablehttp-клиент под политику профиля.
//
// Таймаут профиля ограничивает каждую попытку по отдельности
// (http.Client.Timeout применяется к каждому Do), Retries задаёт
// число дополнительных попыток. PassthroughErrorHandler возвращает
// последнюю ошибку без обёртки "giving up after N attempts".
func newRetryClient(p *config.Profile, logger *slog.Logger) *retryablehttp.Client {
	transport := cleanhttp.DefaultPooledTransport()
	if !p.VerifyTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   p.Timeout,
	}
	rc.RetryMax = p.Retries
	rc.RetryWaitMin = retryWaitMin
	rc.RetryWaitMax = retryWaitMax
	rc.CheckRetry = checkRetry
	rc.Backoff = backoff
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if p.Debug {
		rc.Logger = &retryLogger{logger}
	} else {
		rc.Logger = nil
	}
	return rc
}

// checkRetry решает, повторять ли попытку.
//
// Повторяются: HTTP 429, любой 5xx и транзиентные сетевые ошибки
// (таймаут, connection reset, connection refused, обрыв соединения).
// Не повторяются: остальные 4xx, отмена контекста, ошибки DNS
// и TLS-сертификата — повтор там бессмыслен.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryableTransport(err), nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

// retryableTransport классифицирует сетевую ошибку как транзиентную.
func retryableTransport(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return false
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// Прочие сетевые сбои считаем транзиентными
	return true
}

// backoff возвращает задержку перед попыткой k: min(retryWaitMin << k, retryWaitMax).
// Retry-After от сервера сознательно игнорируется — задержки фиксированы.
func backoff(min, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
	if attemptNum > 30 {
		return max
	}
	d := min << uint(attemptNum)
	if d <= 0 || d > max {
		return max
	}
	return d
}

// classifyTransport оборачивает ошибку транспорта после исчерпания
// retry: таймаут отличаем от прочих сетевых ошибок.
func classifyTransport(timeout time.Duration, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Timeout: timeout, Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Timeout: timeout, Cause: err}
	}
	return &TransportError{Cause: err}
}

// retryLogger адаптирует slog под retryablehttp.LeveledLogger.
type retryLogger struct {
	l *slog.Logger
}

func (r *retryLogger) Error(msg string, keysAndValues ...any) { r.l.Error(msg, keysAndValues...) }
func (r *retryLogger) Warn(msg string, keysAndValues ...any)  { r.l.Warn(msg, keysAndValues...) }
func (r *retryLogger) Info(msg string, keysAndValues ...any)  { r.l.Info(msg, keysAndValues...) }
func (r *retryLogger) Debug(msg string, keysAndValues ...any) { r.l.Debug(msg, keysAndValues...) }
